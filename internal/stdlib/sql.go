package stdlib

import (
	"database/sql"

	_ "modernc.org/sqlite"

	"github.com/reyna-lang/reyna/internal/reynaerr"
	"github.com/reyna-lang/reyna/internal/vm"
)

const sqlDBKind = "SqlDB"

// sqlBuiltins exposes a minimal embedded-persistence quartet, grounded on the
// sibling pack repo's builtins_sql.go: sql_open opens a sqlite database,
// sql_exec runs a statement with no result rows, sql_query runs one and
// returns its rows as an array of one-instance-per-row field maps, and
// sql_close closes the database.
func sqlBuiltins() map[string]vm.NativeFn {
	return map[string]vm.NativeFn{
		"sql_open": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("sql_open", 1, len(args))
			}
			path, err := argString("sql_open", args, 0)
			if err != nil {
				return vm.Value{}, err
			}
			db, openErr := sql.Open("sqlite", path)
			if openErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_open: " + openErr.Error()}
			}
			return vm.ObjVal(machine.NewOpaque(sqlDBKind, db)), nil
		},

		"sql_exec": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 2 {
				return vm.Value{}, arityError("sql_exec", 2, len(args))
			}
			db, err := argDB(args[0])
			if err != nil {
				return vm.Value{}, err
			}
			stmt, err := argString("sql_exec", args, 1)
			if err != nil {
				return vm.Value{}, err
			}
			result, execErr := db.Exec(stmt)
			if execErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_exec: " + execErr.Error()}
			}
			affected, _ := result.RowsAffected()
			return vm.IntVal(affected), nil
		},

		"sql_query": func(machine *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 2 {
				return vm.Value{}, arityError("sql_query", 2, len(args))
			}
			db, err := argDB(args[0])
			if err != nil {
				return vm.Value{}, err
			}
			stmt, err := argString("sql_query", args, 1)
			if err != nil {
				return vm.Value{}, err
			}
			return runQuery(machine, db, stmt)
		},

		"sql_close": func(_ *vm.VM, args []vm.Value) (vm.Value, error) {
			if len(args) != 1 {
				return vm.Value{}, arityError("sql_close", 1, len(args))
			}
			db, err := argDB(args[0])
			if err != nil {
				return vm.Value{}, err
			}
			if closeErr := db.Close(); closeErr != nil {
				return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_close: " + closeErr.Error()}
			}
			return vm.BoolVal(true), nil
		},
	}
}

func argDB(v vm.Value) (*sql.DB, error) {
	if !v.IsObj() {
		return nil, typeError("sql", sqlDBKind, v)
	}
	opaque, ok := v.Obj.(*vm.ObjOpaque)
	if !ok || opaque.Kind != sqlDBKind {
		return nil, typeError("sql", sqlDBKind, v)
	}
	return opaque.Data.(*sql.DB), nil
}

// runQuery renders each result row as an instance whose fields are keyed
// by column name, collected into a Reyna array.
func runQuery(machine *vm.VM, db *sql.DB, stmt string) (vm.Value, error) {
	rows, err := db.Query(stmt)
	if err != nil {
		return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_query: " + err.Error()}
	}
	defer rows.Close()

	cols, err := rows.Columns()
	if err != nil {
		return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_query: " + err.Error()}
	}

	var out []vm.Value
	for rows.Next() {
		raw := make([]interface{}, len(cols))
		ptrs := make([]interface{}, len(cols))
		for i := range raw {
			ptrs[i] = &raw[i]
		}
		if scanErr := rows.Scan(ptrs...); scanErr != nil {
			return vm.Value{}, &reynaerr.RuntimeError{Msg: "sql_query: " + scanErr.Error()}
		}
		instance := machine.NewInstance("row", nil)
		for i, col := range cols {
			instance.Fields[col] = sqlColumnToValue(machine, raw[i])
		}
		out = append(out, vm.ObjVal(instance))
	}
	return vm.ObjVal(machine.NewArray(out)), nil
}

func sqlColumnToValue(machine *vm.VM, raw interface{}) vm.Value {
	switch v := raw.(type) {
	case nil:
		return vm.NilVal()
	case int64:
		return vm.IntVal(v)
	case float64:
		return vm.FloatVal(v)
	case bool:
		return vm.BoolVal(v)
	case []byte:
		return vm.ObjVal(machine.NewString(string(v)))
	case string:
		return vm.ObjVal(machine.NewString(v))
	default:
		return vm.NilVal()
	}
}
