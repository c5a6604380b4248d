package stdlib

import (
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/reyna-lang/reyna/internal/vm"
)

func openTestDB(t *testing.T, machine *vm.VM) vm.Value {
	t.Helper()
	path := filepath.Join(t.TempDir(), "test.db")
	db, err := sqlBuiltins()["sql_open"](machine, []vm.Value{vm.ObjVal(machine.NewString(path))})
	require.NoError(t, err)
	return db
}

func TestSqlExecAndQueryRoundTrip(t *testing.T) {
	machine := vm.New()
	db := openTestDB(t, machine)

	_, err := sqlBuiltins()["sql_exec"](machine, []vm.Value{
		db, vm.ObjVal(machine.NewString("create table items (id integer, name text)")),
	})
	require.NoError(t, err)

	affected, err := sqlBuiltins()["sql_exec"](machine, []vm.Value{
		db, vm.ObjVal(machine.NewString("insert into items (id, name) values (1, 'widget')")),
	})
	require.NoError(t, err)
	assert.Equal(t, int64(1), affected.AsInt())

	rows, err := sqlBuiltins()["sql_query"](machine, []vm.Value{
		db, vm.ObjVal(machine.NewString("select id, name from items")),
	})
	require.NoError(t, err)

	arr := rows.Obj.(*vm.ObjArray)
	assert.Len(t, arr.Elements, 1)
	row := arr.Elements[0].Obj.(*vm.ObjInstance)
	assert.Equal(t, int64(1), row.Fields["id"].AsInt())
	assert.Equal(t, "widget", row.Fields["name"].Obj.(*vm.ObjString).Value)

	_, err = sqlBuiltins()["sql_close"](machine, []vm.Value{db})
	assert.NoError(t, err)
}

func TestSqlExecRejectsNonDBArgument(t *testing.T) {
	machine := vm.New()
	_, err := sqlBuiltins()["sql_exec"](machine, []vm.Value{
		vm.IntVal(1), vm.ObjVal(machine.NewString("select 1")),
	})
	assert.Error(t, err)
}
