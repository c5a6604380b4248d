package stdlib_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/reyna-lang/reyna/pkg/embed"
)

// TestRegisterInstallsNatives exercises Register indirectly through the
// embedding surface (avoiding an import cycle with pkg/embed, which itself
// depends on this package) by calling, from a script, the natives that need
// no stdin, file, database or error path, and checking each resolves to
// something callable rather than an undefined global.
func TestRegisterInstallsNatives(t *testing.T) {
	script := `
		print clock();
		print str(1);
		print len([1, 2, 3]);
		print int("4");
		print float("5");
		print uuid();
		print to_yaml([1, 2]);
	`
	result, err := embed.Run(script, ".")
	assert.NoError(t, err)
	assert.Equal(t, embed.OK, result)
}
