package core

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestBuiltinLookup(t *testing.T) {
	for _, b := range builtinTable {
		assert.NotNil(t, lookupBuiltin(b.name), b.name)
		assert.NotEmpty(t, b.help, "%s has help text", b.name)
	}
	assert.Nil(t, lookupBuiltin("not-a-builtin"))
}

func TestBuiltinSetUnset(t *testing.T) {
	sh := newTestShell(t)
	defer os.Unsetenv("PISH_TEST_VAR")

	_, status := runCollect(t, sh, "set PISH_TEST_VAR 42")
	assert.Equal(t, 0, status)
	assert.Equal(t, "42", os.Getenv("PISH_TEST_VAR"))

	out, _ := runCollect(t, sh, "echo ${PISH_TEST_VAR}")
	assert.Equal(t, "42\n", out)

	// One argument sets the empty string, it does not unset.
	runCollect(t, sh, "set PISH_TEST_VAR")
	val, ok := os.LookupEnv("PISH_TEST_VAR")
	assert.True(t, ok)
	assert.Empty(t, val)

	runCollect(t, sh, "unset PISH_TEST_VAR")
	_, ok = os.LookupEnv("PISH_TEST_VAR")
	assert.False(t, ok)
}

func TestBuiltinSetPrintsEnviron(t *testing.T) {
	sh := newTestShell(t)
	t.Setenv("PISH_PRINT_ME", "yes")

	out, status := runCollect(t, sh, "set")
	assert.Equal(t, 0, status)
	assert.Contains(t, out, "PISH_PRINT_ME=yes\n")
}

func TestBuiltinCd(t *testing.T) {
	old, err := os.Getwd()
	require.NoError(t, err)
	defer os.Chdir(old)

	sh := newTestShell(t)
	dir := t.TempDir()

	_, status := runCollect(t, sh, "cd "+dir)
	assert.Equal(t, 0, status)

	wd, err := os.Getwd()
	require.NoError(t, err)
	wantDir, err := filepath.EvalSymlinks(dir)
	require.NoError(t, err)
	gotDir, err := filepath.EvalSymlinks(wd)
	require.NoError(t, err)
	assert.Equal(t, wantDir, gotDir)

	// Missing argument is fatal, like a failed chdir.
	_, status = runCollect(t, sh, "cd")
	assert.Equal(t, -1, status)
}

func TestBuiltinEval(t *testing.T) {
	sh := newTestShell(t)

	out, status := runCollect(t, sh, "eval echo hi there")
	assert.Equal(t, 0, status)
	assert.Equal(t, "hi there\n", out)

	_, status = runCollect(t, sh, "eval")
	assert.Equal(t, -1, status)
}

func TestBuiltinSource(t *testing.T) {
	sh := newTestShell(t)
	sh.Fs = afero.NewMemMapFs()
	defer os.Unsetenv("PISH_SOURCED")

	script := "set PISH_SOURCED yes\necho sourced\n"
	require.NoError(t, afero.WriteFile(sh.Fs, "/init.pish", []byte(script), 0644))

	out, status := runCollect(t, sh, "source /init.pish")
	assert.Equal(t, 0, status)
	assert.Equal(t, "sourced\n", out)
	assert.Equal(t, "yes", os.Getenv("PISH_SOURCED"))

	_, status = runCollect(t, sh, "source /missing.pish")
	assert.Equal(t, 1, status)
}

func TestBuiltinHistory(t *testing.T) {
	sh := newTestShell(t)
	sh.history = []string{"first", "second"}

	out, status := runCollect(t, sh, "history")
	assert.Equal(t, 0, status)
	assert.Equal(t, "    0  first\n    1  second\n", out)

	_, status = runCollect(t, sh, "history -c")
	assert.Equal(t, 0, status)
	assert.Empty(t, sh.history)
}
