package validate

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// script writes a shell stand-in for validate.py.
func script(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "validate.sh")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o755))
	return path
}

func TestValidatePass(t *testing.T) {
	s := script(t, "#!/bin/sh\necho \"*** PASSED ***\"\n")

	v, err := New(Options{Python: "sh", Script: s, Lang: "uz", Level: 2})
	require.NoError(t, err)

	res, err := v.Validate(context.Background(), "1\tkitob\tkitob\tX\t_\t_\t0\troot\t_\t_\n")
	require.NoError(t, err)
	assert.True(t, res.Ok)
	assert.Contains(t, res.Log, "PASSED")
}

func TestValidateFail(t *testing.T) {
	s := script(t, "#!/bin/sh\necho \"checking $1 $2\"\necho \"[Line 1]: bad HEAD\" >&2\nexit 1\n")

	v, err := New(Options{Python: "sh", Script: s, Lang: "uz", Level: 2})
	require.NoError(t, err)

	res, err := v.Validate(context.Background(), "1\tkitob\tkitob\tX\t_\t_\t5\tdep\t_\t_\n")
	require.NoError(t, err)
	assert.False(t, res.Ok)
	assert.Equal(t, 1, res.ExitCode)
	assert.Contains(t, res.Log, "checking --lang=uz --level=2")
	assert.Contains(t, res.Log, "bad HEAD")
}

func TestValidateReadsRecord(t *testing.T) {
	// Fails unless the temporary file holds the record.
	s := script(t, "#!/bin/sh\nfor last; do :; done\ngrep -q kitob \"$last\"\n")

	v, err := New(Options{Python: "sh", Script: s, Lang: "uz", Level: 2})
	require.NoError(t, err)

	res, err := v.Validate(context.Background(), "1\tkitob\tkitob\tX\t_\t_\t0\troot\t_\t_\n")
	require.NoError(t, err)
	assert.True(t, res.Ok)

	res, err = v.Validate(context.Background(), "1\tqalam\tqalam\tX\t_\t_\t0\troot\t_\t_\n")
	require.NoError(t, err)
	assert.False(t, res.Ok)
}

func TestNewMissingScript(t *testing.T) {
	_, err := New(Options{Python: "sh", Script: filepath.Join(t.TempDir(), "validate.py")})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "validate.py")
}

func TestValidateMissingInterpreter(t *testing.T) {
	s := script(t, "#!/bin/sh\nexit 0\n")

	v, err := New(Options{Python: filepath.Join(t.TempDir(), "no-python"), Script: s, Lang: "uz", Level: 2})
	require.NoError(t, err)

	_, err = v.Validate(context.Background(), "")
	require.Error(t, err)
}

func TestArgs(t *testing.T) {
	v := &Validator{opts: Options{Script: "tools/ud-tools/validate.py", Lang: "uz", Level: 2}}
	assert.Equal(t, []string{"tools/ud-tools/validate.py", "--lang=uz", "--level=2", "/tmp/x.conllu"}, v.Args("/tmp/x.conllu"))
}
