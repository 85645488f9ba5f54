package cmd

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/spf13/afero"
	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/find-willa/pkg/ledger"
	"github.com/mattsolo1/find-willa/pkg/names"
)

// run executes the command tree with args and an isolated HOME.
func run(t *testing.T, args ...string) error {
	t.Helper()
	viper.Reset()
	t.Cleanup(viper.Reset)

	root := NewRootCmd()
	root.SetArgs(args)
	return root.Execute()
}

func TestStartAndSubmitCommands(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	require.NoError(t, run(t, "start", dir, "--strategy", "1", "--max-nest-level", "0"))

	gameRoot := filepath.Join(dir, ledger.RootName)
	rec, err := ledger.Read(afero.NewOsFs(), gameRoot)
	require.NoError(t, err)
	assert.Equal(t, filepath.Join(gameRoot, "alliW"), rec.Path)

	// A second game in the same place is refused.
	assert.Error(t, run(t, "start", dir))

	// A wrong guess is not an error.
	entries, err := os.ReadDir(gameRoot)
	require.NoError(t, err)
	for _, e := range entries {
		if e.Name() != "alliW" && e.Name() != ledger.FileName {
			assert.NoError(t, run(t, "submit", filepath.Join(gameRoot, e.Name())))
			break
		}
	}

	assert.NoError(t, run(t, "submit", rec.Path))
	assert.NoError(t, run(t, "status", dir))
	assert.NoError(t, run(t, "history", "--json"))
}

func TestRootDispatch(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	require.NoError(t, run(t, dir, "-s", "0", "--no-history"))

	target := filepath.Join(dir, ledger.RootName)
	rec, err := ledger.Read(afero.NewOsFs(), target)
	require.NoError(t, err)
	assert.Equal(t, "Willa", filepath.Base(rec.Path))

	// A file argument is a submission.
	assert.NoError(t, run(t, rec.Path))
}

func TestSubmitWithoutGame(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()
	stray := filepath.Join(dir, "stray.txt")
	require.NoError(t, os.WriteFile(stray, nil, 0644))

	assert.Error(t, run(t, "submit", stray))
}

func TestInvalidFlags(t *testing.T) {
	t.Setenv("HOME", t.TempDir())
	dir := t.TempDir()

	assert.Error(t, run(t, "start", dir, "--strategy", "7"))
	assert.Error(t, run(t, "start", dir, "--max-nest-level", "-1"))

	_, err := os.Stat(filepath.Join(dir, ledger.RootName))
	assert.True(t, os.IsNotExist(err), "invalid flags must not leave a game behind")
}

func TestBuiltinGameInfo(t *testing.T) {
	gi := builtinGameInfo()
	assert.Equal(t, []string{"plain", "reversed-name", "content-clue", "restricted-permissions"}, gi.Strategies)
	assert.Equal(t, len(names.DirNames()), gi.DirNames)
	assert.Equal(t, len(names.FileNames()), gi.FileNames)
	assert.Contains(t, gi.String(), "reversed-name")

	assert.NoError(t, run(t, "version", "--json"))
}
