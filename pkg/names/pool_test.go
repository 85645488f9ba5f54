package names

import (
	"testing"

	"github.com/spf13/afero"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/mattsolo1/find-willa/pkg/rng"
)

func TestPoolTakeNeverRepeats(t *testing.T) {
	words := []string{"a", "b", "c", "d", "e"}
	p := NewPool(words, rng.New(7))

	seen := make(map[string]bool)
	for i := 0; i < len(words); i++ {
		name, fromPool := p.Draw()
		require.True(t, fromPool)
		assert.False(t, seen[name], "name %q issued twice", name)
		seen[name] = true
	}

	assert.Equal(t, 0, p.Len())
	assert.True(t, p.Exhausted())
	assert.Len(t, seen, len(words))
}

func TestPoolFallsBackWhenExhausted(t *testing.T) {
	p := NewPool(nil, rng.New(1))

	name, fromPool := p.Draw()
	assert.False(t, fromPool)
	assert.Len(t, name, RandomNameLength)

	other := p.Take()
	assert.NotEqual(t, name, other)
}

func TestPoolDoesNotMutateInput(t *testing.T) {
	words := []string{"x", "y", "z"}
	p := NewPool(words, rng.New(3))
	p.Take()
	p.Take()

	assert.Equal(t, []string{"x", "y", "z"}, words)
}

func TestNewPoolDropsBlanks(t *testing.T) {
	p := NewPool([]string{"", "  ", "keep", "\t"}, rng.New(1))
	assert.Equal(t, 1, p.Len())
	assert.Equal(t, "keep", p.Take())
}

func TestRandomName(t *testing.T) {
	name := RandomName(rng.New(9), 20)
	assert.Len(t, name, 20)
	for _, r := range name {
		assert.Contains(t, alphanumeric, string(r))
	}
}

func TestBuiltinListsAreUnique(t *testing.T) {
	for label, list := range map[string][]string{"dirs": DirNames(), "files": FileNames()} {
		t.Run(label, func(t *testing.T) {
			require.NotEmpty(t, list)
			seen := make(map[string]bool)
			for _, n := range list {
				assert.False(t, seen[n], "duplicate entry %q", n)
				assert.NotEqual(t, "Willa", n)
				assert.NotEqual(t, "alliW", n)
				seen[n] = true
			}
		})
	}
}

func TestLoadList(t *testing.T) {
	fs := afero.NewMemMapFs()
	require.NoError(t, afero.WriteFile(fs, "/words.txt", []byte("alpha\n\nbeta\n"), 0644))
	require.NoError(t, afero.WriteFile(fs, "/empty.txt", []byte("\n\n"), 0644))

	list, err := LoadList(fs, "/words.txt")
	require.NoError(t, err)
	assert.Equal(t, []string{"alpha", "beta"}, list)

	_, err = LoadList(fs, "/empty.txt")
	assert.Error(t, err)

	_, err = LoadList(fs, "/missing.txt")
	assert.Error(t, err)
}

func TestWithout(t *testing.T) {
	list := []string{"Willa", "notes.txt", " alliW ", "todo.txt"}
	assert.Equal(t, []string{"notes.txt", "todo.txt"}, Without(list, "Willa", "alliW"))
	assert.Equal(t, list, Without(list))
	assert.Len(t, list, 4, "input must not be modified")
}
