package generator

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"
)

// StopProbability is the chance of settling in a directory that still has
// subdirectories.
const StopProbability = 0.3

// SelectLocation walks down from root at random and returns the directory
// the target should be placed in.
func (g *Generator) SelectLocation(root string) (string, error) {
	current := root
	for {
		subdirs, err := g.subdirectories(current)
		if err != nil {
			return "", fmt.Errorf("list %s: %w", current, err)
		}
		if len(subdirs) == 0 {
			return current, nil
		}
		if g.rnd.Float64() < StopProbability {
			return current, nil
		}
		current = filepath.Join(current, subdirs[g.rnd.IntN(len(subdirs))])
	}
}

func (g *Generator) subdirectories(dir string) ([]string, error) {
	entries, err := afero.ReadDir(g.fs, dir)
	if err != nil {
		return nil, err
	}

	var out []string
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	return out, nil
}
