package generator

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mattsolo1/find-willa/pkg/models"
)

const (
	// MarkerName is the name of the target under the plain strategy.
	MarkerName = "Willa"

	// ClueContent is written into the target under the content-clue strategy.
	ClueContent = "Hi, it's me, Willa :)"

	// RestrictedMode is the target's mode under the restricted-permissions
	// strategy. Nobody can read it, which shows up in `ls -l`.
	RestrictedMode os.FileMode = 0o020
)

// MarkerNames returns every name the target can take without a decoy. Word
// lists must not contain them.
func MarkerNames() []string {
	return []string{MarkerName, reverse(MarkerName)}
}

// Hide creates the target file inside dir, disguised according to strategy,
// and returns its path.
func (g *Generator) Hide(dir string, strategy models.HidingStrategy) (string, error) {
	if !strategy.Valid() {
		return "", fmt.Errorf("unknown hiding strategy %d", int(strategy))
	}

	var (
		name    string
		content []byte
		mode    = fileMode
		err     error
	)

	switch strategy {
	case models.StrategyPlain:
		name = MarkerName
	case models.StrategyReversedName:
		name = reverse(MarkerName)
	case models.StrategyContentClue:
		var decoy bool
		name, decoy, err = g.decoyName(dir)
		if decoy {
			content = []byte(ClueContent)
		}
	case models.StrategyRestrictedPermissions:
		var decoy bool
		name, decoy, err = g.decoyName(dir)
		if decoy {
			mode = RestrictedMode
		}
	}
	if err != nil {
		return "", err
	}

	path := filepath.Join(dir, name)
	if err := createFile(g.fs, path, content, fileMode); err != nil {
		return "", fmt.Errorf("create target %s: %w", path, err)
	}
	if mode != fileMode {
		if err := g.fs.Chmod(path, mode); err != nil {
			return "", fmt.Errorf("chmod target %s: %w", path, err)
		}
	}

	g.logger.WithFields(logrus.Fields{
		"path":     path,
		"strategy": strategy.String(),
	}).Debug("target hidden")

	return path, nil
}

// decoyName draws a file name not yet present in dir. The bool reports
// whether it came from the word list rather than being synthesized.
func (g *Generator) decoyName(dir string) (string, bool, error) {
	for {
		name, fromPool := g.files.Draw()
		exists, err := afero.Exists(g.fs, filepath.Join(dir, name))
		if err != nil {
			return "", false, err
		}
		if !exists {
			return name, fromPool, nil
		}
	}
}

func reverse(s string) string {
	r := []rune(s)
	for i, j := 0, len(r)-1; i < j; i, j = i+1, j-1 {
		r[i], r[j] = r[j], r[i]
	}
	return string(r)
}
