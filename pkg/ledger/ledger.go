// Package ledger persists the state of a running game: the path of the
// hidden target and, through the ledger file's own timestamp, the moment the
// game started.
package ledger

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/afero"

	"github.com/mattsolo1/find-willa/pkg/models"
)

const (
	// RootName is the name of the directory holding a whole game.
	RootName = "find-willa"

	// FileName is the ledger file inside the game-root.
	FileName = ".willa-config"

	// Header occupies the first two lines of the ledger.
	Header = "This file contains configuration for the current instance of the Find-Willa game.\n" +
		"This file is never Willa herself."

	// targetLine is the zero-based line holding the target path.
	targetLine = 2
)

// ErrSessionNotFound means there is no game in progress at the given location.
var ErrSessionNotFound = errors.New("a game in progress was not found")

// Path returns the ledger location inside root.
func Path(root string) string {
	return filepath.Join(root, FileName)
}

// Start creates the ledger with its header. It fails if one already exists.
func Start(fs afero.Fs, root string) error {
	f, err := fs.OpenFile(Path(root), os.O_WRONLY|os.O_CREATE|os.O_EXCL, 0644)
	if err != nil {
		return fmt.Errorf("create ledger: %w", err)
	}
	if _, err := f.WriteString(Header); err != nil {
		f.Close()
		return fmt.Errorf("write ledger header: %w", err)
	}
	return f.Close()
}

// Finalize appends the target path as the third line. The ledger's
// modification time is put back afterwards so it keeps marking the start of
// the game.
func Finalize(fs afero.Fs, root, target string) error {
	path := Path(root)
	info, err := fs.Stat(path)
	if err != nil {
		return fmt.Errorf("stat ledger: %w", err)
	}
	started := info.ModTime()

	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_APPEND, 0644)
	if err != nil {
		return fmt.Errorf("open ledger: %w", err)
	}
	if _, err := f.WriteString("\n" + target); err != nil {
		f.Close()
		return fmt.Errorf("write ledger: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("close ledger: %w", err)
	}

	if err := fs.Chtimes(path, started, started); err != nil {
		return fmt.Errorf("restore ledger time: %w", err)
	}
	return nil
}

// Read loads the target record of the game at root.
func Read(fs afero.Fs, root string) (*models.TargetRecord, error) {
	path := Path(root)
	data, err := afero.ReadFile(fs, path)
	if errors.Is(err, os.ErrNotExist) {
		return nil, ErrSessionNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("read ledger: %w", err)
	}

	lines := strings.Split(string(data), "\n")
	if len(lines) <= targetLine {
		return nil, ErrSessionNotFound
	}
	target := strings.TrimSpace(lines[targetLine])
	if target == "" {
		return nil, ErrSessionNotFound
	}

	info, err := fs.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("stat ledger: %w", err)
	}

	return &models.TargetRecord{
		Path:      target,
		StartedAt: info.ModTime(),
	}, nil
}

// FindGameRoot returns the nearest ancestor of path (or path itself) named
// RootName.
func FindGameRoot(path string) (string, error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return "", fmt.Errorf("resolve %s: %w", path, err)
	}

	for dir := abs; ; {
		if filepath.Base(dir) == RootName {
			return dir, nil
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", ErrSessionNotFound
		}
		dir = parent
	}
}
