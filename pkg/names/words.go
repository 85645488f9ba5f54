package names

import (
	_ "embed"
	"fmt"
	"strings"

	"github.com/spf13/afero"
)

var (
	//go:embed assets/dir-names.txt
	dirNamesFile string

	//go:embed assets/file-names.txt
	fileNamesFile string
)

// DirNames returns the built-in directory name candidates.
func DirNames() []string {
	return splitLines(dirNamesFile)
}

// FileNames returns the built-in file name candidates.
func FileNames() []string {
	return splitLines(fileNamesFile)
}

// LoadList reads a word list from path, one name per line.
func LoadList(fs afero.Fs, path string) ([]string, error) {
	data, err := afero.ReadFile(fs, path)
	if err != nil {
		return nil, fmt.Errorf("read word list %s: %w", path, err)
	}
	list := splitLines(string(data))
	if len(list) == 0 {
		return nil, fmt.Errorf("word list %s is empty", path)
	}
	return list, nil
}

func splitLines(content string) []string {
	var out []string
	for _, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.Contains(line, "/") {
			continue
		}
		out = append(out, line)
	}
	return out
}
