// Package generator builds the dummy directory tree of a game, picks a
// hiding place in it and creates the disguised target file.
package generator

import (
	"fmt"
	"math"
	"os"
	"path/filepath"

	"github.com/sirupsen/logrus"
	"github.com/spf13/afero"

	"github.com/mattsolo1/find-willa/pkg/models"
	"github.com/mattsolo1/find-willa/pkg/names"
	"github.com/mattsolo1/find-willa/pkg/rng"
	"github.com/mattsolo1/find-willa/pkg/tree"
)

const (
	dirMode  os.FileMode = 0755
	fileMode os.FileMode = 0644
)

// Generator owns the name pools and random source of a single game. It is
// not safe for concurrent use.
type Generator struct {
	fs     afero.Fs
	cfg    models.GenerationConfig
	rnd    rng.Source
	dirs   *names.Pool
	files  *names.Pool
	logger *logrus.Entry
}

// Option configures a Generator.
type Option func(*Generator)

// WithNamePools replaces the built-in word lists.
func WithNamePools(dirs, files *names.Pool) Option {
	return func(g *Generator) {
		g.dirs = dirs
		g.files = files
	}
}

// WithLogger sets the logger used for debug output.
func WithLogger(logger *logrus.Entry) Option {
	return func(g *Generator) {
		g.logger = logger
	}
}

// New creates a generator writing to fs.
func New(fs afero.Fs, cfg models.GenerationConfig, rnd rng.Source, opts ...Option) (*Generator, error) {
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid generation config: %w", err)
	}

	g := &Generator{
		fs:  fs,
		cfg: cfg,
		rnd: rnd,
	}
	for _, opt := range opts {
		opt(g)
	}

	if g.dirs == nil {
		g.dirs = names.NewPool(names.DirNames(), rnd)
	}
	if g.files == nil {
		g.files = names.NewPool(names.FileNames(), rnd)
	}
	if g.logger == nil {
		g.logger = logrus.NewEntry(logrus.StandardLogger())
	}
	g.logger = g.logger.WithField("component", "generator")

	return g, nil
}

// Generate fills the existing directory root with a random tree and returns
// its in-memory description.
func (g *Generator) Generate(root string) (*tree.Node, error) {
	isDir, err := afero.IsDir(g.fs, root)
	if err != nil {
		return nil, fmt.Errorf("stat root %s: %w", root, err)
	}
	if !isDir {
		return nil, fmt.Errorf("root %s is not a directory", root)
	}

	node := tree.NewRoot(root)
	if err := g.generate(node); err != nil {
		return nil, err
	}

	dirs, files := node.Count()
	g.logger.WithFields(logrus.Fields{
		"root":      root,
		"dirs":      dirs,
		"files":     files,
		"max_depth": node.MaxDepth(),
	}).Debug("generated tree")

	return node, nil
}

func (g *Generator) generate(node *tree.Node) error {
	// Directories one level down would exceed the nesting cap.
	if node.Depth < g.cfg.MaxNestLevel {
		folders := g.count(g.cfg.MinimumFolders)
		for i := 0; i < folders; i++ {
			name, err := g.createUnique(node.Path, g.dirs, func(path string) error {
				return g.fs.Mkdir(path, dirMode)
			})
			if err != nil {
				return fmt.Errorf("create directory in %s: %w", node.Path, err)
			}
			node.AddChild(name)
		}
	}

	files := g.count(g.cfg.MinimumFilesPerFolder)
	for i := 0; i < files; i++ {
		name, err := g.createUnique(node.Path, g.files, func(path string) error {
			return createFile(g.fs, path, nil, fileMode)
		})
		if err != nil {
			return fmt.Errorf("create file in %s: %w", node.Path, err)
		}
		node.AddFile(name)
	}

	for _, child := range node.Children {
		if !g.shouldNest(node.Depth) {
			continue
		}
		g.logger.WithField("dir", child.RelPath()).Debug("nesting")
		if err := g.generate(child); err != nil {
			return err
		}
	}
	return nil
}

// count returns round(complexity * U(0,1) * 5) + minimum.
func (g *Generator) count(minimum int) int {
	return int(math.Round(g.cfg.ComplexityLevel*g.rnd.Float64()*5)) + minimum
}

// shouldNest is the density gate for recursing below a directory at depth.
func (g *Generator) shouldNest(depth int) bool {
	if depth >= g.cfg.MaxNestLevel {
		return false
	}
	if g.dirs.Exhausted() || g.files.Exhausted() {
		return false
	}
	if g.cfg.NestThreshold > 0 && g.cfg.ComplexityLevel*g.rnd.Float64() <= g.cfg.NestThreshold {
		return false
	}
	return true
}

// createUnique draws names from pool until one is free inside dir, then
// creates it. Taken names never go back into the pool.
func (g *Generator) createUnique(dir string, pool *names.Pool, create func(path string) error) (string, error) {
	for {
		name := pool.Take()
		path := filepath.Join(dir, name)

		exists, err := afero.Exists(g.fs, path)
		if err != nil {
			return "", err
		}
		if exists {
			g.logger.WithField("path", path).Debug("name collision, drawing again")
			continue
		}

		if err := create(path); err != nil {
			return "", err
		}
		return name, nil
	}
}

// createFile creates path exclusively and writes content to it.
func createFile(fs afero.Fs, path string, content []byte, mode os.FileMode) error {
	f, err := fs.OpenFile(path, os.O_WRONLY|os.O_CREATE|os.O_EXCL, mode)
	if err != nil {
		return err
	}
	if len(content) > 0 {
		if _, err := f.Write(content); err != nil {
			f.Close()
			return err
		}
	}
	return f.Close()
}
