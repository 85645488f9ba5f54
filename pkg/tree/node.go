package tree

import (
	"path/filepath"
)

// Node represents a directory in a generated tree together with the files
// created directly inside it.
type Node struct {
	Path  string
	Name  string
	Depth int

	// Hierarchy
	Parent   *Node
	Children []*Node
	Files    []string
}

// NewRoot returns the depth-0 node for path.
func NewRoot(path string) *Node {
	return &Node{
		Path: filepath.Clean(path),
		Name: filepath.Base(path),
	}
}

// AddChild records a subdirectory called name and returns its node.
func (n *Node) AddChild(name string) *Node {
	child := &Node{
		Path:   filepath.Join(n.Path, name),
		Name:   name,
		Depth:  n.Depth + 1,
		Parent: n,
	}
	n.Children = append(n.Children, child)
	return child
}

// AddFile records a file called name created directly inside n.
func (n *Node) AddFile(name string) {
	n.Files = append(n.Files, name)
}

// RelPath returns the path of n relative to the root of its tree, "." for
// the root itself.
func (n *Node) RelPath() string {
	if n.Parent == nil {
		return "."
	}
	var parts []string
	for c := n; c.Parent != nil; c = c.Parent {
		parts = append([]string{c.Name}, parts...)
	}
	return filepath.Join(parts...)
}

// Lookup returns the node whose path is path, or nil.
func (n *Node) Lookup(path string) *Node {
	path = filepath.Clean(path)
	var found *Node
	n.Walk(func(c *Node) {
		if found == nil && c.Path == path {
			found = c
		}
	})
	return found
}

// Walk visits n and all of its descendants depth-first, parents first.
func (n *Node) Walk(fn func(*Node)) {
	fn(n)
	for _, c := range n.Children {
		c.Walk(fn)
	}
}

// MaxDepth returns the depth of the deepest directory under n.
func (n *Node) MaxDepth() int {
	max := n.Depth
	n.Walk(func(c *Node) {
		if c.Depth > max {
			max = c.Depth
		}
	})
	return max
}

// Count returns the number of directories (excluding n) and files under n.
func (n *Node) Count() (dirs, files int) {
	n.Walk(func(c *Node) {
		dirs += len(c.Children)
		files += len(c.Files)
	})
	return dirs, files
}
