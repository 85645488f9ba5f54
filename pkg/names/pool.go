// Package names hands out directory and file names for a generated tree.
package names

import (
	"strings"

	"github.com/mattsolo1/find-willa/pkg/rng"
)

// RandomNameLength is the length of names synthesized once a pool runs dry.
const RandomNameLength = 12

const alphanumeric = "abcdefghijklmnopqrstuvwxyzABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"

// Pool is a depleting set of candidate names. A name taken from the pool
// is never returned again by the same pool.
type Pool struct {
	names []string
	rnd   rng.Source
}

// NewPool returns a pool over a copy of names. Blank entries are dropped.
func NewPool(names []string, rnd rng.Source) *Pool {
	p := &Pool{
		names: make([]string, 0, len(names)),
		rnd:   rnd,
	}
	for _, n := range names {
		n = strings.TrimSpace(n)
		if n == "" {
			continue
		}
		p.names = append(p.names, n)
	}
	return p
}

// Take removes and returns a random name, or a synthesized one when the
// pool is empty.
func (p *Pool) Take() string {
	name, _ := p.Draw()
	return name
}

// Draw is Take but also reports whether the name came from the pool.
func (p *Pool) Draw() (string, bool) {
	if len(p.names) == 0 {
		return RandomName(p.rnd, RandomNameLength), false
	}

	i := p.rnd.IntN(len(p.names))
	name := p.names[i]

	// Order is irrelevant, so swap-remove.
	last := len(p.names) - 1
	p.names[i] = p.names[last]
	p.names = p.names[:last]

	return name, true
}

// Len returns the number of names left.
func (p *Pool) Len() int {
	return len(p.names)
}

// Exhausted reports whether only synthesized names remain.
func (p *Pool) Exhausted() bool {
	return len(p.names) == 0
}

// Without returns a copy of list minus every entry in drop.
func Without(list []string, drop ...string) []string {
	skip := make(map[string]bool, len(drop))
	for _, d := range drop {
		skip[d] = true
	}
	out := make([]string, 0, len(list))
	for _, n := range list {
		if !skip[strings.TrimSpace(n)] {
			out = append(out, n)
		}
	}
	return out
}

// RandomName returns a random alphanumeric string of length n.
func RandomName(rnd rng.Source, n int) string {
	var sb strings.Builder
	sb.Grow(n)
	for i := 0; i < n; i++ {
		sb.WriteByte(alphanumeric[rnd.IntN(len(alphanumeric))])
	}
	return sb.String()
}
