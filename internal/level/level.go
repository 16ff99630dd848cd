// Package level provides immutable per-level sentence pools.
package level

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

// ErrUnknownLevel is returned when a level is absent or has no sentences.
var ErrUnknownLevel = errors.New("unknown level")

// Table maps level names to sentence pools. It is read-only after construction.
type Table struct {
	order []string
	pools map[string][]string
}

// New builds a table from pools. Levels listed in order come first; the rest
// follow sorted by name.
func New(order []string, pools map[string][]string) Table {
	b := NewBuilder()
	for _, name := range order {
		if s, ok := pools[name]; ok {
			b.Set(name, s)
		}
	}
	rest := make([]string, 0, len(pools))
	for name := range pools {
		if !b.Has(name) {
			rest = append(rest, name)
		}
	}
	sort.Strings(rest)
	for _, name := range rest {
		b.Set(name, pools[name])
	}
	return b.Table()
}

// Default returns the built-in sentence pools.
func Default() Table {
	b := NewBuilder()
	b.Set("PRE-KG", []string{"A B C D.", "Red, blue, green.", "One, two, three, four."})
	b.Set("UKG", []string{"Elephant has a trunk.", "Fish swims in water.", "Goat eats grass.", "House is big."})
	b.Set("PhD", []string{"Computational fluid dynamics governs complex flow behavior in turbulent regimes."})
	return b.Table()
}

// Sentences returns a copy of the pool for level.
func (t Table) Sentences(level string) ([]string, error) {
	pool, ok := t.pools[level]
	if !ok || len(pool) == 0 {
		return nil, fmt.Errorf("%w: %q", ErrUnknownLevel, level)
	}
	return append([]string(nil), pool...), nil
}

// Levels returns level names in table order.
func (t Table) Levels() []string {
	return append([]string(nil), t.order...)
}

// Len returns the number of levels.
func (t Table) Len() int {
	return len(t.order)
}

// Merge returns a new table where other's pools replace or extend t's.
func (t Table) Merge(other Table) Table {
	b := NewBuilder()
	for _, name := range t.order {
		b.Set(name, t.pools[name])
	}
	for _, name := range other.order {
		b.Set(name, other.pools[name])
	}
	return b.Table()
}

// Builder accumulates pools before freezing them into a Table.
type Builder struct {
	order []string
	pools map[string][]string
}

// NewBuilder returns an empty Builder.
func NewBuilder() *Builder {
	return &Builder{pools: map[string][]string{}}
}

// Set replaces the pool for level. Blank sentences are dropped and an empty
// pool is ignored.
func (b *Builder) Set(level string, sentences []string) {
	level = strings.TrimSpace(level)
	if level == "" {
		return
	}
	pool := make([]string, 0, len(sentences))
	for _, s := range sentences {
		s = strings.TrimSpace(s)
		if s == "" {
			continue
		}
		pool = append(pool, s)
	}
	if len(pool) == 0 {
		return
	}
	if _, ok := b.pools[level]; !ok {
		b.order = append(b.order, level)
	}
	b.pools[level] = pool
}

// Has reports whether level has been set.
func (b *Builder) Has(level string) bool {
	_, ok := b.pools[level]
	return ok
}

// Table freezes the builder contents. The builder may keep being used.
func (b *Builder) Table() Table {
	pools := make(map[string][]string, len(b.pools))
	for name, pool := range b.pools {
		pools[name] = append([]string(nil), pool...)
	}
	return Table{
		order: append([]string(nil), b.order...),
		pools: pools,
	}
}
