package depgraph

import (
	"fmt"
	"iter"
	"slices"
	"strings"
)

// Computation is a node of the dependency graph: a canonical key plus the
// keys it reads, in source order. Duplicates are kept, so "x + x" depends on
// ["x", "x"].
type Computation struct {
	Key  string
	Deps []string
}

// IsTerminal reports whether the computation has no dependencies.
func (c Computation) IsTerminal() bool { return len(c.Deps) == 0 }

func (c Computation) String() string {
	if len(c.Deps) == 0 {
		return fmt.Sprintf("<Computation %q has no dependencies>", c.Key)
	}
	quoted := make([]string, len(c.Deps))
	for i, d := range c.Deps {
		quoted[i] = fmt.Sprintf("%q", d)
	}
	return fmt.Sprintf("<Computation %q depends on %s>", c.Key, strings.Join(quoted, ", "))
}

// Table maps canonical keys to computations and remembers discovery order.
// The order is the layout order: a key's position never changes, even when
// its computation is stored again.
//
// The zero value is not usable; tables are created by [Build].
type Table struct {
	order []string
	index map[string]int
	comps map[string]Computation
}

func newTable() *Table {
	return &Table{
		index: make(map[string]int),
		comps: make(map[string]Computation),
	}
}

// put stores c under c.Key, appending the key on first sight.
func (t *Table) put(c Computation) {
	if _, ok := t.index[c.Key]; !ok {
		t.index[c.Key] = len(t.order)
		t.order = append(t.order, c.Key)
	}
	t.comps[c.Key] = c
}

// Len returns the number of distinct keys.
func (t *Table) Len() int { return len(t.order) }

// Has reports whether key is present.
func (t *Table) Has(key string) bool {
	_, ok := t.index[key]
	return ok
}

// Get returns the computation stored under key.
func (t *Table) Get(key string) (Computation, bool) {
	c, ok := t.comps[key]
	return c, ok
}

// Index returns the discovery position of key (0-based).
func (t *Table) Index(key string) (int, bool) {
	i, ok := t.index[key]
	return i, ok
}

// Keys returns a copy of all keys in discovery order.
func (t *Table) Keys() []string { return slices.Clone(t.order) }

// All iterates over computations in discovery order.
func (t *Table) All() iter.Seq2[int, Computation] {
	return func(yield func(int, Computation) bool) {
		for i, k := range t.order {
			if !yield(i, t.comps[k]) {
				return
			}
		}
	}
}

// Finals is the ordered set of assignment targets that no later statement
// has read yet.
type Finals struct {
	keys []string
}

func (f *Finals) add(key string) {
	if !f.Contains(key) {
		f.keys = append(f.keys, key)
	}
}

func (f *Finals) remove(key string) {
	if i := slices.Index(f.keys, key); i >= 0 {
		f.keys = slices.Delete(f.keys, i, i+1)
	}
}

// Contains reports whether key is currently a final result.
func (f *Finals) Contains(key string) bool {
	return f != nil && slices.Contains(f.keys, key)
}

// Len returns the number of final results.
func (f *Finals) Len() int {
	if f == nil {
		return 0
	}
	return len(f.keys)
}

// Keys returns a copy of the final results in the order they were assigned.
func (f *Finals) Keys() []string {
	if f == nil {
		return nil
	}
	return slices.Clone(f.keys)
}

// NewFinals creates a final-result set from keys, dropping repeats. It is
// meant for callers that assemble a [Graph] by hand, such as layout tests.
func NewFinals(keys ...string) *Finals {
	f := &Finals{}
	for _, k := range keys {
		f.add(k)
	}
	return f
}

// Graph is the result of a successful [Build]. Both parts are read-only once
// returned.
type Graph struct {
	Table  *Table
	Finals *Finals
}

// NewGraph assembles a graph from computations listed in discovery order and
// a final-result set. Later entries with a repeated key overwrite earlier
// ones in place, as [Build] does.
func NewGraph(comps []Computation, finals *Finals) *Graph {
	t := newTable()
	for _, c := range comps {
		t.put(Computation{Key: c.Key, Deps: slices.Clone(c.Deps)})
	}
	if finals == nil {
		finals = &Finals{}
	}
	return &Graph{Table: t, Finals: finals}
}

// Dependents returns the keys whose computations read key, in discovery order.
func (g *Graph) Dependents(key string) []string {
	var out []string
	for _, c := range g.Table.All() {
		if slices.Contains(c.Deps, key) {
			out = append(out, c.Key)
		}
	}
	return out
}

// EdgeCount returns the number of distinct (dependency, dependent) pairs.
func (g *Graph) EdgeCount() int {
	n := 0
	for _, c := range g.Table.All() {
		seen := make(map[string]struct{}, len(c.Deps))
		for _, d := range c.Deps {
			if _, ok := seen[d]; !ok {
				seen[d] = struct{}{}
				n++
			}
		}
	}
	return n
}
