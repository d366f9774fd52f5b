package sym

import "fmt"

// Index is an opaque index variable ranging over [0, Extent). Identity
// is pointer identity: two indices created separately are distinct even
// if they share a name and extent. Indices are constructed locally by
// whoever needs them; there are no shared package-level index values.
type Index struct {
	name   string
	extent int
}

// NewIndex returns a fresh unnamed index variable with the given extent.
func NewIndex(extent int) *Index {
	return &Index{extent: extent}
}

// NamedIndex returns a fresh index variable carrying a name for
// printing. The name has no effect on identity.
func NamedIndex(name string, extent int) *Index {
	return &Index{name: name, extent: extent}
}

// Extent returns the number of values the index ranges over.
func (i *Index) Extent() int { return i.extent }

func (i *Index) String() string {
	if i.name != "" {
		return i.name
	}
	return "_"
}

// IndexEntry is one component of a multi-index: either an index
// variable (*Index) or a fixed literal position (FixedIndex).
type IndexEntry interface {
	isIndexEntry()
}

// FixedIndex is a multi-index component pinned to a literal position.
type FixedIndex int

func (*Index) isIndexEntry()     {}
func (FixedIndex) isIndexEntry() {}

// MultiIndex is a tuple of index entries, one per shape dimension.
type MultiIndex []IndexEntry

// Indices wraps index variables into a MultiIndex.
func Indices(idx ...*Index) MultiIndex {
	m := make(MultiIndex, len(idx))
	for i, v := range idx {
		m[i] = v
	}
	return m
}

// Substitute replaces index variables bound in env with fixed
// positions, leaving unbound variables in place.
func (m MultiIndex) Substitute(env map[*Index]int) MultiIndex {
	out := make(MultiIndex, len(m))
	for i, e := range m {
		if v, ok := e.(*Index); ok {
			if p, bound := env[v]; bound {
				out[i] = FixedIndex(p)
				continue
			}
		}
		out[i] = e
	}
	return out
}

func (m MultiIndex) String() string {
	s := "["
	for i, e := range m {
		if i > 0 {
			s += ","
		}
		switch v := e.(type) {
		case *Index:
			s += v.String()
		case FixedIndex:
			s += fmt.Sprintf("%d", int(v))
		}
	}
	return s + "]"
}
