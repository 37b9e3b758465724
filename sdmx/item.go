package sdmx

// Identified is satisfied by any *Identifiable-embedding pointer type; it
// lets ItemScheme and the working stack operate on "id" generically without
// reflection.
type Identified interface {
	GetID() string
}

// GetID implements Identified for every type that embeds Identifiable.
func (i *Identifiable) GetID() string { return i.ID }

// itemRelations gives an Item its place in the scheme's forest: at most one
// parent, any number of children. It is generic so each concrete Item type
// (Agency, Code, Category, DataProvider, Concept) gets its own strongly
// typed parent/child pointers without hand-duplicating the bookkeeping.
type itemRelations[T any] struct {
	parent   *T
	children []*T
}

// SetParent records the parent Item; it does not itself append to the
// parent's children (callers that discover a parent via <str:Parent> must
// call AppendChild on the parent explicitly, matching the two hierarchy
// sources of spec.md §4.5: nested XML children and <str:Parent> refs).
func (r *itemRelations[T]) SetParent(p *T) { r.parent = p }

func (r *itemRelations[T]) Parent() *T { return r.parent }

func (r *itemRelations[T]) AppendChild(child *T) {
	r.children = append(r.children, child)
}

func (r *itemRelations[T]) Children() []*T { return r.children }

// FlattenItems walks each top-level item and its descendants in pre-order,
// deduplicating by pointer identity and preserving first occurrence — the
// Go equivalent of the original reader's
// `seen.setdefault(i, i) for i in iter_all if i not in seen`.
func FlattenItems[T any](tops []*T, children func(*T) []*T) []*T {
	seen := make(map[*T]bool, len(tops))
	out := make([]*T, 0, len(tops))
	var walk func(*T)
	walk = func(n *T) {
		if n == nil || seen[n] {
			return
		}
		seen[n] = true
		out = append(out, n)
		for _, c := range children(n) {
			walk(c)
		}
	}
	for _, t := range tops {
		walk(t)
	}
	return out
}

// ItemScheme is a maintainable container of Items arranged as a forest.
type ItemScheme[T Identified] struct {
	Maintainable
	Items []T
}

// Get returns the item with the given id, if present.
func (s *ItemScheme[T]) Get(id string) (T, bool) {
	for _, it := range s.Items {
		if it.GetID() == id {
			return it, true
		}
	}
	var zero T
	return zero, false
}
