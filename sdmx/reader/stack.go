package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// stack is the engine's working area: a keyed multimap of partially-built
// objects, keyed either by SDMX class token or by XML localname string —
// modeled as two parallel maps (spec.md §9's replacement for a dynamic
// class-or-string multimap), plus a LIFO stash for named string buckets and
// an identity set of objects that should not count as "uncollected" at
// stream end.
type stack struct {
	byClass map[sdmx.Class][]any
	byName  map[string][]any
	stashed []map[string][]any
	ignore  map[any]struct{}
}

func newStack() *stack {
	return &stack{
		byClass: make(map[sdmx.Class][]any),
		byName:  make(map[string][]any),
		ignore:  make(map[any]struct{}),
	}
}

// push appends v to the bucket for its runtime class (classOf).
func (s *stack) push(v any) {
	if isNil(v) {
		return
	}
	cls, ok := classOf(v)
	if !ok {
		panic("reader: push requires a classifiable value; use pushKey for raw/leaf values")
	}
	s.byClass[cls] = append(s.byClass[cls], v)
}

// pushAs appends v to the bucket for an explicit class, overriding classOf.
func (s *stack) pushAs(cls sdmx.Class, v any) {
	if isNil(v) {
		return
	}
	s.byClass[cls] = append(s.byClass[cls], v)
}

// pushKey appends v to a string-named bucket (an XML localname, for leaf
// values that have no SDMX class of their own: text, localizations,
// Reference placeholders keyed by the wrapper element's localname).
func (s *stack) pushKey(name string, v any) {
	if isNil(v) {
		return
	}
	s.byName[name] = append(s.byName[name], v)
}

// popSingleClass removes and returns the last-pushed value for the exact
// class, or nil.
func (s *stack) popSingleClass(cls sdmx.Class) any {
	b := s.byClass[cls]
	if len(b) == 0 {
		return nil
	}
	v := b[len(b)-1]
	s.byClass[cls] = b[:len(b)-1]
	return v
}

// popSingleKey removes and returns the last-pushed value for the exact
// string key, or nil.
func (s *stack) popSingleKey(name string) any {
	b := s.byName[name]
	if len(b) == 0 {
		return nil
	}
	v := b[len(b)-1]
	s.byName[name] = b[:len(b)-1]
	return v
}

// popAllClass removes every bucket whose class token matches pred and
// returns their concatenation. Each bucket keeps its push order; the order
// of the buckets relative to each other follows map iteration and is not
// defined.
func (s *stack) popAllClass(pred sdmx.ClassPredicate) []any {
	var out []any
	for cls, b := range s.byClass {
		if pred(cls) {
			out = append(out, b...)
			delete(s.byClass, cls)
		}
	}
	return out
}

// popAllKey removes and returns the exact string-keyed bucket.
func (s *stack) popAllKey(name string) []any {
	b := s.byName[name]
	delete(s.byName, name)
	return b
}

// getClass returns the single matching value across all class buckets
// satisfying pred, or nil if zero or more than one exist.
func (s *stack) getClass(pred sdmx.ClassPredicate) any {
	var found any
	n := 0
	for cls, b := range s.byClass {
		if pred(cls) {
			n += len(b)
			if len(b) > 0 {
				found = b[len(b)-1]
			}
		}
	}
	if n != 1 {
		return nil
	}
	return found
}

// getClassByID returns the first value across all matching class buckets
// whose GetID() equals id.
func (s *stack) getClassByID(pred sdmx.ClassPredicate, id string) any {
	for cls, b := range s.byClass {
		if !pred(cls) {
			continue
		}
		for _, v := range b {
			if idv, ok := v.(sdmx.Identified); ok && idv.GetID() == id {
				return v
			}
		}
	}
	return nil
}

// getKey returns the single value in a string-keyed bucket, or nil if zero
// or more than one exist.
func (s *stack) getKey(name string) any {
	b := s.byName[name]
	if len(b) != 1 {
		return nil
	}
	return b[0]
}

// stash saves and clears the named string buckets (LIFO), restored by the
// matching unstash. Used where a child element may legitimately produce
// entries in a bucket the enclosing element also owns (e.g. nested Items
// with Names inside a scheme).
func (s *stack) stash(keys ...string) {
	frame := make(map[string][]any, len(keys))
	for _, k := range keys {
		frame[k] = s.popAllKey(k)
	}
	s.stashed = append(s.stashed, frame)
}

func (s *stack) unstash() {
	if len(s.stashed) == 0 {
		return
	}
	frame := s.stashed[len(s.stashed)-1]
	s.stashed = s.stashed[:len(s.stashed)-1]
	for k, vs := range frame {
		s.byName[k] = append(s.byName[k], vs...)
	}
}

// addIgnore marks v as not counting toward "uncollected" at stream end.
func (s *stack) addIgnore(v any) {
	if !isNil(v) {
		s.ignore[v] = struct{}{}
	}
}

// uncollected returns every stack entry (class- or name-keyed) whose
// identity is not in ignore.
func (s *stack) uncollected() []any {
	var out []any
	for _, b := range s.byClass {
		for _, v := range b {
			if _, ok := s.ignore[v]; !ok {
				out = append(out, v)
			}
		}
	}
	for _, b := range s.byName {
		for _, v := range b {
			if _, ok := s.ignore[v]; !ok {
				out = append(out, v)
			}
		}
	}
	return out
}

func isNil(v any) bool {
	return v == nil
}
