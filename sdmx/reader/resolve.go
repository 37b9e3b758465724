package reader

import (
	"reflect"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// maintainedIndex is the resolver's persistent registry of every
// Maintainable artefact seen so far in the document, keyed by class and id
// — distinct from the transient working stack, which drains as each
// element finishes. resolve and commit both operate on this index, so a
// Ref and a URN naming the same external artefact always resolve to the
// identical Go pointer (spec.md §4.3's reference-idempotence requirement).
type maintainedIndex struct {
	byClass map[sdmx.Class]map[string]any
}

func newMaintainedIndex() *maintainedIndex {
	return &maintainedIndex{byClass: make(map[sdmx.Class]map[string]any)}
}

func (m *maintainedIndex) bucket(cls sdmx.Class) map[string]any {
	b, ok := m.byClass[cls]
	if !ok {
		b = make(map[string]any)
		m.byClass[cls] = b
	}
	return b
}

// lookup returns the artefact if already known, without creating a stub.
func (m *maintainedIndex) lookup(cls sdmx.Class, id string) (any, bool) {
	v, ok := m.bucket(cls)[id]
	return v, ok
}

// getOrStub returns the registered artefact, or creates and registers an
// external-reference stub of the right concrete type (lazy stub creation,
// spec.md §4.3) when the id is not yet known.
func (m *maintainedIndex) getOrStub(cls sdmx.Class, id, version string) any {
	b := m.bucket(cls)
	if v, ok := b[id]; ok {
		return v
	}
	v := newStub(cls, id, version)
	b[id] = v
	return v
}

// commit registers obj as the definitive artefact for (cls, id). If a stub
// had already been created for the same (cls, id) by an earlier forward
// reference, its contents are overwritten in place via reflection so every
// pointer handed out earlier observes the real data — the stub's address
// is the only thing that survives.
func (m *maintainedIndex) commit(cls sdmx.Class, id string, obj any) {
	b := m.bucket(cls)
	if existing, ok := b[id]; ok && existing != obj {
		backfill(existing, obj)
		return
	}
	b[id] = obj
}

// backfill overwrites dst's pointee with src's pointee in place, provided
// both are pointers to the same concrete type. Used only to reconcile a
// lazily created external-reference stub with the real definition that
// arrives later in the same document.
func backfill(dst, src any) {
	dv := reflect.ValueOf(dst)
	sv := reflect.ValueOf(src)
	if dv.Kind() != reflect.Ptr || sv.Kind() != reflect.Ptr || dv.Type() != sv.Type() {
		return
	}
	dv.Elem().Set(sv.Elem())
}

// newStub returns a zero-value Maintainable pointer of the concrete type
// named by cls, carrying only id/version and IsExternalReference=true.
func newStub(cls sdmx.Class, id, version string) any {
	base := sdmx.Maintainable{
		Versionable:         sdmx.Versionable{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}, Version: version},
		IsExternalReference: true,
	}
	switch cls {
	case sdmx.ClassAgencyScheme, sdmx.ClassOrganisationScheme:
		return &sdmx.ItemScheme[*sdmx.Agency]{Maintainable: base}
	case sdmx.ClassCodelist:
		return &sdmx.ItemScheme[*sdmx.Code]{Maintainable: base}
	case sdmx.ClassConceptScheme:
		return &sdmx.ItemScheme[*sdmx.Concept]{Maintainable: base}
	case sdmx.ClassCategoryScheme:
		return &sdmx.ItemScheme[*sdmx.Category]{Maintainable: base}
	case sdmx.ClassDataProviderScheme:
		return &sdmx.ItemScheme[*sdmx.DataProvider]{Maintainable: base}
	case sdmx.ClassDataStructureDefinition:
		dsd := sdmx.NewDataStructureDefinition()
		dsd.Maintainable = base
		return dsd
	case sdmx.ClassDataflowDefinition:
		return &sdmx.DataflowDefinition{Maintainable: base}
	case sdmx.ClassContentConstraint:
		return &sdmx.ContentConstraint{Maintainable: base}
	case sdmx.ClassCategorisation:
		return &sdmx.Categorisation{Maintainable: base}
	default:
		return &sdmx.Maintainable{
			Versionable:         base.Versionable,
			IsExternalReference: true,
		}
	}
}

// resolve turns a Reference into the artefact (or item-within-artefact) it
// names. Maintainable references resolve (eagerly, or via stub) straight
// from the index. Item references first resolve the maintainable
// container, then look the item up within it: within a real, already-seen
// container an item not found yet is lazily created (it will appear later
// in document order); within a container that is itself only an
// external-reference stub, the item cannot be resolved at all and this
// returns a ForwardReference instead.
func (rd *Reader) resolve(ref Reference) (any, error) {
	container := rd.maintained.getOrStub(ref.Cls, ref.ID, ref.Version)
	if ref.Maintainable {
		return container, nil
	}
	item, err := itemWithin(container, ref.ChildCls, ref.ChildID)
	if err != nil {
		return nil, err
	}
	if item == nil {
		// container is itself only an external-reference stub: the child
		// cannot be resolved, and spec.md §4.3 step 2 calls for a log entry
		// rather than fabricating a placeholder.
		return nil, &ForwardReference{Cls: ref.ChildCls, ID: ref.ChildID}
	}
	return item, nil
}
