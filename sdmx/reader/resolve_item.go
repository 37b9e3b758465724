package reader

import (
	"math"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// isExternalStub reports whether container is itself only an
// external-reference stub (spec.md §4.3): its own identity (class, id,
// version) is known but none of its contents were ever parsed from this
// document, so a child item cannot be meaningfully resolved or fabricated
// within it.
func isExternalStub(container any) bool {
	switch c := container.(type) {
	case *sdmx.ItemScheme[*sdmx.Agency]:
		return c.IsExternalReference
	case *sdmx.ItemScheme[*sdmx.Code]:
		return c.IsExternalReference
	case *sdmx.ItemScheme[*sdmx.Category]:
		return c.IsExternalReference
	case *sdmx.ItemScheme[*sdmx.Concept]:
		return c.IsExternalReference
	case *sdmx.ItemScheme[*sdmx.DataProvider]:
		return c.IsExternalReference
	case *sdmx.DataStructureDefinition:
		return c.IsExternalReference
	default:
		return false
	}
}

// itemWithin looks up a child item by id inside a resolved Maintainable
// container, lazily creating it if the container is a real (non-stub)
// artefact that simply hasn't mentioned this particular item before. If
// container is itself only an external-reference stub, the child cannot be
// resolved at all (spec.md §4.3 step 2): itemWithin returns a nil item and
// no error, and the caller logs a ForwardReference instead of fabricating a
// placeholder grafted onto a stub that will never be backfilled. Each
// non-stub branch corresponds to one ItemScheme instantiation or to
// DataStructureDefinition component lookup.
func itemWithin(container any, childCls sdmx.Class, childID string) (any, error) {
	if isExternalStub(container) {
		return nil, nil
	}
	switch c := container.(type) {
	case *sdmx.ItemScheme[*sdmx.Agency]:
		return getOrCreateItem(&c.Items, childID, func(id string) *sdmx.Agency {
			return &sdmx.Agency{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}}
		}), nil
	case *sdmx.ItemScheme[*sdmx.Code]:
		return getOrCreateItem(&c.Items, childID, func(id string) *sdmx.Code {
			return &sdmx.Code{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}}
		}), nil
	case *sdmx.ItemScheme[*sdmx.Category]:
		return getOrCreateItem(&c.Items, childID, func(id string) *sdmx.Category {
			return &sdmx.Category{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}}
		}), nil
	case *sdmx.ItemScheme[*sdmx.Concept]:
		return getOrCreateItem(&c.Items, childID, func(id string) *sdmx.Concept {
			return &sdmx.Concept{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}}
		}), nil
	case *sdmx.ItemScheme[*sdmx.DataProvider]:
		return getOrCreateItem(&c.Items, childID, func(id string) *sdmx.DataProvider {
			return &sdmx.DataProvider{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: id}}}
		}), nil
	case *sdmx.DataStructureDefinition:
		// A Dimension/TimeDimension reference not yet declared by this DSD is
		// a forced creation (spec.md §4.5): it gets the sentinel order
		// math.MaxInt so it sorts after every explicitly positioned
		// component instead of colliding with position 0.
		switch childCls {
		case sdmx.ClassDataAttribute:
			return c.GetOrCreateAttribute(childID), nil
		case sdmx.ClassTimeDimension:
			return c.GetOrCreateDimension(childID, true, math.MaxInt), nil
		default:
			return c.GetOrCreateDimension(childID, false, math.MaxInt), nil
		}
	default:
		return nil, &MalformedReference{Detail: "reference targets an item within a non-item-scheme artefact"}
	}
}

// getOrCreateItem finds id within items, appending a freshly constructed
// stub (via makeStub) when absent.
func getOrCreateItem[T sdmx.Identified](items *[]T, id string, makeStub func(string) T) T {
	for _, it := range *items {
		if it.GetID() == id {
			return it
		}
	}
	stub := makeStub(id)
	*items = append(*items, stub)
	return stub
}
