package reader

import (
	"fmt"

	"github.com/agentflare-ai/sdmx-go/sdmx"
	"github.com/agentflare-ai/sdmx-go/sdmx/qname"
	"github.com/agentflare-ai/sdmx-go/sdmx/urn"
)

// Reference is an unresolved pointer to an SDMX artifact, decoded from
// either a structured <Ref .../> element or a URN string (spec.md §4.3).
// It sits on the working stack under classReference until the enclosing
// element's handler pops it and either resolves it immediately (eager
// resolution) or files it for deferred/external resolution.
type Reference struct {
	// Cls/ID/Version identify the Maintainable artefact itself.
	Cls     sdmx.Class
	ID      string
	Version string
	Agency  string

	// ChildCls/ChildID additionally identify an Item within that
	// Maintainable (e.g. a Code within a Codelist), when the reference
	// targets a non-maintainable class.
	ChildCls sdmx.Class
	ChildID  string

	// Maintainable is true when Cls itself already names a Maintainable
	// class (the reference targets the container, not an item inside it).
	Maintainable bool
}

// parentClassOf maps a non-maintainable component/item class to the
// Maintainable class that contains it, per spec.md §4.3's "maintainable
// parent" resolution rule.
var parentClassOf = map[sdmx.Class]sdmx.Class{
	sdmx.ClassDimension:                 sdmx.ClassDataStructureDefinition,
	sdmx.ClassMeasureDimension:          sdmx.ClassDataStructureDefinition,
	sdmx.ClassTimeDimension:             sdmx.ClassDataStructureDefinition,
	sdmx.ClassPrimaryMeasure:            sdmx.ClassDataStructureDefinition,
	sdmx.ClassDataAttribute:             sdmx.ClassDataStructureDefinition,
	sdmx.ClassDimensionDescriptor:       sdmx.ClassDataStructureDefinition,
	sdmx.ClassAttributeDescriptor:       sdmx.ClassDataStructureDefinition,
	sdmx.ClassMeasureDescriptor:         sdmx.ClassDataStructureDefinition,
	sdmx.ClassGroupDimensionDescriptor:  sdmx.ClassDataStructureDefinition,
	sdmx.ClassAgency:                    sdmx.ClassAgencyScheme,
	sdmx.ClassCode:                      sdmx.ClassCodelist,
	sdmx.ClassCategory:                  sdmx.ClassCategoryScheme,
	sdmx.ClassConcept:                   sdmx.ClassConceptScheme,
	sdmx.ClassDataProvider:              sdmx.ClassDataProviderScheme,
}

// newReferenceFromRef builds a Reference from a <Ref> element's attributes.
// defaultHint is the class to assume when the element carries no explicit
// `class` attribute — normally the normalized localname of Ref's immediate
// enclosing element, supplied by the generic Ref end-handler. An explicit
// `class` attribute always wins over defaultHint; a wrapper that knows the
// default is wrong for its context (com:Parent, str:ConceptIdentity, ...)
// corrects it afterward with applyHint.
func newReferenceFromRef(attrs map[string]string, defaultHint sdmx.Class) Reference {
	childCls := defaultHint
	if attrs["class"] != "" {
		childCls = sdmx.Class(qname.NormalizeClassName(attrs["class"]))
	}
	agency := attrs["agencyID"]

	// A reference straight at a Maintainable carries that artefact's own
	// id/version directly; a reference to one of its children (a Code
	// inside a Codelist, a Dimension inside a DSD, ...) carries the
	// child's own id but the enclosing Maintainable's id/version under
	// the maintainableParent* attributes instead.
	if sdmx.IsMaintainable(childCls) {
		return resolveMaintainability(childCls, attrs["id"], attrs["id"], attrs["version"], agency)
	}
	return resolveMaintainability(childCls, attrs["id"], attrs["maintainableParentID"], attrs["maintainableParentVersion"], agency)
}

// newReferenceFromURN builds a Reference from an SDMX URN string. A URN
// always carries its own class, so defaultHint only applies if the URN
// itself fails to name one (malformed input the grammar still half-matches).
func newReferenceFromURN(text string, defaultHint sdmx.Class) (Reference, error) {
	parts, ok := urn.Match(text)
	if !ok {
		return Reference{}, fmt.Errorf("sdmx: malformed URN %q", text)
	}
	childCls := defaultHint
	if parts.Class != "" {
		childCls = sdmx.Class(qname.NormalizeClassName(parts.Class))
	}
	childID := parts.ID
	if parts.ItemID != "" {
		childID = parts.ItemID
	}
	return resolveMaintainability(childCls, childID, parts.ID, parts.Version, parts.Agency), nil
}

func resolveMaintainability(childCls sdmx.Class, childID, id, version, agency string) Reference {
	r := Reference{
		ChildCls: childCls,
		ChildID:  childID,
		ID:       id,
		Version:  version,
		Agency:   agency,
	}
	r.deriveCls()
	return r
}

// deriveCls recomputes Maintainable/Cls/ID from the current ChildCls —
// called whenever ChildCls changes, including by applyHint.
func (r *Reference) deriveCls() {
	if sdmx.IsMaintainable(r.ChildCls) {
		r.Maintainable = true
		r.Cls = r.ChildCls
		r.ID = r.ChildID
	} else {
		r.Maintainable = false
		r.Cls = parentClassOf[r.ChildCls]
	}
}

// applyHint corrects ChildCls after the fact, for wrappers whose localname
// is not itself a valid default class hint (com:Parent names the parent
// Item's enclosing scheme's sibling-item class; str:ConceptIdentity always
// targets a Concept regardless of what a bare Ref's own fallback guessed).
func (r *Reference) applyHint(hint sdmx.Class) {
	if hint == "" {
		return
	}
	r.ChildCls = hint
	r.deriveCls()
}
