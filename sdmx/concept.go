package sdmx

import "strings"

// Concept is an Item that may carry a core Representation.
type Concept struct {
	Nameable
	itemRelations[Concept]
	CoreRepresentation *Representation
}

// ConceptScheme is the maintainable container of Concepts.
type ConceptScheme = ItemScheme[*Concept]

// Representation pairs an (optional) enumeration with a set of
// non-enumerated facets. Enumerated holds whichever concrete ItemScheme
// pointer type (*Codelist, *ConceptScheme, ...) the <str:Enumeration>
// reference resolved to, or nil if the representation is non-enumerated
// only — modeled as `any` the same way the teacher models heterogeneous
// payloads (agentml.Event.Data, agentml.Content.Body).
type Representation struct {
	Enumerated    any
	NonEnumerated []Facet
}

// FacetValueType is the lowercase-first-letter form of an SDMX-ML TextType
// (e.g. "String" -> "string", "BigInteger" -> "bigInteger").
type FacetValueType string

// ToFacetValueType lowercases the first rune of an SDMX-ML textType
// attribute value, defaulting to "String" when absent, per spec.md §4.5.
func ToFacetValueType(textType string) FacetValueType {
	if textType == "" {
		textType = "String"
	}
	return FacetValueType(strings.ToLower(textType[:1]) + textType[1:])
}

// FacetType carries the facet's remaining XML attributes (isSequence,
// minLength, maxLength, startValue, ...) with snake_case keys, since the
// set of possible attributes is open-ended and attribute-name-driven rather
// than a fixed struct.
type FacetType map[string]string

// Facet is one member of Representation.NonEnumerated.
type Facet struct {
	ValueType FacetValueType
	Type      FacetType
}
