package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// classOf returns the working-stack Class token for a value's runtime type.
// This type switch is the streaming engine's stand-in for the source
// reader's isinstance/type(obj) dispatch: every concrete artifact pointer
// type the handler catalogue produces has exactly one entry here.
func classOf(v any) (sdmx.Class, bool) {
	switch v.(type) {
	case *sdmx.Annotation:
		return sdmx.ClassAnnotation, true
	case *sdmx.Agency:
		return sdmx.ClassAgency, true
	case *sdmx.AgencyScheme:
		return sdmx.ClassAgencyScheme, true
	case *sdmx.Code:
		return sdmx.ClassCode, true
	case *sdmx.Codelist:
		return sdmx.ClassCodelist, true
	case *sdmx.Category:
		return sdmx.ClassCategory, true
	case *sdmx.CategoryScheme:
		return sdmx.ClassCategoryScheme, true
	case *sdmx.Concept:
		return sdmx.ClassConcept, true
	case *sdmx.ConceptScheme:
		return sdmx.ClassConceptScheme, true
	case *sdmx.DataProvider:
		return sdmx.ClassDataProvider, true
	case *sdmx.DataProviderScheme:
		return sdmx.ClassDataProviderScheme, true

	case *sdmx.Representation:
		return sdmx.ClassRepresentation, true
	case *sdmx.Facet:
		return sdmx.ClassFacet, true

	case *sdmx.Dimension:
		return sdmx.ClassDimension, true
	case *sdmx.MeasureDimension:
		return sdmx.ClassMeasureDimension, true
	case *sdmx.TimeDimension:
		return sdmx.ClassTimeDimension, true
	case *sdmx.PrimaryMeasure:
		return sdmx.ClassPrimaryMeasure, true
	case *sdmx.DataAttribute:
		return sdmx.ClassDataAttribute, true

	case *sdmx.DimensionDescriptor:
		return sdmx.ClassDimensionDescriptor, true
	case *sdmx.AttributeDescriptor:
		return sdmx.ClassAttributeDescriptor, true
	case *sdmx.MeasureDescriptor:
		return sdmx.ClassMeasureDescriptor, true
	case *sdmx.GroupDimensionDescriptor:
		return sdmx.ClassGroupDimensionDescriptor, true

	case *sdmx.DataStructureDefinition:
		return sdmx.ClassDataStructureDefinition, true
	case *sdmx.DataflowDefinition:
		return sdmx.ClassDataflowDefinition, true
	case *sdmx.Categorisation:
		return sdmx.ClassCategorisation, true
	case *sdmx.StructureUsage:
		return sdmx.ClassStructureUsage, true

	case sdmx.AttributeRelationship:
		return sdmx.ClassAttributeRelationship, true

	case *sdmx.ContentConstraint:
		return sdmx.ClassContentConstraint, true
	case *sdmx.CubeRegion:
		return sdmx.ClassCubeRegion, true
	case *sdmx.MemberSelection:
		return sdmx.ClassMemberSelection, true
	case *sdmx.DataKeySet:
		return sdmx.ClassDataKeySet, true
	case *sdmx.DataKey:
		return sdmx.ClassDataKey, true

	case *sdmx.Key:
		return sdmx.ClassKey, true
	case *sdmx.SeriesKey:
		return sdmx.ClassSeriesKey, true
	case *sdmx.GroupKey:
		return sdmx.ClassGroupKey, true

	case *sdmx.DataSet:
		return sdmx.ClassDataSet, true
	case *sdmx.Observation:
		return sdmx.ClassObservation, true

	case *Reference:
		return classReference, true

	default:
		return "", false
	}
}

// classReference is the working stack's class token for an unresolved
// Reference awaiting resolution — not part of sdmx.Class's public set since
// it never appears in a finished object tree, only transiently on the
// stack.
const classReference sdmx.Class = "_Reference"

// isAnyReference reports whether pred would match a Reference placeholder.
var isAnyReference = sdmx.Exactly(classReference)
