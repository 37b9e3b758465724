// Package sdmx implements the SDMX Information Model artifact hierarchy
// produced by the reader in sdmx/reader: Annotable, Identifiable, Nameable,
// Versionable, Maintainable, and the concrete artifacts built on top of that
// chain (item schemes, data structure definitions, dataflows, constraints,
// and data sets).
package sdmx

// Class is a tagged variant identifying the concrete (or, for lookup
// purposes, abstract) SDMX-IM class of a value. The reader's working stack
// keys entries by Class instead of by Go reflect.Type so that class-keyed
// lookups (get/pop_all over "all Components", "all Maintainables", ...) can
// be expressed as plain predicate functions rather than reflection-based
// subclass walks.
type Class string

const (
	ClassAnnotation Class = "Annotation"

	ClassAgency            Class = "Agency"
	ClassAgencyScheme      Class = "AgencyScheme"
	ClassCode              Class = "Code"
	ClassCodelist          Class = "Codelist"
	ClassCategory          Class = "Category"
	ClassCategoryScheme    Class = "CategoryScheme"
	ClassConcept           Class = "Concept"
	ClassConceptScheme     Class = "ConceptScheme"
	ClassDataProvider      Class = "DataProvider"
	ClassDataProviderScheme Class = "DataProviderScheme"
	ClassOrganisationScheme Class = "OrganisationScheme"

	ClassRepresentation Class = "Representation"
	ClassFacet          Class = "Facet"

	ClassDimension        Class = "Dimension"
	ClassMeasureDimension Class = "MeasureDimension"
	ClassTimeDimension    Class = "TimeDimension"
	ClassPrimaryMeasure   Class = "PrimaryMeasure"
	ClassDataAttribute    Class = "DataAttribute"

	ClassDimensionDescriptor      Class = "DimensionDescriptor"
	ClassAttributeDescriptor      Class = "AttributeDescriptor"
	ClassMeasureDescriptor        Class = "MeasureDescriptor"
	ClassGroupDimensionDescriptor Class = "GroupDimensionDescriptor"

	ClassDataStructureDefinition Class = "DataStructureDefinition"
	ClassDataflowDefinition      Class = "DataflowDefinition"
	ClassProvisionAgreement      Class = "ProvisionAgreement"
	ClassCategorisation          Class = "Categorisation"

	ClassAttributeRelationship Class = "AttributeRelationship"

	ClassContentConstraint Class = "ContentConstraint"
	ClassCubeRegion        Class = "CubeRegion"
	ClassMemberSelection   Class = "MemberSelection"
	ClassDataKeySet        Class = "DataKeySet"
	ClassDataKey           Class = "DataKey"

	ClassKey       Class = "Key"
	ClassSeriesKey Class = "SeriesKey"
	ClassGroupKey  Class = "GroupKey"

	ClassDataSet     Class = "DataSet"
	ClassObservation Class = "Observation"

	ClassStructureUsage Class = "StructureUsage"
	ClassMessage        Class = "Message"
)

// ClassPredicate reports whether a Class belongs to a (possibly abstract)
// grouping. The reader's working stack uses these in place of
// isinstance/issubclass walks.
type ClassPredicate func(Class) bool

// Exactly returns a predicate matching a single concrete Class.
func Exactly(c Class) ClassPredicate {
	return func(x Class) bool { return x == c }
}

// AnyOf returns a predicate matching any of the given classes.
func AnyOf(classes ...Class) ClassPredicate {
	set := make(map[Class]struct{}, len(classes))
	for _, c := range classes {
		set[c] = struct{}{}
	}
	return func(x Class) bool {
		_, ok := set[x]
		return ok
	}
}

// IsDimensionComponent matches the DimensionComponent group: Dimension,
// MeasureDimension, TimeDimension.
var IsDimensionComponent = AnyOf(ClassDimension, ClassMeasureDimension, ClassTimeDimension)

// IsComponent matches any Component subtype.
var IsComponent = AnyOf(
	ClassDimension, ClassMeasureDimension, ClassTimeDimension,
	ClassPrimaryMeasure, ClassDataAttribute,
)

// IsComponentList matches any ComponentList subtype.
var IsComponentList = AnyOf(
	ClassDimensionDescriptor, ClassAttributeDescriptor,
	ClassMeasureDescriptor, ClassGroupDimensionDescriptor,
)

// IsItem matches any Item subtype (the element type of an ItemScheme).
var IsItem = AnyOf(ClassAgency, ClassCode, ClassCategory, ClassDataProvider, ClassConcept)

// IsItemScheme matches any ItemScheme subtype.
var IsItemScheme = AnyOf(
	ClassAgencyScheme, ClassCodelist, ClassConceptScheme,
	ClassCategoryScheme, ClassDataProviderScheme, ClassOrganisationScheme,
)

// IsMaintainable matches any MaintainableArtefact subtype.
var IsMaintainable = AnyOf(
	ClassAgencyScheme, ClassCodelist, ClassConceptScheme, ClassCategoryScheme,
	ClassDataProviderScheme, ClassOrganisationScheme,
	ClassDataStructureDefinition, ClassDataflowDefinition,
	ClassProvisionAgreement, ClassCategorisation, ClassContentConstraint,
)

// IsConstrainableArtefact matches classes that ContentConstraint.content may
// reference: dataflows, data structures, provision agreements and data
// providers/schemes.
var IsConstrainableArtefact = AnyOf(
	ClassDataflowDefinition, ClassDataStructureDefinition,
	ClassProvisionAgreement, ClassDataProvider, ClassDataProviderScheme,
)
