package sdmx

// Component is the shared shape of every DSD component: an Identifiable
// tied to a Concept and (optionally) a local Representation overriding the
// concept's core representation.
type Component struct {
	Identifiable
	ConceptIdentity     *Concept
	LocalRepresentation *Representation
}

// DimensionComponent is implemented by Dimension, MeasureDimension and
// TimeDimension: the three component kinds that occupy an ordered slot in a
// DimensionDescriptor.
type DimensionComponent interface {
	Identified
	GetOrder() int
	SetOrder(int)
	dimensionComponent()
}

// Dimension identifies an observation by a coded or uncoded value.
type Dimension struct {
	Component
	Order int
}

func (d *Dimension) GetOrder() int     { return d.Order }
func (d *Dimension) SetOrder(o int)    { d.Order = o }
func (*Dimension) dimensionComponent() {}

// MeasureDimension is a dimension whose values identify the measure
// described by an observation (SDMX-ML 2.1 legacy cross-sectional usage).
type MeasureDimension struct {
	Component
	Order int
}

func (d *MeasureDimension) GetOrder() int     { return d.Order }
func (d *MeasureDimension) SetOrder(o int)    { d.Order = o }
func (*MeasureDimension) dimensionComponent() {}

// TimeDimension is the distinguished dimension carrying an observation's
// time period.
type TimeDimension struct {
	Component
	Order int
}

func (d *TimeDimension) GetOrder() int     { return d.Order }
func (d *TimeDimension) SetOrder(o int)    { d.Order = o }
func (*TimeDimension) dimensionComponent() {}

// PrimaryMeasure is the observed value's component (conventionally
// "OBS_VALUE").
type PrimaryMeasure struct {
	Component
}

// AttributeRelationship is implemented by NoSpecifiedRelationship,
// DimensionRelationship and GroupRelationship.
type AttributeRelationship interface {
	isAttributeRelationship()
}

// NoSpecifiedRelationship attaches a DataAttribute to the whole data set.
type NoSpecifiedRelationship struct{}

func (NoSpecifiedRelationship) isAttributeRelationship() {}

// DimensionRelationship attaches a DataAttribute to one or more dimensions
// (a series- or observation-level attribute), optionally scoped to a group.
type DimensionRelationship struct {
	Dimensions []DimensionComponent
	GroupKey   *GroupDimensionDescriptor
}

func (DimensionRelationship) isAttributeRelationship() {}

// GroupRelationship attaches a DataAttribute to a GroupDimensionDescriptor.
type GroupRelationship struct {
	GroupKey *GroupDimensionDescriptor
}

func (GroupRelationship) isAttributeRelationship() {}

// DataAttribute is a Component describing metadata about an observation,
// series, group, or data set.
type DataAttribute struct {
	Component
	RelatedTo AttributeRelationship
}

// AttributeValue is one observed/series/group-level attribute value,
// resolved against the DataAttribute it belongs to.
type AttributeValue struct {
	Value     string
	ValueFor  *DataAttribute
}
