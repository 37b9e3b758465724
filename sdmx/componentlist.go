package sdmx

// ComponentList is an ordered, Identifiable list of Components. Its
// concrete subtypes (DimensionDescriptor, AttributeDescriptor,
// MeasureDescriptor, GroupDimensionDescriptor) all carry the same fixed id
// by SDMX convention — see DefaultComponentListID.
type ComponentList[T Identified] struct {
	Identifiable
	Components []T
}

// Get returns the component with the given id, if present.
func (cl *ComponentList[T]) Get(id string) (T, bool) {
	for _, c := range cl.Components {
		if c.GetID() == id {
			return c, true
		}
	}
	var zero T
	return zero, false
}

// DefaultComponentListID returns the SDMX-ML-convention id for a component
// list given its XML list-element localname (e.g. "DimensionList" ->
// "DimensionDescriptor"). "Group" is handled separately since it has no
// fixed id (GroupDimensionDescriptor ids are caller-defined).
func DefaultComponentListID(listLocalName string) string {
	switch listLocalName {
	case "DimensionList":
		return "DimensionDescriptor"
	case "AttributeList":
		return "AttributeDescriptor"
	case "MeasureList":
		return "MeasureDescriptor"
	default:
		return listLocalName
	}
}

// DimensionDescriptor holds the ordered dimensions of a DSD.
type DimensionDescriptor struct {
	ComponentList[DimensionComponent]
}

// AssignOrder numbers dimensions 1..N in declared order, unless a dimension
// already carries an explicit order from a `position` attribute — per
// spec.md §4.5, the DimensionList handler calls this exactly once, and
// spec.md §8 requires it be applied exactly once per DSD.
func (d *DimensionDescriptor) AssignOrder() {
	for i, c := range d.Components {
		if c.GetOrder() == 0 {
			c.SetOrder(i + 1)
		}
	}
}

// AttributeDescriptor holds a DSD's DataAttributes.
type AttributeDescriptor struct {
	ComponentList[*DataAttribute]
}

// MeasureDescriptor holds a DSD's PrimaryMeasures.
type MeasureDescriptor struct {
	ComponentList[*PrimaryMeasure]
}

// GroupDimensionDescriptor names the subset of a DSD's dimensions that
// identify a Group.
type GroupDimensionDescriptor struct {
	ComponentList[DimensionComponent]
}
