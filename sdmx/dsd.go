package sdmx

import "fmt"

// DataStructureDefinition (DSD) is the schema for a family of observations.
type DataStructureDefinition struct {
	Maintainable
	Dimensions      *DimensionDescriptor
	Attributes      *AttributeDescriptor
	Measures        *MeasureDescriptor
	GroupDimensions map[string]*GroupDimensionDescriptor
}

// NewDataStructureDefinition returns a DSD with empty, initialized
// component lists, ready to be filled in by the DimensionList/
// AttributeList/MeasureList/Group handlers.
func NewDataStructureDefinition() *DataStructureDefinition {
	return &DataStructureDefinition{
		Dimensions:      &DimensionDescriptor{ComponentList: ComponentList[DimensionComponent]{Identifiable: Identifiable{ID: "DimensionDescriptor"}}},
		Attributes:      &AttributeDescriptor{ComponentList: ComponentList[*DataAttribute]{Identifiable: Identifiable{ID: "AttributeDescriptor"}}},
		Measures:        &MeasureDescriptor{ComponentList: ComponentList[*PrimaryMeasure]{Identifiable: Identifiable{ID: "MeasureDescriptor"}}},
		GroupDimensions: make(map[string]*GroupDimensionDescriptor),
	}
}

// StructureMismatch reports that a key component's id is absent from the
// DSD and the caller did not request that the DSD be extended — spec.md §7.
type StructureMismatch struct {
	ComponentID string
}

func (e *StructureMismatch) Error() string {
	return fmt.Sprintf("sdmx: id %q is not a dimension or attribute of the data structure", e.ComponentID)
}

// GetOrCreateDimension returns the named dimension, creating (and
// appending, unordered — AssignOrder or an explicit order must follow) a
// new one of the given concrete kind when absent. Used both for the
// "dimension at observation level" forced-creation path (spec.md §4.5
// Header/Structure) and for extending a DSD discovered to be missing
// (spec.md §8 scenario 3).
func (d *DataStructureDefinition) GetOrCreateDimension(id string, newTimeDimension bool, order int) DimensionComponent {
	if c, ok := d.Dimensions.Get(id); ok {
		return c
	}
	var c DimensionComponent
	if newTimeDimension {
		c = &TimeDimension{Component: Component{Identifiable: Identifiable{ID: id}}, Order: order}
	} else {
		c = &Dimension{Component: Component{Identifiable: Identifiable{ID: id}}, Order: order}
	}
	d.Dimensions.Components = append(d.Dimensions.Components, c)
	return c
}

// GetOrCreateAttribute mirrors GetOrCreateDimension for the attribute side
// of a structure-specific key/observation partition, and for resolving an
// external reference to a DataAttribute not yet otherwise known.
func (d *DataStructureDefinition) GetOrCreateAttribute(id string) *DataAttribute {
	if a, ok := d.Attributes.Get(id); ok {
		return a
	}
	a := &DataAttribute{Component: Component{Identifiable: Identifiable{ID: id}}, RelatedTo: NoSpecifiedRelationship{}}
	d.Attributes.Components = append(d.Attributes.Components, a)
	return a
}

// PartitionResult is the outcome of MakeKey: the component values that
// belong in the key, plus any attribute-side values pulled out alongside
// them (spec.md §8 scenario 2).
type PartitionResult struct {
	Values map[string]string
	Attrib map[string]string
}

// MakeKey partitions a flat {id: value} map (from a generic *Key element's
// children, or from a structure-specific element's XML attributes) into
// key-dimension values and attribute values, per spec.md §4.5/§4.6 and the
// StructureMismatch invariant of §7.
//
// An id matching a declared Dimension becomes a key value. An id matching a
// declared DataAttribute becomes an attribute value. An id matching
// neither is, if extend is true, promoted to a new Dimension (growing the
// DSD) and becomes a key value; if extend is false, it is a
// StructureMismatch.
func (d *DataStructureDefinition) MakeKey(kv map[string]string, extend bool) (PartitionResult, error) {
	result := PartitionResult{Values: make(map[string]string, len(kv)), Attrib: make(map[string]string)}
	for id, value := range kv {
		switch {
		case hasDimension(d, id):
			result.Values[id] = value
		case hasAttribute(d, id):
			result.Attrib[id] = value
		case extend:
			order := len(d.Dimensions.Components) + 1
			d.GetOrCreateDimension(id, false, order)
			result.Values[id] = value
		default:
			return PartitionResult{}, &StructureMismatch{ComponentID: id}
		}
	}
	return result, nil
}

func hasDimension(d *DataStructureDefinition, id string) bool {
	_, ok := d.Dimensions.Get(id)
	return ok
}

func hasAttribute(d *DataStructureDefinition, id string) bool {
	_, ok := d.Attributes.Get(id)
	return ok
}
