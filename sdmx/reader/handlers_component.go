package reader

import (
	"strconv"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

func resolveConceptIdentity(rd *Reader) *sdmx.Concept {
	v := rd.stk.popSingleKey("ConceptIdentity")
	if v == nil {
		return nil
	}
	ref := v.(*Reference)
	resolved, err := rd.resolve(*ref)
	if err != nil {
		rd.warn(err)
		return nil
	}
	c, _ := resolved.(*sdmx.Concept)
	return c
}

func resolveLocalRepresentation(rd *Reader) *sdmx.Representation {
	if v := rd.stk.popSingleKey("LocalRepresentation"); v != nil {
		return v.(*sdmx.Representation)
	}
	return nil
}

// findComponentListInProgress peeks the DSD component list of the given
// class still sitting on the stack, built by an earlier sibling
// DimensionList/AttributeList/MeasureList within the same
// DataStructureDefinition — used to resolve a bare <Dimension><Ref/></Dimension>
// inside an AttributeRelationship, which always follows DimensionList in
// document order.
func findComponentListInProgress(rd *Reader, cls sdmx.Class) any {
	return rd.stk.getClass(sdmx.Exactly(cls))
}

func init() {
	onEnd("Dimension", func(rd *Reader, f *frame) error {
		if ref := popPendingRef(rd, ""); ref != nil {
			if dd, ok := findComponentListInProgress(rd, sdmx.ClassDimensionDescriptor).(*sdmx.DimensionDescriptor); ok {
				if dc, found := dd.Get(ref.ChildID); found {
					rd.stk.push(dc)
					return nil
				}
			}
			rd.warn(&ForwardReference{Cls: sdmx.ClassDimension, ID: ref.ChildID})
			return nil
		}
		order, _ := strconv.Atoi(f.attrs["position"])
		d := &sdmx.Dimension{
			Component: sdmx.Component{
				Identifiable:        sdmx.Identifiable{ID: f.attrs["id"]},
				ConceptIdentity:     resolveConceptIdentity(rd),
				LocalRepresentation: resolveLocalRepresentation(rd),
			},
			Order: order,
		}
		rd.stk.push(d)
		return nil
	})

	onEnd("TimeDimension", func(rd *Reader, f *frame) error {
		order, _ := strconv.Atoi(f.attrs["position"])
		d := &sdmx.TimeDimension{
			Component: sdmx.Component{
				Identifiable:        sdmx.Identifiable{ID: f.attrs["id"]},
				ConceptIdentity:     resolveConceptIdentity(rd),
				LocalRepresentation: resolveLocalRepresentation(rd),
			},
			Order: order,
		}
		rd.stk.push(d)
		return nil
	})

	onEnd("MeasureDimension", func(rd *Reader, f *frame) error {
		order, _ := strconv.Atoi(f.attrs["position"])
		d := &sdmx.MeasureDimension{
			Component: sdmx.Component{
				Identifiable:        sdmx.Identifiable{ID: f.attrs["id"]},
				ConceptIdentity:     resolveConceptIdentity(rd),
				LocalRepresentation: resolveLocalRepresentation(rd),
			},
			Order: order,
		}
		rd.stk.push(d)
		return nil
	})

	onEnd("PrimaryMeasure", func(rd *Reader, f *frame) error {
		if rd.parentTag() == "AttributeRelationship" {
			rd.stk.pushKey("PrimaryMeasureRelationship", true)
			return nil
		}
		pm := &sdmx.PrimaryMeasure{
			Component: sdmx.Component{
				Identifiable:        sdmx.Identifiable{ID: f.attrs["id"]},
				ConceptIdentity:     resolveConceptIdentity(rd),
				LocalRepresentation: resolveLocalRepresentation(rd),
			},
		}
		rd.stk.push(pm)
		return nil
	})

	onEnd("None", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("NoneRelationship", true)
		return nil
	})

	onEnd("AttributeRelationship", func(rd *Reader, f *frame) error {
		dims := rd.stk.popAllClass(sdmx.IsDimensionComponent)
		var groupRef *Reference
		if v := rd.stk.popSingleKey("AttachmentGroup"); v != nil {
			groupRef = v.(*Reference)
		}
		rd.stk.popAllKey("NoneRelationship")
		rd.stk.popAllKey("PrimaryMeasureRelationship")

		var groupKey *sdmx.GroupDimensionDescriptor
		if groupRef != nil {
			if g, err := rd.resolve(*groupRef); err == nil {
				groupKey, _ = g.(*sdmx.GroupDimensionDescriptor)
			} else {
				rd.warn(err)
			}
		}

		var rel sdmx.AttributeRelationship
		switch {
		case len(dims) > 0:
			dr := sdmx.DimensionRelationship{GroupKey: groupKey}
			for _, d := range dims {
				dr.Dimensions = append(dr.Dimensions, d.(sdmx.DimensionComponent))
			}
			rel = dr
		case groupKey != nil:
			rel = sdmx.GroupRelationship{GroupKey: groupKey}
		default:
			rel = sdmx.NoSpecifiedRelationship{}
		}
		rd.stk.pushKey("AttributeRelationship", rel)
		return nil
	})

	// str:Attribute, a DSD's DataAttribute definition, shares its localname
	// with com:Attribute, a ContentConstraint CubeRegion's attribute-valued
	// member selection. The single onEnd("Attribute", ...) registration
	// dispatching between the two lives in handlers_constraint.go, to avoid
	// two competing registrations racing on init order.
}

func buildDataAttribute(rd *Reader, f *frame) error {
	a := &sdmx.DataAttribute{
		Component: sdmx.Component{
			Identifiable:        sdmx.Identifiable{ID: f.attrs["id"]},
			ConceptIdentity:     resolveConceptIdentity(rd),
			LocalRepresentation: resolveLocalRepresentation(rd),
		},
		RelatedTo: sdmx.NoSpecifiedRelationship{},
	}
	if v := rd.stk.popSingleKey("AttributeRelationship"); v != nil {
		a.RelatedTo = v.(sdmx.AttributeRelationship)
	}
	rd.stk.push(a)
	return nil
}
