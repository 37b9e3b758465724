package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// str:Group nests its dimension references one layer deeper, behind a
// GroupDimension wrapper that carries no payload of its own.
func init() {
	skip("GroupDimension")
	registerReferenceWrapper("DimensionReference", sdmx.ClassDimension)
}

func init() {
	onEnd("DimensionList", func(rd *Reader, f *frame) error {
		id := f.attrs["id"]
		if id == "" {
			id = sdmx.DefaultComponentListID("DimensionList")
		}
		// Popped class-by-class, not via the combined IsDimensionComponent
		// predicate, so that the result is deterministic: a single class
		// bucket keeps document order, but Go map iteration across the three
		// different dimension classes would not. The list holds Dimensions,
		// then MeasureDimensions, then TimeDimensions, each in document order.
		dims := rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassDimension))
		mdims := rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassMeasureDimension))
		tdims := rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassTimeDimension))

		dd := &sdmx.DimensionDescriptor{ComponentList: sdmx.ComponentList[sdmx.DimensionComponent]{
			Identifiable: sdmx.Identifiable{ID: id},
		}}
		for _, v := range dims {
			dd.Components = append(dd.Components, v.(sdmx.DimensionComponent))
		}
		for _, v := range mdims {
			dd.Components = append(dd.Components, v.(sdmx.DimensionComponent))
		}
		for _, v := range tdims {
			dd.Components = append(dd.Components, v.(sdmx.DimensionComponent))
		}
		dd.AssignOrder()
		rd.stk.push(dd)
		return nil
	})

	onEnd("AttributeList", func(rd *Reader, f *frame) error {
		id := f.attrs["id"]
		if id == "" {
			id = sdmx.DefaultComponentListID("AttributeList")
		}
		ad := &sdmx.AttributeDescriptor{ComponentList: sdmx.ComponentList[*sdmx.DataAttribute]{
			Identifiable: sdmx.Identifiable{ID: id},
		}}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassDataAttribute)) {
			ad.Components = append(ad.Components, v.(*sdmx.DataAttribute))
		}
		rd.stk.push(ad)
		return nil
	})

	onEnd("MeasureList", func(rd *Reader, f *frame) error {
		id := f.attrs["id"]
		if id == "" {
			id = sdmx.DefaultComponentListID("MeasureList")
		}
		md := &sdmx.MeasureDescriptor{ComponentList: sdmx.ComponentList[*sdmx.PrimaryMeasure]{
			Identifiable: sdmx.Identifiable{ID: id},
		}}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassPrimaryMeasure)) {
			md.Components = append(md.Components, v.(*sdmx.PrimaryMeasure))
		}
		rd.stk.push(md)
		return nil
	})

}

// endGroupDimensionDescriptor handles str:Group, nested directly in a
// str:DataStructureComponents: it names a subset of the DSD's own
// dimensions, already built by the sibling DimensionList that always
// precedes it in document order, so each DimensionReference is resolved
// against that pending descriptor rather than the cross-document resolver.
// "Group" is also the localname of a data set's group-instance element
// (handlers_dataset.go's onEnd("Group", ...) dispatcher), so this function
// is deliberately not itself registered as a handler.
func endGroupDimensionDescriptor(rd *Reader, f *frame) error {
	gd := &sdmx.GroupDimensionDescriptor{ComponentList: sdmx.ComponentList[sdmx.DimensionComponent]{
		Identifiable: sdmx.Identifiable{ID: f.attrs["id"]},
	}}
	dd, _ := findComponentListInProgress(rd, sdmx.ClassDimensionDescriptor).(*sdmx.DimensionDescriptor)
	for _, v := range rd.stk.popAllKey("DimensionReference") {
		ref := v.(*Reference)
		if dd != nil {
			if dc, found := dd.Get(ref.ChildID); found {
				gd.Components = append(gd.Components, dc)
				continue
			}
		}
		rd.warn(&ForwardReference{Cls: sdmx.ClassDimension, ID: ref.ChildID})
	}
	rd.stk.push(gd)
	return nil
}
