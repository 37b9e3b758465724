package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// str:DataStructure wraps its component lists in an extra, payload-free
// str:DataStructureComponents layer — the DimensionList/AttributeList/
// MeasureList/Group children file themselves directly onto the working
// stack either way.
func init() {
	skip("DataStructureComponents")

	onEnd("DataStructure", endDataStructure)
}

// endDataStructure both builds a DSD definition and, when "DataStructure"
// is instead used as a bare reference wrapper (str:ConstraintAttachment's
// <str:DataStructure><Ref/></str:DataStructure>), resolves that reference —
// the same dual-purpose pattern as the item handlers.
func endDataStructure(rd *Reader, f *frame) error {
	if ref := popPendingRef(rd, ""); ref != nil {
		v, err := rd.resolve(*ref)
		if err != nil {
			return err
		}
		rd.stk.push(v)
		return nil
	}

	d := sdmx.NewDataStructureDefinition()
	d.Maintainable = rd.buildMaintainable(f)

	if dd, ok := rd.stk.popSingleClass(sdmx.ClassDimensionDescriptor).(*sdmx.DimensionDescriptor); ok {
		d.Dimensions = dd
	}
	if ad, ok := rd.stk.popSingleClass(sdmx.ClassAttributeDescriptor).(*sdmx.AttributeDescriptor); ok {
		d.Attributes = ad
	}
	if md, ok := rd.stk.popSingleClass(sdmx.ClassMeasureDescriptor).(*sdmx.MeasureDescriptor); ok {
		d.Measures = md
	}
	for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassGroupDimensionDescriptor)) {
		gd := v.(*sdmx.GroupDimensionDescriptor)
		d.GroupDimensions[gd.ID] = gd
	}

	rd.maintained.commit(sdmx.ClassDataStructureDefinition, d.ID, d)
	rd.msg.Structure[d.ID] = d
	return nil
}
