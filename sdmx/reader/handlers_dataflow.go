package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

func init() {
	onEnd("Dataflow", endDataflow)
}

// endDataflow mirrors endDataStructure's dual purpose: a bare reference
// usage (ConstraintAttachment's <str:Dataflow><Ref/></str:Dataflow>)
// resolves directly; otherwise this is the dataflow's own definition,
// naming the DSD it carries via the nested mes:Structure-style wrapper
// already captured under the "Structure" key by handlers_reference.go.
func endDataflow(rd *Reader, f *frame) error {
	if ref := popPendingRef(rd, ""); ref != nil {
		v, err := rd.resolve(*ref)
		if err != nil {
			return err
		}
		rd.stk.push(v)
		return nil
	}

	df := &sdmx.DataflowDefinition{Maintainable: rd.buildMaintainable(f)}
	if v := rd.stk.popSingleKey("Structure"); v != nil {
		ref := v.(*Reference)
		ref.applyHint(sdmx.ClassDataStructureDefinition)
		if s, err := rd.resolve(*ref); err != nil {
			rd.warn(err)
		} else if dsd, ok := s.(*sdmx.DataStructureDefinition); ok {
			df.Structure = dsd
		}
	}
	// A Dataflow's own Structure wrapper carries no dimensionAtObservation;
	// discard the empty string the shared handler always pushes alongside it.
	rd.stk.popSingleKey("StructureDimAtObs")

	rd.maintained.commit(sdmx.ClassDataflowDefinition, df.ID, df)
	rd.msg.Dataflow[df.ID] = df
	return nil
}
