package reader

import (
	"maps"
	"strings"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// dataValue is the transient form of one <gen:Value id="..." value="..."/>
// leaf, the atomic unit generic data is built from.
type dataValue struct {
	id    string
	value string
}

// seriesBucket pairs a built SeriesKey with the Observations collected
// under it, filed under the "Series" string key for the enclosing
// DataSet's own end handler to assemble — deferring assembly avoids
// threading a half-built *sdmx.DataSet through every Series/Group/Obs
// handler.
type seriesBucket struct {
	key *sdmx.SeriesKey
	obs []*sdmx.Observation
}

// currentDSD returns the data structure definition observations should be
// partitioned against: the caller-supplied DSD if given (spec.md §8
// scenario 2); else the DSD resolved off the message header's Structure
// reference, directly or via a Dataflow indirection; else, for a
// structure-specific message arriving with neither, a DSD synthesized on
// first use and grown as unrecognized ids are encountered (spec.md §8
// scenario 3). Generic data's *Key elements still route through this same
// DSD with extend=true (spec.md's handler catalogue), so a message that
// resolves no DSD at all falls back to treating every value as a bare
// dimension, with no resolved DataAttribute pointer.
func currentDSD(rd *Reader) *sdmx.DataStructureDefinition {
	if rd.callerDSD != nil {
		return rd.callerDSD
	}
	if rd.resolvedStructureDSD != nil {
		return rd.resolvedStructureDSD
	}
	switch rd.msg.Kind {
	case sdmx.KindStructureSpecificData, sdmx.KindStructureSpecificTS:
	default:
		return nil
	}
	if rd.inferredDSD == nil {
		rd.inferredDSD = sdmx.NewDataStructureDefinition()
		rd.ssMissingDSD = true
	}
	return rd.inferredDSD
}

// extendAllowed reports whether partitioning a key against dsd may grow it
// with previously-unseen component ids: always true when dsd itself was
// synthesized for a DSD-less structure-specific message (spec.md §8
// scenario 3), or when the caller opted in explicitly, or for generic data
// (whose *Key elements spec.md always routes through make_key with
// extend=true, regardless of DSD provenance).
func extendAllowed(rd *Reader) bool {
	if isGenericKind(rd.msg.Kind) {
		return true
	}
	return rd.ssMissingDSD || rd.allowExtension
}

func isGenericKind(k sdmx.Kind) bool {
	return k == sdmx.KindGenericData || k == sdmx.KindGenericTimeSeriesData
}

func init() {
	// gen:Value (an id/value attribute pair) collides on bare localname
	// with com:Value (a KeyValue/Attribute member selection's text
	// content, handlers_constraint.go). Only a SeriesKey/GroupKey/ObsKey/
	// Attributes leaf is the generic-data sense; everywhere else it's the
	// constraint sense.
	onEnd("Value", func(rd *Reader, f *frame) error {
		switch rd.parentTag() {
		case "SeriesKey", "GroupKey", "ObsKey", "Attributes":
			rd.stk.pushKey("Value", dataValue{id: f.attrs["id"], value: f.attrs["value"]})
		default:
			rd.stk.pushKey("Value", f.Text())
		}
		return nil
	})

	drainValues := func(rd *Reader) map[string]string {
		vs := rd.stk.popAllKey("Value")
		if len(vs) == 0 {
			return nil
		}
		m := make(map[string]string, len(vs))
		for _, v := range vs {
			dv := v.(dataValue)
			m[dv.id] = dv.value
		}
		return m
	}

	onEnd("SeriesKey", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("SeriesKeyValues", drainValues(rd))
		return nil
	})
	onEnd("GroupKey", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("GroupKeyValues", drainValues(rd))
		return nil
	})
	onEnd("ObsKey", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("ObsKeyValues", drainValues(rd))
		return nil
	})
	onEnd("ObsDimension", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("ObsDimension", f.attrs["value"])
		return nil
	})
	onEnd("ObsValue", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("ObsValue", f.attrs["value"])
		return nil
	})
	// str:Attributes wraps a set of gen:Value leaves at the series,
	// observation, or group level alike; the enclosing element's own
	// handler is what gives the popped map its meaning.
	onEnd("Attributes", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Attributes", drainValues(rd))
		return nil
	})

	// An Obs sets the enclosing Series' own Attributes aside while it is
	// open, so that endObs only ever sees the observation's Attributes.
	onStart("Obs", func(rd *Reader, f *frame) error {
		rd.stk.stash("Attributes")
		return nil
	})
	onEnd("Obs", endObs)
	onEnd("Series", endSeries)
	onEnd("Group", endGroup)
	onEnd("DataSet", endDataSet)
}

func attachedAttributes(dsd *sdmx.DataStructureDefinition, values map[string]string) map[string]sdmx.AttributeValue {
	if len(values) == 0 {
		return nil
	}
	out := make(map[string]sdmx.AttributeValue, len(values))
	for id, val := range values {
		av := sdmx.AttributeValue{Value: val}
		if dsd != nil {
			av.ValueFor = dsd.GetOrCreateAttribute(id)
		}
		out[id] = av
	}
	return out
}

// genericKey partitions a generic *Key element's drained {id:value} map
// through the governing DSD, unconditionally with extend=true: spec.md's
// handler catalogue requires every generic ObsKey/SeriesKey/GroupKey to
// invoke make_key(extend=true) even though the wire format already
// separates key values from attribute values structurally, so that
// unrecognized ids widen the (possibly inferred) DSD rather than silently
// becoming untyped dimensions. Falls back to treating the map as-is when
// no DSD could be resolved at all.
func genericKey(dsd *sdmx.DataStructureDefinition, values map[string]string) (sdmx.Key, error) {
	if dsd == nil {
		return sdmx.Key{Values: values}, nil
	}
	part, err := dsd.MakeKey(values, true)
	if err != nil {
		return sdmx.Key{}, err
	}
	return sdmx.NewKey(part), nil
}

// endObs builds one Observation. Generic data spells out each value's id
// explicitly (gen:Value id=.../) so the wire format already separates key
// from attribute values, but spec.md still requires routing the drained
// key map through DataStructureDefinition.MakeKey (genericKey); structure-specific
// data carries both as flat XML attributes on the element itself and needs
// the same MakeKey call to partition them in the first place (spec.md
// §4.6, §7's StructureMismatch invariant).
func endObs(rd *Reader, f *frame) error {
	defer rd.stk.unstash()
	dsd := currentDSD(rd)
	obs := &sdmx.Observation{}

	if isGenericKind(rd.msg.Kind) {
		var values map[string]string
		if v := rd.stk.popSingleKey("ObsDimension"); v != nil {
			dimID := "TIME_PERIOD"
			if rd.msg.ObservationDimension != nil {
				dimID = rd.msg.ObservationDimension.GetID()
			}
			values = map[string]string{dimID: v.(string)}
		} else if v := rd.stk.popSingleKey("ObsKeyValues"); v != nil {
			values = v.(map[string]string)
		}
		key, err := genericKey(dsd, values)
		if err != nil {
			return err
		}
		obs.Dimension = key
		if v := rd.stk.popSingleKey("ObsValue"); v != nil {
			obs.Value = v.(string)
		}
		if v := rd.stk.popSingleKey("Attributes"); v != nil {
			obs.AttachedAttribute = attachedAttributes(dsd, v.(map[string]string))
		}
		rd.stk.push(obs)
		return nil
	}

	measureID := "OBS_VALUE"
	if dsd != nil {
		if len(dsd.Measures.Components) > 0 {
			measureID = dsd.Measures.Components[0].GetID()
		}
	}
	kv := make(map[string]string, len(f.attrs))
	for k, v := range f.attrs {
		if k == measureID {
			obs.Value = v
			continue
		}
		kv[k] = v
	}
	if dsd == nil {
		return &MalformedReference{Detail: "structure-specific observation requires a data structure definition"}
	}
	if _, ok := f.attrs[measureID]; ok && len(dsd.Measures.Components) == 0 && extendAllowed(rd) {
		dsd.Measures.Components = append(dsd.Measures.Components,
			&sdmx.PrimaryMeasure{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: measureID}}})
	}
	part, err := dsd.MakeKey(kv, extendAllowed(rd))
	if err != nil {
		return err
	}
	obs.Dimension = sdmx.NewKey(part)
	obs.AttachedAttribute = attachedAttributes(dsd, part.Attrib)
	rd.stk.push(obs)
	return nil
}

func endSeries(rd *Reader, f *frame) error {
	dsd := currentDSD(rd)
	var obsList []*sdmx.Observation
	for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassObservation)) {
		obsList = append(obsList, v.(*sdmx.Observation))
	}

	var sk *sdmx.SeriesKey
	if isGenericKind(rd.msg.Kind) {
		values, _ := rd.stk.popSingleKey("SeriesKeyValues").(map[string]string)
		key, err := genericKey(dsd, values)
		if err != nil {
			return err
		}
		sk = &sdmx.SeriesKey{Key: key}
		if v := rd.stk.popSingleKey("Attributes"); v != nil {
			sk.Attrib = v.(map[string]string)
		}
	} else {
		if dsd == nil {
			return &MalformedReference{Detail: "structure-specific series requires a data structure definition"}
		}
		part, err := dsd.MakeKey(f.attrs, extendAllowed(rd))
		if err != nil {
			return err
		}
		sk = &sdmx.SeriesKey{Key: sdmx.NewKey(part)}
	}

	rd.stk.pushKey("Series", seriesBucket{key: sk, obs: obsList})
	return nil
}

// endGroup dispatches on context: str:Group (a DSD's GroupDimensionDescriptor
// definition, nested in str:DataStructureComponents) and a data set's Group
// instance (gen:Group or a flat structure-specific Group) share the bare
// localname "Group".
func endGroup(rd *Reader, f *frame) error {
	if rd.parentTag() == "DataStructureComponents" {
		return endGroupDimensionDescriptor(rd, f)
	}

	dsd := currentDSD(rd)
	var gk *sdmx.GroupKey
	if isGenericKind(rd.msg.Kind) {
		values, _ := rd.stk.popSingleKey("GroupKeyValues").(map[string]string)
		key, err := genericKey(dsd, values)
		if err != nil {
			return err
		}
		gk = &sdmx.GroupKey{Key: key}
		if v := rd.stk.popSingleKey("Attributes"); v != nil {
			gk.Attrib = v.(map[string]string)
		}
	} else {
		if dsd == nil {
			return &MalformedReference{Detail: "structure-specific group requires a data structure definition"}
		}
		attrs := maps.Clone(f.attrs)
		delete(attrs, "xsi:type")
		part, err := dsd.MakeKey(attrs, extendAllowed(rd))
		if err != nil {
			return err
		}
		gk = &sdmx.GroupKey{Key: sdmx.NewKey(part)}
		if t, ok := f.attrs["xsi:type"]; ok {
			gd, found := dsd.GroupDimensions[t[strings.LastIndex(t, ":")+1:]]
			switch {
			case found:
				gk.DescribedBy = gd
			case rd.ssMissingDSD:
				rd.warn(&MalformedReference{Detail: "no group named by xsi:type " + t})
			default:
				return &MalformedReference{Detail: "no group named by xsi:type " + t}
			}
		}
	}
	if dsd != nil && len(dsd.GroupDimensions) == 1 {
		for _, gd := range dsd.GroupDimensions {
			gk.DescribedBy = gd
		}
	}
	rd.stk.pushKey("Group", gk)
	return nil
}

func endDataSet(rd *Reader, f *frame) error {
	dsd := currentDSD(rd)
	ds := &sdmx.DataSet{StructuredBy: dsd}

	for _, v := range rd.stk.popAllKey("Group") {
		ds.EnsureGroup(v.(*sdmx.GroupKey))
	}

	// Observations carried directly under DataSet, outside any Series —
	// the flat, AllDimensions-organized case.
	var flat []*sdmx.Observation
	for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassObservation)) {
		flat = append(flat, v.(*sdmx.Observation))
	}
	if len(flat) > 0 {
		ds.AddObs(flat, nil)
	}

	for _, v := range rd.stk.popAllKey("Series") {
		sb := v.(seriesBucket)
		ds.AddObs(sb.obs, sb.key)
	}

	for _, o := range ds.Obs {
		ds.AddGroupRefs(o)
	}

	rd.msg.Data = append(rd.msg.Data, ds)
	return nil
}
