package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// keyValue is the transient form of a com:KeyValue element: a component id
// plus its one (ComponentValue, inside a DataKeySet's Key) or many
// (MemberSelection, inside a CubeRegion) values.
type keyValue struct {
	id     string
	values []string
}

func init() {
	// com:Value (this element's text content) collides on bare localname
	// with gen:Value (an id/value attribute pair inside a generic data
	// SeriesKey/GroupKey/ObsKey/Attributes leaf). The single
	// onEnd("Value", ...) registration dispatching between the two lives in
	// handlers_dataset.go, to avoid two competing registrations racing on
	// package init order.

	// com:KeyValue (a Dimension's member selection) and com:Attribute (a
	// DataAttribute's) share the same shape and both feed a CubeRegion's
	// Member map, keyed only by component id; nothing downstream needs to
	// tell the two apart, so both land in the same "KeyValue" bucket.
	memberSelectionHandler := func(rd *Reader, f *frame) error {
		kv := keyValue{id: f.attrs["id"]}
		for _, v := range rd.stk.popAllKey("Value") {
			kv.values = append(kv.values, v.(string))
		}
		rd.stk.pushKey("KeyValue", kv)
		return nil
	}
	onEnd("KeyValue", memberSelectionHandler)

	// com:Attribute collides on localname with str:Attribute (a DSD's
	// DataAttribute definition, registered by buildDataAttribute in
	// handlers_component.go). Only a CubeRegion wraps the member-selection
	// sense directly; everywhere else it's a component definition.
	onEnd("Attribute", func(rd *Reader, f *frame) error {
		if rd.parentTag() == "CubeRegion" {
			return memberSelectionHandler(rd, f)
		}
		return buildDataAttribute(rd, f)
	})

	onEnd("CubeRegion", func(rd *Reader, f *frame) error {
		cr := &sdmx.CubeRegion{
			Included: f.attrs["include"] != "false",
			Member:   make(map[sdmx.Identified]sdmx.MemberSelection),
		}
		for _, v := range rd.stk.popAllKey("KeyValue") {
			kv := v.(keyValue)
			id := &sdmx.Identifiable{ID: kv.id}
			ms := sdmx.MemberSelection{ValuesFor: id}
			for _, val := range kv.values {
				ms.Values = append(ms.Values, sdmx.MemberValue{Value: val})
			}
			cr.Member[id] = ms
		}
		rd.stk.push(cr)
		return nil
	})

	// str:Key, nested directly in a DataKeySet, names one explicit key: its
	// own inclusion flag comes from the enclosing DataKeySet, assigned there
	// once every Key has been collected.
	onEnd("Key", func(rd *Reader, f *frame) error {
		dk := &sdmx.DataKey{KeyValue: make(map[sdmx.Identified]sdmx.ComponentValue)}
		for _, v := range rd.stk.popAllKey("KeyValue") {
			kv := v.(keyValue)
			id := &sdmx.Identifiable{ID: kv.id}
			cv := sdmx.ComponentValue{ValueFor: id}
			if len(kv.values) > 0 {
				cv.Value = kv.values[len(kv.values)-1]
			}
			dk.KeyValue[id] = cv
		}
		rd.stk.pushKey("DataKey", dk)
		return nil
	})

	onEnd("DataKeySet", func(rd *Reader, f *frame) error {
		included := f.attrs["isIncluded"] != "false"
		dks := &sdmx.DataKeySet{Included: included}
		for _, v := range rd.stk.popAllKey("DataKey") {
			dk := v.(*sdmx.DataKey)
			dk.Included = included
			dks.Keys = append(dks.Keys, *dk)
		}
		rd.stk.pushKey("DataKeySet", dks)
		return nil
	})

	// ConstraintAttachment names the dataflows/data structures/provision
	// agreements/data providers a ContentConstraint restricts. Each child
	// wraps a single Ref/URN via the same dual-purpose tag used for that
	// artefact's own definition (endDataStructure, endDataflow, ...), so no
	// dedicated wrapper handler is needed here beyond collecting whatever
	// those handlers filed.
	onEnd("ConstraintAttachment", func(rd *Reader, f *frame) error {
		targets := rd.stk.popAllClass(sdmx.IsConstrainableArtefact)
		rd.stk.pushKey("ConstraintAttachment", targets)
		return nil
	})

	onEnd("ProvisionAgreement", func(rd *Reader, f *frame) error {
		ref := popPendingRef(rd, "")
		if ref == nil {
			return nil
		}
		v, err := rd.resolve(*ref)
		if err != nil {
			rd.warn(err)
			return nil
		}
		rd.stk.pushAs(sdmx.ClassProvisionAgreement, v)
		return nil
	})

	onEnd("ContentConstraint", func(rd *Reader, f *frame) error {
		cc := &sdmx.ContentConstraint{Maintainable: rd.buildMaintainable(f)}
		cc.Role = sdmx.ConstraintRole{Role: sdmx.ConstraintRoleAllowable}
		if f.attrs["type"] == "Actual" {
			cc.Role.Role = sdmx.ConstraintRoleActual
		}
		if v := rd.stk.popSingleKey("ConstraintAttachment"); v != nil {
			for _, t := range v.([]any) {
				cc.AddContent(t)
			}
		}
		if v := rd.stk.popSingleKey("DataKeySet"); v != nil {
			cc.DataContentKeys = v.(*sdmx.DataKeySet)
		}
		for _, v := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassCubeRegion)) {
			cc.DataContentRegion = append(cc.DataContentRegion, *(v.(*sdmx.CubeRegion)))
		}
		rd.maintained.commit(sdmx.ClassContentConstraint, cc.ID, cc)
		rd.msg.Constraint[cc.ID] = cc
		return nil
	})
}
