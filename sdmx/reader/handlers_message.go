package reader

import (
	"math"
	"strconv"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

func init() {
	onEnd("Test", func(rd *Reader, f *frame) error {
		b, _ := strconv.ParseBool(f.Text())
		rd.stk.pushKey("Test", b)
		return nil
	})
	onEnd("Prepared", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Prepared", f.Text())
		return nil
	})
	onEnd("Sender", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Sender", buildHeaderAgency(f))
		return nil
	})
	onEnd("Receiver", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Receiver", buildHeaderAgency(f))
		return nil
	})
	// mes:Source (a localized free-text attribution on the Header) collides
	// on bare localname with str:Source (a Categorisation's Ref/URN
	// wrapper, handlers_reference.go). The single onEnd("Source", ...)
	// registration dispatching between the two lives in
	// handlers_reference.go, to avoid two competing registrations racing
	// on package init order.

	onEnd("Header", func(rd *Reader, f *frame) error {
		h := sdmx.Header{}
		if v := rd.stk.popSingleKey("ID"); v != nil {
			h.ID = v.(string)
		}
		if v := rd.stk.popSingleKey("Test"); v != nil {
			h.Test = v.(bool)
		}
		if v := rd.stk.popSingleKey("Prepared"); v != nil {
			h.Prepared = v.(string)
		}
		if v := rd.stk.popSingleKey("Sender"); v != nil {
			h.Sender = v.(*sdmx.Agency)
		}
		if v := rd.stk.popSingleKey("Receiver"); v != nil {
			h.Receiver = v.(*sdmx.Agency)
		}
		for _, v := range rd.stk.popAllKey("HeaderSource") {
			l := v.(localization)
			h.Source.Add(l.locale, l.text)
		}
		rd.msg.Header = h

		// mes:Structure wraps the dimensionAtObservation attribute plus a
		// reference naming the dataflow/DSD the payload conforms to
		// (absent from Structure-kind messages, where this element never
		// appears).
		if v := rd.stk.popSingleKey("Structure"); v != nil {
			ref := v.(*Reference)
			dimID, _ := rd.stk.popSingleKey("StructureDimAtObs").(string)
			applyObservationDimension(rd, dimID)
			rd.structureRef = ref
			if rd.callerDSD == nil {
				rd.resolvedStructureDSD = resolveStructureDSD(rd, ref)
			}
		}
		return nil
	})
}

// resolveStructureDSD follows the header's Structure reference to a concrete
// DataStructureDefinition: the reference may name the DSD directly, or (the
// common case) a DataflowDefinition, in which case its own Structure is
// used — constructing a bare synthetic DSD under the dataflow's id if that
// dataflow turns out to be only an external-reference stub.
func resolveStructureDSD(rd *Reader, ref *Reference) *sdmx.DataStructureDefinition {
	v, err := rd.resolve(*ref)
	if err != nil {
		rd.warn(err)
		return nil
	}
	switch t := v.(type) {
	case *sdmx.DataStructureDefinition:
		return t
	case *sdmx.DataflowDefinition:
		if t.Structure != nil {
			return t.Structure
		}
		dsd := sdmx.NewDataStructureDefinition()
		dsd.ID = t.ID
		return dsd
	default:
		return nil
	}
}

func buildHeaderAgency(f *frame) *sdmx.Agency {
	return &sdmx.Agency{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: f.attrs["id"]}}}
}

// applyObservationDimension sets msg.ObservationDimension from the
// dimensionAtObservation attribute value captured off mes:Structure,
// resolving against the caller-supplied DSD when one was given. A
// forced-creation dimension (one the DSD didn't already declare) is given
// the sentinel order math.MaxInt, per spec.md §4.5, so it sorts after every
// explicitly positioned dimension rather than colliding with position 0.
func applyObservationDimension(rd *Reader, dimID string) {
	if dimID == "" || dimID == "AllDimensions" {
		rd.msg.ObservationDimension = sdmx.AllDimensions
		return
	}
	if rd.callerDSD != nil {
		rd.msg.ObservationDimension = rd.callerDSD.GetOrCreateDimension(dimID, dimID == "TIME_PERIOD", math.MaxInt)
		return
	}
	rd.msg.ObservationDimension = &sdmx.Dimension{
		Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: dimID}},
		Order:     math.MaxInt,
	}
}
