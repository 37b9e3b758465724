package reader

import (
	"github.com/agentflare-ai/sdmx-go/sdmx"
	"github.com/agentflare-ai/sdmx-go/sdmx/qname"
)

// <Ref .../> and <URN>...</URN> are the two concrete encodings of a
// reference (spec.md §4.3). Both push an unresolved *Reference onto the
// working stack's reserved classReference bucket, keyed by runtime class
// rather than by localname, since nothing else ever needs to look one up
// by name: the immediate enclosing element is always the sole consumer,
// and it pops by class.
func init() {
	onEnd("Ref", func(rd *Reader, f *frame) error {
		hint := sdmx.Class(qname.NormalizeClassName(rd.parentTag()))
		ref := newReferenceFromRef(f.attrs, hint)
		rd.stk.push(&ref)
		return nil
	})
	onEnd("URN", func(rd *Reader, f *frame) error {
		hint := sdmx.Class(qname.NormalizeClassName(rd.parentTag()))
		ref, err := newReferenceFromURN(f.Text(), hint)
		if err != nil {
			return &MalformedReference{Detail: err.Error()}
		}
		rd.stk.push(&ref)
		return nil
	})
}

// popPendingRef removes the Reference placeholder left by a direct <Ref>/
// <URN> child, if any, optionally correcting its class with hint (pass ""
// to keep the generic parentTag-derived default).
func popPendingRef(rd *Reader, hint sdmx.Class) *Reference {
	v := rd.stk.popSingleClass(classReference)
	if v == nil {
		return nil
	}
	ref := v.(*Reference)
	ref.applyHint(hint)
	return ref
}

// registerReferenceWrapper registers an end-handler for a wrapper element
// whose entire content is a single <Ref>/<URN> (com:Parent,
// str:ConceptIdentity, str:Enumeration, str:AttachmentGroup, ...): it pops
// the pending reference, applies the wrapper's own correction (hint, or ""
// to keep the default), and re-files it under the wrapper's own localname
// for the enclosing element to consume.
func registerReferenceWrapper(tag string, hint sdmx.Class) {
	onEnd(tag, func(rd *Reader, f *frame) error {
		ref := popPendingRef(rd, hint)
		if ref == nil {
			rd.warn(&MalformedReference{Detail: tag + " contained neither a Ref nor a URN"})
			return nil
		}
		rd.stk.pushKey(tag, ref)
		return nil
	})
}

func init() {
	registerReferenceWrapper("ConceptIdentity", sdmx.ClassConcept)
	registerReferenceWrapper("Enumeration", sdmx.ClassCodelist)
	registerReferenceWrapper("AttachmentGroup", sdmx.ClassGroupDimensionDescriptor)
	registerReferenceWrapper("Target", "")

	// str:Source (a Categorisation's Ref/URN wrapper) collides on bare
	// localname with mes:Source (the Header's localized free-text
	// attribution, handlers_message.go). Only directly inside a Header is
	// it the latter; a Categorisation's Source always wraps a Ref/URN.
	onEnd("Source", func(rd *Reader, f *frame) error {
		if rd.parentTag() == "Header" {
			rd.stk.pushKey("HeaderSource", localization{locale: localeOf(f), text: f.Text()})
			return nil
		}
		ref := popPendingRef(rd, "")
		if ref == nil {
			rd.warn(&MalformedReference{Detail: "Source contained neither a Ref nor a URN"})
			return nil
		}
		rd.stk.pushKey("Source", ref)
		return nil
	})

	// "Structure" names both the message root element (a Structure-kind
	// message) and, nested inside mes:Header or str:Dataflow, a wrapper
	// around a single Ref/URN. Only the latter has a pending reference to
	// collect; at the root there is nothing to pop and nothing to warn
	// about.
	onEnd("Structure", func(rd *Reader, f *frame) error {
		if rd.parentTag() == "" {
			return nil
		}
		ref := popPendingRef(rd, "")
		if ref == nil {
			return nil
		}
		rd.stk.pushKey("Structure", ref)
		rd.stk.pushKey("StructureDimAtObs", f.attrs["dimensionAtObservation"])
		return nil
	})

	onEnd("Parent", func(rd *Reader, f *frame) error {
		grandparent := sdmx.Class(qname.NormalizeClassName(rd.parentTag()))
		ref := popPendingRef(rd, grandparent)
		if ref == nil {
			rd.warn(&MalformedReference{Detail: "com:Parent contained neither a Ref nor a URN"})
			return nil
		}
		rd.stk.pushKey("Parent", ref)
		return nil
	})
}
