package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

func init() {
	onStart("Concept", stashNames)
	onEnd("Concept", endConcept)
}

func endConcept(rd *Reader, f *frame) error {
	defer rd.stk.unstash()
	if ref := popPendingRef(rd, ""); ref != nil {
		v, err := rd.resolve(*ref)
		if err != nil {
			rd.warn(err)
			return nil
		}
		rd.stk.push(v)
		return nil
	}
	c := &sdmx.Concept{Nameable: rd.buildNameable(f)}
	if v := rd.stk.popSingleKey("CoreRepresentation"); v != nil {
		c.CoreRepresentation = v.(*sdmx.Representation)
	}
	for _, ch := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassConcept)) {
		child := ch.(*sdmx.Concept)
		child.SetParent(c)
		c.AppendChild(child)
	}
	if v := rd.stk.popSingleKey("Parent"); v != nil {
		attachItemParent(rd, sdmx.ClassConcept, c, v.(*Reference),
			func(p *sdmx.Concept) { c.SetParent(p) },
			func(p *sdmx.Concept) { p.AppendChild(c) })
	}
	rd.stk.push(c)
	return nil
}
