package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// Item elements (Agency, Code, Category, DataProvider) may either be a full
// definition or, rarely, a bare reference to one defined elsewhere. Each
// stashes "Name"/"Description" on start so a nested child item (Category
// genuinely nests in SDMX-ML; the others do not, but stashing uniformly
// costs nothing) cannot steal the enclosing scheme's own localized names
// off the stack, and on end either resolves itself as a reference or
// builds the full Item, attaching any nested children and any
// com:Parent-referenced parent.
func init() {
	onStart("Agency", stashNames)
	onStart("Code", stashNames)
	onStart("Category", stashNames)
	onStart("DataProvider", stashNames)

	onEnd("Agency", endAgency)
	onEnd("Code", endCode)
	onEnd("Category", endCategory)
	onEnd("DataProvider", endDataProvider)
}

func stashNames(rd *Reader, f *frame) error {
	rd.stk.stash("Name", "Description")
	return nil
}

func endAgency(rd *Reader, f *frame) error {
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
	a := &sdmx.Agency{Nameable: rd.buildNameable(f)}
	for _, c := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassAgency)) {
		child := c.(*sdmx.Agency)
		child.SetParent(a)
		a.AppendChild(child)
	}
	if v := rd.stk.popSingleKey("Parent"); v != nil {
		attachItemParent(rd, sdmx.ClassAgency, a, v.(*Reference),
			func(p *sdmx.Agency) { a.SetParent(p) },
			func(p *sdmx.Agency) { p.AppendChild(a) })
	}
	rd.stk.push(a)
	return nil
}

func endCode(rd *Reader, f *frame) error {
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
	c := &sdmx.Code{Nameable: rd.buildNameable(f)}
	for _, ch := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassCode)) {
		child := ch.(*sdmx.Code)
		child.SetParent(c)
		c.AppendChild(child)
	}
	if v := rd.stk.popSingleKey("Parent"); v != nil {
		attachItemParent(rd, sdmx.ClassCode, c, v.(*Reference),
			func(p *sdmx.Code) { c.SetParent(p) },
			func(p *sdmx.Code) { p.AppendChild(c) })
	}
	rd.stk.push(c)
	return nil
}

func endCategory(rd *Reader, f *frame) error {
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
	c := &sdmx.Category{Nameable: rd.buildNameable(f)}
	for _, ch := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassCategory)) {
		child := ch.(*sdmx.Category)
		child.SetParent(c)
		c.AppendChild(child)
	}
	if v := rd.stk.popSingleKey("Parent"); v != nil {
		attachItemParent(rd, sdmx.ClassCategory, c, v.(*Reference),
			func(p *sdmx.Category) { c.SetParent(p) },
			func(p *sdmx.Category) { p.AppendChild(c) })
	}
	rd.stk.push(c)
	return nil
}

func endDataProvider(rd *Reader, f *frame) error {
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
	d := &sdmx.DataProvider{Nameable: rd.buildNameable(f)}
	if v := rd.stk.popSingleKey("Parent"); v != nil {
		attachItemParent(rd, sdmx.ClassDataProvider, d, v.(*Reference),
			func(p *sdmx.DataProvider) { d.SetParent(p) },
			func(p *sdmx.DataProvider) { p.AppendChild(d) })
	}
	rd.stk.push(d)
	return nil
}

// attachItemParent resolves a com:Parent reference against items of cls
// already accumulated on the working stack for the scheme currently being
// built (the common, same-scheme-by-id case), falling back to a warning
// (spec.md §7's forward-reference tolerance) when no such sibling exists
// yet — cross-scheme parents are not a construct SDMX-ML uses for these
// item kinds.
func attachItemParent[T any](rd *Reader, cls sdmx.Class, item *T, ref *Reference, setParent func(*T), appendChild func(*T)) {
	found := rd.stk.getClassByID(sdmx.Exactly(cls), ref.ChildID)
	if found == nil {
		rd.warn(&ForwardReference{Cls: cls, ID: ref.ChildID})
		return
	}
	parent := found.(*T)
	setParent(parent)
	appendChild(parent)
}
