package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

// localization is the transient (locale, text) pair collected from one
// <com:Name>/<com:Description>/<com:AnnotationText> element, pushed onto a
// string-keyed stack bucket under the wrapping attribute's localname and
// folded into an InternationalString by the nameable layer.
type localization struct {
	locale string
	text   string
}

// The five builder steps mirror the Annotable -> Identifiable -> Nameable
// -> Versionable -> Maintainable chain of sdmx/annotation.go: each drains
// exactly the stack buckets its own layer owns and reads exactly the XML
// attributes its own layer defines, then calls down to the layer below.

func (rd *Reader) buildAnnotable() sdmx.Annotable {
	var out sdmx.Annotable
	for _, a := range rd.stk.popAllClass(sdmx.Exactly(sdmx.ClassAnnotation)) {
		out.Annotations = append(out.Annotations, *(a.(*sdmx.Annotation)))
	}
	return out
}

func (rd *Reader) buildIdentifiable(f *frame) sdmx.Identifiable {
	return sdmx.Identifiable{Annotable: rd.buildAnnotable(), ID: f.attrs["id"]}
}

func (rd *Reader) buildNameable(f *frame) sdmx.Nameable {
	n := sdmx.Nameable{Identifiable: rd.buildIdentifiable(f)}
	for _, v := range rd.stk.popAllKey("Name") {
		l := v.(localization)
		n.Name.Add(l.locale, l.text)
	}
	for _, v := range rd.stk.popAllKey("Description") {
		l := v.(localization)
		n.Description.Add(l.locale, l.text)
	}
	return n
}

func (rd *Reader) buildVersionable(f *frame) sdmx.Versionable {
	v := sdmx.Versionable{Nameable: rd.buildNameable(f)}
	v.Version = f.attrs["version"]
	if v.Version == "" {
		v.Version = "1.0"
	}
	return v
}

func (rd *Reader) buildMaintainable(f *frame) sdmx.Maintainable {
	m := sdmx.Maintainable{Versionable: rd.buildVersionable(f)}
	m.IsFinal = f.attrs["isFinal"] == "true"
	m.URN = f.attrs["urn"]
	m.URI = f.attrs["uri"]
	if agencyID := f.attrs["agencyID"]; agencyID != "" {
		m.Maintainer = &sdmx.Agency{Nameable: sdmx.Nameable{Identifiable: sdmx.Identifiable{ID: agencyID}}}
	}
	return m
}
