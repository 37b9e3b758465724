package reader

import "github.com/agentflare-ai/sdmx-go/sdmx"

func localeOf(f *frame) string {
	if lang := f.attrs["xml:lang"]; lang != "" {
		return lang
	}
	return sdmx.DefaultLocale
}

func init() {
	onEnd("Name", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Name", localization{locale: localeOf(f), text: f.Text()})
		return nil
	})
	onEnd("Description", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Description", localization{locale: localeOf(f), text: f.Text()})
		return nil
	})

	onEnd("AnnotationTitle", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("AnnotationTitle", f.Text())
		return nil
	})
	onEnd("AnnotationType", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("AnnotationType", f.Text())
		return nil
	})
	onEnd("AnnotationURL", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("AnnotationURL", f.Text())
		return nil
	})
	onEnd("AnnotationText", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("AnnotationText", localization{locale: localeOf(f), text: f.Text()})
		return nil
	})
	onEnd("Text", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("Text", localization{locale: localeOf(f), text: f.Text()})
		return nil
	})

	onEnd("Annotation", func(rd *Reader, f *frame) error {
		ann := &sdmx.Annotation{ID: f.attrs["id"]}
		if v := rd.stk.popSingleKey("AnnotationTitle"); v != nil {
			ann.Title = v.(string)
		}
		if v := rd.stk.popSingleKey("AnnotationType"); v != nil {
			ann.Type = v.(string)
		}
		if v := rd.stk.popSingleKey("AnnotationURL"); v != nil {
			ann.URL = v.(string)
		}
		for _, v := range rd.stk.popAllKey("AnnotationText") {
			l := v.(localization)
			ann.Text.Add(l.locale, l.text)
		}
		rd.stk.push(ann)
		return nil
	})

	// Leaf text elements reused verbatim across several containers
	// (mes:Header/ID, data-set timestamps, ...).
	onEnd("ID", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("ID", f.Text())
		return nil
	})
}
