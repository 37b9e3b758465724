package reader

import (
	"strconv"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

type footerMessage struct {
	code     int
	severity string
	text     []sdmx.InternationalString
}

func init() {
	onEnd("Message", func(rd *Reader, f *frame) error {
		if rd.parentTag() != "Footer" {
			return nil
		}
		code, _ := strconv.Atoi(f.attrs["code"])
		fm := footerMessage{code: code, severity: f.attrs["severity"]}
		for _, v := range rd.stk.popAllKey("Text") {
			l := v.(localization)
			var is sdmx.InternationalString
			is.Add(l.locale, l.text)
			fm.text = append(fm.text, is)
		}
		rd.stk.pushKey("FooterMessage", fm)
		return nil
	})

	onEnd("Footer", func(rd *Reader, f *frame) error {
		msgs := rd.stk.popAllKey("FooterMessage")
		if len(msgs) == 0 {
			return nil
		}
		fm := msgs[0].(footerMessage)
		rd.msg.Footer = &sdmx.Footer{Code: fm.code, Severity: fm.severity, Text: fm.text}
		return nil
	})
}
