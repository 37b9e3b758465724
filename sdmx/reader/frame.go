package reader

import (
	"encoding/xml"
	"strings"

	"github.com/agentflare-ai/sdmx-go/sdmx/qname"
)

// frame tracks one currently-open XML element: its attributes (collected at
// StartElement) and its accumulated character data (collected across
// CharData tokens until the matching EndElement). Only leaf elements
// (Name, Description, ObsValue, ...) ever care about text; container
// elements simply carry whitespace that nothing reads.
type frame struct {
	name  xml.Name
	attrs map[string]string
	text  strings.Builder
}

func newFrame(se xml.StartElement) *frame {
	f := &frame{name: se.Name, attrs: make(map[string]string, len(se.Attr))}
	for _, a := range se.Attr {
		f.attrs[attrKey(a.Name)] = a.Value
	}
	return f
}

// attrKey renders an xml.Name the way SDMX-ML attributes are looked up
// elsewhere in this package: unprefixed by default, "xml:lang" for the one
// attribute from the XML namespace this format uses, and "prefix:local" for
// anything else namespaced (SDMX-ML attributes are otherwise always
// unprefixed, so this branch is defensive rather than load-bearing).
func attrKey(n xml.Name) string {
	switch n.Space {
	case "", qname.NSStructure, qname.NSCommon, qname.NSMessage, qname.NSGenericData, qname.NSStructureSpecificData, qname.NSFooter:
		return n.Local
	case "xml":
		return "xml:" + n.Local
	default:
		if p := qname.Prefix(n.Space); p != "" {
			return p + ":" + n.Local
		}
		return n.Local
	}
}

// Text returns the frame's accumulated character data with surrounding
// whitespace trimmed.
func (f *frame) Text() string {
	return strings.TrimSpace(f.text.String())
}

// Local is shorthand for the element's localname.
func (f *frame) Local() string { return f.name.Local }
