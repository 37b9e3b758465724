package reader

import (
	"strings"
	"unicode"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

// str:TextFormat carries the facet's value type and any remaining
// constraint attributes (isSequence, minLength, maxLength, startValue,
// ...) directly as XML attributes, with no child content — unlike almost
// everything else in the format, it is built entirely from f.attrs.
func init() {
	onEnd("TextFormat", func(rd *Reader, f *frame) error {
		facet := sdmx.Facet{
			ValueType: sdmx.ToFacetValueType(f.attrs["textType"]),
			Type:      make(sdmx.FacetType),
		}
		for k, v := range f.attrs {
			if k == "textType" {
				continue
			}
			// minLength -> min_length, matching sdmx.FacetType's key convention.
			var b strings.Builder
			for i, r := range k {
				if unicode.IsUpper(r) {
					if i > 0 {
						b.WriteByte('_')
					}
					r = unicode.ToLower(r)
				}
				b.WriteRune(r)
			}
			facet.Type[b.String()] = v
		}
		rd.stk.pushKey("TextFormat", facet)
		return nil
	})

	onEnd("CoreRepresentation", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("CoreRepresentation", buildRepresentation(rd))
		return nil
	})
	onEnd("LocalRepresentation", func(rd *Reader, f *frame) error {
		rd.stk.pushKey("LocalRepresentation", buildRepresentation(rd))
		return nil
	})
}

func buildRepresentation(rd *Reader) *sdmx.Representation {
	repr := &sdmx.Representation{}
	if v := rd.stk.popSingleKey("Enumeration"); v != nil {
		ref := v.(*Reference)
		if enumerated, err := rd.resolve(*ref); err == nil {
			repr.Enumerated = enumerated
		} else {
			rd.warn(err)
		}
	}
	if v := rd.stk.popSingleKey("TextFormat"); v != nil {
		repr.NonEnumerated = append(repr.NonEnumerated, v.(sdmx.Facet))
	}
	return repr
}
