// Package urn parses and formats SDMX URNs:
//
//	urn:sdmx:org.sdmx.infomodel.{package}.{class}={agency}:{id}({version})[.{item_id}]
//
// Ported from original_source/sdmx/urn.py's `URN` regex and match()/make().
package urn

import (
	"fmt"
	"regexp"
)

var pattern = regexp.MustCompile(
	`^urn:sdmx:org\.sdmx\.infomodel` +
		`\.(?P<package>[^.]*)` +
		`\.(?P<class>[^=]*)=((?P<agency>[^:]*):)?` +
		`(?P<id>[^(.]*)(\((?P<version>[\d.]*)\))?` +
		`(\.(?P<item_id>.*))?$`,
)

// Parts is the decoded form of an SDMX URN.
type Parts struct {
	Package string
	Class   string
	Agency  string
	ID      string
	Version string
	ItemID  string
}

// Match decodes an SDMX URN string. It reports ok=false if s does not match
// the URN grammar at all.
func Match(s string) (Parts, bool) {
	m := pattern.FindStringSubmatch(s)
	if m == nil {
		return Parts{}, false
	}
	p := Parts{}
	for i, name := range pattern.SubexpNames() {
		if i == 0 || name == "" {
			continue
		}
		switch name {
		case "package":
			p.Package = m[i]
		case "class":
			p.Class = m[i]
		case "agency":
			p.Agency = m[i]
		case "id":
			p.ID = m[i]
		case "version":
			p.Version = m[i]
		case "item_id":
			p.ItemID = m[i]
		}
	}
	return p, true
}

// Make formats an SDMX URN for a maintainable artefact.
func Make(pkg, class, agency, id, version string) string {
	return fmt.Sprintf("urn:sdmx:org.sdmx.infomodel.%s.%s=%s:%s(%s)", pkg, class, agency, id, version)
}
