package sdmx

// InternationalString is a set of localized labels keyed by locale
// (e.g. "en", "fr"). Per spec invariant, each (locale, label) pair appears
// at most once — backed by a map, a second Add for the same locale
// overwrites rather than duplicating.
type InternationalString map[string]string

// DefaultLocale is used for <com:Name>/<com:Description>/... elements that
// carry no xml:lang attribute.
const DefaultLocale = "en"

// Add records a localized label, creating the map on first use.
func (s *InternationalString) Add(locale, text string) {
	if *s == nil {
		*s = make(InternationalString)
	}
	if locale == "" {
		locale = DefaultLocale
	}
	(*s)[locale] = text
}

// Localization is a transient (locale, text) pair collected from a single
// <com:Name>/<com:Description>/<com:AnnotationText>/... element before being
// folded into an InternationalString by the nameable() builder step.
type Localization struct {
	Locale string
	Text   string
}

// Annotation is a free-form note attachable to any Annotable artifact.
type Annotation struct {
	ID    string
	Title string
	Type  string
	URL   string
	Text  InternationalString
}

// Annotable is the root of the SDMX-IM artifact chain: every artifact may
// carry a sequence of Annotations.
type Annotable struct {
	Annotations []Annotation
}

// Identifiable adds a mandatory id to Annotable.
type Identifiable struct {
	Annotable
	ID string
}

// Nameable adds localized name/description to Identifiable.
type Nameable struct {
	Identifiable
	Name        InternationalString
	Description InternationalString
}

// Versionable adds a version string to Nameable.
type Versionable struct {
	Nameable
	Version string
}

// Maintainable adds maintainer agency and lifecycle/URI metadata to
// Versionable. It is the smallest unit of external reference in SDMX: an
// artifact may be fully populated, or may be only a stub known by identity
// with IsExternalReference set.
type Maintainable struct {
	Versionable
	Maintainer          *Agency
	IsExternalReference bool
	IsFinal             bool
	URI                 string
	URN                 string
}

// MaintainableKey uniquely identifies a Maintainable within one parsed
// Message, per the spec.md §3.2 invariant "class, id[, version]".
type MaintainableKey struct {
	Class   Class
	ID      string
	Version string
}

func (m *Maintainable) Key(class Class) MaintainableKey {
	return MaintainableKey{Class: class, ID: m.ID, Version: m.Version}
}
