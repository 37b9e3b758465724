package reader

// handlerFunc is invoked for one (tag, event) pair, with f describing the
// element currently being opened or closed. It mutates rd's working stack
// and/or rd.msg and returns an error only for conditions spec.md treats as
// fatal (StructureMismatch, a malformed reference) — anything else is
// recorded via rd.warn and parsing continues.
type handlerFunc func(rd *Reader, f *frame) error

var (
	startHandlers = map[string]handlerFunc{}
	endHandlers   = map[string]handlerFunc{}
	skipSet       = map[string]bool{}
)

// onStart registers a handler fired when the named element opens.
func onStart(name string, h handlerFunc) { startHandlers[name] = h }

// onEnd registers a handler fired when the named element closes, after its
// children have all been processed.
func onEnd(name string, h handlerFunc) { endHandlers[name] = h }

// onBoth registers a start and an end handler for the same element in one
// call; a nil handler is not registered.
func onBoth(name string, start, end handlerFunc) {
	if start != nil {
		onStart(name, start)
	}
	if end != nil {
		onEnd(name, end)
	}
}

// skip marks elements that carry no payload of their own: pure structural
// wrappers whose children are collected directly onto the working stack
// under their own class/key, and the document root(s), whose dispatch is
// handled specially by the driver rather than via this table.
func skip(names ...string) {
	for _, n := range names {
		skipSet[n] = true
	}
}

func init() {
	skip(
		"Structures",
		"Codelists", "ConceptSchemes", "CategorySchemes", "Categorisations",
		"DataStructures", "Dataflows", "Constraints", "OrganisationSchemes",
		"ProvisionAgreements",
		"Concepts", "Categories", "Codes", "Agencies", "DataProviders",
		"Annotations",
		"GenericData", "GenericTimeSeriesData",
		"StructureSpecificData", "StructureSpecificTimeSeriesData",
		"Error",
	)
}
