package sdmx

// Agency is an organisation that maintains SDMX artifacts.
type Agency struct {
	Nameable
	itemRelations[Agency]
}

// Code is a single value of a Codelist.
type Code struct {
	Nameable
	itemRelations[Code]
}

// Category classifies dataflows within a CategoryScheme.
type Category struct {
	Nameable
	itemRelations[Category]
}

// DataProvider supplies observations for a dataflow.
type DataProvider struct {
	Nameable
	itemRelations[DataProvider]
}

// AgencyScheme, Codelist, CategoryScheme and DataProviderScheme are the
// maintainable containers for each Item subtype. OrganisationScheme is
// modeled as a pass-through AgencyScheme: spec.md §3.1 lists it without a
// distinct item type, and no invariant in spec.md distinguishes its
// internals from AgencyScheme's.
type (
	AgencyScheme       = ItemScheme[*Agency]
	Codelist           = ItemScheme[*Code]
	CategoryScheme     = ItemScheme[*Category]
	DataProviderScheme = ItemScheme[*DataProvider]
	OrganisationScheme = ItemScheme[*Agency]
)
