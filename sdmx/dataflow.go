package sdmx

// DataflowDefinition is a named usage of a DataStructureDefinition.
type DataflowDefinition struct {
	Maintainable
	Structure *DataStructureDefinition
}

// StructureUsage is the transient resolution target of a
// <str:StructureUsage> reference in a message header: enough identity
// (id/maintainer/version) to synthesize a DataflowDefinition-shaped DSD
// reference when no <com:Structure> is present.
type StructureUsage struct {
	Maintainable
}

// Categorisation relates an artefact to a Category.
type Categorisation struct {
	Maintainable
	Artefact Identified
	Category *Category
}
