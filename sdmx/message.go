package sdmx

// Kind distinguishes the six SDMX-ML message root elements this reader
// understands.
type Kind string

const (
	KindGenericData           Kind = "GenericData"
	KindGenericTimeSeriesData Kind = "GenericTimeSeriesData"
	KindStructureSpecificData Kind = "StructureSpecificData"
	KindStructureSpecificTS   Kind = "StructureSpecificTimeSeriesData"
	KindStructure             Kind = "Structure"
	KindError                 Kind = "Error"
)

// Header carries the SDMX-ML message envelope metadata.
type Header struct {
	ID       string
	Test     bool
	Prepared string
	Sender   *Agency
	Receiver *Agency
	Source   InternationalString
}

// Footer carries out-of-band diagnostic text, e.g. for Error messages.
type Footer struct {
	Code     int
	Severity string
	Text     []InternationalString
}

// Message is the root of the parsed object tree. It is not itself held on
// the working stack; ReadMessage fails if anything non-ignored is left
// there at end of document.
type Message struct {
	Kind   Kind
	Header Header
	Footer *Footer

	// ObservationDimension is the component named by the header's
	// dimensionAtObservation attribute (spec.md §4.5): the single
	// dimension used to key an Observation.Dimension for series-organized
	// generic data, or the AllDimensions sentinel for flat data.
	ObservationDimension DimensionComponent

	Data []*DataSet

	Dataflow           map[string]*DataflowDefinition
	Codelist           map[string]*Codelist
	Structure          map[string]*DataStructureDefinition
	Constraint         map[string]*ContentConstraint
	CategoryScheme     map[string]*CategoryScheme
	ConceptScheme      map[string]*ConceptScheme
	OrganisationScheme map[string]*OrganisationScheme
	ProvisionAgreement map[string]any
}

// NewMessage returns a Message with all artefact maps initialized.
func NewMessage(kind Kind) *Message {
	return &Message{
		Kind:               kind,
		Dataflow:           make(map[string]*DataflowDefinition),
		Codelist:           make(map[string]*Codelist),
		Structure:          make(map[string]*DataStructureDefinition),
		Constraint:         make(map[string]*ContentConstraint),
		CategoryScheme:     make(map[string]*CategoryScheme),
		ConceptScheme:      make(map[string]*ConceptScheme),
		OrganisationScheme: make(map[string]*OrganisationScheme),
		ProvisionAgreement: make(map[string]any),
	}
}

// AllDimensions is the sentinel ObservationDimension used when a message's
// header declares `dimensionAtObservation="AllDimensions"` (flat,
// non-series data): every dimension of the DSD identifies each
// observation, rather than one distinguished dimension.
var AllDimensions = &Dimension{Component: Component{Identifiable: Identifiable{ID: "AllDimensions"}}}
