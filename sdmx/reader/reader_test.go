package reader

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentflare-ai/sdmx-go/sdmx"
)

func readString(t *testing.T, doc string, opts Options) (*sdmx.Message, []error) {
	t.Helper()
	msg, warnings, err := ReadMessage(context.Background(), strings.NewReader(doc), opts)
	require.NoError(t, err)
	require.NotNil(t, msg)
	return msg, warnings
}

// Scenario 1 (spec.md §8): generic time-series data with
// dimensionAtObservation="TIME_PERIOD" — every Observation's dimension has
// exactly that one component.
func TestReadMessage_GenericTimeSeries_ObsDimensionIsSingleComponent(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:GenericTimeSeriesData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"
  xmlns:gen="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/data/generic">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
    <mes:Sender id="ECB"/>
    <mes:Structure dimensionAtObservation="TIME_PERIOD">
      <Ref id="ECB_EXR1" agencyID="ECB" version="1.0" class="Dataflow"/>
    </mes:Structure>
  </mes:Header>
  <mes:DataSet>
    <gen:Series>
      <gen:SeriesKey>
        <gen:Value id="FREQ" value="A"/>
        <gen:Value id="CURRENCY" value="USD"/>
      </gen:SeriesKey>
      <gen:Attributes>
        <gen:Value id="DECIMALS" value="2"/>
      </gen:Attributes>
      <gen:Obs>
        <gen:ObsDimension value="2020"/>
        <gen:ObsValue value="1.23"/>
      </gen:Obs>
      <gen:Obs>
        <gen:ObsDimension value="2021"/>
        <gen:ObsValue value="4.56"/>
      </gen:Obs>
    </gen:Series>
  </mes:DataSet>
</mes:GenericTimeSeriesData>`

	msg, _ := readString(t, doc, Options{})
	require.Equal(t, sdmx.KindGenericTimeSeriesData, msg.Kind)
	require.Len(t, msg.Data, 1)
	ds := msg.Data[0]
	require.Len(t, ds.Obs, 2)
	for _, o := range ds.Obs {
		assert.Len(t, o.Dimension.Values, 1)
		assert.Contains(t, o.Dimension.Values, "TIME_PERIOD")
		require.NotNil(t, o.SeriesKey)
		assert.Equal(t, "A", o.SeriesKey.Values["FREQ"])
		assert.Equal(t, "USD", o.SeriesKey.Values["CURRENCY"])
	}
	assert.Equal(t, "1.23", ds.Obs[0].Value)
}

func testDSD() *sdmx.DataStructureDefinition {
	d := sdmx.NewDataStructureDefinition()
	d.ID = "ECB_EXR1"
	d.Dimensions.Components = append(d.Dimensions.Components,
		&sdmx.Dimension{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: "FREQ"}}, Order: 1},
		&sdmx.Dimension{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: "CURRENCY"}}, Order: 2},
		&sdmx.TimeDimension{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: "TIME_PERIOD"}}, Order: 3},
	)
	d.Measures.Components = append(d.Measures.Components,
		&sdmx.PrimaryMeasure{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: "OBS_VALUE"}}},
	)
	d.Attributes.Components = append(d.Attributes.Components,
		&sdmx.DataAttribute{Component: sdmx.Component{Identifiable: sdmx.Identifiable{ID: "DECIMALS"}}, RelatedTo: sdmx.NoSpecifiedRelationship{}},
	)
	return d
}

// Scenario 2 (spec.md §8): structure-specific data where the DSD is
// supplied by the caller — no extend occurs, and attributes not declared
// as dimensions become attached_attribute entries.
func TestReadMessage_StructureSpecific_CallerDSD_NoExtend(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:StructureSpecificData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <mes:DataSet>
    <Series FREQ="A" CURRENCY="USD">
      <Obs TIME_PERIOD="2020" OBS_VALUE="1.23" DECIMALS="2"/>
      <Obs TIME_PERIOD="2021" OBS_VALUE="4.56" DECIMALS="2"/>
    </Series>
  </mes:DataSet>
</mes:StructureSpecificData>`

	dsd := testDSD()
	msg, warnings := readString(t, doc, Options{DSD: dsd})
	assert.Empty(t, warnings)
	require.Len(t, msg.Data, 1)
	ds := msg.Data[0]
	assert.Same(t, dsd, ds.StructuredBy)
	require.Len(t, ds.Obs, 2)

	o := ds.Obs[0]
	assert.Equal(t, "2020", o.Dimension.Values["TIME_PERIOD"])
	assert.Equal(t, "1.23", o.Value)
	require.Contains(t, o.AttachedAttribute, "DECIMALS")
	assert.Equal(t, "2", o.AttachedAttribute["DECIMALS"].Value)
	require.NotNil(t, o.AttachedAttribute["DECIMALS"].ValueFor)
	assert.Equal(t, "DECIMALS", o.AttachedAttribute["DECIMALS"].ValueFor.ID)

	// no new dimension/attribute was introduced by partitioning
	assert.Len(t, dsd.Dimensions.Components, 3)
	assert.Len(t, dsd.Attributes.Components, 1)
}

// Scenario 3 (spec.md §8): structure-specific data with no caller-supplied
// DSD — the DSD is grown to include every observed id.
func TestReadMessage_StructureSpecific_MissingDSD_Extends(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:StructureSpecificData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <mes:DataSet>
    <Series FREQ="A" CURRENCY="USD">
      <Obs TIME_PERIOD="2020" OBS_VALUE="1.23"/>
    </Series>
  </mes:DataSet>
</mes:StructureSpecificData>`

	msg, _ := readString(t, doc, Options{})
	require.Len(t, msg.Data, 1)
	ds := msg.Data[0]
	require.NotNil(t, ds.StructuredBy)
	require.Len(t, ds.Obs, 1)

	o := ds.Obs[0]
	assert.Equal(t, "2020", o.Dimension.Values["TIME_PERIOD"])
	require.NotNil(t, o.SeriesKey)
	assert.Equal(t, "A", o.SeriesKey.Values["FREQ"])
	assert.Equal(t, "USD", o.SeriesKey.Values["CURRENCY"])
	assert.Equal(t, "1.23", o.Value)

	for _, id := range []string{"FREQ", "CURRENCY", "TIME_PERIOD"} {
		_, ok := ds.StructuredBy.Dimensions.Get(id)
		assert.True(t, ok, "expected %s to have been promoted to a dimension", id)
	}
	_, ok := ds.StructuredBy.Measures.Get("OBS_VALUE")
	assert.True(t, ok, "expected OBS_VALUE to have been added as the measure")
}

// Scenario 4 (spec.md §8): a codelist with nested <str:Code> children and
// <str:Parent> references intermixed — the flattened item list contains
// each code exactly once, with (N - roots) parent links.
func TestReadMessage_Codelist_NestedAndParentReferences(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:Structure xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"
  xmlns:str="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure"
  xmlns:com="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/common">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <mes:Structures>
    <str:Codelists>
      <str:Codelist id="CL_FREQ" agencyID="SDMX" version="1.0">
        <com:Name>Frequency</com:Name>
        <str:Code id="A">
          <com:Name>Annual</com:Name>
          <str:Code id="A1">
            <com:Name>Annual sub-type</com:Name>
          </str:Code>
        </str:Code>
        <str:Code id="M">
          <com:Name>Monthly</com:Name>
          <com:Parent><Ref id="A"/></com:Parent>
        </str:Code>
      </str:Codelist>
    </str:Codelists>
  </mes:Structures>
</mes:Structure>`

	msg, warnings := readString(t, doc, Options{})
	assert.Empty(t, warnings)
	require.Equal(t, sdmx.KindStructure, msg.Kind)
	require.Contains(t, msg.Codelist, "CL_FREQ")
	cl := msg.Codelist["CL_FREQ"]

	flat := sdmx.FlattenItems(cl.Items, func(c *sdmx.Code) []*sdmx.Code { return c.Children() })
	ids := make(map[string]bool, len(flat))
	for _, c := range flat {
		assert.False(t, ids[c.GetID()], "code %s flattened more than once", c.GetID())
		ids[c.GetID()] = true
	}
	assert.Len(t, flat, 3)

	roots := 0
	parented := 0
	for _, c := range flat {
		if c.Parent() == nil {
			roots++
		} else {
			parented++
		}
	}
	assert.Equal(t, len(flat)-roots, parented)

	// "A1" nests XML-wise under "A"; "M" is a top-level str:Code wired to
	// "A" only via com:Parent. Both end up with "A" as their parent.
	for _, id := range []string{"A1", "M"} {
		var c *sdmx.Code
		for _, cand := range flat {
			if cand.GetID() == id {
				c = cand
			}
		}
		require.NotNil(t, c, "expected code %s in flattened list", id)
		require.NotNil(t, c.Parent())
		assert.Equal(t, "A", c.Parent().GetID())
	}
}

// Scenario 6 (spec.md §8): a footer message with severity="Error" and
// code="413" — Message.Footer has Code=413 and one localized text per
// <com:Text>.
func TestReadMessage_Footer_ErrorMessage(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:Error xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"
  xmlns:footer="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message/footer"
  xmlns:com="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/common">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <footer:Footer>
    <footer:Message severity="Error" code="413">
      <com:Text xml:lang="en">Request entity too large</com:Text>
      <com:Text xml:lang="fr">Requête trop volumineuse</com:Text>
    </footer:Message>
  </footer:Footer>
</mes:Error>`

	msg, _ := readString(t, doc, Options{})
	require.NotNil(t, msg.Footer)
	assert.Equal(t, 413, msg.Footer.Code)
	assert.Equal(t, "Error", msg.Footer.Severity)
	require.Len(t, msg.Footer.Text, 2)
	assert.Equal(t, "Request entity too large", msg.Footer.Text[0]["en"])
	assert.Equal(t, "Requête trop volumineuse", msg.Footer.Text[1]["fr"])
}

// Stack-drain invariant (spec.md §8): ReadMessage fails if anything is left
// uncollected on the working stack at end of document, so a well-formed
// structure-specific document with a caller DSD parses without error and
// without warnings.
func TestReadMessage_NoStackLeakWarnings(t *testing.T) {
	_, warnings := readString(t, `<?xml version="1.0" encoding="UTF-8"?>
<mes:StructureSpecificData xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <mes:DataSet>
    <Series FREQ="A" CURRENCY="USD">
      <Obs TIME_PERIOD="2020" OBS_VALUE="1.23" DECIMALS="2"/>
    </Series>
  </mes:DataSet>
</mes:StructureSpecificData>`, Options{DSD: testDSD()})
	assert.Empty(t, warnings)
}

// Scenario 5 (spec.md §8): a ContentConstraint whose CubeRegion mixes
// <com:KeyValue> (dimension-valued) and <com:Attribute> (attribute-valued)
// member selections — DataContentRegion[0].Member has one entry per
// distinct component referenced, regardless of which tag named it.
func TestReadMessage_ContentConstraint_MixedKeyValueAndAttributeMembers(t *testing.T) {
	const doc = `<?xml version="1.0" encoding="UTF-8"?>
<mes:Structure xmlns:mes="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/message"
  xmlns:str="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/structure"
  xmlns:com="http://www.sdmx.org/resources/sdmxml/schemas/v2_1/common">
  <mes:Header>
    <mes:ID>IDREF1</mes:ID>
    <mes:Test>false</mes:Test>
    <mes:Prepared>2020-01-01T00:00:00</mes:Prepared>
  </mes:Header>
  <mes:Structures>
    <str:Constraints>
      <str:ContentConstraint id="CR1" agencyID="ECB" version="1.0" type="Actual">
        <com:Name>Actual data region</com:Name>
        <str:ConstraintAttachment>
          <str:Dataflow>
            <Ref id="ECB_EXR1" agencyID="ECB" version="1.0"/>
          </str:Dataflow>
        </str:ConstraintAttachment>
        <str:CubeRegion include="true">
          <com:KeyValue id="FREQ">
            <com:Value>A</com:Value>
          </com:KeyValue>
          <com:KeyValue id="CURRENCY">
            <com:Value>USD</com:Value>
            <com:Value>EUR</com:Value>
          </com:KeyValue>
          <com:Attribute id="OBS_STATUS">
            <com:Value>A</com:Value>
          </com:Attribute>
        </str:CubeRegion>
      </str:ContentConstraint>
    </str:Constraints>
  </mes:Structures>
</mes:Structure>`

	msg, warnings := readString(t, doc, Options{})
	assert.Empty(t, warnings)
	require.Contains(t, msg.Constraint, "CR1")
	cc := msg.Constraint["CR1"]
	assert.Equal(t, sdmx.ConstraintRoleActual, cc.Role.Role)
	require.Len(t, cc.Content, 1)
	require.Len(t, cc.DataContentRegion, 1)

	region := cc.DataContentRegion[0]
	assert.True(t, region.Included)
	require.Len(t, region.Member, 3)

	byID := make(map[string]sdmx.MemberSelection, len(region.Member))
	for id, ms := range region.Member {
		byID[id.GetID()] = ms
	}

	require.Contains(t, byID, "FREQ")
	freqValues := make([]string, len(byID["FREQ"].Values))
	for i, v := range byID["FREQ"].Values {
		freqValues[i] = v.Value
	}
	assert.Equal(t, []string{"A"}, freqValues)

	require.Contains(t, byID, "CURRENCY")
	assert.Len(t, byID["CURRENCY"].Values, 2)

	require.Contains(t, byID, "OBS_STATUS")
	obsStatusValues := make([]string, len(byID["OBS_STATUS"].Values))
	for i, v := range byID["OBS_STATUS"].Values {
		obsStatusValues[i] = v.Value
	}
	assert.Equal(t, []string{"A"}, obsStatusValues)
}
