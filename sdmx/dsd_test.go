package sdmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestDSD() *DataStructureDefinition {
	d := NewDataStructureDefinition()
	d.ID = "TEST_DSD"
	d.Dimensions.Components = append(d.Dimensions.Components,
		&Dimension{Component: Component{Identifiable: Identifiable{ID: "FREQ"}}, Order: 1},
		&TimeDimension{Component: Component{Identifiable: Identifiable{ID: "TIME_PERIOD"}}, Order: 2},
	)
	d.Measures.Components = append(d.Measures.Components,
		&PrimaryMeasure{Component: Component{Identifiable: Identifiable{ID: "OBS_VALUE"}}},
	)
	d.Attributes.Components = append(d.Attributes.Components,
		&DataAttribute{Component: Component{Identifiable: Identifiable{ID: "DECIMALS"}}, RelatedTo: NoSpecifiedRelationship{}},
	)
	return d
}

func TestMakeKey_PartitionsDimensionsAndAttributes(t *testing.T) {
	d := newTestDSD()
	part, err := d.MakeKey(map[string]string{
		"FREQ":        "A",
		"TIME_PERIOD": "2020",
		"DECIMALS":    "2",
	}, false)
	require.NoError(t, err)
	assert.Equal(t, map[string]string{"FREQ": "A", "TIME_PERIOD": "2020"}, part.Values)
	assert.Equal(t, map[string]string{"DECIMALS": "2"}, part.Attrib)
}

func TestMakeKey_UnknownIDWithoutExtendIsStructureMismatch(t *testing.T) {
	d := newTestDSD()
	_, err := d.MakeKey(map[string]string{"FREQ": "A", "UNKNOWN": "x"}, false)
	require.Error(t, err)
	var mismatch *StructureMismatch
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "UNKNOWN", mismatch.ComponentID)
}

func TestMakeKey_ExtendGrowsDSDWithNewDimension(t *testing.T) {
	d := newTestDSD()
	before := len(d.Dimensions.Components)
	part, err := d.MakeKey(map[string]string{"FREQ": "A", "REF_AREA": "DE"}, true)
	require.NoError(t, err)
	assert.Equal(t, "DE", part.Values["REF_AREA"])
	assert.Len(t, d.Dimensions.Components, before+1)
	c, ok := d.Dimensions.Get("REF_AREA")
	require.True(t, ok)
	assert.Equal(t, "REF_AREA", c.GetID())
}

func TestGetOrCreateDimension_ReusesExisting(t *testing.T) {
	d := newTestDSD()
	c := d.GetOrCreateDimension("FREQ", false, 0)
	assert.Equal(t, "FREQ", c.GetID())
	assert.Len(t, d.Dimensions.Components, 2)
}

func TestGetOrCreateAttribute_CreatesWhenAbsent(t *testing.T) {
	d := newTestDSD()
	a := d.GetOrCreateAttribute("OBS_STATUS")
	assert.Equal(t, "OBS_STATUS", a.ID)
	_, ok := d.Attributes.Get("OBS_STATUS")
	assert.True(t, ok)
}
