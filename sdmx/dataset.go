package sdmx

// Observation is a single observed value, identified by a Key (either a
// full Key for flat data, or the single "dimension at observation" value
// for series-organized data) and any attached attribute values.
type Observation struct {
	Dimension         Key
	Value             string
	AttachedAttribute map[string]AttributeValue
	SeriesKey         *SeriesKey
	GroupKeys         []*GroupKey
}

// groupBucket pairs a GroupKey with the Observations attached to it.
// DataSet keeps these in an ordered slice, exposed through Groups(), since
// Go map keys must be comparable and GroupKey embeds a map.
type groupBucket struct {
	key  *GroupKey
	obs  []*Observation
}

// DataSet is a non-maintainable collection of Observations structured by a
// DataStructureDefinition.
type DataSet struct {
	StructuredBy *DataStructureDefinition
	Obs          []*Observation
	groups       []*groupBucket
	groupIndex   map[string]*groupBucket
}

// AddObs appends observations, associating them with a SeriesKey when one
// is given (generic data's <gen:Series>), matching the reader's
// `ds.add_obs(observations, series_key=None)`.
func (ds *DataSet) AddObs(obs []*Observation, series *SeriesKey) {
	for _, o := range obs {
		o.SeriesKey = series
		ds.Obs = append(ds.Obs, o)
	}
}

// EnsureGroup registers a GroupKey (creating an empty bucket if new) so
// that observations attached later via AddGroupRefs can find it — mirrors
// `ds.group[gk] = []` in the reader's <gen:Group>/<Group> handlers.
func (ds *DataSet) EnsureGroup(gk *GroupKey) {
	if ds.groupIndex == nil {
		ds.groupIndex = make(map[string]*groupBucket)
	}
	c := gk.Canonical()
	if _, ok := ds.groupIndex[c]; ok {
		return
	}
	b := &groupBucket{key: gk}
	ds.groupIndex[c] = b
	ds.groups = append(ds.groups, b)
}

// AddGroupRefs attaches obs to every registered group whose key values are
// a subset of obs's dimension values, matching
// `ds._add_group_refs(obs)` in the original reader: a group "claims" any
// observation whose key agrees with the group's key on every dimension the
// group names.
func (ds *DataSet) AddGroupRefs(obs *Observation) {
	for _, b := range ds.groups {
		if groupMatches(b.key, obs) {
			b.obs = append(b.obs, obs)
			obs.GroupKeys = append(obs.GroupKeys, b.key)
		}
	}
}

func groupMatches(gk *GroupKey, obs *Observation) bool {
	for id, v := range gk.Values {
		ov, ok := obs.Dimension.Values[id]
		if !ok && obs.SeriesKey != nil {
			ov, ok = obs.SeriesKey.Values[id]
		}
		if !ok || ov != v {
			return false
		}
	}
	return true
}

// Groups returns the data set's groups in registration order, each paired
// with its attached observations.
func (ds *DataSet) Groups() []struct {
	Key *GroupKey
	Obs []*Observation
} {
	out := make([]struct {
		Key *GroupKey
		Obs []*Observation
	}, len(ds.groups))
	for i, b := range ds.groups {
		out[i] = struct {
			Key *GroupKey
			Obs []*Observation
		}{Key: b.key, Obs: b.obs}
	}
	return out
}
