package sdmx

import (
	"sort"
	"strings"
)

// Key maps dimension-component ids to observed values, plus any attribute
// values carried alongside them (see DataStructureDefinition.MakeKey).
type Key struct {
	Values map[string]string
	Attrib map[string]string
}

// NewKey wraps a partition result as a Key.
func NewKey(p PartitionResult) Key {
	return Key{Values: p.Values, Attrib: p.Attrib}
}

// Canonical returns a deterministic string form of the key's dimension
// values, sorted by component id. It is the key of a DataSet's group index,
// since Go maps cannot themselves be used as map keys.
func (k Key) Canonical() string {
	ids := make([]string, 0, len(k.Values))
	for id := range k.Values {
		ids = append(ids, id)
	}
	sort.Strings(ids)
	var b strings.Builder
	for _, id := range ids {
		b.WriteString(id)
		b.WriteByte('=')
		b.WriteString(k.Values[id])
		b.WriteByte(';')
	}
	return b.String()
}

// SeriesKey identifies a series of Observations sharing the same
// non-time dimension values.
type SeriesKey struct {
	Key
}

// GroupKey identifies a Group of Observations, optionally described by a
// GroupDimensionDescriptor naming which dimensions participate.
type GroupKey struct {
	Key
	DescribedBy *GroupDimensionDescriptor
}
