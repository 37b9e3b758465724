package sdmx

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestFlattenItems_DeduplicatesAndPreservesForest(t *testing.T) {
	root := &Code{Nameable: Nameable{Identifiable: Identifiable{ID: "ROOT"}}}
	child := &Code{Nameable: Nameable{Identifiable: Identifiable{ID: "CHILD"}}}
	grandchild := &Code{Nameable: Nameable{Identifiable: Identifiable{ID: "GRANDCHILD"}}}

	child.SetParent(root)
	root.AppendChild(child)
	grandchild.SetParent(child)
	child.AppendChild(grandchild)

	other := &Code{Nameable: Nameable{Identifiable: Identifiable{ID: "OTHER_ROOT"}}}

	flat := FlattenItems([]*Code{root, other}, func(c *Code) []*Code { return c.Children() })

	ids := make([]string, len(flat))
	for i, c := range flat {
		ids[i] = c.GetID()
	}
	assert.Equal(t, []string{"ROOT", "CHILD", "GRANDCHILD", "OTHER_ROOT"}, ids)

	n := 0
	for _, c := range flat {
		if c.Parent() != nil {
			n++
		}
	}
	assert.Equal(t, len(flat)-2, n)
}

func TestItemScheme_Get(t *testing.T) {
	s := &ItemScheme[*Code]{Items: []*Code{
		{Nameable: Nameable{Identifiable: Identifiable{ID: "A"}}},
		{Nameable: Nameable{Identifiable: Identifiable{ID: "B"}}},
	}}
	c, ok := s.Get("B")
	assert.True(t, ok)
	assert.Equal(t, "B", c.GetID())

	_, ok = s.Get("MISSING")
	assert.False(t, ok)
}
