package idmap

import (
	"testing"

	"github.com/leanovate/gopter"
	"github.com/leanovate/gopter/gen"
	"github.com/leanovate/gopter/prop"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestIdMapRoundTrip(t *testing.T) {
	b := NewBuilder()
	originals := []int64{100, 7, 9999, 42}
	for _, o := range originals {
		b.Add(o)
	}
	m := b.Build()

	require.Equal(t, int64(4), m.NodeCount())
	for mapped := int64(0); mapped < m.NodeCount(); mapped++ {
		orig := m.ToOriginal(mapped)
		assert.Equal(t, mapped, m.ToMapped(orig))
	}
	assert.Equal(t, NotFound, m.ToMapped(123456))
}

func TestIdMapRoundTripProperty(t *testing.T) {
	parameters := gopter.DefaultTestParameters()
	properties := gopter.NewProperties(parameters)

	properties.Property("to_mapped(to_original(m)) == m for all m < node_count", prop.ForAll(
		func(originals []int64) bool {
			seen := map[int64]bool{}
			var uniq []int64
			for _, o := range originals {
				if !seen[o] {
					seen[o] = true
					uniq = append(uniq, o)
				}
			}
			b := NewBuilder()
			for _, o := range uniq {
				b.Add(o)
			}
			m := b.Build()
			for mapped := int64(0); mapped < m.NodeCount(); mapped++ {
				if m.ToMapped(m.ToOriginal(mapped)) != mapped {
					return false
				}
			}
			return true
		},
		gen.SliceOf(gen.Int64Range(0, 1_000_000)),
	))

	properties.TestingRun(t)
}

func TestIdMapLabels(t *testing.T) {
	b := NewBuilder()
	person := Label("Person")
	company := Label("Company")
	b.Add(0, person)
	b.Add(1, company)
	b.Add(2, person, company)
	m := b.Build()

	assert.True(t, m.HasLabel(2, person))
	assert.True(t, m.HasLabel(2, company))
	assert.False(t, m.HasLabel(0, company))
	assert.ElementsMatch(t, []int64{0, 2}, m.IterWithLabels(person))
	assert.Len(t, m.AvailableNodeLabels(), 2)
}

func TestIdMapDenseFastPath(t *testing.T) {
	b := NewBuilder()
	for i := int64(0); i < 10; i++ {
		b.Add(i)
	}
	m := b.Build()
	assert.True(t, m.dense)
	assert.Equal(t, int64(5), m.ToMapped(5))
}
