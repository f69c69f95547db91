package pregel

import (
	"testing"

	"github.com/patmonardo/gds-kernel/pkg/values"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNodeValueLongDoubleRoundTrip(t *testing.T) {
	schema := NewSchema(
		PropertyDescriptor{Key: "rank", Type: values.Double},
		PropertyDescriptor{Key: "component", Type: values.Long},
	)
	nv := NewNodeValue(schema, 4)

	require.NoError(t, nv.SetDouble("rank", 2, 0.75))
	v, err := nv.Double("rank", 2)
	require.NoError(t, err)
	assert.Equal(t, 0.75, v)

	require.NoError(t, nv.SetLong("component", 1, 7))
	lv, err := nv.Long("component", 1)
	require.NoError(t, err)
	assert.Equal(t, int64(7), lv)

	_, err = nv.Double("missing", 0)
	assert.Error(t, err)
}

func TestSchemaPublicKeys(t *testing.T) {
	schema := NewSchema(
		PropertyDescriptor{Key: "rank", Type: values.Double, Visibility: Public},
		PropertyDescriptor{Key: "scratch", Type: values.Double, Visibility: Private},
	)
	assert.Equal(t, []string{"rank"}, schema.PublicKeys())
}
