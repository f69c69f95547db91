package pregel

import (
	"github.com/patmonardo/gds-kernel/pkg/collections"
	"github.com/patmonardo/gds-kernel/pkg/kernelerrors"
	"github.com/patmonardo/gds-kernel/pkg/values"
)

// NodeValue is the typed, per-property columnar store Pregel maintains across
// supersteps (spec.md §3.6), backed by HugeArrays so it shares the same page-cursor
// machinery the rest of the kernel uses for bulk columnar data.
type NodeValue struct {
	schema      *Schema
	nodeCount   int64
	longCols    map[string]*collections.HugeArray[int64]
	doubleCols  map[string]*collections.HugeArray[float64]
}

// NewNodeValue allocates one column per schema entry, defaulted per its declared
// default value.
func NewNodeValue(schema *Schema, nodeCount int64) *NodeValue {
	nv := &NodeValue{
		schema:     schema,
		nodeCount:  nodeCount,
		longCols:   map[string]*collections.HugeArray[int64]{},
		doubleCols: map[string]*collections.HugeArray[float64]{},
	}
	for _, p := range schema.Properties {
		switch p.Type {
		case values.Long:
			col := collections.NewHugeArray[int64](nodeCount)
			if p.Default.LongVal != 0 {
				col.Fill(p.Default.LongVal)
			}
			nv.longCols[p.Key] = col
		case values.Double:
			col := collections.NewHugeArray[float64](nodeCount)
			if p.Default.DoubleVal != 0 {
				col.Fill(p.Default.DoubleVal)
			}
			nv.doubleCols[p.Key] = col
		}
	}
	return nv
}

func (nv *NodeValue) Long(key string, node int64) (int64, error) {
	col, ok := nv.longCols[key]
	if !ok {
		return 0, kernelerrors.New(kernelerrors.SchemaViolation, "NodeValue.Long").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	return col.GetChecked(node)
}

func (nv *NodeValue) SetLong(key string, node int64, v int64) error {
	col, ok := nv.longCols[key]
	if !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "NodeValue.SetLong").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	return col.SetChecked(node, v)
}

func (nv *NodeValue) Double(key string, node int64) (float64, error) {
	col, ok := nv.doubleCols[key]
	if !ok {
		return 0, kernelerrors.New(kernelerrors.SchemaViolation, "NodeValue.Double").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	return col.GetChecked(node)
}

func (nv *NodeValue) SetDouble(key string, node int64, v float64) error {
	col, ok := nv.doubleCols[key]
	if !ok {
		return kernelerrors.New(kernelerrors.SchemaViolation, "NodeValue.SetDouble").
			Key(key).Cause(kernelerrors.ErrUnknownProperty).Build()
	}
	return col.SetChecked(node, v)
}

// DoubleColumn exposes a public property's backing HugeArray directly, for handing off
// to a PropertyValues adapter after execution (spec.md §4.7 "Write"/"Mutate" modes).
func (nv *NodeValue) DoubleColumn(key string) *collections.HugeArray[float64] {
	return nv.doubleCols[key]
}

func (nv *NodeValue) LongColumn(key string) *collections.HugeArray[int64] {
	return nv.longCols[key]
}

func (nv *NodeValue) NodeCount() int64 { return nv.nodeCount }
