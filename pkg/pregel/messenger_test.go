package pregel

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMessengerNoReducerCollectsAll(t *testing.T) {
	m := NewMessenger(3, ReducerNone)
	m.InitIteration(0)
	m.SendTo(0, 1, 1.0)
	m.SendTo(2, 1, 2.0)

	m.InitIteration(1)
	it := m.Receive(1)
	var got []float64
	for {
		v, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, v)
	}
	assert.ElementsMatch(t, []float64{1.0, 2.0}, got)
}

func TestMessengerSenderIsTracked(t *testing.T) {
	m := NewMessenger(3, ReducerNone)
	m.InitIteration(0)
	m.SendTo(0, 2, 9.0)

	m.InitIteration(1)
	it := m.Receive(2)
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 9.0, v)
	sender, ok := it.Sender()
	require.True(t, ok)
	assert.Equal(t, int64(0), sender)
}

func TestMessengerSumReducerCollapses(t *testing.T) {
	m := NewMessenger(3, ReducerSum)
	m.InitIteration(0)
	m.SendTo(0, 2, 1.0)
	m.SendTo(1, 2, 2.0)
	m.SendTo(0, 2, 3.0)

	m.InitIteration(1)
	it := m.Receive(2)
	v, ok := it.Next()
	require.True(t, ok)
	assert.Equal(t, 6.0, v)
	_, ok = it.Next()
	assert.False(t, ok)
	_, ok = it.Sender()
	assert.False(t, ok, "sender provenance is collapsed away by a reducer")
}

func TestMessengerEmptyMailboxIsEmpty(t *testing.T) {
	m := NewMessenger(2, ReducerNone)
	m.InitIteration(0)
	m.InitIteration(1)
	it := m.Receive(0)
	assert.True(t, it.IsEmpty())
}

func TestMessengerHasAnyPending(t *testing.T) {
	m := NewMessenger(2, ReducerNone)
	m.InitIteration(0)
	assert.False(t, m.HasAnyPending())
	m.SendTo(1, 0, 5.0)
	assert.True(t, m.HasAnyPending())
}
