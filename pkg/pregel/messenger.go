package pregel

import (
	"sync"

	"github.com/patmonardo/gds-kernel/pkg/pools"
)

// Reducer collapses every message sent to the same target within one superstep into a
// single slot (spec.md §4.5 "optionally applies the user-configured reducer"). None
// means no collapsing: every message is kept.
type Reducer uint8

const (
	ReducerNone Reducer = iota
	ReducerSum
	ReducerMin
	ReducerMax
	ReducerCount
)

func (r Reducer) combine(acc float64, hasAcc bool, v float64) float64 {
	if !hasAcc {
		if r == ReducerCount {
			return 1
		}
		return v
	}
	switch r {
	case ReducerSum:
		return acc + v
	case ReducerMin:
		if v < acc {
			return v
		}
		return acc
	case ReducerMax:
		if v > acc {
			return v
		}
		return acc
	case ReducerCount:
		return acc + 1
	default:
		return v
	}
}

// mailbox holds the messages destined for one node during one superstep. senders is
// pool-backed (pkg/pools.Uint64Pool) since every superstep reallocates a fresh sender
// list for every touched mailbox and the teacher's pool idiom exists precisely to absorb
// that kind of per-batch churn.
type mailbox struct {
	mu       sync.Mutex
	hasValue bool
	value    float64
	senders  []uint64
	values   []float64
}

func (m *mailbox) reset() {
	m.hasValue = false
	m.value = 0
	if m.senders != nil {
		pools.PutUint64s(m.senders)
		m.senders = nil
	}
	m.values = m.values[:0]
}

// Messenger is the double-buffered message-passing core of the Pregel runtime (spec.md
// §3.6, §4.5). One buffer is "receive" for the current superstep; the other is "send",
// becoming "receive" when the barrier swaps them.
type Messenger struct {
	reducer   Reducer
	nodeCount int64
	buffers   [2][]mailbox // index by superstep parity
	recvIdx   int
}

// NewMessenger allocates a Messenger for a graph of the given node count.
func NewMessenger(nodeCount int64, reducer Reducer) *Messenger {
	m := &Messenger{reducer: reducer, nodeCount: nodeCount}
	m.buffers[0] = make([]mailbox, nodeCount)
	m.buffers[1] = make([]mailbox, nodeCount)
	return m
}

// InitIteration prepares buffers for superstep k: the buffer that was "send" becomes
// "receive", and the new "send" buffer is cleared (spec.md §4.5 "init_iteration(k)").
func (m *Messenger) InitIteration(k int) {
	m.recvIdx = k % 2
	send := &m.buffers[1-m.recvIdx]
	for i := range *send {
		(*send)[i].reset()
	}
}

func (m *Messenger) sendBuffer() []mailbox { return m.buffers[1-m.recvIdx] }
func (m *Messenger) recvBuffer() []mailbox { return m.buffers[m.recvIdx] }

// SendTo enqueues value for target, to be visible starting next superstep (spec.md
// §4.5). Safe for concurrent use across distinct targets and safe for the same target
// from concurrent ComputeSteps. sender is recorded for MessageIterator.Sender() unless a
// reducer is configured, in which case per-message provenance is collapsed away with the
// rest of the message.
func (m *Messenger) SendTo(source, target int64, value float64) {
	box := &m.sendBuffer()[target]
	box.mu.Lock()
	defer box.mu.Unlock()
	if m.reducer != ReducerNone {
		box.value = m.reducer.combine(box.value, box.hasValue, value)
		box.hasValue = true
		return
	}
	if box.senders == nil {
		box.senders = pools.GetUint64s(4)
	}
	box.senders = append(box.senders, uint64(source))
	box.values = append(box.values, value)
	box.hasValue = true
}

// MessageIterator yields the messages destined for one node during the current
// superstep (spec.md §4.5). Sender() is only meaningful when no reducer collapsed the
// mailbox; it returns (0, false) otherwise.
type MessageIterator struct {
	reduced    bool
	done       bool
	reducedVal float64
	hasReduced bool
	values     []float64
	senders    []uint64
	pos        int
}

func (it *MessageIterator) Next() (float64, bool) {
	if it.reduced {
		if it.done || !it.hasReduced {
			return 0, false
		}
		it.done = true
		return it.reducedVal, true
	}
	if it.pos >= len(it.values) {
		return 0, false
	}
	v := it.values[it.pos]
	it.pos++
	return v, true
}

// Sender returns the source node id of the message most recently returned by Next.
func (it *MessageIterator) Sender() (int64, bool) {
	if it.reduced || it.pos == 0 || it.pos > len(it.senders) {
		return 0, false
	}
	return int64(it.senders[it.pos-1]), true
}

func (it *MessageIterator) IsEmpty() bool {
	if it.reduced {
		return !it.hasReduced
	}
	return len(it.values) == 0
}

// Receive binds a MessageIterator to node's inbox for the current superstep.
func (m *Messenger) Receive(node int64) *MessageIterator {
	box := &m.recvBuffer()[node]
	box.mu.Lock()
	defer box.mu.Unlock()
	if m.reducer != ReducerNone {
		return &MessageIterator{reduced: true, hasReduced: box.hasValue, reducedVal: box.value}
	}
	return &MessageIterator{
		values:  append([]float64(nil), box.values...),
		senders: append([]uint64(nil), box.senders...),
	}
}

// HasAnyPending reports whether any mailbox in the send buffer holds a message, used to
// test global termination ("send buffer is globally empty", spec.md §4.5).
func (m *Messenger) HasAnyPending() bool {
	for i := range m.sendBuffer() {
		if m.sendBuffer()[i].hasValue {
			return true
		}
	}
	return false
}
