// Package pools provides object pooling for reducing GC pressure on the kernel's
// hottest per-superstep allocation: pkg/pregel's mailboxes reallocate a sender
// provenance slice of mapped node ids every time a node receives a message, for every
// node, every superstep (spec.md §4.5). Uint64Pool is the one pool that survived
// rehoming here; the teacher's byte-slice and string-map pools backed a wire/storage
// serialization layer this kernel has no equivalent of (see DESIGN.md).
package pools
