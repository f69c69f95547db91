package collections

import "unsafe"

// toBytes reinterprets a page's backing array as raw bytes for snappy compression.
// Every Numeric element type is a fixed-width primitive, so this is a safe reinterpret
// cast (no pointers, no padding) rather than a true serialization format — it never
// leaves process memory and is not read by any other process or version of this code,
// so it carries none of the portability concerns a durable format would (spec.md §1
// Non-goals: "durable on-disk storage format" does not apply to a same-process,
// same-build in-memory compression cache).
func toBytes[T Numeric](p []T) []byte {
	if len(p) == 0 {
		return nil
	}
	sz := int(unsafe.Sizeof(p[0]))
	return unsafe.Slice((*byte)(unsafe.Pointer(&p[0])), len(p)*sz)
}

func fromBytes[T Numeric](raw []byte, count int) []T {
	out := make([]T, count)
	if len(raw) == 0 {
		return out
	}
	sz := int(unsafe.Sizeof(out[0]))
	n := len(raw) / sz
	if n > count {
		n = count
	}
	src := unsafe.Slice((*T)(unsafe.Pointer(&raw[0])), n)
	copy(out, src)
	return out
}
