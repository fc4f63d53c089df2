// Package valuearena implements the aligned byte arena spec §9 names as an
// acceptable translation of the source's packed multi-arity value storage:
// "an aligned byte pool with align_of_max accounting (retains the source's
// cache locality)". Multi-arity aggregate fields (spec §3/§4.1) are appended
// here instead of living in ordinary per-field Go slices, so repeated
// cascade merges of the same field stay contiguous.
//
// This arena is append-only and never frees individual allocations — it is
// freed wholesale with the owning cssdecl.Store (spec §5).
package valuearena

import "unsafe"

// Arena is an append-only, alignment-aware byte pool.
type Arena struct {
	buf []byte
}

// New returns an empty arena.
func New() *Arena {
	return &Arena{}
}

// Len reports the arena's current byte size, for diagnostics only.
func (a *Arena) Len() int {
	return len(a.buf)
}

func (a *Arena) reserve(size, align, n int) int {
	if align < 1 {
		align = 1
	}
	if pad := (-len(a.buf)) & (align - 1); pad > 0 {
		a.buf = append(a.buf, make([]byte, pad)...)
	}
	offset := len(a.buf)
	a.buf = append(a.buf, make([]byte, size*n)...)
	return offset
}

// Append copies values into the arena, aligned to T's natural alignment,
// and returns a slice backed by the arena's storage. The returned slice is
// stable for the arena's lifetime: once handed out, that byte range is
// never reused or overwritten by later Append calls.
func Append[T any](a *Arena, values []T) []T {
	n := len(values)
	if n == 0 {
		return nil
	}
	var zero T
	size := int(unsafe.Sizeof(zero))
	align := int(unsafe.Alignof(zero))
	offset := a.reserve(size, align, n)
	dst := unsafe.Slice((*T)(unsafe.Pointer(&a.buf[offset])), n)
	copy(dst, values)
	return dst
}
