// Package cssflowerr collects the error vocabulary shared by every core
// component (spec §7). There are exactly three kinds: an allocator running
// out (AllocationFailure), an index or counter space running out
// (Overflow), and "not found" — which per spec is never an error, only the
// undeclared/zero value, so it has no sentinel here.
package cssflowerr

import "errors"

// ErrAllocationFailure is returned (wrapped with context via %w) whenever an
// allocator backing a component cannot grow further. The caller's build is
// aborted and any partially built object must be discarded.
var ErrAllocationFailure = errors.New("cssflow: allocation failure")

// ErrOverflow is returned (wrapped with context via %w) whenever a bounded
// counter or index space is exhausted: BlockId allocation, a multi-arity
// list past 63 entries, or a draw-order sub-list/entry count past its
// 32-bit bound.
var ErrOverflow = errors.New("cssflow: overflow")

// Overflow wraps ErrOverflow with a human-readable reason, remaining
// errors.Is(err, ErrOverflow) afterward.
func Overflow(reason string) error {
	return &wrapped{reason: reason, sentinel: ErrOverflow}
}

// AllocationFailure wraps ErrAllocationFailure with a human-readable reason.
func AllocationFailure(reason string) error {
	return &wrapped{reason: reason, sentinel: ErrAllocationFailure}
}

type wrapped struct {
	reason   string
	sentinel error
}

func (w *wrapped) Error() string { return w.sentinel.Error() + ": " + w.reason }

func (w *wrapped) Unwrap() error { return w.sentinel }
