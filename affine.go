// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "sync/atomic"

// Resumer is a one-shot resumption handle: calling Resume more than once
// is a no-op after the first. A suspended fiber's continuation must never
// be invoked twice, so the handle itself enforces affine usage rather
// than trusting every Async caller to get it right.
type Resumer[A, E any] struct {
	used atomic.Uintptr
	fn   func(Exit[A, E])
}

// newResumer wraps fn as a one-shot handle.
func newResumer[A, E any](fn func(Exit[A, E])) *Resumer[A, E] {
	return &Resumer[A, E]{fn: fn}
}

// Resume invokes the wrapped callback with exit. Every call after the
// first is silently dropped rather than panicking: external callbacks
// (timers, socket completions) cannot be trusted to call exactly once,
// and fibre's contract is "at most once wins," not "exactly once or
// panic."
func (r *Resumer[A, E]) Resume(exit Exit[A, E]) {
	if r.used.Add(1) != 1 {
		return
	}
	r.fn(exit)
}

// TryResume reports whether this call was the one that fired.
func (r *Resumer[A, E]) TryResume(exit Exit[A, E]) bool {
	if r.used.Add(1) != 1 {
		return false
	}
	r.fn(exit)
	return true
}
