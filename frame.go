// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "sync"

// erased is a type-erased value flowing through the interpreter.
type erased = any

// contFrame is a defunctionalized continuation frame: one concrete struct
// serves every combinator (OnSuccess, OnFailure, OnSuccessAndFailure,
// SetInterruptible, ProvideContext) instead of one type per combinator,
// with behavior selected by which function fields are non-nil.
//
// onSuccess and onFailure are the two continuation hooks a frame carries;
// ensure is the always-runs-on-pop hook used by SetInterruptible and
// ProvideContext.
type contFrame struct {
	onSuccess func(v erased) primitive
	onFailure func(c Cause[any]) primitive
	ensure    func()
}

var framePool = sync.Pool{New: func() any { return new(contFrame) }}

// acquireFrame returns a zeroed contFrame from the pool.
func acquireFrame() *contFrame {
	return framePool.Get().(*contFrame)
}

// releaseFrame clears and returns f to the pool. Only frames that have
// actually been popped (and so can no longer be reached through the
// fiber's stack) are safe to release.
func releaseFrame(f *contFrame) {
	f.onSuccess = nil
	f.onFailure = nil
	f.ensure = nil
	framePool.Put(f)
}

// pushFrame pushes frame onto the fiber's continuation stack.
func (f *Fiber) pushFrame(frame *contFrame) {
	f.stack = append(f.stack, frame)
}

// popFrame pops and returns the top frame, or ok=false if the stack is
// empty.
func (f *Fiber) popFrame() (*contFrame, bool) {
	n := len(f.stack)
	if n == 0 {
		return nil, false
	}
	frame := f.stack[n-1]
	f.stack[n-1] = nil
	f.stack = f.stack[:n-1]
	return frame, true
}
