// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// AsyncRegister registers an external completion callback with the
// runtime. It must call resume exactly once; calls after the first are
// silently ignored. It returns an onCancel func the runtime invokes if
// the fiber is interrupted while suspended, so a timer, socket read, or
// other external operation can be torn down promptly. onCancel may be
// nil if there is nothing to cancel.
type AsyncRegister[A, E any] func(resume func(Exit[A, E])) (onCancel func())

type asyncPrim[A, E any] struct {
	register AsyncRegister[A, E]
}

func (p *asyncPrim[A, E]) interpret(f *Fiber) (primitive, bool) {
	resumer := newResumer[A, E](func(exit Exit[A, E]) {
		f.scheduler.schedule(func() {
			f.suspendCancel = nil
			if v, ok := exit.Value(); ok {
				f.cur = succeedPrim{value: erased(v)}
			} else {
				c, _ := exit.Failure()
				f.cur = failCausePrim{cause: eraseCause(c)}
			}
			f.run()
		}, 0)
	})

	cancel := p.register(resumer.Resume)
	f.suspendCancel = cancel
	return nil, true
}

// Async suspends the fiber until register's resume callback is invoked,
// from any goroutine, exactly once.
// This is the bridge between the cooperative interpreter and the outside
// world: every blocking I/O or timer-based combinator in this package
// (Sleep, Blocking, the race/latch primitives) is built on top of it.
func Async[A, E any](register AsyncRegister[A, E]) Effect[A, E] {
	return wrap[A, E](&asyncPrim[A, E]{register: register})
}
