// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "sync"

// RaceAll forks every effect and resolves with the first one to succeed,
// interrupting every other sibling once it does. If every effect fails,
// it resolves with the merged cause of all of them, once the last one
// completes.
func RaceAll[A, E any](effects ...Effect[A, E]) Effect[A, E] {
	return WithFiber[A, E](func(parent *Fiber) Effect[A, E] {
		handles := make([]FiberHandle[A, E], len(effects))
		for i, e := range effects {
			handles[i] = forkOn(e, parent.ctx, parent, false)
		}
		origin := parent.id

		return Async[A, E](func(resume func(Exit[A, E])) (onCancel func()) {
			var mu sync.Mutex
			remaining := len(handles)
			var lastCause Cause[E]
			done := false

			for _, h := range handles {
				h := h
				h.fiber.observe(func(fe fiberExit) {
					mu.Lock()
					if done {
						mu.Unlock()
						return
					}
					exit := restoreFiberExit[A, E](fe)
					if v, ok := exit.Value(); ok {
						done = true
						mu.Unlock()
						for _, other := range handles {
							if other.fiber != h.fiber {
								other.fiber.interrupt(InterruptCause[any](origin, true))
							}
						}
						resume(Succeed[A, E](v))
						return
					}
					c, _ := exit.Failure()
					lastCause = Merge(lastCause, c)
					remaining--
					if remaining == 0 {
						done = true
						final := lastCause
						mu.Unlock()
						resume(Fail[A, E](final))
						return
					}
					mu.Unlock()
				})
			}
			return nil
		})
	})
}

// Race is RaceAll specialized to two effects.
func Race[A, E any](a, b Effect[A, E]) Effect[A, E] {
	return RaceAll[A, E](a, b)
}

// RaceAllFirst forks every effect and resolves with whichever completes
// first — success or failure — interrupting every other sibling
// immediately.
func RaceAllFirst[A, E any](effects ...Effect[A, E]) Effect[A, E] {
	return WithFiber[A, E](func(parent *Fiber) Effect[A, E] {
		handles := make([]FiberHandle[A, E], len(effects))
		for i, e := range effects {
			handles[i] = forkOn(e, parent.ctx, parent, false)
		}
		origin := parent.id

		return Async[A, E](func(resume func(Exit[A, E])) (onCancel func()) {
			var once sync.Once
			for _, h := range handles {
				h := h
				h.fiber.observe(func(fe fiberExit) {
					once.Do(func() {
						for _, other := range handles {
							if other.fiber != h.fiber {
								other.fiber.interrupt(InterruptCause[any](origin, true))
							}
						}
						resume(restoreFiberExit[A, E](fe))
					})
				})
			}
			return nil
		})
	})
}

// RaceFirst is RaceAllFirst specialized to two effects.
func RaceFirst[A, E any](a, b Effect[A, E]) Effect[A, E] {
	return RaceAllFirst[A, E](a, b)
}
