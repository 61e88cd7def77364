// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// ForEach concurrently maps f over items, preserving input order in the
// result slice regardless of completion order. concurrency <= 0 means
// unbounded: every item is forked immediately. concurrency > 0 bounds how
// many run at once via a [Semaphore]. Results are awaited in input order,
// so a failure is acted on only once every earlier item has completed:
// the first failure found in that order interrupts every sibling not yet
// collected and waits for them before the overall Effect fails. Earlier
// items still running when a later one fails are awaited, not interrupted.
func ForEach[A, B, E any](items []A, concurrency int, f func(A) Effect[B, E]) Effect[[]B, E] {
	return WithFiber[[]B, E](func(parent *Fiber) Effect[[]B, E] {
		if len(items) == 0 {
			return SucceedEffect[[]B, E](nil)
		}
		var sem *Semaphore
		if concurrency > 0 {
			sem = NewSemaphore(int64(concurrency))
		}
		handles := make([]FiberHandle[B, E], len(items))
		for i, item := range items {
			body := f(item)
			if sem != nil {
				body = WithPermit(sem, 1, body)
			}
			handles[i] = forkOn(body, parent.ctx, parent, false)
		}
		origin := parent.id
		return collectOrdered(handles, 0, make([]B, len(handles)), origin)
	})
}

func collectOrdered[B, E any](handles []FiberHandle[B, E], idx int, acc []B, origin FiberID) Effect[[]B, E] {
	if idx == len(handles) {
		return SucceedEffect[[]B, E](acc)
	}
	return OnSuccess[Exit[B, E], []B, E](FiberAwait(handles[idx]), func(exit Exit[B, E]) Effect[[]B, E] {
		if v, ok := exit.Value(); ok {
			acc[idx] = v
			return collectOrdered(handles, idx+1, acc, origin)
		}
		c, _ := exit.Failure()
		return interruptRemaining(handles, idx+1, c, origin)
	})
}

// interruptRemaining interrupts every not-yet-collected sibling, waits
// for each to actually finish (so ForEach never returns while a forked
// fiber is still live), then fails with the triggering cause.
func interruptRemaining[B, E any](handles []FiberHandle[B, E], from int, cause Cause[E], origin FiberID) Effect[[]B, E] {
	for i := from; i < len(handles); i++ {
		handles[i].fiber.interrupt(InterruptCause[any](origin, true))
	}
	return drainRemaining(handles, from, cause)
}

func drainRemaining[B, E any](handles []FiberHandle[B, E], idx int, cause Cause[E]) Effect[[]B, E] {
	if idx == len(handles) {
		return FailCauseEffect[[]B, E](cause)
	}
	return OnSuccess[Exit[B, E], []B, E](FiberAwait(handles[idx]), func(Exit[B, E]) Effect[[]B, E] {
		return drainRemaining(handles, idx+1, cause)
	})
}
