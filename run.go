// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// RunFork starts e as a root fiber on a fresh scheduler and returns
// immediately with a live handle; the fiber and every descendant it
// forks run on a dedicated goroutine pump until the root completes.
func RunFork[A, E any](ctx *Context, e Effect[A, E]) FiberHandle[A, E] {
	if ctx == nil {
		ctx = EmptyContext()
	}
	sched := newScheduler()
	root := newFiber(e.p, ctx, sched, nil)
	sched.schedule(func() { root.run() }, 0)
	go sched.pump(root.isDone)
	return FiberHandle[A, E]{fiber: root}
}

// RunSyncExit attempts to evaluate e to completion using only the calling
// goroutine: every Async registration involved must resolve inline (or
// the call never suspends at all) for this to terminate. If the task
// queue drains before the root fiber publishes an Exit, the result is
// Die(fiberDidNotCompleteSynchronously{}).
func RunSyncExit[A, E any](ctx *Context, e Effect[A, E]) Exit[A, E] {
	if ctx == nil {
		ctx = EmptyContext()
	}
	sched := newScheduler()
	root := newFiber(e.p, ctx, sched, nil)
	sched.schedule(func() { root.run() }, 0)
	sched.flush()
	if root.exit == nil {
		return Fail[A, E](DieCause[E](fiberDidNotCompleteSynchronously{}))
	}
	return restoreFiberExit[A, E](*root.exit)
}

// RunSync is RunSyncExit but panics the squashed cause on failure,
// returning only the success value.
func RunSync[A, E any](ctx *Context, e Effect[A, E]) A {
	exit := RunSyncExit(ctx, e)
	if v, ok := exit.Value(); ok {
		return v
	}
	c, _ := exit.Failure()
	panic(c.Squash())
}

// RunPromiseExit starts e on its own goroutine pump and returns a channel
// that receives exactly one Exit once the fiber completes.
func RunPromiseExit[A, E any](ctx *Context, e Effect[A, E]) <-chan Exit[A, E] {
	out := make(chan Exit[A, E], 1)
	handle := RunFork(ctx, e)
	handle.fiber.observe(func(fe fiberExit) {
		out <- restoreFiberExit[A, E](fe)
	})
	return out
}

// RunPromise is RunPromiseExit collapsed to a (value, error) pair in the
// Go idiom: the cause is squashed, and a squashed value (a Fail's error or
// a Die's defect) that implements error is returned as-is; an
// interrupt-only cause becomes a *NoSuchElementError, and any other
// squashed value is wrapped in panicDefect.
func RunPromise[A, E any](ctx *Context, e Effect[A, E]) <-chan promiseResult[A] {
	out := make(chan promiseResult[A], 1)
	exitCh := RunPromiseExit(ctx, e)
	go func() {
		exit := <-exitCh
		if v, ok := exit.Value(); ok {
			out <- promiseResult[A]{value: v}
			return
		}
		c, _ := exit.Failure()
		out <- promiseResult[A]{err: squashToError(c)}
	}()
	return out
}

// promiseResult is the (value, error) pair RunPromise resolves a
// completed Effect into.
type promiseResult[A any] struct {
	value A
	err   error
}

// Value returns the resolved value and nil error, or the zero value and
// the failure's squashed error.
func (r promiseResult[A]) Value() (A, error) { return r.value, r.err }

func squashToError[E any](c Cause[E]) error {
	squashed := c.Squash()
	if err, ok := squashed.(error); ok {
		return err
	}
	if squashed == SquashInterrupted {
		return &NoSuchElementError{Message: "fiber was interrupted"}
	}
	if squashed == SquashEmpty {
		return nil
	}
	return panicDefect{Value: squashed}
}
