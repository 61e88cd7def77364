// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// FiberHandle is a typed reference to a forked Fiber, restoring the
// static A/E erased inside the Fiber it wraps (doc.go's type-erasure
// boundary discipline, mirroring how exit.go restores a concrete Exit).
type FiberHandle[A, E any] struct {
	fiber *Fiber
}

// ID returns the underlying fiber's identity.
func (h FiberHandle[A, E]) ID() FiberID { return h.fiber.ID() }

func forkOn[A, E any](e Effect[A, E], ctx *Context, parent *Fiber, daemon bool) FiberHandle[A, E] {
	child := newFiber(e.p, ctx, parent.scheduler, parent)
	if !daemon {
		parent.addChild(child)
	}
	parent.scheduler.schedule(func() { child.run() }, 0)
	return FiberHandle[A, E]{fiber: child}
}

// Fork starts e concurrently as a child of the calling fiber, inheriting
// its Context. The parent tracks the child: interrupting or completing
// the parent interrupts the child.
func Fork[A, E any](e Effect[A, E]) Effect[FiberHandle[A, E], any] {
	return WithFiber[FiberHandle[A, E], any](func(parent *Fiber) Effect[FiberHandle[A, E], any] {
		return SucceedEffect[FiberHandle[A, E], any](forkOn(e, parent.ctx, parent, false))
	})
}

// ForkDaemon starts e concurrently without structural supervision: it
// outlives its parent and is only interrupted explicitly or by the
// runtime shutting down. Useful for best-effort background work (metrics
// flushers, cache warmers) that should not block the parent's exit.
func ForkDaemon[A, E any](e Effect[A, E]) Effect[FiberHandle[A, E], any] {
	return WithFiber[FiberHandle[A, E], any](func(parent *Fiber) Effect[FiberHandle[A, E], any] {
		return SucceedEffect[FiberHandle[A, E], any](forkOn(e, parent.ctx, parent, true))
	})
}

// ForkIn starts e concurrently as a child of the calling fiber whose
// lifetime is additionally bound to scope: a finalizer registered on scope
// interrupts and awaits the child the moment scope closes, independent of
// whether the parent fiber itself has finished yet.
func ForkIn[A, E any](scope *Scope, e Effect[A, E]) Effect[FiberHandle[A, E], any] {
	return WithFiber[FiberHandle[A, E], any](func(parent *Fiber) Effect[FiberHandle[A, E], any] {
		handle := forkOn(e, parent.ctx, parent, false)
		teardown := func(Cause[any]) Effect[struct{}, any] {
			erased := Effect[Exit[A, E], any]{p: FiberInterrupt[A, E](handle).p}
			return AsVoid[Exit[A, E], any](erased)
		}
		return Then[struct{}, FiberHandle[A, E], any](
			AddFinalizer[any](scope, teardown),
			SucceedEffect[FiberHandle[A, E], any](handle),
		)
	})
}

// ForkScoped forks body concurrently under a fresh child of scope (see
// [Scope.Fork]): the child scope is handed to body so it can register its
// own finalizers, the forked fiber is interrupted when that child scope
// closes (via ForkIn), and the child scope itself closes whenever scope
// does. Use this over ForkIn when the forked work needs its own
// resource-scoped finalizers rather than just sharing an existing scope.
func ForkScoped[A, E any](scope *Scope, body func(child *Scope) Effect[A, E]) Effect[FiberHandle[A, E], any] {
	return WithFiber[FiberHandle[A, E], any](func(*Fiber) Effect[FiberHandle[A, E], any] {
		child := scope.Fork()
		return ForkIn[A, E](child, body(child))
	})
}

func restoreFiberExit[A, E any](fe fiberExit) Exit[A, E] {
	if fe.ok {
		return Succeed[A, E](fe.value.(A))
	}
	return Fail[A, E](restoreCause[E](fe.cause))
}

// FiberAwait suspends until h's fiber completes, returning its Exit
// without failing the awaiting fiber on the child's failure.
func FiberAwait[A, E any](h FiberHandle[A, E]) Effect[Exit[A, E], E] {
	return Async[Exit[A, E], E](func(resume func(Exit[Exit[A, E], E])) (onCancel func()) {
		h.fiber.observe(func(fe fiberExit) {
			resume(Succeed[Exit[A, E], E](restoreFiberExit[A, E](fe)))
		})
		return nil
	})
}

// FiberJoin suspends until h's fiber completes and propagates its result
// directly: success flows through as success, failure as failure.
func FiberJoin[A, E any](h FiberHandle[A, E]) Effect[A, E] {
	return OnSuccess[Exit[A, E], A, E](FiberAwait(h), func(exit Exit[A, E]) Effect[A, E] {
		if v, ok := exit.Value(); ok {
			return SucceedEffect[A, E](v)
		}
		c, _ := exit.Failure()
		return FailCauseEffect[A, E](c)
	})
}

// FiberInterrupt interrupts h's fiber with an Interrupt cause attributed
// to the calling fiber, then awaits its exit.
func FiberInterrupt[A, E any](h FiberHandle[A, E]) Effect[Exit[A, E], E] {
	return WithFiber[Exit[A, E], E](func(f *Fiber) Effect[Exit[A, E], E] {
		h.fiber.interrupt(InterruptCause[any](f.id, true))
		return FiberAwait(h)
	})
}

// UnsafeInterrupt fires an interrupt at h's fiber without waiting for it
// to take effect, for callers that want fire-and-forget cancellation.
func UnsafeInterrupt[A, E any](h FiberHandle[A, E], origin FiberID, hasOrigin bool) {
	h.fiber.interrupt(InterruptCause[any](origin, hasOrigin))
}
