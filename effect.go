// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// primitive is the internal, type-erased instruction interface every
// Effect variant implements. interpret advances the fiber by exactly one
// step:
//
//   - (next, false) with next != nil: continue the loop with next.
//   - (nil, false): the continuation stack emptied and the fiber has
//     begun finishing; finish sets f.exit and publishes it, after any
//     live children have been interrupted and awaited.
//   - (_, true): the fiber has suspended or rescheduled itself; run
//     returns control to the scheduler.
type primitive interface {
	interpret(f *Fiber) (next primitive, yielded bool)
}

// Effect is an immutable, typed description of a computation producing a
// value of type A or a typed failure E. Effects are cheap to construct;
// the same value may be interpreted many times.
//
// The set of services an Effect requires (R in the conceptual
// Effect<A, E, R> algebra) is not reified in this type — see doc.go.
type Effect[A, E any] struct {
	p primitive
}

func wrap[A, E any](p primitive) Effect[A, E] { return Effect[A, E]{p: p} }

// --- Succeed / FailCause ---

type succeedPrim struct{ value erased }

func (p succeedPrim) interpret(f *Fiber) (primitive, bool) {
	return f.resumeSuccess(p.value), false
}

// SucceedEffect lifts a pure value into an Effect that never fails.
func SucceedEffect[A, E any](a A) Effect[A, E] {
	return wrap[A, E](succeedPrim{value: a})
}

type failCausePrim struct{ cause Cause[any] }

func (p failCausePrim) interpret(f *Fiber) (primitive, bool) {
	return f.resumeFailure(p.cause), false
}

// FailCauseEffect fails with a pre-built Cause.
func FailCauseEffect[A, E any](c Cause[E]) Effect[A, E] {
	return wrap[A, E](failCausePrim{cause: eraseCause(c)})
}

// FailEffect fails with a single typed error (Fail, not Die).
func FailEffect[A, E any](err E) Effect[A, E] {
	return FailCauseEffect[A, E](FailCause[E](err))
}

// DieEffect fails with an unexpected defect (Die). Defects are never
// typed into E and are not recoverable with CatchFail.
func DieEffect[A, E any](defect any) Effect[A, E] {
	return FailCauseEffect[A, E](DieCause[E](defect))
}

// --- Sync ---

type syncPrim struct{ thunk func() erased }

func (p syncPrim) interpret(f *Fiber) (next primitive, yielded bool) {
	value, defect, panicked := runRecovered(p.thunk)
	if panicked {
		return f.resumeFailure(DieCause[any](defect)), false
	}
	return f.resumeSuccess(value), false
}

func runRecovered(thunk func() erased) (value erased, defect any, panicked bool) {
	defer func() {
		if r := recover(); r != nil {
			panicked = true
			defect = r
		}
	}()
	value = thunk()
	return value, nil, false
}

// Sync wraps a synchronous, side-effecting computation. A panic inside
// thunk becomes a Die defect.
func Sync[A, E any](thunk func() A) Effect[A, E] {
	return wrap[A, E](syncPrim{thunk: func() erased { return thunk() }})
}

// --- Suspend ---

type suspendPrim struct{ thunk func() primitive }

func (p suspendPrim) interpret(f *Fiber) (primitive, bool) {
	return p.thunk(), false
}

// Suspend defers construction of an Effect until interpretation time,
// without advancing the continuation stack. Useful for recursive Effect
// definitions that would otherwise build an unbounded value eagerly.
func Suspend[A, E any](thunk func() Effect[A, E]) Effect[A, E] {
	return wrap[A, E](suspendPrim{thunk: func() primitive { return thunk().p }})
}

// --- WithFiber ---

type withFiberPrim struct{ f func(fiber *Fiber) primitive }

func (p withFiberPrim) interpret(f *Fiber) (primitive, bool) {
	return p.f(f), false
}

// WithFiber exposes the running Fiber to build the next instruction. Used
// internally by fork, interrupt, and the clock to reach fiber/context
// state that is otherwise inaccessible from a pure Effect value.
func WithFiber[A, E any](f func(fiber *Fiber) Effect[A, E]) Effect[A, E] {
	return wrap[A, E](withFiberPrim{f: func(fiber *Fiber) primitive { return f(fiber).p }})
}

// --- OnSuccess / OnFailure / OnSuccessAndFailure ---

// OnSuccess pushes a success continuation k and evaluates e.
func OnSuccess[A, B, E any](e Effect[A, E], k func(A) Effect[B, E]) Effect[B, E] {
	return wrap[B, E](&onSuccessPrim{
		inner: e.p,
		k:     func(v erased) primitive { return k(v.(A)).p },
	})
}

type onSuccessPrim struct {
	inner primitive
	k     func(erased) primitive
}

func (p *onSuccessPrim) interpret(f *Fiber) (primitive, bool) {
	frame := acquireFrame()
	frame.onSuccess = p.k
	f.pushFrame(frame)
	return p.inner, false
}

// OnFailure pushes a failure continuation k and evaluates e.
func OnFailure[A, E1, E2 any](e Effect[A, E1], k func(Cause[E1]) Effect[A, E2]) Effect[A, E2] {
	return wrap[A, E2](&onFailurePrim{
		inner: e.p,
		k:     func(c Cause[any]) primitive { return k(restoreCause[E1](c)).p },
	})
}

type onFailurePrim struct {
	inner primitive
	k     func(Cause[any]) primitive
}

func (p *onFailurePrim) interpret(f *Fiber) (primitive, bool) {
	frame := acquireFrame()
	frame.onFailure = p.k
	f.pushFrame(frame)
	return p.inner, false
}

// OnSuccessAndFailure pushes a combined frame and evaluates e.
func OnSuccessAndFailure[A, B, E1, E2 any](e Effect[A, E1], ks func(A) Effect[B, E2], kf func(Cause[E1]) Effect[B, E2]) Effect[B, E2] {
	return wrap[B, E2](&onBothPrim{
		inner: e.p,
		ks:    func(v erased) primitive { return ks(v.(A)).p },
		kf:    func(c Cause[any]) primitive { return kf(restoreCause[E1](c)).p },
	})
}

type onBothPrim struct {
	inner primitive
	ks    func(erased) primitive
	kf    func(Cause[any]) primitive
}

func (p *onBothPrim) interpret(f *Fiber) (primitive, bool) {
	frame := acquireFrame()
	frame.onSuccess = p.ks
	frame.onFailure = p.kf
	f.pushFrame(frame)
	return p.inner, false
}

// --- SetInterruptible ---

type setInterruptiblePrim struct {
	value bool
	inner primitive
}

func (p *setInterruptiblePrim) interpret(f *Fiber) (primitive, bool) {
	prev := f.interruptible
	frame := acquireFrame()
	frame.ensure = func() { f.setInterruptible(prev) }
	f.interruptible = p.value
	f.pushFrame(frame)
	return p.inner, false
}

// setInterruptible sets the flag and, when becoming interruptible with a
// deferred interrupt cause pending, surfaces it immediately.
func (f *Fiber) setInterruptible(b bool) {
	f.interruptible = b
}

// setInterruptibleEffect is the primitive-level building block behind the
// public Uninterruptible/Interruptible combinators in control.go.
func setInterruptibleEffect[A, E any](value bool, inner Effect[A, E]) Effect[A, E] {
	return wrap[A, E](&setInterruptiblePrim{value: value, inner: inner.p})
}

// --- Yield ---

type yieldPrim struct{ priority int }

func (p yieldPrim) interpret(f *Fiber) (primitive, bool) {
	f.scheduler.schedule(func() {
		f.cur = succeedPrim{value: struct{}{}}
		f.run()
	}, p.priority)
	return nil, true
}

// Yield cooperatively returns control to the scheduler, resuming with
// Success(struct{}{}) once rescheduled.
func Yield(priority int) Effect[struct{}, any] {
	return wrap[struct{}, any](yieldPrim{priority: priority})
}

// --- While ---

type whilePrim struct {
	cond func() bool
	body func() primitive
	step func(erased) primitive
}

func (p *whilePrim) interpret(f *Fiber) (primitive, bool) {
	if !p.cond() {
		return f.resumeSuccess(struct{}{}), false
	}
	frame := acquireFrame()
	frame.onSuccess = func(v erased) primitive {
		loop := acquireFrame()
		loop.onSuccess = func(erased) primitive { return p }
		f.pushFrame(loop)
		return p.step(v)
	}
	f.pushFrame(frame)
	return p.body(), false
}

// While repeatedly evaluates body while cond holds, threading each
// success value through step.
func While[A, E any](cond func() bool, body func() Effect[A, E], step func(A) Effect[struct{}, E]) Effect[struct{}, E] {
	p := &whilePrim{cond: cond}
	p.body = func() primitive { return body().p }
	p.step = func(v erased) primitive { return step(v.(A)).p }
	return wrap[struct{}, E](p)
}

// --- Iterator ---

// EffectIterator drives a generator-style sequence of sub-effects one step
// at a time: Next receives the previous step's success value (the zero
// value on the first call) and returns either the next sub-effect to run,
// or done=true with the final result.
type EffectIterator[A, E any] interface {
	Next(prev A) (next Effect[A, E], done bool, result A)
}

type iteratorPrim[A, E any] struct {
	gen  EffectIterator[A, E]
	prev A
}

func (p *iteratorPrim[A, E]) interpret(f *Fiber) (primitive, bool) {
	next, done, result := p.gen.Next(p.prev)
	if done {
		return f.resumeSuccess(result), false
	}
	frame := acquireFrame()
	frame.onSuccess = func(v erased) primitive {
		return &iteratorPrim[A, E]{gen: p.gen, prev: v.(A)}
	}
	f.pushFrame(frame)
	return next.p, false
}

// Iterator drives gen to completion, stepping one sub-effect at a time.
func Iterator[A, E any](gen EffectIterator[A, E]) Effect[A, E] {
	var zero A
	return wrap[A, E](&iteratorPrim[A, E]{gen: gen, prev: zero})
}
