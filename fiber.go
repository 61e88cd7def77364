// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "sync/atomic"

// FiberID uniquely identifies a Fiber for the lifetime of a runtime. IDs
// are allocated monotonically and never reused.
type FiberID uint64

var nextFiberID atomic.Uint64

func newFiberID() FiberID {
	return FiberID(nextFiberID.Add(1))
}

// Scheduler drives the cooperative task queue every Fiber runs on.
// schedule enqueues task to run with the given priority (lower runs
// sooner); shouldYield reports whether a fiber that has executed opCount
// primitives since its last suspension should hand control back rather
// than continue inline.
type Scheduler interface {
	schedule(task func(), priority int)
	shouldYield(opCount uint64) bool
	flush()
}

// fiberExit is the type-erased terminal state of a Fiber. Typed accessors
// live on FiberHandle (fork.go), which restores A/E at the boundary.
type fiberExit struct {
	ok    bool
	value erased
	cause Cause[any]
}

// Fiber is the interpreter instance for one running Effect.
// A Fiber is never shared across goroutines concurrently: the scheduler
// guarantees only one task — one fiber's run() — executes at a time.
type Fiber struct {
	id        FiberID
	ctx       *Context
	scheduler Scheduler
	parent    *Fiber

	stack []*contFrame
	cur   primitive

	interruptible  bool
	interruptCause Cause[any]

	opCount uint64

	exit      *fiberExit
	observers []func(fiberExit)

	children map[FiberID]*Fiber

	// suspendCancel, when non-nil, cancels the pending async registration
	// the fiber is currently suspended on (set by Async's interpret, see
	// async.go). interrupt() invokes it before resuming the fiber so the
	// external callback can never fire into a fiber that has moved on.
	suspendCancel func()
}

// newFiber constructs a Fiber ready to interpret p under ctx, scheduled on
// sched. interruptible starts true default posture.
func newFiber(p primitive, ctx *Context, sched Scheduler, parent *Fiber) *Fiber {
	f := &Fiber{
		id:            newFiberID(),
		ctx:           ctx,
		scheduler:     sched,
		parent:        parent,
		cur:           p,
		interruptible: true,
		children:      make(map[FiberID]*Fiber),
	}
	return f
}

// ID returns the fiber's identity.
func (f *Fiber) ID() FiberID { return f.id }

// Context returns the fiber's ambient service map.
func (f *Fiber) Context() *Context { return f.ctx }

// run interprets f.cur until the fiber completes, suspends awaiting an
// external event, or voluntarily yields back to the scheduler. It must
// only ever be invoked from within a scheduler task.
func (f *Fiber) run() {
	for f.cur != nil {
		if f.interruptible && !f.interruptCause.IsEmpty() {
			pending := f.interruptCause
			f.interruptCause = Cause[any]{}
			f.cur = failCausePrim{cause: pending}
			continue
		}

		next, yielded := f.cur.interpret(f)
		if yielded {
			f.cur = nil
			return
		}
		f.cur = next
		f.opCount++

		if f.cur != nil && f.scheduler.shouldYield(f.opCount) {
			f.opCount = 0
			cur := f.cur
			f.cur = nil
			f.scheduler.schedule(func() {
				f.cur = cur
				f.run()
			}, 0)
			return
		}
	}
}

// resumeSuccess walks the continuation stack with a success value,
// running ensure hooks as frames are popped and returning the primitive
// produced by the first onSuccess hook found. If the stack empties
// first, the fiber completes successfully.
func (f *Fiber) resumeSuccess(value erased) primitive {
	for {
		frame, ok := f.popFrame()
		if !ok {
			f.completeSuccess(value)
			return nil
		}
		ensure := frame.ensure
		onSuccess := frame.onSuccess
		releaseFrame(frame)
		if ensure != nil {
			ensure()
		}
		if onSuccess != nil {
			return onSuccess(value)
		}
	}
}

// resumeFailure is resumeSuccess's mirror for the failure channel
//: frames with neither onFailure nor ensure
// are skipped, propagating the cause unchanged toward the root.
func (f *Fiber) resumeFailure(cause Cause[any]) primitive {
	for {
		frame, ok := f.popFrame()
		if !ok {
			f.completeFailure(cause)
			return nil
		}
		ensure := frame.ensure
		onFailure := frame.onFailure
		releaseFrame(frame)
		if ensure != nil {
			ensure()
		}
		if onFailure != nil {
			return onFailure(cause)
		}
	}
}

func (f *Fiber) completeSuccess(value erased) {
	f.finish(&fiberExit{ok: true, value: value})
}

func (f *Fiber) completeFailure(cause Cause[any]) {
	f.finish(&fiberExit{ok: false, cause: cause})
}

// finish interrupts every still-live non-daemon child and awaits each
// one's exit before publishing exit as the fiber's own terminal state.
// Daemon children (never added to f.children, see forkOn) are exempt:
// they are structurally unsupervised and outlive their parent by design.
// ForEach awaits every child it forks, so f.children is normally empty by
// the time it calls back here; RaceAll/RaceAllFirst interrupt their losers
// without awaiting them, and bare Fork relies on this entirely.
func (f *Fiber) finish(exit *fiberExit) {
	if len(f.children) == 0 {
		f.exit = exit
		f.publish()
		return
	}
	children := make([]*Fiber, 0, len(f.children))
	for _, child := range f.children {
		children = append(children, child)
	}
	pending := len(children)
	origin := InterruptCause[any](f.id, true)
	for _, child := range children {
		child.interrupt(origin)
		child.observe(func(fiberExit) {
			pending--
			if pending == 0 {
				f.exit = exit
				f.publish()
			}
		})
	}
}

func (f *Fiber) publish() {
	for _, obs := range f.observers {
		obs(*f.exit)
	}
	f.observers = nil
}

// observe registers cb to run once the fiber completes. If the fiber has
// already completed, cb runs synchronously.
func (f *Fiber) observe(cb func(fiberExit)) {
	if f.exit != nil {
		cb(*f.exit)
		return
	}
	f.observers = append(f.observers, cb)
}

// isDone reports whether the fiber has produced a terminal exit.
func (f *Fiber) isDone() bool { return f.exit != nil }

// addChild registers a forked fiber for structured interruption: a parent
// that is interrupted or completes propagates the same cause to every
// still-running child.
func (f *Fiber) addChild(child *Fiber) {
	f.children[child.id] = child
	child.observe(func(fiberExit) {
		delete(f.children, child.id)
	})
}

// interrupt requests that the fiber terminate with an Interrupt cause. If
// the fiber is currently interruptible, the cause is injected at the next
// run() iteration; otherwise it is deferred until the fiber becomes
// interruptible again (via setInterruptible or UninterruptibleMask's
// restore). Already-completed fibers ignore the request. Interruption
// propagates to every live child.
func (f *Fiber) interrupt(cause Cause[any]) {
	if f.exit != nil {
		return
	}
	f.interruptCause = Merge(f.interruptCause, cause)
	for _, child := range f.children {
		child.interrupt(cause)
	}
	if f.cur == nil && f.interruptible {
		if f.suspendCancel != nil {
			cancel := f.suspendCancel
			f.suspendCancel = nil
			cancel()
		}
		pending := f.interruptCause
		f.interruptCause = Cause[any]{}
		f.cur = failCausePrim{cause: pending}
		f.scheduler.schedule(func() { f.run() }, 0)
	}
}
