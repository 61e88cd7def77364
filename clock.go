// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "time"

// maxTimerDuration caps the single-timer delay the host can schedule: a
// sleep registers min(d_millis, 2^31 - 1) ms.
const maxTimerDuration = (1<<31 - 1) * time.Millisecond

// Clock is a pluggable source of current time and sleep. It is read
// through ClockRef, a [Reference] with a default that delegates to the
// host's monotonic wall clock, so every fiber always has one without
// needing to provide it explicitly.
type Clock interface {
	// Now returns the current time.
	Now() time.Time
	// SleepTimer schedules fire to run once after d and returns a function
	// that cancels the timer if it has not fired yet. Implementations must
	// clamp d to maxTimerDuration.
	SleepTimer(d time.Duration, fire func()) (cancel func())
}

// systemClock is the default Clock, backed by time.AfterFunc.
type systemClock struct{}

func (systemClock) Now() time.Time { return time.Now() }

func (systemClock) SleepTimer(d time.Duration, fire func()) (cancel func()) {
	if d > maxTimerDuration {
		d = maxTimerDuration
	}
	if d < 0 {
		d = 0
	}
	t := time.AfterFunc(d, fire)
	return func() { t.Stop() }
}

// ClockRef is the injectable Clock service. Providing a different Clock on
// a Context substitutes the whole runtime's notion of time for every
// descendant fiber — this is the seam a virtual/test clock would use.
var ClockRef = NewReference[Clock]("Clock", func() Clock { return systemClock{} })

// CurrentTimeMillis reads ClockRef's current time in epoch milliseconds.
func CurrentTimeMillis(ctx *Context) int64 {
	return ClockRef.Get(ctx).Now().UnixMilli()
}

// CurrentTimeNanos reads ClockRef's current time in epoch nanoseconds.
func CurrentTimeNanos(ctx *Context) int64 {
	return ClockRef.Get(ctx).Now().UnixNano()
}

// Sleep suspends the fiber for d, resuming with Success(struct{}{}).
// Interrupting the fiber while asleep cancels the pending timer instead of
// letting it fire into a fiber that has moved on.
func Sleep(d time.Duration) Effect[struct{}, any] {
	return WithFiber[struct{}, any](func(f *Fiber) Effect[struct{}, any] {
		clk := ClockRef.Get(f.ctx)
		return Async[struct{}, any](func(resume func(Exit[struct{}, any])) (onCancel func()) {
			return clk.SleepTimer(d, func() {
				resume(Succeed[struct{}, any](struct{}{}))
			})
		})
	})
}
