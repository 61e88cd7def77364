// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import (
	"context"

	"golang.org/x/sync/semaphore"
)

// Semaphore is a weighted, FIFO-fair permit gate backed by
// golang.org/x/sync/semaphore.Weighted: waiters are released in the order
// they called Acquire, never by an arbitrary goroutine scheduling
// decision.
type Semaphore struct {
	weighted *semaphore.Weighted
}

// NewSemaphore returns a Semaphore with n permits.
func NewSemaphore(n int64) *Semaphore {
	return &Semaphore{weighted: semaphore.NewWeighted(n)}
}

// Acquire suspends the fiber until weight permits are available. It is
// interruptible: an interrupt while waiting cancels the underlying
// acquisition rather than leaking the goroutine blocked on it.
func (s *Semaphore) Acquire(weight int64) Effect[struct{}, any] {
	return Async[struct{}, any](func(resume func(Exit[struct{}, any])) (onCancel func()) {
		ctx, cancel := context.WithCancel(context.Background())
		go func() {
			if err := s.weighted.Acquire(ctx, weight); err != nil {
				resume(Fail[struct{}, any](InterruptCause[any](0, false)))
				return
			}
			resume(Succeed[struct{}, any](struct{}{}))
		}()
		return cancel
	})
}

// Release returns weight permits to the semaphore.
func (s *Semaphore) Release(weight int64) Effect[struct{}, any] {
	return Sync[struct{}, any](func() struct{} {
		s.weighted.Release(weight)
		return struct{}{}
	})
}

// TryAcquire attempts to acquire weight permits without blocking.
func (s *Semaphore) TryAcquire(weight int64) Effect[bool, any] {
	return Sync[bool, any](func() bool {
		return s.weighted.TryAcquire(weight)
	})
}

// WithPermit runs e holding weight permits of s, always releasing them
// afterward regardless of e's outcome.
func WithPermit[A, E any](s *Semaphore, weight int64, e Effect[A, E]) Effect[A, E] {
	acquired := Then[struct{}, A, E](retype[struct{}, E](s.Acquire(weight)), e)
	return Ensuring(acquired, s.Release(weight))
}
