// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import (
	"time"

	"github.com/cenkalti/backoff/v4"
)

// Schedule produces a fresh delay sequence for [Retry] or [Repeat]. It is
// a factory rather than a single backoff.BackOff instance because the
// same Schedule value is reused across independent retry/repeat calls,
// each of which needs its own attempt counter and jitter state.
type Schedule struct {
	newBackOff func() backoff.BackOff
}

// Recurs retries up to n times with no delay between attempts.
func Recurs(n int) Schedule {
	return Schedule{newBackOff: func() backoff.BackOff {
		return backoff.WithMaxRetries(&backoff.ZeroBackOff{}, uint64(n))
	}}
}

// Spaced retries with a fixed delay between attempts, unbounded.
func Spaced(d time.Duration) Schedule {
	return Schedule{newBackOff: func() backoff.BackOff {
		return backoff.NewConstantBackOff(d)
	}}
}

// FromBackOff adapts any cenkalti/backoff policy (exponential, jittered,
// capped) into a Schedule. factory must return a fresh BackOff each call
// so repeated uses of the same Schedule don't share attempt state.
func FromBackOff(factory func() backoff.BackOff) Schedule {
	return Schedule{newBackOff: factory}
}

// WhileOutput is a Repeat continuation predicate that keeps repeating
// while pred holds on the latest result.
func WhileOutput[A any](pred func(A) bool) func(A) bool { return pred }

// UntilOutput is a Repeat continuation predicate that stops repeating
// once pred holds on the latest result.
func UntilOutput[A any](pred func(A) bool) func(A) bool {
	return func(a A) bool { return !pred(a) }
}

// Retry re-runs e against sched's delay sequence whenever it fails and
// shouldRetry approves the cause, exhausting at sched's own limit
// or the first cause shouldRetry
// rejects.
func Retry[A, E any](e Effect[A, E], sched Schedule, shouldRetry func(Cause[E]) bool) Effect[A, E] {
	return Suspend[A, E](func() Effect[A, E] {
		return retryStep(e, sched.newBackOff(), shouldRetry)
	})
}

func retryStep[A, E any](e Effect[A, E], b backoff.BackOff, shouldRetry func(Cause[E]) bool) Effect[A, E] {
	return OnFailure[A, E, E](e, func(c Cause[E]) Effect[A, E] {
		if !shouldRetry(c) {
			return FailCauseEffect[A, E](c)
		}
		delay := b.NextBackOff()
		if delay == backoff.Stop {
			return FailCauseEffect[A, E](c)
		}
		return Then[struct{}, A, E](retype[struct{}, E](Sleep(delay)), retryStep(e, b, shouldRetry))
	})
}

// Repeat re-runs e against sched's delay sequence after every success
// while shouldContinue approves the latest value, returning the final
// value once sched exhausts or shouldContinue rejects.
func Repeat[A, E any](e Effect[A, E], sched Schedule, shouldContinue func(A) bool) Effect[A, E] {
	return Suspend[A, E](func() Effect[A, E] {
		return repeatStep(e, sched.newBackOff(), shouldContinue)
	})
}

func repeatStep[A, E any](e Effect[A, E], b backoff.BackOff, shouldContinue func(A) bool) Effect[A, E] {
	return OnSuccess[A, A, E](e, func(v A) Effect[A, E] {
		if !shouldContinue(v) {
			return SucceedEffect[A, E](v)
		}
		delay := b.NextBackOff()
		if delay == backoff.Stop {
			return SucceedEffect[A, E](v)
		}
		return Then[struct{}, A, E](retype[struct{}, E](Sleep(delay)), repeatStep(e, b, shouldContinue))
	})
}
