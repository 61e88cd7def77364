// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "time"

// Timeout races e against a sleeping deadline: whichever finishes first
// wins, and the loser is interrupted. A deadline win surfaces as a Die
// carrying [TimeoutError] rather than a typed Fail, since E is not known
// to have a timeout variant. This needs RaceAllFirst's "first completion
// of either kind wins" contract, not RaceAll's "first success wins": the
// deadline branch only ever fails (it never produces an A), so under
// RaceAll it could never win a race against a workload that eventually
// fails too, and the timeout would never fire.
func Timeout[A, E any](e Effect[A, E], d time.Duration) Effect[A, E] {
	timedOut := Then[struct{}, A, E](
		retype[struct{}, E](Sleep(d)),
		DieEffect[A, E](&TimeoutError{}),
	)
	return RaceAllFirst[A, E](e, timedOut)
}
