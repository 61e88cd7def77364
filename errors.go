// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "fmt"

// NoSuchElementError is returned by combinators that expect a value to be
// present (e.g. draining an empty collection) and find none.
type NoSuchElementError struct {
	Message string
}

func (e *NoSuchElementError) Error() string {
	if e.Message == "" {
		return "fibre: no such element"
	}
	return "fibre: no such element: " + e.Message
}

// TimeoutError is the defect carried by the Die that [Timeout] produces
// when its deadline wins the race. It is not placed on the typed failure
// channel E.
type TimeoutError struct {
	Message string
}

func (e *TimeoutError) Error() string {
	if e.Message == "" {
		return "fibre: timeout"
	}
	return "fibre: timeout: " + e.Message
}

// fiberDidNotCompleteSynchronously is the Die defect [RunSyncExit] produces
// when the scheduler's task queue drains without the root fiber publishing
// an exit.
type fiberDidNotCompleteSynchronously struct{}

func (fiberDidNotCompleteSynchronously) Error() string {
	return "fibre: fiber did not complete synchronously"
}

// panicDefect wraps a recovered panic value as a Die defect, preserving it
// for inspection via Cause.Squash.
type panicDefect struct {
	Value any
}

func (d panicDefect) String() string {
	return fmt.Sprintf("fibre: panic: %v", d.Value)
}

// Error lets a panicDefect stand in for an error wherever a squashed
// Cause needs to be returned through Go's (value, error) idiom.
func (d panicDefect) Error() string { return d.String() }
