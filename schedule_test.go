// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestRetryExhaustsAfterRecurs(t *testing.T) {
	attempts := 0
	boom := errors.New("always fails")
	task := fibre.Suspend[int, error](func() fibre.Effect[int, error] {
		attempts++
		return fibre.FailEffect[int, error](boom)
	})
	e := fibre.Retry[int, error](task, fibre.Recurs(3), func(fibre.Cause[error]) bool { return true })

	select {
	case exit := <-fibre.RunPromiseExit[int, error](nil, e):
		require.True(t, exit.IsFailure())
		require.Equal(t, 4, attempts, "3 retries means 4 total attempts")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Retry to exhaust")
	}
}

func TestRetryStopsOnceShouldRetryRejects(t *testing.T) {
	attempts := 0
	boom := errors.New("fatal")
	task := fibre.Suspend[int, error](func() fibre.Effect[int, error] {
		attempts++
		return fibre.FailEffect[int, error](boom)
	})
	e := fibre.Retry[int, error](task, fibre.Recurs(10), func(fibre.Cause[error]) bool { return false })

	select {
	case exit := <-fibre.RunPromiseExit[int, error](nil, e):
		require.True(t, exit.IsFailure())
		require.Equal(t, 1, attempts, "shouldRetry rejecting the first failure must stop immediately")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Retry to stop")
	}
}

func TestRepeatStopsOnUntilOutput(t *testing.T) {
	n := 0
	task := fibre.Suspend[int, any](func() fibre.Effect[int, any] {
		n++
		return fibre.SucceedEffect[int, any](n)
	})
	e := fibre.Repeat[int, any](task, fibre.Recurs(10), fibre.UntilOutput[int](func(v int) bool { return v >= 3 }))

	select {
	case exit := <-fibre.RunPromiseExit[int, any](nil, e):
		v, ok := exit.Value()
		require.True(t, ok)
		require.Equal(t, 3, v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Repeat")
	}
}
