// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestForkAndJoinPropagatesSuccess(t *testing.T) {
	e := fibre.FlatMap(fibre.Fork(fibre.SucceedEffect[int, any](7)), func(h fibre.FiberHandle[int, any]) fibre.Effect[int, any] {
		return fibre.FiberJoin(h)
	})
	require.Equal(t, 7, fibre.RunSync[int, any](nil, e))
}

func TestForkAndJoinPropagatesFailure(t *testing.T) {
	boom := scopeTestError{}
	e := fibre.FlatMap(fibre.Fork(fibre.FailEffect[int, error](boom)), func(h fibre.FiberHandle[int, error]) fibre.Effect[int, error] {
		return fibre.FiberJoin(h)
	})
	exit := fibre.RunSyncExit[int, error](nil, e)
	require.True(t, exit.IsFailure())
	cause, _ := exit.Failure()
	require.True(t, cause.HasFail())
}

func TestForEachPreservesOrder(t *testing.T) {
	items := []int{1, 2, 3, 4, 5}
	e := fibre.ForEach[int, int, any](items, 0, func(n int) fibre.Effect[int, any] {
		return fibre.SucceedEffect[int, any](n * n)
	})
	got := fibre.RunSync[[]int, any](nil, e)
	require.Equal(t, []int{1, 4, 9, 16, 25}, got)
}

func sleepAsError(d time.Duration) fibre.Effect[struct{}, error] {
	return fibre.OnSuccessAndFailure[struct{}, struct{}, any, error](fibre.Sleep(d),
		func(struct{}) fibre.Effect[struct{}, error] { return fibre.SucceedEffect[struct{}, error](struct{}{}) },
		func(fibre.Cause[any]) fibre.Effect[struct{}, error] { return fibre.FailEffect[struct{}, error](scopeTestError{}) },
	)
}

func TestForEachFailFastInterruptsSiblings(t *testing.T) {
	items := []int{1, 2, 3}
	e := fibre.ForEach[int, int, error](items, 0, func(n int) fibre.Effect[int, error] {
		if n == 2 {
			return fibre.FailEffect[int, error](scopeTestError{})
		}
		return fibre.Then[struct{}, int, error](sleepAsError(50*time.Millisecond), fibre.SucceedEffect[int, error](n))
	})
	select {
	case exit := <-fibre.RunPromiseExit[[]int, error](nil, e):
		require.True(t, exit.IsFailure())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for ForEach to fail fast")
	}
}

func TestForkedChildIsInterruptedBeforeParentPublishes(t *testing.T) {
	var interrupted atomic.Bool
	child := fibre.OnFailure[struct{}, any, any](fibre.Sleep(5*time.Second),
		func(c fibre.Cause[any]) fibre.Effect[struct{}, any] {
			interrupted.Store(c.HasInterrupt())
			return fibre.FailCauseEffect[struct{}, any](c)
		},
	)
	// The parent yields once so the child gets to start and reach its
	// Sleep before the parent succeeds.
	e := fibre.Then[fibre.FiberHandle[struct{}, any], struct{}, any](
		fibre.Fork(child),
		fibre.Then[struct{}, struct{}, any](fibre.Yield(0), fibre.SucceedEffect[struct{}, any](struct{}{})),
	)
	select {
	case exit := <-fibre.RunPromiseExit[struct{}, any](nil, e):
		require.True(t, exit.IsSuccess())
		require.True(t, interrupted.Load(), "a forked child still sleeping must be interrupted, not leaked, before its non-daemon parent publishes")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for parent to publish; forked child may have leaked instead of being awaited")
	}
}

func TestRacePicksFirstCompletion(t *testing.T) {
	fast := fibre.SucceedEffect[string, any]("fast")
	slow := fibre.Then[struct{}, string, any](fibre.Sleep(50*time.Millisecond), fibre.SucceedEffect[string, any]("slow"))
	select {
	case exit := <-fibre.RunPromiseExit[string, any](nil, fibre.Race(fast, slow)):
		v, ok := exit.Value()
		require.True(t, ok)
		require.Equal(t, "fast", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Race")
	}
}
