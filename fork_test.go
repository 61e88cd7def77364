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

func TestForkInInterruptsChildWhenScopeCloses(t *testing.T) {
	scope := fibre.NewScope()
	child := fibre.Then[struct{}, struct{}, any](
		fibre.Sleep(5*time.Second),
		fibre.SucceedEffect[struct{}, any](struct{}{}),
	)
	e := fibre.FlatMap(fibre.ForkIn[struct{}, any](scope, child), func(h fibre.FiberHandle[struct{}, any]) fibre.Effect[fibre.Exit[struct{}, any], any] {
		return fibre.Then[struct{}, fibre.Exit[struct{}, any], any](
			fibre.Close(scope, fibre.Cause[any]{}),
			fibre.FiberAwait(h),
		)
	})
	select {
	case exit := <-fibre.RunPromiseExit[fibre.Exit[struct{}, any], any](nil, e):
		v, ok := exit.Value()
		require.True(t, ok)
		require.True(t, v.IsFailure(), "closing the scope must interrupt the child fork_in bound to it")
		cause, _ := v.Failure()
		require.True(t, cause.HasInterrupt())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for scope close to interrupt the forked child")
	}
}

func TestForkScopedClosesChildScopeWhenParentScopeCloses(t *testing.T) {
	parent := fibre.NewScope()
	var finalizerRan atomic.Bool
	body := func(child *fibre.Scope) fibre.Effect[struct{}, any] {
		return fibre.Then[struct{}, struct{}, any](
			fibre.AddFinalizer[any](child, func(fibre.Cause[any]) fibre.Effect[struct{}, any] {
				return fibre.Sync[struct{}, any](func() struct{} { finalizerRan.Store(true); return struct{}{} })
			}),
			fibre.Sleep(5*time.Second),
		)
	}
	// The parent yields once so the forked body gets to register its
	// finalizer on the child scope before the parent scope closes.
	e := fibre.Then[fibre.FiberHandle[struct{}, any], struct{}, any](
		fibre.ForkScoped[struct{}, any](parent, body),
		fibre.Then[struct{}, struct{}, any](fibre.Yield(0), fibre.Close(parent, fibre.Cause[any]{})),
	)
	select {
	case exit := <-fibre.RunPromiseExit[struct{}, any](nil, e):
		require.True(t, exit.IsSuccess())
		require.True(t, finalizerRan.Load(), "closing the parent scope must close the child scope fork_scoped created for the forked body, running its finalizers")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for parent scope close to cascade into the forked child's scope")
	}
}
