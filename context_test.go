// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestGetServiceDiesWhenUnbound(t *testing.T) {
	svc := fibre.NewService[int]("unbound-int")
	exit := fibre.RunSyncExit[int, any](nil, fibre.GetService(svc))
	require.True(t, exit.IsFailure())
	cause, _ := exit.Failure()
	require.True(t, cause.HasDie())
}

func TestProvideServiceMakesItVisible(t *testing.T) {
	svc := fibre.NewService[string]("greeting")
	e := fibre.ProvideService[string, string, any](svc, "hello", fibre.GetService(svc))
	require.Equal(t, "hello", fibre.RunSync[string, any](nil, e))
}

func TestReferenceFallsBackToDefault(t *testing.T) {
	ref := fibre.NewReference[int]("count", func() int { return 42 })
	got := fibre.RunSync[int, any](nil, fibre.GetReference(ref))
	require.Equal(t, 42, got)
}

func TestProvideReferenceOverridesDefault(t *testing.T) {
	ref := fibre.NewReference[int]("count", func() int { return 42 })
	e := fibre.ProvideReference[int, int, any](ref, 7, fibre.GetReference(ref))
	require.Equal(t, 7, fibre.RunSync[int, any](nil, e))
}

func TestProvideContextRestoresPreviousContextAfterward(t *testing.T) {
	svc := fibre.NewService[int]("scoped")
	inner := fibre.ProvideService[int, int, any](svc, 1, fibre.GetService(svc))
	e := fibre.FlatMap(inner, func(int) fibre.Effect[bool, any] {
		return fibre.WithFiber[bool, any](func(f *fibre.Fiber) fibre.Effect[bool, any] {
			_, ok := svc.Get(f.Context())
			return fibre.SucceedEffect[bool, any](ok)
		})
	})
	got := fibre.RunSync[bool, any](nil, e)
	require.False(t, got, "a service bound inside ProvideService must not leak to the surrounding context")
}
