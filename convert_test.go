// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestToOptionWrapsSuccessAndCollapsesFailure(t *testing.T) {
	some := fibre.RunSync[fibre.Option[int], any](nil, fibre.ToOption(fibre.SucceedEffect[int, error](7)))
	v, ok := some.Get()
	require.True(t, ok)
	require.Equal(t, 7, v)

	none := fibre.RunSync[fibre.Option[int], any](nil, fibre.ToOption(fibre.FailEffect[int, error](scopeTestError{})))
	require.False(t, none.IsSome())
}

func TestToEitherRoutesFailureLeftAndSuccessRight(t *testing.T) {
	right := fibre.RunSync[fibre.Either[fibre.Cause[error], int], any](nil, fibre.ToEither(fibre.SucceedEffect[int, error](3)))
	require.True(t, right.IsRight())
	v, ok := right.GetRight()
	require.True(t, ok)
	require.Equal(t, 3, v)

	left := fibre.RunSync[fibre.Either[fibre.Cause[error], int], any](nil, fibre.ToEither(fibre.FailEffect[int, error](scopeTestError{})))
	require.False(t, left.IsRight())
	cause, ok := left.GetLeft()
	require.True(t, ok)
	require.True(t, cause.HasFail())
}

func TestSandboxExposesFullCauseOnFailureChannel(t *testing.T) {
	e := fibre.DieEffect[int, error]("boom")
	exit := fibre.RunSyncExit[int, fibre.Cause[error]](nil, fibre.Sandbox(e))
	require.True(t, exit.IsFailure())
	cause, _ := exit.Failure()
	require.True(t, cause.HasFail())
	inner := cause.Failures()[0].Err.(fibre.Cause[error])
	require.True(t, inner.HasDie())
}

func TestAsExitCapturesOutcomeWithoutFailing(t *testing.T) {
	e := fibre.AsExit(fibre.FailEffect[int, error](scopeTestError{}))
	captured := fibre.RunSync[fibre.Exit[int, error], any](nil, e)
	require.True(t, captured.IsFailure())
	cause, _ := captured.Failure()
	require.True(t, cause.HasFail())
}

type taggedError struct{ tag string }

func (e taggedError) Error() string { return e.tag }
func (e taggedError) Tag() string   { return e.tag }

func TestCatchTagRecoversOnlyMatchingTag(t *testing.T) {
	e := fibre.CatchTag[int, error](fibre.FailEffect[int, error](taggedError{tag: "NotFound"}), "NotFound",
		func(error) fibre.Effect[int, error] { return fibre.SucceedEffect[int, error](42) },
	)
	require.Equal(t, 42, fibre.RunSync[int, error](nil, e))

	unmatched := fibre.CatchTag[int, error](fibre.FailEffect[int, error](taggedError{tag: "Forbidden"}), "NotFound",
		func(error) fibre.Effect[int, error] { return fibre.SucceedEffect[int, error](0) },
	)
	exit := fibre.RunSyncExit[int, error](nil, unmatched)
	require.True(t, exit.IsFailure())
}
