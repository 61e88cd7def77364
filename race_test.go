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

func TestRaceAllPicksFirstSuccessOverEarlierFailure(t *testing.T) {
	quickFail := fibre.FailEffect[string, error](errors.New("fails fast"))
	slowSuccess := fibre.Then[struct{}, string, error](sleepAsError(20*time.Millisecond), fibre.SucceedEffect[string, error]("won"))

	select {
	case exit := <-fibre.RunPromiseExit[string, error](nil, fibre.Race(quickFail, slowSuccess)):
		v, ok := exit.Value()
		require.True(t, ok)
		require.Equal(t, "won", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Race")
	}
}

func TestRaceAllMergesCausesWhenAllFail(t *testing.T) {
	a := fibre.FailEffect[string, error](errors.New("a"))
	b := fibre.Then[struct{}, string, error](sleepAsError(10*time.Millisecond), fibre.FailEffect[string, error](errors.New("b")))

	select {
	case exit := <-fibre.RunPromiseExit[string, error](nil, fibre.Race(a, b)):
		require.True(t, exit.IsFailure())
		cause, _ := exit.Failure()
		require.Len(t, cause.Failures(), 2, "RaceAll must merge every failure once all siblings have failed")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Race to fail")
	}
}

func TestRaceAllFirstPicksWhicheverFinishesFirst(t *testing.T) {
	quickFail := fibre.FailEffect[string, error](errors.New("fails fast"))
	slowSuccess := fibre.Then[struct{}, string, error](sleepAsError(20*time.Millisecond), fibre.SucceedEffect[string, error]("won"))

	select {
	case exit := <-fibre.RunPromiseExit[string, error](nil, fibre.RaceFirst(quickFail, slowSuccess)):
		require.True(t, exit.IsFailure(), "RaceAllFirst must take the earlier failure, not wait out the later success")
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for RaceFirst")
	}
}
