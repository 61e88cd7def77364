// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestTimeoutSucceedsWhenEffectIsFaster(t *testing.T) {
	e := fibre.Timeout[string, any](fibre.SucceedEffect[string, any]("done"), time.Second)
	select {
	case exit := <-fibre.RunPromiseExit[string, any](nil, e):
		v, ok := exit.Value()
		require.True(t, ok)
		require.Equal(t, "done", v)
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for Timeout to succeed")
	}
}

func TestTimeoutDiesWithTimeoutErrorWhenSlower(t *testing.T) {
	slow := fibre.Then[struct{}, string, any](fibre.Sleep(time.Second), fibre.SucceedEffect[string, any]("too late"))
	e := fibre.Timeout[string, any](slow, 20*time.Millisecond)
	select {
	case exit := <-fibre.RunPromiseExit[string, any](nil, e):
		require.True(t, exit.IsFailure())
		cause, _ := exit.Failure()
		require.True(t, cause.HasDie())
	case <-time.After(3 * time.Second):
		t.Fatal("timed out waiting for Timeout to expire")
	}
}
