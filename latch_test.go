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

func TestLatchAwaitAfterOpenReturnsImmediately(t *testing.T) {
	l := fibre.NewLatch()
	l.Open()
	require.True(t, l.IsOpen())

	select {
	case exit := <-fibre.RunPromiseExit[struct{}, any](nil, l.Await()):
		require.True(t, exit.IsSuccess())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out awaiting an already-open latch")
	}
}

func TestLatchReleasesWaitersOnOpen(t *testing.T) {
	l := fibre.NewLatch()
	waiter := fibre.RunPromiseExit[struct{}, any](nil, l.Await())

	select {
	case <-waiter:
		t.Fatal("waiter resolved before Open was called")
	case <-time.After(20 * time.Millisecond):
	}

	l.Open()
	select {
	case exit := <-waiter:
		require.True(t, exit.IsSuccess())
	case <-time.After(2 * time.Second):
		t.Fatal("timed out waiting for latch to release its waiter")
	}
}
