// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"testing"

	"github.com/stretchr/testify/require"

	"code.hybscloud.com/fibre"
)

func TestCheckInterruptibleDefaultsTrue(t *testing.T) {
	got := fibre.RunSync[bool, any](nil, fibre.CheckInterruptible())
	require.True(t, got)
}

func TestUninterruptibleMaskMasksDuringBody(t *testing.T) {
	e := fibre.UninterruptibleMask[bool, any](func(_ fibre.Restore) fibre.Effect[bool, any] {
		return fibre.CheckInterruptible()
	})
	got := fibre.RunSync[bool, any](nil, e)
	require.False(t, got, "body of an UninterruptibleMask runs uninterruptible")
}

func TestUninterruptibleMaskRestoreReopensInterruptibility(t *testing.T) {
	e := fibre.UninterruptibleMask[bool, any](func(restore fibre.Restore) fibre.Effect[bool, any] {
		return fibre.ApplyTyped[bool, any](restore, fibre.CheckInterruptible())
	})
	got := fibre.RunSync[bool, any](nil, e)
	require.True(t, got, "Restore.Apply must reopen interruptibility inside the mask")
}

func TestUninterruptiblePropagatesValue(t *testing.T) {
	e := fibre.Uninterruptible[int, any](fibre.SucceedEffect[int, any](5))
	require.Equal(t, 5, fibre.RunSync[int, any](nil, e))
}
