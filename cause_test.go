// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre_test

import (
	"errors"
	"testing"

	"code.hybscloud.com/fibre"
)

func TestCauseMergeDeduplicates(t *testing.T) {
	a := fibre.FailCause[error](errors.New("x"))
	merged := fibre.Merge(a, a)
	if len(merged.Failures()) != 1 {
		t.Fatalf("got %d failures, want 1 (structurally equal causes collapse)", len(merged.Failures()))
	}
}

func TestCauseMergeOrderPreserving(t *testing.T) {
	a := fibre.FailCause[error](errors.New("a"))
	b := fibre.FailCause[error](errors.New("b"))
	merged := fibre.Merge(a, b)
	fs := merged.Failures()
	if len(fs) != 2 || fs[0].Err.(error).Error() != "a" || fs[1].Err.(error).Error() != "b" {
		t.Fatalf("got %+v, want [a, b] in order", fs)
	}
}

func TestSquashPrefersFailOverDie(t *testing.T) {
	failErr := errors.New("fail")
	c := fibre.Merge(fibre.DieCause[error]("defect"), fibre.FailCause[error](failErr))
	if c.Squash() != any(failErr) {
		t.Fatalf("Squash should prefer the first Fail over a Die")
	}
}

func TestSquashInterruptedOnly(t *testing.T) {
	c := fibre.InterruptCause[error](1, true)
	if c.Squash() != fibre.SquashInterrupted {
		t.Fatal("an interrupt-only cause should squash to SquashInterrupted")
	}
}

func TestIsInterruptedOnly(t *testing.T) {
	c := fibre.InterruptCause[error](1, true)
	if !c.IsInterruptedOnly() {
		t.Fatal("expected IsInterruptedOnly to report true")
	}
	mixed := fibre.Merge(c, fibre.FailCause[error](errors.New("x")))
	if mixed.IsInterruptedOnly() {
		t.Fatal("a cause carrying a Fail alongside an Interrupt is not interrupt-only")
	}
}

func TestAnnotateDoesNotAffectEqual(t *testing.T) {
	c := fibre.FailCause[error](errors.New("x"))
	annotated := fibre.Annotate(c, "k", "v")
	if !c.Equal(annotated) {
		t.Fatal("Equal must ignore annotations")
	}
}
