// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// FailureKind discriminates the three ways a computation can terminate
// abnormally.
type FailureKind int

const (
	// KindFail is a typed, expected error recoverable with catch/match.
	KindFail FailureKind = iota
	// KindDie is an unexpected defect. CatchFail and CatchTag pass it
	// through; Catch and Sandbox expose it.
	KindDie
	// KindInterrupt is a structural interruption, optionally attributing
	// the fiber that requested it.
	KindInterrupt
)

// AnnotationScopeID is the well-known annotation key a [Scope] sets on any
// Cause produced by a finalizer that panicked or returned a failing Exit.
// The value is a uuid.UUID.String().
const AnnotationScopeID = "fibre.scope_id"

// Failure is one element of a Cause: a Fail, a Die, or an Interrupt.
// Err and Defect are type-erased (any) because a Cause aggregates failures
// across arbitrarily nested Effect chains; typed accessors on Exit/Cause
// restore the static E at the boundary where it is known again, rather
// than reifying E in the Cause representation itself.
type Failure struct {
	Kind        FailureKind
	Err         any // valid when Kind == KindFail; dynamic type is E
	Defect      any // valid when Kind == KindDie
	FiberID     FiberID
	hasFiberID  bool
	Annotations map[string]any
}

// Interrupter reports the originating fiber for a KindInterrupt failure.
func (f Failure) Interrupter() (FiberID, bool) { return f.FiberID, f.hasFiberID }

// Cause is an ordered, deduplicating collection of Failures. E only
// constrains what a caller may type-assert a KindFail's Err field to; the
// zero Cause[E] (no failures) is a valid, empty cause.
type Cause[E any] struct {
	failures []Failure
}

// FailCause constructs a Cause carrying a single typed Fail.
func FailCause[E any](err E) Cause[E] {
	return Cause[E]{failures: []Failure{{Kind: KindFail, Err: err}}}
}

// DieCause constructs a Cause carrying a single Die defect.
func DieCause[E any](defect any) Cause[E] {
	return Cause[E]{failures: []Failure{{Kind: KindDie, Defect: defect}}}
}

// InterruptCause constructs a Cause carrying a single Interrupt, optionally
// attributing the requesting fiber.
func InterruptCause[E any](origin FiberID, hasOrigin bool) Cause[E] {
	return Cause[E]{failures: []Failure{{Kind: KindInterrupt, FiberID: origin, hasFiberID: hasOrigin}}}
}

// IsEmpty reports whether the Cause carries no failures.
func (c Cause[E]) IsEmpty() bool { return len(c.failures) == 0 }

// Failures returns the ordered failure list. The returned slice must not
// be mutated by the caller.
func (c Cause[E]) Failures() []Failure { return c.failures }

// HasFail reports whether any failure is a KindFail.
func (c Cause[E]) HasFail() bool { return c.any(KindFail) }

// HasDie reports whether any failure is a KindDie.
func (c Cause[E]) HasDie() bool { return c.any(KindDie) }

// HasInterrupt reports whether any failure is a KindInterrupt.
func (c Cause[E]) HasInterrupt() bool { return c.any(KindInterrupt) }

// IsInterruptedOnly reports whether the Cause is non-empty and every
// failure is a KindInterrupt.
func (c Cause[E]) IsInterruptedOnly() bool {
	if len(c.failures) == 0 {
		return false
	}
	for _, f := range c.failures {
		if f.Kind != KindInterrupt {
			return false
		}
	}
	return true
}

func (c Cause[E]) any(kind FailureKind) bool {
	for _, f := range c.failures {
		if f.Kind == kind {
			return true
		}
	}
	return false
}

// Merge combines two causes: set-union with order-preservation, first
// occurrence wins. Structurally equal causes collapse to the input.
func Merge[E any](a, b Cause[E]) Cause[E] {
	if len(b.failures) == 0 {
		return a
	}
	if len(a.failures) == 0 {
		return b
	}
	out := make([]Failure, len(a.failures), len(a.failures)+len(b.failures))
	copy(out, a.failures)
	for _, f := range b.failures {
		if !containsFailure(out, f) {
			out = append(out, f)
		}
	}
	return Cause[E]{failures: out}
}

func containsFailure(fs []Failure, f Failure) bool {
	for _, existing := range fs {
		if failureEqual(existing, f) {
			return true
		}
	}
	return false
}

func failureEqual(a, b Failure) bool {
	if a.Kind != b.Kind {
		return false
	}
	switch a.Kind {
	case KindFail:
		return a.Err == b.Err
	case KindDie:
		return a.Defect == b.Defect
	case KindInterrupt:
		return a.FiberID == b.FiberID && a.hasFiberID == b.hasFiberID
	default:
		return false
	}
}

// Equal reports whether two causes have pointwise-equal failure lists
// (Kind, Err, Defect, and interrupt origin). Annotations are not compared.
func (c Cause[E]) Equal(other Cause[E]) bool {
	if len(c.failures) != len(other.failures) {
		return false
	}
	for i := range c.failures {
		if !failureEqual(c.failures[i], other.failures[i]) {
			return false
		}
	}
	return true
}

// squashMarker distinguishes the two "nothing concrete to report" squash
// outcomes: a pure-interrupt cause and an empty one.
type squashMarker int

const (
	// SquashInterrupted is returned by Squash when the cause holds only
	// interruptions.
	SquashInterrupted squashMarker = iota
	// SquashEmpty is returned by Squash for a cause with no failures.
	SquashEmpty
)

// Squash collapses a Cause to a single opaque value: the first Fail's
// error if any, else the first Die's defect, else SquashInterrupted if the
// cause is interrupt-only, else SquashEmpty.
func (c Cause[E]) Squash() any {
	for _, f := range c.failures {
		if f.Kind == KindFail {
			return f.Err
		}
	}
	for _, f := range c.failures {
		if f.Kind == KindDie {
			return f.Defect
		}
	}
	if c.IsInterruptedOnly() {
		return SquashInterrupted
	}
	return SquashEmpty
}

// eraseCause widens a Cause[E] to Cause[any] for storage in a type-erased
// primitive; the dynamic type behind each KindFail's Err is unchanged.
func eraseCause[E any](c Cause[E]) Cause[any] {
	return Cause[any]{failures: c.failures}
}

// restoreCause narrows a Cause[any] back to Cause[E] at an API boundary
// where E is statically known again.
func restoreCause[E any](c Cause[any]) Cause[E] {
	return Cause[E]{failures: c.failures}
}

// Annotate returns a new Cause in which every failure's annotation map has
// key bound to value. A scope's uuid identity is the primary real-world
// use of this.
func Annotate[E any](c Cause[E], key string, value any) Cause[E] {
	out := make([]Failure, len(c.failures))
	for i, f := range c.failures {
		m := make(map[string]any, len(f.Annotations)+1)
		for k, v := range f.Annotations {
			m[k] = v
		}
		m[key] = value
		f.Annotations = m
		out[i] = f
	}
	return Cause[E]{failures: out}
}
