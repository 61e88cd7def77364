// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// Option is a value that may or may not be present, the result of
// converting an Effect's failure channel away via [ToOption].
type Option[A any] struct {
	present bool
	value   A
}

// Some wraps a present value.
func Some[A any](a A) Option[A] { return Option[A]{present: true, value: a} }

// None is the absent Option of A.
func None[A any]() Option[A] { return Option[A]{} }

// Get returns the wrapped value and true, or the zero value and false.
func (o Option[A]) Get() (A, bool) { return o.value, o.present }

// IsSome reports whether the Option carries a value.
func (o Option[A]) IsSome() bool { return o.present }

// ToOption converts e's outcome to Some(value) on success or None() on any
// failure (Fail, Die, or Interrupt alike), never itself failing.
func ToOption[A, E any](e Effect[A, E]) Effect[Option[A], any] {
	return OnSuccessAndFailure[A, Option[A], E, any](e,
		func(a A) Effect[Option[A], any] { return SucceedEffect[Option[A], any](Some(a)) },
		func(Cause[E]) Effect[Option[A], any] { return SucceedEffect[Option[A], any](None[A]()) },
	)
}

// Either is a disjoint union of a failure-side L and a success-side R, the
// result of converting an Effect's failure channel away via [ToEither].
type Either[L, R any] struct {
	isRight bool
	left    L
	right   R
}

// Left wraps a failure-side value.
func Left[L, R any](l L) Either[L, R] { return Either[L, R]{left: l} }

// Right wraps a success-side value.
func Right[L, R any](r R) Either[L, R] { return Either[L, R]{isRight: true, right: r} }

// IsRight reports whether the Either holds a Right (success-side) value.
func (e Either[L, R]) IsRight() bool { return e.isRight }

// GetLeft returns the failure-side value and true, or the zero value and false.
func (e Either[L, R]) GetLeft() (L, bool) { return e.left, !e.isRight }

// GetRight returns the success-side value and true, or the zero value and false.
func (e Either[L, R]) GetRight() (R, bool) { return e.right, e.isRight }

// ToEither converts e's outcome to Right(value) on success or Left(cause)
// on failure, routing the full [Cause] (Fail, Die, and Interrupt alike) to
// the left side. The result never itself fails.
func ToEither[A, E any](e Effect[A, E]) Effect[Either[Cause[E], A], any] {
	return OnSuccessAndFailure[A, Either[Cause[E], A], E, any](e,
		func(a A) Effect[Either[Cause[E], A], any] {
			return SucceedEffect[Either[Cause[E], A], any](Right[Cause[E], A](a))
		},
		func(c Cause[E]) Effect[Either[Cause[E], A], any] {
			return SucceedEffect[Either[Cause[E], A], any](Left[Cause[E], A](c))
		},
	)
}

// Sandbox exposes e's full Cause on the typed failure channel instead of
// just a Fail's E, so a handler can inspect or recover from Die and
// Interrupt the same way it would a typed Fail — Catch(Sandbox(e), h)
// lets h see everything that can go wrong, not only the typed failures
// CatchFail already exposes.
func Sandbox[A, E any](e Effect[A, E]) Effect[A, Cause[E]] {
	return OnFailure[A, E, Cause[E]](e, func(c Cause[E]) Effect[A, Cause[E]] {
		return FailEffect[A, Cause[E]](c)
	})
}

// AsExit captures e's outcome as a value instead of propagating it: the
// result is Success(e's Exit), never a Failure, letting a caller inspect
// an inner Effect's disposition without being dragged down by it.
func AsExit[A, E any](e Effect[A, E]) Effect[Exit[A, E], any] {
	return OnSuccessAndFailure[A, Exit[A, E], E, any](e,
		func(a A) Effect[Exit[A, E], any] { return SucceedEffect[Exit[A, E], any](Succeed[A, E](a)) },
		func(c Cause[E]) Effect[Exit[A, E], any] { return SucceedEffect[Exit[A, E], any](Fail[A, E](c)) },
	)
}

// Tagged is implemented by typed failure values that identify themselves
// with a stable tag, the discriminator [CatchTag] matches against — the
// Go analogue of a discriminated union's tag field.
type Tagged interface {
	Tag() string
}

// CatchTag recovers from e's failure only when it carries a typed Fail
// whose error implements [Tagged] and reports tag; every other failure
// (a differently tagged Fail, a Die, or an Interrupt) propagates
// unchanged, mirroring [CatchFail]'s selective-recovery discipline.
func CatchTag[A, E any](e Effect[A, E], tag string, onTag func(E) Effect[A, E]) Effect[A, E] {
	return OnFailure[A, E, E](e, func(c Cause[E]) Effect[A, E] {
		for _, fl := range c.Failures() {
			if fl.Kind != KindFail {
				continue
			}
			if tagged, ok := fl.Err.(Tagged); ok && tagged.Tag() == tag {
				return onTag(fl.Err.(E))
			}
		}
		return FailCauseEffect[A, E](c)
	})
}
