// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// Derived Effect combinators. FlatMap (OnSuccess, effect.go) is the
// minimal sequencing primitive; everything below is a convenience built
// on top of it and OnFailure/OnSuccessAndFailure.

// Map transforms a successful result without giving the transformation a
// chance to fail or suspend.
func Map[A, B, E any](e Effect[A, E], f func(A) B) Effect[B, E] {
	return OnSuccess[A, B, E](e, func(a A) Effect[B, E] {
		return SucceedEffect[B, E](f(a))
	})
}

// FlatMap sequences e into f, the named alias for OnSuccess at the public
// API surface.
func FlatMap[A, B, E any](e Effect[A, E], f func(A) Effect[B, E]) Effect[B, E] {
	return OnSuccess[A, B, E](e, f)
}

// Then sequences e into n, discarding e's result.
func Then[A, B, E any](e Effect[A, E], n Effect[B, E]) Effect[B, E] {
	return OnSuccess[A, B, E](e, func(A) Effect[B, E] { return n })
}

// As replaces e's successful result with a constant value.
func As[A, B, E any](e Effect[A, E], b B) Effect[B, E] {
	return Map(e, func(A) B { return b })
}

// AsVoid discards e's successful result.
func AsVoid[A, E any](e Effect[A, E]) Effect[struct{}, E] {
	return As[A, struct{}, E](e, struct{}{})
}

// Tap runs f for its side effect after e succeeds, then passes e's value
// through unchanged.
func Tap[A, E any](e Effect[A, E], f func(A) Effect[struct{}, E]) Effect[A, E] {
	return OnSuccess[A, A, E](e, func(a A) Effect[A, E] {
		return Then[struct{}, A, E](f(a), SucceedEffect[A, E](a))
	})
}

// Match folds both channels of e into a common result type B.
func Match[A, B, E any](e Effect[A, E], onFailure func(Cause[E]) B, onSuccess func(A) B) Effect[B, any] {
	return OnSuccessAndFailure[A, B, E, any](e,
		func(a A) Effect[B, any] { return SucceedEffect[B, any](onSuccess(a)) },
		func(c Cause[E]) Effect[B, any] { return SucceedEffect[B, any](onFailure(c)) },
	)
}

// Catch recovers from e's failure cause, producing a new Effect in its
// place. The recovery handler sees the full Cause, including Die and
// Interrupt.
func Catch[A, E1, E2 any](e Effect[A, E1], onFailure func(Cause[E1]) Effect[A, E2]) Effect[A, E2] {
	return OnFailure[A, E1, E2](e, onFailure)
}

// CatchFail recovers from e's failure only when it carries a typed Fail,
// re-raising Die and Interrupt causes unchanged.
func CatchFail[A, E any](e Effect[A, E], onFail func(E) Effect[A, E]) Effect[A, E] {
	return OnFailure[A, E, E](e, func(c Cause[E]) Effect[A, E] {
		for _, fl := range c.Failures() {
			if fl.Kind == KindFail {
				return onFail(fl.Err.(E))
			}
		}
		return FailCauseEffect[A, E](c)
	})
}

// OnError attaches a cleanup hook that runs only on failure, with the
// failure's Cause passed through unchanged afterward.
func OnError[A, E any](e Effect[A, E], cleanup func(Cause[E]) Effect[struct{}, any]) Effect[A, E] {
	return OnFailure[A, E, E](e, func(c Cause[E]) Effect[A, E] {
		return OnSuccessAndFailure[struct{}, A, any, E](cleanup(c),
			func(struct{}) Effect[A, E] { return FailCauseEffect[A, E](c) },
			func(Cause[any]) Effect[A, E] { return FailCauseEffect[A, E](c) },
		)
	})
}

// Ensuring runs finalizer after e completes, regardless of outcome. When
// the finalizer succeeds, e's own Exit is kept. When it fails, its failure
// surfaces: in place of e's value if e succeeded, or merged after e's own
// cause if e failed.
func Ensuring[A, E any](e Effect[A, E], finalizer Effect[struct{}, any]) Effect[A, E] {
	f := retype[struct{}, E](finalizer)
	return OnSuccessAndFailure[A, A, E, E](e,
		func(a A) Effect[A, E] { return Then[struct{}, A, E](f, SucceedEffect[A, E](a)) },
		func(c Cause[E]) Effect[A, E] {
			return OnSuccessAndFailure[struct{}, A, E, E](f,
				func(struct{}) Effect[A, E] { return FailCauseEffect[A, E](c) },
				func(fc Cause[E]) Effect[A, E] { return FailCauseEffect[A, E](Merge(c, fc)) },
			)
		},
	)
}

// retype relabels a never-failing Effect[A, any]'s failure channel to a
// caller's own E. Effect carries no E-typed data at runtime — it is a
// type-erased primitive underneath — so this is a pure relabeling, sound
// exactly because finalizer never actually fails with a typed E.
func retype[A, E any](e Effect[A, any]) Effect[A, E] {
	return Effect[A, E]{p: e.p}
}

// Zip runs a then b in sequence, pairing their results.
func Zip[A, B, E any](a Effect[A, E], b Effect[B, E]) Effect[struct {
	A A
	B B
}, E] {
	return ZipWith(a, b, func(av A, bv B) struct {
		A A
		B B
	} {
		return struct {
			A A
			B B
		}{av, bv}
	})
}

// ZipWith runs a then b in sequence, combining their results with f.
func ZipWith[A, B, C, E any](a Effect[A, E], b Effect[B, E], f func(A, B) C) Effect[C, E] {
	return OnSuccess[A, C, E](a, func(av A) Effect[C, E] {
		return OnSuccess[B, C, E](b, func(bv B) Effect[C, E] {
			return SucceedEffect[C, E](f(av, bv))
		})
	})
}
