// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// Restore re-establishes the interruptible/uninterruptible posture that
// was in effect at the point a [UninterruptibleMask] was entered, for
// wrapping a sub-effect that should be interruptible again even though
// the surrounding mask is not.
type Restore struct {
	value bool
}

// Interruptible marks e interruptible for its duration, restoring the
// previous posture on completion, success or failure. A pending deferred
// interrupt surfaces the moment the fiber becomes interruptible again.
func Interruptible[A, E any](e Effect[A, E]) Effect[A, E] {
	return setInterruptibleEffect(true, e)
}

// Uninterruptible marks e uninterruptible for its duration: any interrupt
// requested while e runs is deferred until e completes or an enclosed
// Interruptible region is entered.
func Uninterruptible[A, E any](e Effect[A, E]) Effect[A, E] {
	return setInterruptibleEffect(false, e)
}

// Apply restores the masked interruptible/uninterruptible state for the
// duration of e, mirroring ZIO-style UninterruptibleMask semantics: code
// that receives a Restore can temporarily opt e back out of the
// surrounding mask.
func (r Restore) Apply(e Effect[struct{}, any]) Effect[struct{}, any] {
	return setInterruptibleEffect(r.value, e)
}

// ApplyTyped is Apply generalized over e's own A/E, for callers that need
// the masked region to carry a typed result.
func ApplyTyped[A, E any](r Restore, e Effect[A, E]) Effect[A, E] {
	return setInterruptibleEffect(r.value, e)
}

// UninterruptibleMask runs f with interruption deferred, passing f a
// Restore capturing the posture from just before the mask was entered so
// nested regions can opt back in.
func UninterruptibleMask[A, E any](f func(restore Restore) Effect[A, E]) Effect[A, E] {
	return WithFiber[A, E](func(fib *Fiber) Effect[A, E] {
		restore := Restore{value: fib.interruptible}
		return setInterruptibleEffect(false, f(restore))
	})
}

// CheckInterruptible reports the calling fiber's current interruptible
// posture without altering it.
func CheckInterruptible() Effect[bool, any] {
	return WithFiber[bool, any](func(f *Fiber) Effect[bool, any] {
		return SucceedEffect[bool, any](f.interruptible)
	})
}

// Self returns the calling fiber's identity.
func Self() Effect[FiberID, any] {
	return WithFiber[FiberID, any](func(f *Fiber) Effect[FiberID, any] {
		return SucceedEffect[FiberID, any](f.id)
	})
}
