// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import (
	"sync"

	"github.com/google/uuid"
)

// Scope is an ordered set of finalizers: an arbitrarily-extended set of
// cleanups that can be registered over the scope's lifetime and close
// together, in reverse registration order, exactly once.
type Scope struct {
	id uuid.UUID

	mu         sync.Mutex
	closed     bool
	closeCause Cause[any]
	finalizers []func(Cause[any]) Effect[struct{}, any]
}

// NewScope returns a fresh, open Scope with a random identity. The
// identity is attached (via [AnnotationScopeID]) to any Cause produced by
// a finalizer that itself fails, so a failing cleanup can be traced back
// to the scope that ran it.
func NewScope() *Scope {
	return &Scope{id: uuid.New()}
}

// ID returns the scope's identity.
func (s *Scope) ID() uuid.UUID { return s.id }

// AddFinalizer registers finalizer to run when the scope closes, ahead of
// every finalizer already registered (LIFO). Registering on an
// already-closed scope runs finalizer immediately with the cause the
// scope closed with. E is free at the call site (AddFinalizer itself
// never fails) so it drops into any surrounding Effect[_, E] chain
// without an explicit conversion.
func AddFinalizer[E any](scope *Scope, finalizer func(Cause[any]) Effect[struct{}, any]) Effect[struct{}, E] {
	return retype[struct{}, E](Sync[struct{}, any](func() struct{} {
		scope.mu.Lock()
		if scope.closed {
			cause := scope.closeCause
			scope.mu.Unlock()
			RunSync[struct{}, any](nil, finalizer(cause))
			return struct{}{}
		}
		scope.finalizers = append(scope.finalizers, finalizer)
		scope.mu.Unlock()
		return struct{}{}
	}))
}

// Close marks the scope closed, then runs every registered finalizer in
// reverse registration order with cause. Finalizers always run to
// completion: a finalizer's own failure is collected and merged into the
// Cause the scope's Close exit reports, annotated with the scope's id, but
// does not stop later finalizers from running. Close succeeds when every
// finalizer succeeds.
func Close(scope *Scope, cause Cause[any]) Effect[struct{}, any] {
	return WithFiber[struct{}, any](func(f *Fiber) Effect[struct{}, any] {
		scope.mu.Lock()
		if scope.closed {
			scope.mu.Unlock()
			return SucceedEffect[struct{}, any](struct{}{})
		}
		scope.closed = true
		scope.closeCause = cause
		finalizers := scope.finalizers
		scope.finalizers = nil
		scope.mu.Unlock()

		return runFinalizers(finalizers, cause, false, scope.id)
	})
}

func runFinalizers(finalizers []func(Cause[any]) Effect[struct{}, any], cause Cause[any], failed bool, scopeID uuid.UUID) Effect[struct{}, any] {
	if len(finalizers) == 0 {
		if !failed {
			return SucceedEffect[struct{}, any](struct{}{})
		}
		return FailCauseEffect[struct{}, any](cause)
	}
	last := finalizers[len(finalizers)-1]
	rest := finalizers[:len(finalizers)-1]
	return OnSuccessAndFailure[struct{}, struct{}, any, any](last(cause),
		func(struct{}) Effect[struct{}, any] { return runFinalizers(rest, cause, failed, scopeID) },
		func(finCause Cause[any]) Effect[struct{}, any] {
			annotated := Annotate(finCause, AnnotationScopeID, scopeID.String())
			merged := Merge(cause, annotated)
			return runFinalizers(rest, merged, true, scopeID)
		},
	)
}

// Fork creates a child Scope linked to scope's lifetime: closing scope
// also closes the child. The child's own close detaches that link first,
// so a child closed independently is not redundantly re-closed (with an
// already-spent cause) when scope itself later closes.
func (scope *Scope) Fork() *Scope {
	child := NewScope()

	scope.mu.Lock()
	if scope.closed {
		cause := scope.closeCause
		scope.mu.Unlock()
		child.closed = true
		child.closeCause = cause
		return child
	}

	closeChild := func(cause Cause[any]) Effect[struct{}, any] {
		return Close(child, cause)
	}
	scope.finalizers = append(scope.finalizers, closeChild)
	slot := len(scope.finalizers) - 1
	scope.mu.Unlock()

	detach := func(Cause[any]) Effect[struct{}, any] {
		return Sync[struct{}, any](func() struct{} {
			scope.mu.Lock()
			if slot < len(scope.finalizers) {
				scope.finalizers[slot] = func(Cause[any]) Effect[struct{}, any] {
					return SucceedEffect[struct{}, any](struct{}{})
				}
			}
			scope.mu.Unlock()
			return struct{}{}
		})
	}
	child.finalizers = append(child.finalizers, detach)
	return child
}

// AcquireRelease acquires a resource, registers release against scope,
// and returns the resource. Release always runs when scope closes,
// whatever acquire's caller goes on to do with the resource.
func AcquireRelease[A, E any](scope *Scope, acquire Effect[A, E], release func(A) Effect[struct{}, any]) Effect[A, E] {
	return OnSuccess[A, A, E](acquire, func(resource A) Effect[A, E] {
		return Then[struct{}, A, E](
			AddFinalizer[E](scope, func(Cause[any]) Effect[struct{}, any] { return release(resource) }),
			SucceedEffect[A, E](resource),
		)
	})
}

// Scoped runs body against a fresh scope, created anew each time the
// returned Effect runs, closing it with body's own Exit (success cause
// empty, failure cause as raised) once body completes — the common case
// where a scope's lifetime is exactly one Effect's execution.
func Scoped[A, E any](body func(scope *Scope) Effect[A, E]) Effect[A, E] {
	return Suspend[A, E](func() Effect[A, E] {
		return scopedOn(NewScope(), body)
	})
}

func scopedOn[A, E any](scope *Scope, body func(scope *Scope) Effect[A, E]) Effect[A, E] {
	return OnSuccessAndFailure[A, A, E, E](body(scope),
		func(a A) Effect[A, E] {
			return Then[struct{}, A, E](
				retype[struct{}, E](Close(scope, Cause[any]{})),
				SucceedEffect[A, E](a),
			)
		},
		func(c Cause[E]) Effect[A, E] {
			return Then[struct{}, A, E](
				retype[struct{}, E](Close(scope, eraseCause(c))),
				FailCauseEffect[A, E](c),
			)
		},
	)
}
