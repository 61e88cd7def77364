// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

// Context is the immutable, persistent service map carried down the fiber
// tree. It supports typed keys with optional default values: a [Service]
// has no default and is absent unless bound; a [Reference] always resolves,
// falling back to a default-producing function. A Context is an immutable
// value; extending it never mutates the receiver.
type Context struct {
	bindings map[*serviceKey]any
}

// serviceKey is an opaque identity. Two keys are the same service iff they
// are the same pointer; this is what lets Service[T] and Reference[T] of
// identical T stay distinct.
type serviceKey struct {
	name string
}

// Service is a typed key with no default. A Service appears in the
// required-service set of any Effect that performs [Service.Get] on it;
// lookups against a Context that never bound it report ok=false.
type Service[T any] struct {
	key *serviceKey
}

// NewService creates a fresh Service identity. name is used only for
// diagnostics (panics, logging); it does not affect key identity.
func NewService[T any](name string) Service[T] {
	return Service[T]{key: &serviceKey{name: name}}
}

// Get looks up the service in ctx. ok is false if ctx (or any of its
// ancestors, once merged in) never bound this Service.
func (s Service[T]) Get(ctx *Context) (value T, ok bool) {
	if ctx == nil {
		return value, false
	}
	raw, found := ctx.bindings[s.key]
	if !found {
		return value, false
	}
	return raw.(T), true
}

// Provide returns a new Context with this Service bound to value, leaving
// ctx untouched.
func (s Service[T]) Provide(ctx *Context, value T) *Context {
	return bind(ctx, s.key, value)
}

// Reference is a typed key with a default-producing function. Unlike
// Service, Reference.Get always succeeds.
type Reference[T any] struct {
	key *serviceKey
	def func() T
}

// NewReference creates a Reference whose Get falls back to def when unbound.
// def is called fresh on every unbound lookup (e.g. the default Clock,
// default Logger).
func NewReference[T any](name string, def func() T) Reference[T] {
	return Reference[T]{key: &serviceKey{name: name}, def: def}
}

// Get resolves the reference: the bound value if present, else def().
func (r Reference[T]) Get(ctx *Context) T {
	if ctx != nil {
		if raw, ok := ctx.bindings[r.key]; ok {
			return raw.(T)
		}
	}
	return r.def()
}

// Provide returns a new Context with this Reference bound to value.
func (r Reference[T]) Provide(ctx *Context, value T) *Context {
	return bind(ctx, r.key, value)
}

// bind copies ctx's bindings plus one new entry. Copy-on-write keeps the
// map small and the operation O(n) in the current binding count, which is
// acceptable for the handful of services a fiber tree typically carries.
func bind(ctx *Context, key *serviceKey, value any) *Context {
	n := 0
	if ctx != nil {
		n = len(ctx.bindings)
	}
	next := make(map[*serviceKey]any, n+1)
	if ctx != nil {
		for k, v := range ctx.bindings {
			next[k] = v
		}
	}
	next[key] = value
	return &Context{bindings: next}
}

// EmptyContext returns a Context with no bindings.
func EmptyContext() *Context {
	return &Context{bindings: map[*serviceKey]any{}}
}

// Merge combines ctx and other into a new Context. Right-biased: bindings
// in other take precedence over bindings of the same key in ctx.
func (ctx *Context) Merge(other *Context) *Context {
	n := 0
	if ctx != nil {
		n += len(ctx.bindings)
	}
	if other != nil {
		n += len(other.bindings)
	}
	next := make(map[*serviceKey]any, n)
	if ctx != nil {
		for k, v := range ctx.bindings {
			next[k] = v
		}
	}
	if other != nil {
		for k, v := range other.bindings {
			next[k] = v
		}
	}
	return &Context{bindings: next}
}

// withContextPrim temporarily substitutes the running fiber's Context for
// inner's duration, restoring the previous one when inner completes.
type withContextPrim struct {
	ctx   *Context
	inner primitive
}

func (p *withContextPrim) interpret(f *Fiber) (primitive, bool) {
	prev := f.ctx
	frame := acquireFrame()
	frame.ensure = func() { f.ctx = prev }
	f.ctx = p.ctx
	f.pushFrame(frame)
	return p.inner, false
}

// ProvideContext runs e with ctx substituted for the calling fiber's own
// Context, restoring the original afterward.
func ProvideContext[A, E any](ctx *Context, e Effect[A, E]) Effect[A, E] {
	return wrap[A, E](&withContextPrim{ctx: ctx, inner: e.p})
}

// GetContext returns the calling fiber's current Context.
func GetContext() Effect[*Context, any] {
	return WithFiber[*Context, any](func(f *Fiber) Effect[*Context, any] {
		return SucceedEffect[*Context, any](f.ctx)
	})
}

// GetService resolves svc against the calling fiber's Context, dying with
// a [NoSuchElementError] if it was never bound. A required Service that
// is missing is a programming error, not a recoverable domain failure —
// hence Die, not Fail (see doc.go's note on R elision).
func GetService[T any](svc Service[T]) Effect[T, any] {
	return WithFiber[T, any](func(f *Fiber) Effect[T, any] {
		v, ok := svc.Get(f.ctx)
		if !ok {
			return DieEffect[T, any](&NoSuchElementError{Message: "required service not bound"})
		}
		return SucceedEffect[T, any](v)
	})
}

// GetReference resolves ref against the calling fiber's Context.
func GetReference[T any](ref Reference[T]) Effect[T, any] {
	return WithFiber[T, any](func(f *Fiber) Effect[T, any] {
		return SucceedEffect[T, any](ref.Get(f.ctx))
	})
}

// ProvideService runs e with svc bound to value in its Context.
func ProvideService[T, A, E any](svc Service[T], value T, e Effect[A, E]) Effect[A, E] {
	return WithFiber[A, E](func(f *Fiber) Effect[A, E] {
		return ProvideContext(svc.Provide(f.ctx, value), e)
	})
}

// ProvideReference runs e with ref bound to value in its Context.
func ProvideReference[T, A, E any](ref Reference[T], value T, e Effect[A, E]) Effect[A, E] {
	return WithFiber[A, E](func(f *Fiber) Effect[A, E] {
		return ProvideContext(ref.Provide(f.ctx, value), e)
	})
}
