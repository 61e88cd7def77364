// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "log/slog"

// LoggerRef is the injectable structured logger that LogDebug, LogInfo and
// LogError write through. Its default delegates to slog.Default(), the same
// Reference-with-fallback pattern as [ClockRef]: most programs never
// touch it, but a harness can swap in a buffering logger for tests.
var LoggerRef = NewReference[*slog.Logger]("Logger", slog.Default)

// logAttrs builds the fiber/op-count attributes every log record carries.
func logAttrs(f *Fiber, extra ...any) []any {
	return append([]any{"fiber_id", uint64(f.id), "op_count", f.opCount}, extra...)
}

// LogDebug emits a debug-level record through the fiber's LoggerRef,
// tagged with the fiber's id and interpreter step count.
func LogDebug(msg string, args ...any) Effect[struct{}, any] {
	return WithFiber[struct{}, any](func(f *Fiber) Effect[struct{}, any] {
		return Sync[struct{}, any](func() struct{} {
			LoggerRef.Get(f.ctx).Debug(msg, logAttrs(f, args...)...)
			return struct{}{}
		})
	})
}

// LogInfo emits an info-level record through the fiber's LoggerRef.
func LogInfo(msg string, args ...any) Effect[struct{}, any] {
	return WithFiber[struct{}, any](func(f *Fiber) Effect[struct{}, any] {
		return Sync[struct{}, any](func() struct{} {
			LoggerRef.Get(f.ctx).Info(msg, logAttrs(f, args...)...)
			return struct{}{}
		})
	})
}

// LogError emits an error-level record, annotated with cause.Squash().
func LogError[E any](msg string, cause Cause[E], args ...any) Effect[struct{}, any] {
	return WithFiber[struct{}, any](func(f *Fiber) Effect[struct{}, any] {
		return Sync[struct{}, any](func() struct{} {
			attrs := append(logAttrs(f, args...), "cause", cause.Squash())
			LoggerRef.Get(f.ctx).Error(msg, attrs...)
			return struct{}{}
		})
	})
}

// TraceHook is a seam for an external tracer to observe named events.
// The default is a no-op, and the runtime itself never invokes the hook:
// fibre ships no tracer implementation and emits no lifecycle events
// through it.
type TraceHook func(event string, fields map[string]any)

// TraceHookRef is the injectable TraceHook, defaulting to a no-op.
var TraceHookRef = NewReference[TraceHook]("TraceHook", func() TraceHook {
	return func(string, map[string]any) {}
})
