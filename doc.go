// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

// Package fibre is a structured-concurrency effect runtime.
//
// A computation is represented as an immutable [Effect] value and executed
// on top of cooperatively scheduled lightweight tasks called fibers. The
// runtime provides typed success/failure channels ([Exit]), causal error
// aggregation ([Cause]), structured interruption, scoped resource
// finalization ([Scope]), and dependency injection via a per-fiber service
// map ([Context]).
//
// # Design Philosophy
//
// Computations are built from continuation-passing primitives, dispatched
// through a type-erased interpreter, and pooled on the hot path rather
// than allocated fresh per step. An [Effect] describes a computation once;
// a [Fiber] interprets it, pushing continuation frames on a stack,
// suspending on asynchronous registration, and honoring cancellation via
// accumulated interrupt causes.
//
// Effect values are type-erased internally and type-safe generics are
// restored at the public API boundary. A conceptual Effect<A, E, R>
// algebra would also track a requirement set R, but that set is not
// reified at the type level — Go generics cannot soundly express the
// variadic set-union R needs across FlatMap chains without machinery
// disproportionate to the benefit. Required services are instead resolved
// at runtime against the ambient [Context], with [Service.Get] reporting
// absence.
//
// # Core Types
//
//   - [Effect]: an immutable, typed description of a computation.
//   - [Fiber]: the interpreter instance for one running Effect.
//   - [Cause]: an ordered union of Fail/Die/Interrupt failures.
//   - [Exit]: the terminal Success/Failure result of a Fiber.
//   - [Scope]: an ordered set of finalizers closed with an exit.
//   - [Context]: the immutable service map threaded through execution.
//
// # Entry Points
//
//   - [RunFork]: start a computation, returning a live [Fiber] handle.
//   - [RunSyncExit]: attempt synchronous evaluation, returning an [Exit].
//   - [RunSync]: like RunSyncExit but panics the squashed cause on failure.
//   - [RunPromiseExit] / [RunPromise]: resolve via a Go channel.
//
// # Concurrency Primitives
//
//   - [ForEach]: bounded or unbounded concurrent mapping, order-preserving.
//   - [Race] / [RaceFirst] / [RaceAll] / [RaceAllFirst]: first-to-finish.
//   - [Semaphore]: weighted, FIFO-fair permits backed by
//     golang.org/x/sync/semaphore.
//   - [Latch]: a gate that blocks waiters until opened.
//   - [Timeout]: race against a deadline.
package fibre
