// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import (
	"context"

	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/semaphore"
)

// BlockingPool bounds how many synchronous, thread-blocking calls may run
// at once on their own goroutines, isolating them from the cooperative
// fiber scheduler.
type BlockingPool struct {
	sem *semaphore.Weighted
}

// NewBlockingPool returns a BlockingPool allowing up to concurrency
// simultaneous blocking calls.
func NewBlockingPool(concurrency int64) *BlockingPool {
	return &BlockingPool{sem: semaphore.NewWeighted(concurrency)}
}

// defaultBlockingPool backs the package-level [Blocking] helper.
var defaultBlockingPool = NewBlockingPool(64)

// BlockingRef lets a Context override the pool [Blocking] draws from,
// e.g. to give one subsystem its own concurrency budget.
var BlockingRef = NewReference[*BlockingPool]("BlockingPool", func() *BlockingPool { return defaultBlockingPool })

// Blocking runs thunk on its own goroutine, under the ambient
// [BlockingPool]'s concurrency limit, suspending the calling fiber until
// it returns. Interrupting the fiber cancels thunk's context; thunk must
// observe ctx.Done() to actually stop promptly — fibre cannot forcibly
// kill a goroutine, only ask it to leave.
func Blocking[A any](thunk func(ctx context.Context) (A, error)) Effect[A, error] {
	return WithFiber[A, error](func(f *Fiber) Effect[A, error] {
		pool := BlockingRef.Get(f.ctx)
		return runBlocking(pool, thunk)
	})
}

func runBlocking[A any](pool *BlockingPool, thunk func(ctx context.Context) (A, error)) Effect[A, error] {
	return Async[A, error](func(resume func(Exit[A, error])) (onCancel func()) {
		ctx, cancel := context.WithCancel(context.Background())
		var g errgroup.Group
		g.Go(func() error {
			if err := pool.sem.Acquire(ctx, 1); err != nil {
				return err
			}
			defer pool.sem.Release(1)
			defer func() {
				if r := recover(); r != nil {
					resume(Fail[A, error](DieCause[error](r)))
				}
			}()
			v, err := thunk(ctx)
			if err != nil {
				resume(Fail[A, error](FailCause[error](err)))
				return err
			}
			resume(Succeed[A, error](v))
			return nil
		})
		go func() {
			if err := g.Wait(); err != nil {
				resume(Fail[A, error](InterruptCause[error](0, false)))
			}
		}()
		return cancel
	})
}
