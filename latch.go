// ©Hayabusa Cloud Co., Ltd. 2026. All rights reserved.
// Use of this source code is governed by a MIT-style
// license that can be found in the LICENSE file.

package fibre

import "sync"

// Latch is a one-shot gate: every fiber that awaits it before it opens
// suspends until Open is called exactly once; any fiber that awaits it
// afterward proceeds immediately. Waiters accumulate against the closed
// gate, and Open flushes them all at once.
type Latch struct {
	mu      sync.Mutex
	open    bool
	waiters []func()
}

// NewLatch returns a closed Latch.
func NewLatch() *Latch {
	return &Latch{}
}

// Open releases every fiber currently awaiting the latch and marks it
// open for good; later calls are no-ops.
func (l *Latch) Open() {
	l.mu.Lock()
	if l.open {
		l.mu.Unlock()
		return
	}
	l.open = true
	waiters := l.waiters
	l.waiters = nil
	l.mu.Unlock()
	for _, wake := range waiters {
		wake()
	}
}

// IsOpen reports whether Open has been called.
func (l *Latch) IsOpen() bool {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.open
}

// Await suspends the calling fiber until the latch opens.
func (l *Latch) Await() Effect[struct{}, any] {
	return Async[struct{}, any](func(resume func(Exit[struct{}, any])) (onCancel func()) {
		l.mu.Lock()
		if l.open {
			l.mu.Unlock()
			resume(Succeed[struct{}, any](struct{}{}))
			return nil
		}
		l.waiters = append(l.waiters, func() {
			resume(Succeed[struct{}, any](struct{}{}))
		})
		l.mu.Unlock()
		return nil
	})
}
