// Package random provides the goroutine-safe random source shared by the
// quiz engine and the local recording pool.
package random

import (
	"math/rand/v2"
	"sync"
	"time"
)

// Source is the subset of randomness the quiz needs.
type Source interface {
	IntN(n int) int
	Shuffle(n int, swap func(i, j int))
}

// Locked wraps a PCG generator behind a mutex.
type Locked struct {
	mu  sync.Mutex
	rnd *rand.Rand
}

// New returns a seeded source. A zero seed picks one from the clock.
func New(seed uint64) *Locked {
	if seed == 0 {
		seed = uint64(time.Now().UnixNano())
	}
	return &Locked{rnd: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

func (l *Locked) IntN(n int) int {
	l.mu.Lock()
	defer l.mu.Unlock()
	return l.rnd.IntN(n)
}

func (l *Locked) Shuffle(n int, swap func(i, j int)) {
	l.mu.Lock()
	defer l.mu.Unlock()
	l.rnd.Shuffle(n, swap)
}

// Sample returns up to k distinct elements of items in random order.
// items is not modified.
func Sample[T any](src Source, items []T, k int) []T {
	if k <= 0 || len(items) == 0 {
		return nil
	}
	pool := make([]T, len(items))
	copy(pool, items)
	if k > len(pool) {
		k = len(pool)
	}
	// partial Fisher-Yates
	for i := 0; i < k; i++ {
		j := i + src.IntN(len(pool)-i)
		pool[i], pool[j] = pool[j], pool[i]
	}
	return pool[:k]
}
