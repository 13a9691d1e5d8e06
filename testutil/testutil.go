package testutil

import (
	"math"
	"math/rand"
	"sync"
)

// RNG struct encapsulates the random number generator and seed.
// It is thread-safe.
type RNG struct {
	rand *rand.Rand
	seed int64
	mu   sync.Mutex
}

// NewRNG creates a new RNG instance with the specified seed.
func NewRNG(seed int64) *RNG {
	return &RNG{
		rand: rand.New(rand.NewSource(seed)),
		seed: seed,
	}
}

// Reset resets the RNG to its initial seed.
func (r *RNG) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rand.Seed(r.seed)
}

// Seed returns the seed the RNG was created with.
func (r *RNG) Seed() int64 {
	return r.seed
}

// Intn returns a random int in [0, n).
func (r *RNG) Intn(n int) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Intn(n)
}

// Uint64 returns a random uint64.
func (r *RNG) Uint64() uint64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Uint64()
}

// Float64 returns a random float64 in [0, 1).
func (r *RNG) Float64() float64 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Float64()
}

// Perm returns a random permutation of [0, n).
func (r *RNG) Perm(n int) []int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rand.Perm(n)
}

// Graph returns random out-edges for n nodes. Node i links to up to degree
// distinct nodes with smaller indices, so nodes can be inserted in order.
func (r *RNG) Graph(n, degree int) [][]int {
	r.mu.Lock()
	defer r.mu.Unlock()

	edges := make([][]int, n)
	for i := 1; i < n; i++ {
		d := min(degree, i)
		seen := make(map[int]struct{}, d)
		for len(seen) < d {
			seen[r.rand.Intn(i)] = struct{}{}
		}
		for j := 0; j < i; j++ {
			if _, ok := seen[j]; ok {
				edges[i] = append(edges[i], j)
			}
		}
	}
	return edges
}

// Zipf returns a Zipf-distributed int in [0, n) with exponent s > 1.
// Small values are much more likely than large ones.
func (r *RNG) Zipf(n int, s float64) int {
	r.mu.Lock()
	defer r.mu.Unlock()
	if n <= 1 {
		return 0
	}
	if s <= 1 {
		s = 1.1
	}
	z := rand.NewZipf(r.rand, s, 1, uint64(n-1))
	return int(z.Uint64())
}

// Sparse returns n booleans, each true with probability rate.
func (r *RNG) Sparse(n int, rate float64) []bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	rate = math.Max(0, math.Min(1, rate))
	out := make([]bool, n)
	for i := range out {
		out[i] = r.rand.Float64() < rate
	}
	return out
}
