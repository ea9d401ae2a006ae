package analysis

import (
	"math/rand/v2"
	"sync"
)

// Random is the source of the simulated variation in the heuristics. It must
// be safe for concurrent use because the analyzers share it.
type Random interface {
	Float64() float64
	IntN(n int) int
}

type globalRandom struct{}

func (globalRandom) Float64() float64 { return rand.Float64() }
func (globalRandom) IntN(n int) int   { return rand.IntN(n) }

type seededRandom struct {
	mu sync.Mutex
	r  *rand.Rand
}

func (s *seededRandom) Float64() float64 {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.Float64()
}

func (s *seededRandom) IntN(n int) int {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.r.IntN(n)
}

// NewRandom returns a reproducible source for a non-zero seed and the
// runtime's global source otherwise.
func NewRandom(seed uint64) Random {
	if seed == 0 {
		return globalRandom{}
	}
	return &seededRandom{r: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}
