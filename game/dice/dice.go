package dice

import (
	"math/rand"
	"sync"
)

// Sides is the number of faces on each die
const Sides = 6

// Source is the random source a Roller draws from. *rand.Rand satisfies it.
type Source interface {
	Intn(n int) int
}

// Roller rolls d6 values from a Source. It is safe for concurrent use.
type Roller struct {
	mu  sync.Mutex
	src Source
}

// NewRoller creates a roller seeded with seed. The same seed produces the
// same sequence of rolls.
func NewRoller(seed int64) *Roller {
	return &Roller{src: rand.New(rand.NewSource(seed))}
}

// NewRollerWithSource wraps an existing random source
func NewRollerWithSource(src Source) *Roller {
	return &Roller{src: src}
}

// NewRandomRoller creates a roller seeded from crypto/rand
func NewRandomRoller() (*Roller, error) {
	seed, err := NewSeed()
	if err != nil {
		return nil, err
	}
	return NewRoller(seed), nil
}

// RollD6 returns a value in [1,6]
func (r *Roller) RollD6() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.src.Intn(Sides) + 1
}

// RollShot returns the accuracy and direction dice for one stroke
func (r *Roller) RollShot() (accuracy, direction int) {
	r.mu.Lock()
	defer r.mu.Unlock()
	accuracy = r.src.Intn(Sides) + 1
	direction = r.src.Intn(Sides) + 1
	return accuracy, direction
}
