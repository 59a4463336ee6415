package testutils

import (
	"fmt"
	"math/rand"
)

// SeededRoller is a deterministic dice.Roller
type SeededRoller struct {
	rng *rand.Rand
}

// NewSeededRoller creates a roller that replays the same sequence for a seed
func NewSeededRoller(seed int64) *SeededRoller {
	return &SeededRoller{rng: rand.New(rand.NewSource(seed))}
}

// Roll returns a value in [1, size]
func (r *SeededRoller) Roll(size int) (int, error) {
	if size <= 0 {
		return 0, fmt.Errorf("invalid die size %d", size)
	}
	return r.rng.Intn(size) + 1, nil
}

// RollN rolls count dice of the given size
func (r *SeededRoller) RollN(count, size int) ([]int, error) {
	out := make([]int, count)
	for i := range out {
		v, err := r.Roll(size)
		if err != nil {
			return nil, err
		}
		out[i] = v
	}
	return out, nil
}
