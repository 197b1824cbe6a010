package worker

import (
	"math/rand/v2"
	"time"
)

// Jitter produces per-step delays around a nominal base delay.
// A Jitter is not safe for concurrent use; each worker owns one.
type Jitter struct {
	rng *rand.Rand
}

// NewJitter returns a Jitter seeded deterministically from seed.
func NewJitter(seed uint64) *Jitter {
	return &Jitter{rng: rand.New(rand.NewPCG(seed, seed^0x9e3779b97f4a7c15))}
}

// NextDelay returns base perturbed by a uniform offset in [0, base/2] with a
// random sign, floored at zero.
func (j *Jitter) NextDelay(base time.Duration) time.Duration {
	if base <= 0 {
		return 0
	}
	offset := time.Duration(j.rng.Int64N(int64(base/2) + 1))
	if j.rng.IntN(2) == 0 {
		offset = -offset
	}
	return max(0, base+offset)
}

// BaseDelay is the nominal per-step delay for a target duration spread over
// steps, truncated to whole nanoseconds.
//
// Parameters:
//   - target: The nominal duration of a whole worker.
//   - steps: The number of steps of a worker.
//
// Returns:
//   - time.Duration: The per-step delay, or zero when steps is not positive.
func BaseDelay(target time.Duration, steps int) time.Duration {
	if steps <= 0 {
		return 0
	}
	return target / time.Duration(steps)
}
