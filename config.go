package sqtile

import (
	"runtime"
	"time"
)

// Config holds the control parameters enumerated in spec.md §6. All
// fields are solve-wide: they apply identically to every island in a
// Solve call.
type Config struct {
	// PopulationSize is K, the elite pool size per island. Larger
	// values search more broadly per generation but slow each one down.
	PopulationSize int

	// WorkersPerMachine is M, the number of independent islands run in
	// parallel against the same grid.
	WorkersPerMachine int

	// Deadline is the wall-clock budget for the whole solve.
	Deadline time.Duration

	// Seed is the PRNG seed. Zero means "draw a nondeterministic seed"
	// (see seedOrRandom); any other value makes every island's sequence
	// of random draws reproducible. How many generations an island runs
	// still depends on the wall-clock Deadline, so two solves with the
	// same Config and grid return the same decomposition only when they
	// complete the same number of generations.
	Seed uint32

	// LineCoefficientRange bounds the magnitude of the integer
	// crossover line's A/B coefficients (spec.md §4.6, §9).
	LineCoefficientRange int

	// PeerShareIntervalGenerations is how many generations elapse
	// between mailbox publish/adopt cycles (spec.md §6).
	PeerShareIntervalGenerations int

	// MailboxCapacity bounds the peer-exchange mailbox (spec.md §5).
	MailboxCapacity int
}

// DefaultConfig returns the nominal configuration described in
// spec.md §6: K in [50,200] (100 chosen from that range), M equal to
// the host's hardware thread count, a 10s deadline, a nondeterministic
// seed, and a peer-share cadence of every 25 generations.
func DefaultConfig() Config {
	return Config{
		PopulationSize:               100,
		WorkersPerMachine:             runtime.GOMAXPROCS(0),
		Deadline:                     10 * time.Second,
		Seed:                         0,
		LineCoefficientRange:         1000,
		PeerShareIntervalGenerations: 25,
		MailboxCapacity:              8,
	}
}

// normalize fills in safe minimums for any field left at its zero
// value, without silently overriding a caller's explicit choice of a
// positive value.
func (c Config) normalize() Config {
	if c.PopulationSize < 1 {
		c.PopulationSize = 1
	}
	if c.WorkersPerMachine < 1 {
		c.WorkersPerMachine = 1
	}
	if c.Deadline <= 0 {
		c.Deadline = 10 * time.Second
	}
	if c.LineCoefficientRange < 1 {
		c.LineCoefficientRange = 1
	}
	if c.PeerShareIntervalGenerations < 1 {
		c.PeerShareIntervalGenerations = 25
	}
	if c.MailboxCapacity < 1 {
		c.MailboxCapacity = 8
	}
	return c
}
