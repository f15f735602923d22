package sqtile

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestSolveDeterministicWithFixedSeed checks spec.md §8 property 6: a
// single-island solve with a fixed seed produces a bit-identical
// decomposition across repeated calls.
func TestSolveDeterministicWithFixedSeed(t *testing.T) {
	g, err := NewGrid(6, 6, emptyMask(6, 6))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.WorkersPerMachine = 1
	cfg.PopulationSize = 30
	cfg.Seed = 99
	cfg.Deadline = 30 * time.Millisecond

	a := SolveGrid(g, cfg)
	b := SolveGrid(g, cfg)

	require.NoError(t, a.Validate(g))
	require.NoError(t, b.Validate(g))
	assert.Equal(t, a.Count, b.Count)
	assert.Equal(t, a.Squares, b.Squares)
}

// TestSolveScenarioS4UpperBound checks spec.md §8's S4 scenario: a 5x5
// fully empty grid must solve to at most 8 squares (the row-major seed
// starts at (0,0), where N=5, so the decoder already draws a single 5x5
// square from the initial population; the search must never do worse).
func TestSolveScenarioS4UpperBound(t *testing.T) {
	g, err := NewGrid(5, 5, emptyMask(5, 5))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.WorkersPerMachine = 1
	cfg.PopulationSize = 50
	cfg.Seed = 7
	cfg.Deadline = 50 * time.Millisecond

	d := SolveGrid(g, cfg)
	require.NoError(t, d.Validate(g))
	assert.LessOrEqual(t, d.Count, 8)
}

// TestSolveScenarioS6BlockedCorner is a bounded sanity check for a
// 10x10 grid with cell (0,0) blocked: the search must still find a
// valid, reasonably compact decomposition within a generous bound.
func TestSolveScenarioS6BlockedCorner(t *testing.T) {
	mask := emptyMask(10, 10)
	mask[0] = true
	g, err := NewGrid(10, 10, mask)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.WorkersPerMachine = 2
	cfg.PopulationSize = 50
	cfg.Seed = 13
	cfg.Deadline = 80 * time.Millisecond

	d := SolveGrid(g, cfg)
	require.NoError(t, d.Validate(g))
	assert.LessOrEqual(t, d.Count, 10)
}

func TestSolveRespectsCancelledContextImmediately(t *testing.T) {
	g, err := NewGrid(4, 4, emptyMask(4, 4))
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.WorkersPerMachine = 2
	cfg.PopulationSize = 10
	cfg.Seed = 1

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	d := Solve(ctx, g, cfg)
	require.NoError(t, d.Validate(g))
}

func TestSolveMultiIslandProducesValidResult(t *testing.T) {
	mask := emptyMask(8, 8)
	mask[3*8+3] = true
	g, err := NewGrid(8, 8, mask)
	require.NoError(t, err)

	cfg := DefaultConfig()
	cfg.WorkersPerMachine = 4
	cfg.PopulationSize = 40
	cfg.Seed = 55
	cfg.Deadline = 60 * time.Millisecond

	d := SolveGrid(g, cfg)
	require.NoError(t, d.Validate(g))
	assert.Greater(t, d.Count, 0)
}
