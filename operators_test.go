package sqtile

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// assertBijection checks that genes is a permutation of e (every
// element of e appears exactly once), spec.md §8 property 1's core
// condition.
func assertBijection(t *testing.T, e, genes []Point) {
	t.Helper()
	require.Equal(t, len(e), len(genes))

	seen := make(map[Point]int, len(e))
	for _, p := range genes {
		seen[p]++
	}
	for _, p := range e {
		assert.Equalf(t, 1, seen[p], "point %v should appear exactly once", p)
	}
}

func testGrid(t *testing.T) *Grid {
	t.Helper()
	g, err := NewGrid(8, 8, emptyMask(8, 8))
	require.NoError(t, err)
	require.NotEmpty(t, g.E)
	return g
}

func TestCopyMutatePreservesBijection(t *testing.T) {
	g := testGrid(t)
	rng := NewStream(1, 0)

	parent := newPermutation(len(g.E))
	copy(parent.Genes, g.E)
	parent.Fitness = 5

	for i := 0; i < 200; i++ {
		child := newPermutation(len(g.E))
		copyMutate(&child, &parent, rng)
		assertBijection(t, g.E, child.Genes)
	}
}

func TestCrossoverMutatePreservesBijection(t *testing.T) {
	g := testGrid(t)
	rng := NewStream(2, 0)

	p1 := newPermutation(len(g.E))
	copy(p1.Genes, g.E)
	p2 := newPermutation(len(g.E))
	copy(p2.Genes, g.E)
	r := rand.New(rand.NewPCG(3, 4))
	r.Shuffle(len(p2.Genes), func(i, j int) { p2.Genes[i], p2.Genes[j] = p2.Genes[j], p2.Genes[i] })

	for i := 0; i < 200; i++ {
		line := randomLine(rng, g.W, g.H, 100)
		child := newPermutation(len(g.E))
		crossoverMutate(&child, &p1, &p2, line, rng)
		assertBijection(t, g.E, child.Genes)
	}
}

// TestCrossoverPartition checks spec.md §8 property 8: every point
// the child inherits from p1 must lie strictly above the line, and
// every point it inherits from p2 must not.
func TestCrossoverPartition(t *testing.T) {
	g := testGrid(t)
	rng := NewStream(9, 0)

	p1 := newPermutation(len(g.E))
	copy(p1.Genes, g.E)
	p2 := newPermutation(len(g.E))
	copy(p2.Genes, g.E)

	p1Set := make(map[Point]bool, len(p1.Genes))
	for _, p := range p1.Genes {
		p1Set[p] = true
	}

	line := Line{A: 1, B: 0, C: -3 * 1} // x > 3
	idx := 0
	child := newPermutation(len(g.E))
	for _, pt := range p1.Genes {
		x, y := pt.XY()
		if line.Above(int(x), int(y)) {
			child.Genes[idx] = pt
			idx++
		}
	}
	fromP1 := idx
	for _, pt := range p2.Genes {
		x, y := pt.XY()
		if !line.Above(int(x), int(y)) {
			child.Genes[idx] = pt
			idx++
		}
	}
	require.Equal(t, len(child.Genes), idx)

	for i, pt := range child.Genes {
		x, y := pt.XY()
		above := line.Above(int(x), int(y))
		if i < fromP1 {
			assert.True(t, above, "first segment must be strictly above the line")
		} else {
			assert.False(t, above, "second segment must be at-or-below the line")
		}
	}
	_ = rng
}

func TestMutateIsNoopBelowTwoGenes(t *testing.T) {
	rng := NewStream(5, 0)
	child := Permutation{Genes: []Point{pack(0, 0)}}
	mutate(&child, rng)
	assert.Equal(t, []Point{pack(0, 0)}, child.Genes)
}

func TestPushFrontAndPushBack(t *testing.T) {
	g := []Point{0, 1, 2, 3, 4}
	pushFront(g, 3)
	assert.Equal(t, []Point{3, 0, 1, 2, 4}, g)

	g2 := []Point{0, 1, 2, 3, 4}
	pushBack(g2, 1)
	assert.Equal(t, []Point{0, 2, 3, 4, 1}, g2)
}

func TestRandomLineNeverDegenerate(t *testing.T) {
	rng := NewStream(11, 0)
	for i := 0; i < 500; i++ {
		l := randomLine(rng, 64, 64, 50)
		assert.False(t, l.A == 0 && l.B == 0, "line must have a non-trivial normal")
	}
}
