package sqtile

import "github.com/kelindar/bitmap"

// Square is one tile of a decomposition: a size x size filled square
// whose top-left corner is (X,Y).
type Square struct {
	X, Y, Size uint16
}

// Decomposition is the full output of the expansion decoder: every
// empty cell covered exactly once by a non-overlapping square.
type Decomposition struct {
	Squares []Square
	Count   int
}

// Validate checks that a decomposition is legal against g: every
// square lies entirely on in-grid, unblocked cells, no two squares
// overlap, and every empty cell is covered exactly once. Not used in
// the hot loop; exists for tests and for callers who want to
// sanity-check a result before submitting it.
func (d Decomposition) Validate(g *Grid) error {
	var seen bitmap.Bitmap
	seen.Grow(uint32(g.W*g.H) - 1)

	for _, sq := range d.Squares {
		x0, y0, s := int(sq.X), int(sq.Y), int(sq.Size)
		if x0 < 0 || y0 < 0 || x0+s > g.W || y0+s > g.H {
			return badGrid("square out of bounds")
		}
		for y := y0; y < y0+s; y++ {
			for x := x0; x < x0+s; x++ {
				if g.blockedAt(x, y) {
					return badGrid("square covers a blocked cell")
				}
				i := uint32(g.idx(x, y))
				if seen.Contains(i) {
					return badGrid("squares overlap")
				}
				seen.Set(i)
			}
		}
	}

	if seen.Count() != g.empty {
		return badGrid("decomposition does not cover every empty cell")
	}
	return nil
}

// Scratch holds the per-island, per-evaluation working state for the
// decoder: a covered-cell bitmap reused across every evaluation in a
// search loop, cleared (not reallocated) between calls, plus a small
// output buffer reused across expansion calls.
type Scratch struct {
	covered bitmap.Bitmap
	out     []Square
}

// NewScratch allocates decoder scratch sized for g. Allocated once
// per solve; never resized afterward.
func NewScratch(g *Grid) *Scratch {
	s := &Scratch{out: make([]Square, 0, g.empty)}
	s.covered.Grow(uint32(g.W*g.H) - 1)
	return s
}

func (s *Scratch) reset() {
	s.covered.Clear()
	s.out = s.out[:0]
}

// maxFreeSquare returns the largest side length s such that the s x s
// block rooted at (x,y) is entirely uncovered, up to g.N(x,y) (which
// already guarantees those cells are in-grid and unblocked). The
// caller must already know (x,y) itself is uncovered.
//
// This is the standard expanding-square test: grow s one ring at a
// time, and stop as soon as the new L-shaped border (the row at
// y+s-1 and the column at x+s-1) contains a covered cell. Because the
// previous, smaller square was already confirmed fully uncovered,
// confirming the new border suffices to confirm the whole larger
// square.
func maxFreeSquare(g *Grid, covered *bitmap.Bitmap, x, y int) int {
	maxS := g.N(x, y)
	invariant(maxS >= 2, "maxFreeSquare called on ineligible point (%d,%d) N=%d", x, y, maxS)

	s := 1
	for s < maxS {
		ns := s + 1
		ny := y + ns - 1
		ok := true
		for xi := x; xi < x+ns; xi++ {
			if covered.Contains(uint32(g.idx(xi, ny))) {
				ok = false
				break
			}
		}
		if ok {
			nx := x + ns - 1
			for yi := y; yi < y+ns-1; yi++ {
				if covered.Contains(uint32(g.idx(nx, yi))) {
					ok = false
					break
				}
			}
		}
		if !ok {
			break
		}
		s = ns
	}
	return s
}

func markCovered(g *Grid, covered *bitmap.Bitmap, x, y, s int) {
	for yy := y; yy < y+s; yy++ {
		for xx := x; xx < x+s; xx++ {
			covered.Set(uint32(g.idx(xx, yy)))
		}
	}
}

// DecodeFast runs the greedy decoder in counting mode: it draws the
// same squares the expansion decoder would in pass 1 (rejecting any
// point whose maximal free square is 1x1), then derives the final
// count algebraically from the covered-cell total instead of running
// a second pass over the grid. This is the hot-loop path called once
// per child per generation.
func DecodeFast(g *Grid, perm []Point, s *Scratch) int {
	s.reset()

	squares := 0
	totalCovered := 0
	for _, pt := range perm {
		x, y := int(pt.X()), int(pt.Y())
		i := uint32(g.idx(x, y))
		if s.covered.Contains(i) {
			continue
		}
		side := maxFreeSquare(g, &s.covered, x, y)
		if side <= 1 {
			continue
		}
		markCovered(g, &s.covered, x, y, side)
		totalCovered += side * side
		squares++
	}

	return squares + (g.empty - totalCovered)
}

// DecodeExpand runs the greedy decoder in full-expansion mode: pass 1
// is identical to DecodeFast, then a second pass emits a 1x1 square
// for every empty cell pass 1 left uncovered. Used only for final
// reporting, once per island per solve.
func DecodeExpand(g *Grid, perm []Point, s *Scratch) Decomposition {
	s.reset()

	for _, pt := range perm {
		x, y := int(pt.X()), int(pt.Y())
		i := uint32(g.idx(x, y))
		if s.covered.Contains(i) {
			continue
		}
		side := maxFreeSquare(g, &s.covered, x, y)
		if side <= 1 {
			continue
		}
		markCovered(g, &s.covered, x, y, side)
		s.out = append(s.out, Square{X: uint16(x), Y: uint16(y), Size: uint16(side)})
	}

	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.blockedAt(x, y) {
				continue
			}
			i := uint32(g.idx(x, y))
			if !s.covered.Contains(i) {
				s.out = append(s.out, Square{X: uint16(x), Y: uint16(y), Size: 1})
			}
		}
	}

	out := make([]Square, len(s.out))
	copy(out, s.out)
	return Decomposition{Squares: out, Count: len(out)}
}
