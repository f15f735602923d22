package sqtile

import (
	"strings"

	"github.com/kelindar/bitmap"
)

// maxDim is the largest width or height a Grid may have: coordinates
// are packed into 16 bits each (see Point), so 2^16-1 is the hard
// ceiling.
const maxDim = 1<<16 - 1

// Grid is the immutable, per-solve input to the evolutionary engine.
// It is built once by NewGrid and then shared read-only by every
// island that searches it.
type Grid struct {
	W, H    int
	blocked bitmap.Bitmap // one bit per cell, row-major index y*W+x
	n       []uint16      // N-table, same row-major indexing, N[x,y] at y*W+x
	empty   int           // count of non-blocked cells

	// E is the eligible-point list: every (x,y) with N(x,y) >= 2, in
	// row-major order. Points with N=1 never enter the genome; the
	// expansion decoder fills them with 1x1 squares in its cleanup pass.
	E []Point
}

func (g *Grid) idx(x, y int) int { return y*g.W + x }

// blockedAt reports whether (x,y) is blocked. x,y must be in bounds.
func (g *Grid) blockedAt(x, y int) bool {
	return g.blocked.Contains(uint32(g.idx(x, y)))
}

// N returns N(x,y): the side length of the largest square rooted at
// (x,y) that stays in-grid and avoids every blocked cell.
func (g *Grid) N(x, y int) int {
	return int(g.n[g.idx(x, y)])
}

// NewGrid builds a Grid from a row-major blocked mask: blocked[y*w+x]
// is true iff (x,y) is not usable. Returns ErrBadGrid (via GridError)
// if w or h exceed the 16-bit coordinate range, the mask length does
// not match w*h, or every cell is blocked.
func NewGrid(w, h int, blockedMask []bool) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, badGrid("width and height must be positive")
	}
	if w > maxDim || h > maxDim {
		return nil, badGrid("width or height exceeds the 16-bit coordinate range")
	}
	if len(blockedMask) != w*h {
		return nil, badGrid("mask length does not match width*height")
	}

	g := &Grid{W: w, H: h}
	g.blocked.Grow(uint32(w*h) - 1)
	g.n = make([]uint16, w*h)

	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			i := g.idx(x, y)
			if blockedMask[i] {
				g.blocked.Set(uint32(i))
			} else {
				g.empty++
			}
		}
	}
	if g.empty == 0 {
		return nil, badGrid("grid has no empty cells")
	}

	g.computeNTable()
	g.buildEligible()
	return g, nil
}

// computeNTable fills g.n via the standard reverse-scan DP:
// N(x,y) = 0 if blocked, else 1 + min(N(x+1,y), N(x,y+1), N(x+1,y+1)),
// treating any out-of-grid neighbor as 0.
func (g *Grid) computeNTable() {
	for y := g.H - 1; y >= 0; y-- {
		for x := g.W - 1; x >= 0; x-- {
			i := g.idx(x, y)
			if g.blocked.Contains(uint32(i)) {
				g.n[i] = 0
				continue
			}
			right, down, diag := 0, 0, 0
			if x+1 < g.W {
				right = int(g.n[g.idx(x+1, y)])
			}
			if y+1 < g.H {
				down = int(g.n[g.idx(x, y+1)])
			}
			if x+1 < g.W && y+1 < g.H {
				diag = int(g.n[g.idx(x+1, y+1)])
			}
			m := right
			if down < m {
				m = down
			}
			if diag < m {
				m = diag
			}
			g.n[i] = uint16(1 + m)
		}
	}
}

// buildEligible collects every cell with N>=2 into g.E, in row-major
// order (the canonical order required by spec.md §3).
func (g *Grid) buildEligible() {
	g.E = make([]Point, 0, g.empty)
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.n[g.idx(x, y)] >= 2 {
				g.E = append(g.E, pack(uint16(x), uint16(y)))
			}
		}
	}
}

// String renders a compact ASCII dump of the grid ('#' blocked, '.'
// empty), used only by tests for failure messages.
func (g *Grid) String() string {
	var b strings.Builder
	for y := 0; y < g.H; y++ {
		for x := 0; x < g.W; x++ {
			if g.blockedAt(x, y) {
				b.WriteByte('#')
			} else {
				b.WriteByte('.')
			}
		}
		b.WriteByte('\n')
	}
	return b.String()
}
