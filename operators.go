package sqtile

// Line is the random directed line crossover tests each point
// against. Above reports whether (x,y) lies strictly on the positive
// side of a*x+b*y+c, as a branch-free integer predicate -- no
// floating point, and no overflow risk for x,y < 2^16 since A, B are
// drawn from a bounded range (see Config.LineCoefficientRange).
type Line struct {
	A, B, C int64
}

// Above implements the integer half-plane test described in spec.md
// §4.6 and §9.
func (l Line) Above(x, y int) bool {
	return l.A*int64(x)+l.B*int64(y)+l.C > 0
}

// randomLine draws a line whose coefficient magnitudes are bounded by
// coeffRange, sized so the test never overflows int64 for any grid up
// to the 16-bit coordinate limit.
func randomLine(rng *Stream, w, h, coeffRange int) Line {
	if coeffRange < 1 {
		coeffRange = 1
	}
	draw := func() int64 {
		return int64(rng.IntN(2*coeffRange+1) - coeffRange)
	}
	a, b := draw(), draw()
	if a == 0 && b == 0 {
		a = 1
	}
	// Bias c so the line's zero-crossing tends to fall inside the
	// grid instead of always putting every point on the same side.
	cRange := (w + h) * coeffRange
	if cRange < 1 {
		cRange = 1
	}
	c := int64(rng.IntN(2*cRange+1) - cRange)
	return Line{A: a, B: b, C: c}
}

// pushFront cyclically shifts the element at index i to the front of
// g, shifting [0,i) right by one slot.
func pushFront(g []Point, i int) {
	if i <= 0 {
		return
	}
	v := g[i]
	copy(g[1:i+1], g[0:i])
	g[0] = v
}

// pushBack cyclically shifts the element at index j to the back of g,
// shifting (j,n) left by one slot.
func pushBack(g []Point, j int) {
	n := len(g)
	if j >= n-1 {
		return
	}
	v := g[j]
	copy(g[j:n-1], g[j+1:n])
	g[n-1] = v
}

// mutate applies the two-shift mutation described in spec.md §4.5: a
// uniformly random point is pushed to the front, then a second,
// independently-drawn point (drawn after the first shift, so its
// index is relative to the already-shifted buffer) is pushed to the
// back.
func mutate(child *Permutation, rng *Stream) {
	n := len(child.Genes)
	if n < 2 {
		return
	}
	pushFront(child.Genes, rng.IntN(n))
	pushBack(child.Genes, rng.IntN(n))
}

// crossoverMutate fuses the crossover of spec.md §4.6 with the
// mutation of §4.5 into a single pass per parent: it writes p1's
// points that lie above the line, in p1's order, then p2's points
// that lie at-or-below the line, in p2's order, directly into
// child.Genes, and mutates the result in place. Because every point
// of the shared eligible set lies on exactly one side of the line,
// and both parents are bijections on that set, child is a bijection
// on it too -- no post-check is needed.
func crossoverMutate(child, p1, p2 *Permutation, line Line, rng *Stream) {
	idx := 0
	for _, pt := range p1.Genes {
		x, y := pt.XY()
		if line.Above(int(x), int(y)) {
			child.Genes[idx] = pt
			idx++
		}
	}
	for _, pt := range p2.Genes {
		x, y := pt.XY()
		if !line.Above(int(x), int(y)) {
			child.Genes[idx] = pt
			idx++
		}
	}
	invariant(idx == len(child.Genes), "crossover produced %d genes, want %d", idx, len(child.Genes))
	child.Fitness = unscored
	mutate(child, rng)
}

// copyMutate fuses a parent copy with the §4.5 mutation into a single
// pass: copy preserves the bijection trivially, and mutate preserves
// it by construction (a cyclic shift of a permutation is still a
// permutation).
func copyMutate(child, parent *Permutation, rng *Stream) {
	copy(child.Genes, parent.Genes)
	child.Fitness = unscored
	mutate(child, rng)
}
