package sqtile

import "sort"

// weightedTriples are the small (alpha,beta,gamma) combinations used
// to build weighted-sum seed keys alpha*X + beta*Y + gamma*N, per
// spec.md §4.9.
var weightedTriples = [][3]int64{
	{1, 1, 1},
	{1, 1, -1},
	{1, -1, 1},
	{-1, 1, 1},
	{2, 1, 0},
	{0, 1, 2},
}

// seedKey is one deterministic ordering key over eligible points.
type seedKey struct {
	key func(g *Grid, p Point) int64
}

func coordKey(pickY bool) func(g *Grid, p Point) int64 {
	return func(_ *Grid, p Point) int64 {
		if pickY {
			return int64(p.Y())
		}
		return int64(p.X())
	}
}

func nKey() func(g *Grid, p Point) int64 {
	return func(g *Grid, p Point) int64 {
		x, y := p.XY()
		return int64(g.N(int(x), int(y)))
	}
}

func weightedKey(a, b, c int64) func(g *Grid, p Point) int64 {
	return func(g *Grid, p Point) int64 {
		x, y := p.XY()
		return a*int64(x) + b*int64(y) + c*int64(g.N(int(x), int(y)))
	}
}

// seedKeys returns the ordered list of heuristic seed generators: six
// pure ascending/descending sorts on X, Y, N, then the weighted-sum
// combinations. Each entry also carries whether to sort descending.
func seedKeys() []struct {
	key  func(g *Grid, p Point) int64
	desc bool
} {
	type k = struct {
		key  func(g *Grid, p Point) int64
		desc bool
	}
	out := []k{
		{coordKey(false), false},
		{coordKey(false), true},
		{coordKey(true), false},
		{coordKey(true), true},
		{nKey(), false},
		{nKey(), true},
	}
	for _, t := range weightedTriples {
		out = append(out, k{weightedKey(t[0], t[1], t[2]), false})
	}
	return out
}

// sortedSeed returns a freshly allocated, sorted copy of g.E, ordered
// by key (ascending, or descending if desc is set). Ties keep E's own
// row-major order (sort.SliceStable), matching the deterministic
// tie-break spec.md §4.8 expects elsewhere in the engine.
func sortedSeed(g *Grid, key func(g *Grid, p Point) int64, desc bool) []Point {
	out := make([]Point, len(g.E))
	copy(out, g.E)
	sort.SliceStable(out, func(i, j int) bool {
		ki, kj := key(g, out[i]), key(g, out[j])
		if desc {
			return ki > kj
		}
		return ki < kj
	})
	return out
}

// shuffledSeed returns a freshly allocated, uniformly shuffled copy of
// g.E (Fisher-Yates, driven by the island's own deterministic stream).
func shuffledSeed(g *Grid, rng *Stream) []Point {
	out := make([]Point, len(g.E))
	copy(out, g.E)
	for i := len(out) - 1; i > 0; i-- {
		j := rng.IntN(i + 1)
		out[i], out[j] = out[j], out[i]
	}
	return out
}

// seedPopulation fills pop's parent slots (spec.md §4.9): as many
// heuristic sort orderings as fit (capped by K), then random shuffles
// for the rest. Fitness is left unscored; the caller scores the
// initial population in a single pass afterward.
func seedPopulation(pop *Population, g *Grid, rng *Stream) {
	parents := pop.Parents()
	keys := seedKeys()

	i := 0
	for ; i < len(parents) && i < len(keys); i++ {
		copy(parents[i].Genes, sortedSeed(g, keys[i].key, keys[i].desc))
		parents[i].Fitness = unscored
	}
	for ; i < len(parents); i++ {
		copy(parents[i].Genes, shuffledSeed(g, rng))
		parents[i].Fitness = unscored
	}
}
