package main

import (
	"fmt"
	"math/rand/v2"
	"time"

	"github.com/kelindar/bench"
	"github.com/kelindar/sqtile"
)

var gridSizes = []int{16, 64, 256}

func main() {
	bench.Run(func(b *bench.B) {
		runDecodeFast(b)
		runDecodeExpand(b)
		runSolve(b)
	}, bench.WithDuration(10*time.Millisecond), bench.WithSamples(100))
}

func runDecodeFast(b *bench.B) {
	for _, n := range gridSizes {
		g := openGrid(n)
		scratch := sqtile.NewScratch(g)
		perms := samplePermutations(g, 8)
		name := fmt.Sprintf("decodeFast (%dx%d)", n, n)
		b.Run(name, func(i int) {
			_ = sqtile.DecodeFast(g, perms[i%len(perms)], scratch)
		})
	}
}

func runDecodeExpand(b *bench.B) {
	for _, n := range gridSizes {
		g := openGrid(n)
		scratch := sqtile.NewScratch(g)
		perms := samplePermutations(g, 8)
		name := fmt.Sprintf("decodeExpand (%dx%d)", n, n)
		b.Run(name, func(i int) {
			_ = sqtile.DecodeExpand(g, perms[i%len(perms)], scratch)
		})
	}
}

func runSolve(b *bench.B) {
	for _, n := range gridSizes {
		g := openGrid(n)
		cfg := sqtile.DefaultConfig()
		cfg.Seed = 1
		cfg.WorkersPerMachine = 1
		cfg.PopulationSize = 20
		cfg.Deadline = 2 * time.Millisecond
		name := fmt.Sprintf("solve (%dx%d)", n, n)
		b.Run(name, func(i int) {
			_ = sqtile.SolveGrid(g, cfg)
		})
	}
}

// openGrid builds a fully-empty n x n grid -- every cell outside the
// last row and column is eligible, so it has the longest genome of any
// n x n grid, which makes it the most decoder-intensive case to benchmark.
func openGrid(n int) *sqtile.Grid {
	mask := make([]bool, n*n)
	g, err := sqtile.NewGrid(n, n, mask)
	if err != nil {
		panic(err)
	}
	return g
}

// samplePermutations returns count independently shuffled copies of
// g.E, used to avoid benchmarking a single fixed access pattern.
func samplePermutations(g *sqtile.Grid, count int) [][]sqtile.Point {
	out := make([][]sqtile.Point, count)
	for i := range out {
		p := make([]sqtile.Point, len(g.E))
		copy(p, g.E)
		rand.Shuffle(len(p), func(a, c int) { p[a], p[c] = p[c], p[a] })
		out[i] = p
	}
	return out
}
