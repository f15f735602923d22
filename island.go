package sqtile

import (
	"context"
	"time"
)

// Island is one independent evolutionary search instance: its own
// population, decoder scratch, and PRNG stream, searching the same
// read-only Grid as every other island in a Solve call. Nothing about
// an Island's internal state is shared with any other Island except
// through its Mailbox (spec.md §5).
type Island struct {
	id      int
	grid    *Grid
	cfg     Config
	pop     *Population
	scratch *Scratch
	rng     *Stream
	mailbox *Mailbox

	generation int
	pending    *Offer // offer adopted from a peer, applied at the next step
}

// newIsland builds an island, seeds its initial population per
// spec.md §4.9, and scores it once up front so Best() is always valid
// even if the deadline expires before a single generation completes
// (spec.md §7's DeadlineElapsedBeforeFirstGeneration case).
func newIsland(id int, g *Grid, cfg Config, mailbox *Mailbox) *Island {
	rng := NewStream(cfg.Seed, uint32(id))
	pop := newPopulation(cfg.PopulationSize, len(g.E))
	seedPopulation(pop, g, rng)

	scratch := NewScratch(g)
	for i := range pop.Parents() {
		pop.Ind[i].Fitness = DecodeFast(g, pop.Ind[i].Genes, scratch)
	}

	return &Island{id: id, grid: g, cfg: cfg, pop: pop, scratch: scratch, rng: rng, mailbox: mailbox}
}

// step breeds one generation of children, scores them, and reduces
// the population back to its elite K via selectTopK -- the strict
// operator→score→select sequence spec.md §5 requires within one
// island. If a peer offering was adopted since the last step, it
// occupies child slot 0 instead of being bred, and competes for
// survival like any other child.
func (isl *Island) step() {
	parents := isl.pop.Parents()
	children := isl.pop.Children()

	start := 0
	if isl.pending != nil {
		copy(children[0].Genes, isl.pending.Genes)
		children[0].Fitness = isl.pending.Fitness
		isl.pending = nil
		start = 1
	}

	for k := start; k < len(children); k++ {
		child := &children[k]
		if isl.rng.Bool(0.5) {
			p1 := &parents[isl.rng.IntN(len(parents))]
			p2 := &parents[isl.rng.IntN(len(parents))]
			line := randomLine(isl.rng, isl.grid.W, isl.grid.H, isl.cfg.LineCoefficientRange)
			crossoverMutate(child, p1, p2, line, isl.rng)
		} else {
			p := &parents[isl.rng.IntN(len(parents))]
			copyMutate(child, p, isl.rng)
		}
		child.Fitness = DecodeFast(isl.grid, child.Genes, isl.scratch)
	}

	selectTopK(isl.pop)
	isl.generation++
}

// exchangeWithPeers runs the non-blocking publish/adopt cycle
// described in spec.md §6: offer the current best parent, then try to
// receive one pending offer and, if it validates and beats the
// current worst parent, queue it for the next step. Both the publish
// and the receive are try-only; this never blocks and never holds a
// lock across a generation.
func (isl *Island) exchangeWithPeers() {
	if isl.mailbox == nil {
		return
	}

	best := isl.pop.Best()
	offerGenes := make([]Point, len(best.Genes))
	copy(offerGenes, best.Genes)
	isl.mailbox.Publish(Offer{Fitness: best.Fitness, Genes: offerGenes})

	offer, ok := isl.mailbox.TryReceive()
	if !ok {
		return
	}
	if err := validateOffer(isl.grid, offer.Genes); err != nil {
		return
	}
	if offer.Fitness >= isl.pop.Worst() {
		return
	}
	isl.pending = &offer
}

// Run executes generations until ctx is done or the deadline passes,
// then expands the current best parent into a full Decomposition.
// The deadline and ctx are both checked once per generation boundary
// (spec.md §5's "suspension points"); nothing in step() itself can
// block or be cancelled mid-generation.
func (isl *Island) Run(ctx context.Context, deadline time.Time) Decomposition {
	for time.Now().Before(deadline) && ctx.Err() == nil {
		isl.step()
		if isl.generation%isl.cfg.PeerShareIntervalGenerations == 0 {
			isl.exchangeWithPeers()
		}
	}
	best := isl.pop.Best()
	return DecodeExpand(isl.grid, best.Genes, isl.scratch)
}
