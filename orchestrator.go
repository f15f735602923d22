package sqtile

import (
	"context"
	"sync"
	"time"
)

// Solve is the worker orchestrator described in spec.md §2 and §5: it
// spawns cfg.WorkersPerMachine independent islands against g, lets
// each run until ctx is cancelled or cfg.Deadline elapses, and
// reduces their results to the single best (lowest square count)
// Decomposition. Cooperative early cancellation is exactly ctx
// cancellation -- every island polls ctx.Err() once per generation.
func Solve(ctx context.Context, g *Grid, cfg Config) Decomposition {
	cfg = cfg.normalize()
	cfg.Seed = seedOrRandom(cfg.Seed)
	deadline := time.Now().Add(cfg.Deadline)
	mailbox := NewMailbox(cfg.MailboxCapacity)

	results := make([]Decomposition, cfg.WorkersPerMachine)
	var wg sync.WaitGroup
	for i := 0; i < cfg.WorkersPerMachine; i++ {
		wg.Add(1)
		go func(id int) {
			defer wg.Done()
			isl := newIsland(id, g, cfg, mailbox)
			results[id] = isl.Run(ctx, deadline)
		}(i)
	}
	wg.Wait()

	best := results[0]
	for _, r := range results[1:] {
		if r.Count < best.Count {
			best = r
		}
	}
	return best
}

// SolveGrid is a convenience wrapper around Solve using a background
// context, for callers that have no external cancellation source.
func SolveGrid(g *Grid, cfg Config) Decomposition {
	return Solve(context.Background(), g, cfg)
}
