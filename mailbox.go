package sqtile

import "github.com/kelindar/bitmap"

// Offer is one island's best-known solution as published to its
// peers: the minimal wire contract described in spec.md §6 ("Peer
// exchange protocol"). Genes is a defensive copy -- the publishing
// island keeps mutating its own parent slots, so an Offer must not
// alias into live population memory.
type Offer struct {
	Fitness int
	Genes   []Point
}

// Mailbox is the bounded, non-blocking peer-exchange channel shared
// by every island searching the same grid in one process (spec.md §5:
// "a small peer-exchange mailbox"). Publish never blocks: on a full
// mailbox it drops the oldest pending offer to make room, per spec.md
// §5's "overflow drops oldest". Within one machine this also stands
// in for the out-of-scope cross-machine broadcast transport -- the
// contract (non-blocking publish, non-blocking receive, drop-oldest)
// is identical either way.
type Mailbox struct {
	ch chan Offer
}

// NewMailbox creates a mailbox with the given bounded capacity.
func NewMailbox(capacity int) *Mailbox {
	if capacity < 1 {
		capacity = 1
	}
	return &Mailbox{ch: make(chan Offer, capacity)}
}

// Publish offers a candidate to peers without blocking. If the
// mailbox is full it drops one pending offer (oldest first, since
// channels are FIFO) and retries once.
func (m *Mailbox) Publish(o Offer) {
	select {
	case m.ch <- o:
		return
	default:
	}
	select {
	case <-m.ch:
	default:
	}
	select {
	case m.ch <- o:
	default:
		// Another publisher raced us and refilled the mailbox; drop
		// this offer rather than block.
	}
}

// TryReceive returns the next pending offer without blocking. ok is
// false if the mailbox is currently empty.
func (m *Mailbox) TryReceive() (o Offer, ok bool) {
	select {
	case o = <-m.ch:
		return o, true
	default:
		return Offer{}, false
	}
}

// validateOffer checks a peer-provided offer against g's eligible set
// before it is allowed to enter any population buffer: it must have
// exactly len(g.E) genes and be a bijection on g.E. Violations are
// reported via ErrPeerInjectInvalid (spec.md §7) and the offering is
// dropped by the caller; this is the only place untrusted (peer)
// permutation data is validated, per spec.md §7's boundary-vs-trusted
// split.
func validateOffer(g *Grid, genes []Point) error {
	if len(genes) != len(g.E) {
		return ErrPeerInjectInvalid
	}
	var seen bitmap.Bitmap
	seen.Grow(uint32(g.W*g.H) - 1)
	for _, pt := range genes {
		x, y := pt.XY()
		xi, yi := int(x), int(y)
		if xi < 0 || xi >= g.W || yi < 0 || yi >= g.H || g.N(xi, yi) < 2 {
			return ErrPeerInjectInvalid
		}
		i := uint32(g.idx(xi, yi))
		if seen.Contains(i) {
			return ErrPeerInjectInvalid
		}
		seen.Set(i)
	}
	return nil
}
