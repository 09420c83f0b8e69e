package engine

import "math/rand/v2"

// Pool is the shared draw pile and discard pile.
// Shuffles are seeded from Seed and a running counter so any game can be replayed.
type Pool struct {
	DrawPile    []Card `json:"draw_pile"`
	DiscardPile []Card `json:"discard_pile"`
	Seed        uint64 `json:"seed"`
	Shuffles    uint64 `json:"shuffles"`
}

// NewPool creates a pool whose draw pile is the given cards, shuffled.
func NewPool(cards []Card, seed uint64) Pool {
	p := Pool{DrawPile: make([]Card, len(cards)), Seed: seed}
	copy(p.DrawPile, cards)
	p.shuffle(p.DrawPile)
	return p
}

func (p Pool) clone() Pool {
	c := p
	c.DrawPile = append([]Card(nil), p.DrawPile...)
	c.DiscardPile = append([]Card(nil), p.DiscardPile...)
	return c
}

func (p *Pool) shuffle(cards []Card) {
	r := rand.New(rand.NewPCG(p.Seed, p.Shuffles))
	p.Shuffles++
	r.Shuffle(len(cards), func(i, j int) {
		cards[i], cards[j] = cards[j], cards[i]
	})
}

// Draw removes and returns up to n cards from the top of the draw pile.
// An empty draw pile is refilled by shuffling the discard pile into it.
// Returns fewer than n cards when both piles run dry.
func (p *Pool) Draw(n int) []Card {
	var drawn []Card
	for len(drawn) < n {
		if len(p.DrawPile) == 0 && !p.reclaim() {
			break
		}
		take := min(n-len(drawn), len(p.DrawPile))
		drawn = append(drawn, p.DrawPile[:take]...)
		p.DrawPile = p.DrawPile[take:]
	}
	return drawn
}

// reclaim moves the discard pile under the draw pile and shuffles it.
func (p *Pool) reclaim() bool {
	if len(p.DiscardPile) == 0 {
		return false
	}
	p.DrawPile = append(p.DrawPile[:0:0], p.DiscardPile...)
	p.DiscardPile = nil
	p.shuffle(p.DrawPile)
	return true
}

// Discard puts cards face up on the discard pile.
func (p *Pool) Discard(cards ...Card) {
	p.DiscardPile = append(p.DiscardPile, cards...)
}

// Len returns the number of cards left in the draw pile.
func (p Pool) Len() int {
	return len(p.DrawPile)
}

// Exhausted reports whether no card can be drawn at all.
func (p Pool) Exhausted() bool {
	return len(p.DrawPile) == 0 && len(p.DiscardPile) == 0
}
