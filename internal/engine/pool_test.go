package engine_test

import (
	"governor/internal/engine"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCards(t *testing.T, n int) []engine.Card {
	t.Helper()
	var cards []engine.Card
	for i := 0; i < n; i++ {
		cards = append(cards, cardOf(t, "indigo-plant", i))
	}
	return cards
}

func TestPoolDrawAndReshuffle(t *testing.T) {
	p := engine.NewPool(testCards(t, 5), 9)
	require.Equal(t, 5, p.Len())

	first := p.Draw(3)
	require.Len(t, first, 3)
	p.Discard(first...)
	assert.Equal(t, 2, p.Len())

	drawn := p.Draw(4)
	assert.Len(t, drawn, 4, "discard pile is reshuffled in")
	assert.Empty(t, p.DiscardPile)
	assert.Equal(t, uint64(2), p.Shuffles)

	assert.Len(t, p.Draw(3), 1)
	assert.True(t, p.Exhausted())
	assert.Empty(t, p.Draw(1))
}

func TestPoolIsDeterministic(t *testing.T) {
	a := engine.NewPool(testCards(t, 10), 3)
	b := engine.NewPool(testCards(t, 10), 3)
	assert.Equal(t, a.Draw(10), b.Draw(10))
}
