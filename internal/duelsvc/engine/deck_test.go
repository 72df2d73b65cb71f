package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewShuffledDeckCoversAllIds(t *testing.T) {
	deck := NewShuffledDeck()
	require.Len(t, deck, DeckSize)

	seen := make(map[int]bool, DeckSize)
	for _, id := range deck {
		assert.True(t, ValidCard(id), "card id %d out of range", id)
		assert.False(t, seen[id], "duplicate card id %d", id)
		seen[id] = true
	}
}

func TestDeal(t *testing.T) {
	deck := []int{4, 8, 15, 16, 23, 42}

	dealt, rest, err := Deal(deck, 2)
	require.NoError(t, err)
	assert.Equal(t, []int{4, 8}, dealt)
	assert.Equal(t, []int{15, 16, 23, 42}, rest)
	// the input deck must be left alone
	assert.Equal(t, []int{4, 8, 15, 16, 23, 42}, deck)
}

func TestDealInsufficientCards(t *testing.T) {
	deck := []int{7}

	_, _, err := Deal(deck, 2)
	require.Error(t, err)
}

func TestReturnThenShuffleKeepsCards(t *testing.T) {
	deck := []int{1, 2, 3}
	deck = Return(deck, 50, 51)
	require.Len(t, deck, 5)

	shuffled := Shuffle(deck)
	require.Len(t, shuffled, 5)

	counts := map[int]int{}
	for _, id := range shuffled {
		counts[id]++
	}
	for _, id := range []int{1, 2, 3, 50, 51} {
		assert.Equal(t, 1, counts[id], "card %d lost or duplicated", id)
	}
}

func TestCardValue(t *testing.T) {
	assert.Equal(t, 1, CardValue(0))   // ace of first suit
	assert.Equal(t, 13, CardValue(12)) // king of first suit
	assert.Equal(t, 1, CardValue(13))  // ace of second suit
	assert.Equal(t, 2, CardValue(40))
}
