package engine

import (
	"math/rand"

	"github.com/hakarigames/duel-services/internal/duelsvc/apperr"
)

// DeckSize is the full card count; ids run 0..51.
const DeckSize = 52

// CardValue maps a card id to its rank value: 1 = Ace .. 13 = King.
// The suit (id / 13) never affects the rules.
func CardValue(id int) int {
	return id%13 + 1
}

func ValidCard(id int) bool {
	return id >= 0 && id < DeckSize
}

// NewShuffledDeck returns ids 0..51 in uniformly random order.
func NewShuffledDeck() []int {
	deck := make([]int, DeckSize)
	for i := range deck {
		deck[i] = i
	}
	rand.Shuffle(len(deck), func(i, j int) {
		deck[i], deck[j] = deck[j], deck[i]
	})
	return deck
}

// Shuffle returns a shuffled copy, leaving the input untouched.
func Shuffle(deck []int) []int {
	shuffled := make([]int, len(deck))
	copy(shuffled, deck)
	rand.Shuffle(len(shuffled), func(i, j int) {
		shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
	})
	return shuffled
}

// Deal removes and returns the first n cards. The remainder is a fresh
// slice, so callers holding the old deck are not aliased.
func Deal(deck []int, n int) (dealt, rest []int, err error) {
	if len(deck) < n {
		return nil, nil, apperr.IllegalAction("insufficient cards: deck has %d, need %d", len(deck), n)
	}
	dealt = append([]int(nil), deck[:n]...)
	rest = append([]int(nil), deck[n:]...)
	return dealt, rest, nil
}

// Return appends cards back onto the deck. The order is irrelevant: the
// deck must be reshuffled before the next deal.
func Return(deck []int, cards ...int) []int {
	out := make([]int, 0, len(deck)+len(cards))
	out = append(out, deck...)
	out = append(out, cards...)
	return out
}
