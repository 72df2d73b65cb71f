package engine

// CompareResult is the outcome of a card comparison from the first card's
// point of view.
type CompareResult int

const (
	Draw CompareResult = iota
	FirstWins
	SecondWins
)

// CompareCards decides a round between two committed card ids. High value
// wins, with one asymmetric override: the Ace (value 1) loses to the 2.
// The override must be checked before the generic ordering.
func CompareCards(first, second int) CompareResult {
	a, b := CardValue(first), CardValue(second)

	if a == b {
		return Draw
	}

	// 2 beats Ace in either direction
	if a == 1 && b == 2 {
		return SecondWins
	}
	if a == 2 && b == 1 {
		return FirstWins
	}

	if a > b {
		return FirstWins
	}
	return SecondWins
}
