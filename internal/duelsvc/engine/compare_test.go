package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestCompareCards(t *testing.T) {
	// card ids: value = id%13 + 1
	ace, two := 0, 1
	five, ten := 4, 9
	sevenHearts, sevenSpades := 6, 45

	tests := []struct {
		name   string
		first  int
		second int
		want   CompareResult
	}{
		{"ace loses to two", ace, two, SecondWins},
		{"two beats ace reversed", two, ace, FirstWins},
		{"ten beats five", five, ten, SecondWins},
		{"five loses reversed", ten, five, FirstWins},
		{"equal values draw", sevenHearts, sevenSpades, Draw},
		{"king beats ace", ace, 12, SecondWins},
		{"two only saves against ace", two, five, SecondWins},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, CompareCards(tt.first, tt.second))
		})
	}
}
