package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestScore(t *testing.T) {
	tests := []struct {
		name          string
		level         int
		cellsRevealed int
		timeElapsed   int
		cluesUsed     int
		won           bool
		want          int
	}{
		{
			name:  "level one win",
			level: 1, cellsRevealed: 50, timeElapsed: 120, won: true,
			// 100 + 500 + 180 + 500
			want: 1280,
		},
		{
			name:  "loss keeps base and cell points",
			level: 2, cellsRevealed: 10, timeElapsed: 60,
			want: 200 + 100 + 240,
		},
		{
			name:  "no time bonus past five minutes",
			level: 1, cellsRevealed: 10, timeElapsed: 400, won: true,
			want: 100 + 100 + 0 + 500,
		},
		{
			name:  "clue penalty",
			level: 1, cellsRevealed: 50, timeElapsed: 120, cluesUsed: 2, won: true,
			want: 1280 - 100,
		},
		{
			name:  "floored at zero",
			level: 1, cellsRevealed: 0, timeElapsed: 400, cluesUsed: 3,
			want: 0,
		},
	}

	for _, test := range tests {
		t.Run(test.name, func(t *testing.T) {
			got := Score(
				test.level,
				test.cellsRevealed,
				test.timeElapsed,
				test.cluesUsed,
				test.won,
			)
			assert.Equal(t, test.want, got)
		})
	}
}
