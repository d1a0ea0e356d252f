package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRevealRequiresMineCount(t *testing.T) {
	board := NewBoard(8, 8)
	next, err := board.Reveal(4, 4, 0, testRand())
	require.ErrorIs(t, err, ErrMissingConfiguration)
	assert.False(t, next.Initialized)
	assert.Empty(t, next.Revealed)
}

func TestFirstRevealIsAlwaysSafe(t *testing.T) {
	r := testRand()
	for range 50 {
		row, col := r.IntN(8), r.IntN(8)
		board, err := NewBoard(8, 8).Reveal(row, col, 10, r)
		require.NoError(t, err)

		assert.True(t, board.Initialized)
		assert.Len(t, board.Mines, 10)
		assert.True(t, board.Revealed.Has(Cell{row, col}))
		assert.False(t, board.GameOver)
	}
}

func TestRevealMineLosesAndDisclosesAll(t *testing.T) {
	board := buildBoard(t, 4, 4, Cell{0, 0}, Cell{2, 2}, Cell{3, 1})

	next, err := board.Reveal(2, 2, 0, nil)
	require.NoError(t, err)

	assert.True(t, next.GameOver)
	assert.False(t, next.Won)
	for m := range next.Mines {
		assert.True(t, next.Revealed.Has(m), "mine %s not disclosed", m)
	}

	// input state must be untouched
	assert.False(t, board.GameOver)
	assert.Empty(t, board.Revealed)
}

func TestFloodFillStopsAtNumberedBorder(t *testing.T) {
	// a full mine wall down column 2 splits the board in two
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})

	next, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)

	// the left zero region plus its numbered border, nothing beyond the wall
	assert.Len(t, next.Revealed, 6)
	for row := range 3 {
		assert.True(t, next.Revealed.Has(Cell{row, 0}))
		assert.True(t, next.Revealed.Has(Cell{row, 1}))
		assert.False(t, next.Revealed.Has(Cell{row, 3}))
		assert.False(t, next.Revealed.Has(Cell{row, 4}))
	}
	assert.False(t, next.GameOver)
}

func TestFloodFillSkipsFlaggedCells(t *testing.T) {
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
	board = board.ToggleFlag(1, 0)

	next, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)

	assert.False(t, next.Revealed.Has(Cell{1, 0}))
	assert.True(t, next.Flagged.Has(Cell{1, 0}))
}

func TestRevealNoops(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	next, err := board.Reveal(-1, 0, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, next.Revealed)

	next, err = board.Reveal(0, 3, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, next.Revealed)

	flagged := board.ToggleFlag(1, 1)
	next, err = flagged.Reveal(1, 1, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, next.Revealed)

	lost, err := board.Reveal(2, 2, 0, nil)
	require.NoError(t, err)
	require.True(t, lost.GameOver)
	after, err := lost.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, lost.Render(true), after.Render(true))
}

func TestWinRequiresFullCoverage(t *testing.T) {
	mines := []Cell{
		{0, 7}, {1, 3}, {2, 5}, {3, 0}, {3, 7},
		{5, 2}, {5, 6}, {6, 1}, {7, 4}, {7, 7},
	}
	board := buildBoard(t, 8, 8, mines...)

	for row := range 8 {
		for col := range 8 {
			if board.Mines.Has(Cell{row, col}) {
				continue
			}
			var err error
			board, err = board.Reveal(row, col, 0, nil)
			require.NoError(t, err)
			require.False(t, board.GameOver && !board.Won)

			// won exactly when every non-mine cell is open
			assert.Equal(t, len(board.Revealed) == 54, board.Won)
		}
	}

	assert.True(t, board.Won)
	assert.True(t, board.GameOver)
	assert.Len(t, board.Revealed, 54)
}
