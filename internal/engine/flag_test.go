package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToggleFlag(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	flagged := board.ToggleFlag(0, 0)
	assert.True(t, flagged.Flagged.Has(Cell{0, 0}))
	assert.False(t, board.Flagged.Has(Cell{0, 0}), "input state mutated")

	unflagged := flagged.ToggleFlag(0, 0)
	assert.False(t, unflagged.Flagged.Has(Cell{0, 0}))
}

func TestToggleFlagNoops(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	assert.Empty(t, board.ToggleFlag(3, 3).Flagged)
	assert.Empty(t, board.ToggleFlag(-1, 0).Flagged)

	revealed, err := board.Reveal(1, 1, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, revealed.ToggleFlag(1, 1).Flagged)

	lost, err := board.Reveal(2, 2, 0, nil)
	require.NoError(t, err)
	require.True(t, lost.GameOver)
	assert.Empty(t, lost.ToggleFlag(0, 0).Flagged)
}

func TestClueOnMineFlagsWithoutLosing(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	next, err := board.ApplyClue(2, 2, 0, nil)
	require.NoError(t, err)

	assert.False(t, next.GameOver)
	assert.True(t, next.Flagged.Has(Cell{2, 2}))
	assert.True(t, next.ImmuneFlags.Has(Cell{2, 2}))

	// repeated clues on the same mine change nothing
	again, err := next.ApplyClue(2, 2, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, next.Render(true), again.Render(true))
	assert.Len(t, again.Flagged, 1)
	assert.Len(t, again.ImmuneFlags, 1)
}

func TestImmuneFlagCannotBeRemoved(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})
	board, err := board.ApplyClue(2, 2, 0, nil)
	require.NoError(t, err)

	for range 5 {
		board = board.ToggleFlag(2, 2)
		assert.True(t, board.Flagged.Has(Cell{2, 2}))
		assert.True(t, board.ImmuneFlags.Has(Cell{2, 2}))
	}
}

func TestClueOnSafeCellReveals(t *testing.T) {
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})

	next, err := board.ApplyClue(0, 0, 0, nil)
	require.NoError(t, err)

	assert.True(t, next.Revealed.Has(Cell{0, 0}))
	assert.Len(t, next.Revealed, 6, "clue on a zero cell flood fills")
	assert.Empty(t, next.ImmuneFlags)
}

func TestClueOnUninitializedBoardActsAsFirstReveal(t *testing.T) {
	board, err := NewBoard(8, 8).ApplyClue(4, 4, 10, testRand())
	require.NoError(t, err)

	assert.True(t, board.Initialized)
	assert.True(t, board.Revealed.Has(Cell{4, 4}))
	assert.False(t, board.GameOver)
	assert.Empty(t, board.ImmuneFlags)

	_, err = NewBoard(8, 8).ApplyClue(4, 4, 0, testRand())
	assert.ErrorIs(t, err, ErrMissingConfiguration)
}

func TestClueNeverLosesTheGame(t *testing.T) {
	mines := []Cell{{0, 0}, {1, 3}, {3, 1}}
	board := buildBoard(t, 4, 4, mines...)

	var err error
	for _, m := range mines {
		board, err = board.ApplyClue(m.Row, m.Col, 0, nil)
		require.NoError(t, err)
		require.False(t, board.GameOver)
	}
	assert.Len(t, board.ImmuneFlags, 3)

	// clearing the rest of the board still wins
	for row := range 4 {
		for col := range 4 {
			if board.Mines.Has(Cell{row, col}) {
				continue
			}
			board, err = board.Reveal(row, col, 0, nil)
			require.NoError(t, err)
		}
	}
	assert.True(t, board.Won)
}

func TestClueNoops(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	next, err := board.ApplyClue(-1, 5, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, next.Flagged)

	flagged := board.ToggleFlag(2, 2)
	next, err = flagged.ApplyClue(2, 2, 0, nil)
	require.NoError(t, err)
	assert.Empty(t, next.ImmuneFlags, "clue on a player-flagged cell is a no-op")

	revealed, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	next, err = revealed.ApplyClue(0, 0, 0, nil)
	require.NoError(t, err)
	assert.Equal(t, revealed.Render(true), next.Render(true))
}
