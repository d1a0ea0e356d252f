package engine

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderHidesMinesWhileGameIsLive(t *testing.T) {
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
	board, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	board = board.ToggleFlag(0, 4)

	view := board.Render(false)
	for _, line := range view.Cells {
		for _, cell := range line {
			assert.NotEqual(t, Mine, cell)
			assert.NotEqual(t, MineHit, cell)
		}
	}
	assert.Equal(t, Hidden, view.Cells[0][2], "live mine renders as hidden")
	assert.Equal(t, Flag, view.Cells[0][4])
	assert.Equal(t, CellState(0), view.Cells[0][0])
	assert.Equal(t, CellState(2), view.Cells[0][1])
}

func TestRenderRevealAllOverride(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})

	assert.Equal(t, Hidden, board.Render(false).Cells[2][2])
	assert.Equal(t, Mine, board.Render(true).Cells[2][2])
}

func TestRenderAfterLoss(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{0, 0}, Cell{2, 2})
	board, err := board.Reveal(2, 2, 0, nil)
	require.NoError(t, err)
	require.True(t, board.GameOver)

	view := board.Render(false)
	// a loss pulls every mine into the revealed set
	assert.Equal(t, MineHit, view.Cells[0][0])
	assert.Equal(t, MineHit, view.Cells[2][2])
}

func TestRenderImmuneFlag(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{2, 2})
	board, err := board.ApplyClue(2, 2, 0, nil)
	require.NoError(t, err)

	view := board.Render(false)
	assert.Equal(t, ImmuneFlag, view.Cells[2][2])
	assert.Equal(t, 1, view.FlagsCount)
}

func TestRenderCounters(t *testing.T) {
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
	board, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	board = board.ToggleFlag(2, 4)

	view := board.Render(false)
	assert.Equal(t, 3, view.Rows)
	assert.Equal(t, 5, view.Cols)
	assert.Equal(t, 3, view.MinesCount)
	assert.Equal(t, 6, view.RevealedCount)
	assert.Equal(t, 1, view.FlagsCount)
	assert.True(t, view.Initialized)
	assert.False(t, view.GameOver)
}

func TestCellStateJSON(t *testing.T) {
	line := []CellState{Hidden, 2, Flag, ImmuneFlag, Mine, MineHit, 0}
	b, err := json.Marshal(line)
	require.NoError(t, err)
	assert.JSONEq(
		t,
		`["hidden",2,"flagged","flagged_immune","mine","mine_hit",0]`,
		string(b),
	)
}
