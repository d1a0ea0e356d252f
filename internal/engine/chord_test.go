package engine

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// chordFixture has mines in the top corners; the center cell reads 2.
func chordFixture(t *testing.T) BoardState {
	t.Helper()
	board := buildBoard(t, 3, 3, Cell{0, 0}, Cell{0, 2})
	board, err := board.Reveal(1, 1, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 2, board.AdjacentCounts[Cell{1, 1}])
	return board
}

func TestChordRevealsNeighborsWhenFlagsMatch(t *testing.T) {
	board := chordFixture(t)
	board = board.ToggleFlag(0, 0)
	board = board.ToggleFlag(0, 2)

	next := board.ChordReveal(1, 1)

	for _, c := range []Cell{{0, 1}, {1, 0}, {1, 2}, {2, 0}, {2, 1}, {2, 2}} {
		assert.True(t, next.Revealed.Has(c), "neighbor %s not revealed", c)
	}
	assert.True(t, next.Won, "all safe cells open")
	assert.False(t, next.Revealed.Has(Cell{0, 0}))
}

func TestChordFlagCountMismatchIsNoop(t *testing.T) {
	board := chordFixture(t)
	board = board.ToggleFlag(0, 0)

	next := board.ChordReveal(1, 1)
	assert.Len(t, next.Revealed, 1, "only the chorded cell itself")
}

func TestChordWithWrongFlagLosesAndShortCircuits(t *testing.T) {
	board := chordFixture(t)
	// two flags, one of them wrong: the uncovered corner mine goes off
	board = board.ToggleFlag(0, 1)
	board = board.ToggleFlag(0, 2)

	next := board.ChordReveal(1, 1)

	assert.True(t, next.GameOver)
	assert.False(t, next.Won)
	// reveals stop at the mine hit: later safe neighbors stay hidden
	assert.False(t, next.Revealed.Has(Cell{2, 2}))
}

func TestChordNoops(t *testing.T) {
	board := buildBoard(t, 3, 3, Cell{0, 0}, Cell{0, 2})

	// not revealed yet
	next := board.ChordReveal(1, 1)
	assert.Empty(t, next.Revealed)

	// zero-count cell
	wall := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
	wall, err := wall.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	require.Equal(t, 0, wall.AdjacentCounts[Cell{0, 0}])
	assert.Equal(t, wall.Render(true), wall.ChordReveal(0, 0).Render(true))

	// out of bounds and game over
	assert.Empty(t, board.ChordReveal(9, 9).Revealed)
	lost, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	require.True(t, lost.GameOver)
	assert.Equal(t, lost.Render(true), lost.ChordReveal(1, 1).Render(true))
}
