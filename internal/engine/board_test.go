package engine

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// buildBoard creates an initialized board with mines at fixed positions so
// tests do not depend on placement randomness.
func buildBoard(t *testing.T, rows, cols int, mines ...Cell) BoardState {
	t.Helper()
	s := NewBoard(rows, cols)
	for _, m := range mines {
		require.True(t, s.InBounds(m), "fixture mine %s out of bounds", m)
		s.Mines.Add(m)
	}
	for row := range rows {
		for col := range cols {
			c := Cell{row, col}
			if s.Mines.Has(c) {
				continue
			}
			count := 0
			for _, n := range s.neighbors(c) {
				if s.Mines.Has(n) {
					count++
				}
			}
			s.AdjacentCounts[c] = count
		}
	}
	s.Initialized = true
	return s
}

func testRand() *rand.Rand {
	return rand.New(rand.NewPCG(1, 2))
}

func TestInitializeExcludesSafeZone(t *testing.T) {
	r := testRand()
	for range 50 {
		safe := Cell{r.IntN(8), r.IntN(8)}
		board, err := Initialize(8, 8, 10, safe, r)
		require.NoError(t, err)

		assert.True(t, board.Initialized)
		assert.Len(t, board.Mines, 10)
		assert.False(t, board.Mines.Has(safe))
		for _, n := range board.neighbors(safe) {
			assert.False(t, board.Mines.Has(n), "mine at safe neighbor %s", n)
		}
	}
}

func TestInitializeAdjacentCounts(t *testing.T) {
	board, err := Initialize(16, 16, 40, Cell{8, 8}, testRand())
	require.NoError(t, err)

	assert.Len(t, board.AdjacentCounts, 16*16-40)
	for c, count := range board.AdjacentCounts {
		assert.False(t, board.Mines.Has(c))
		want := 0
		for _, n := range board.neighbors(c) {
			if board.Mines.Has(n) {
				want++
			}
		}
		assert.Equal(t, want, count, "count at %s", c)
	}
}

func TestInitializeMineCountLimit(t *testing.T) {
	r := testRand()

	// 8x8 with a central safe zone leaves 64-9=55 candidate cells
	board, err := Initialize(8, 8, 55, Cell{4, 4}, r)
	require.NoError(t, err)
	assert.Len(t, board.Mines, 55)

	_, err = Initialize(8, 8, 56, Cell{4, 4}, r)
	require.ErrorIs(t, err, ErrInvalidConfiguration)

	_, err = Initialize(3, 3, 1, Cell{1, 1}, r)
	require.ErrorIs(t, err, ErrInvalidConfiguration)
}

func TestNewBoardIsUninitialized(t *testing.T) {
	board := NewBoard(8, 8)
	assert.False(t, board.Initialized)
	assert.Empty(t, board.Mines)
	assert.Empty(t, board.AdjacentCounts)
	assert.False(t, board.GameOver)
}

func TestCodecRoundTrip(t *testing.T) {
	board := buildBoard(t, 3, 5, Cell{0, 2}, Cell{1, 2}, Cell{2, 2})
	board, err := board.Reveal(0, 0, 0, nil)
	require.NoError(t, err)
	board = board.ToggleFlag(0, 4)
	require.False(t, board.GameOver)

	buf, err := board.Bytes()
	require.NoError(t, err)
	decoded, err := DecodeBoardState(buf)
	require.NoError(t, err)

	assert.Equal(t, board.Render(true), decoded.Render(true))
	assert.Equal(t, board.Initialized, decoded.Initialized)

	// decoded boards must stay usable for further moves
	decoded = decoded.ToggleFlag(0, 4)
	assert.False(t, decoded.Flagged.Has(Cell{0, 4}))
}
