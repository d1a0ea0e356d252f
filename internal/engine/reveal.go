package engine

import (
	"fmt"
	"math/rand/v2"
)

// Reveal uncovers the cell at row:col. On an uninitialized board it first
// places mineCount mines with row:col as the safe cell, so the first click is
// never a mine; mineCount is ignored once the board is initialized. Revealing
// a mine ends the game and discloses every mine. Revealing a zero-count cell
// flood fills its connected region. Reveals against a finished board, an
// out-of-bounds, flagged or already revealed cell return the state unchanged.
func (s BoardState) Reveal(row, col, mineCount int, r *rand.Rand) (BoardState, error) {
	if s.GameOver {
		return s, nil
	}
	c := Cell{row, col}
	if !s.InBounds(c) {
		return s, nil
	}

	if !s.Initialized {
		if mineCount < 1 {
			return s, fmt.Errorf(
				"mine count required to reveal on an uninitialized board: %w",
				ErrMissingConfiguration,
			)
		}
		board, err := Initialize(s.Rows, s.Cols, mineCount, c, r)
		if err != nil {
			return s, err
		}
		s = board
	}

	if s.Flagged.Has(c) || s.Revealed.Has(c) {
		return s, nil
	}

	next := s.clone()

	if next.Mines.Has(c) {
		next.GameOver = true
		next.Won = false
		for m := range next.Mines {
			next.Revealed.Add(m)
		}
		return next, nil
	}

	next.floodFrom(c)

	if len(next.Revealed) == next.Rows*next.Cols-len(next.Mines) {
		next.GameOver = true
		next.Won = true
	}
	return next, nil
}

// floodFrom reveals start and walks outward with an explicit stack: a
// revealed cell with zero adjacent mines enqueues its neighbors, so the whole
// connected zero region opens along with its numbered border. Flagged and
// mined cells stop the walk. Iterative on purpose, recursion depth would
// otherwise scale with the region size.
func (s *BoardState) floodFrom(start Cell) {
	stack := []Cell{start}
	for len(stack) > 0 {
		c := stack[len(stack)-1]
		stack = stack[:len(stack)-1]

		if s.Revealed.Has(c) || s.Flagged.Has(c) || s.Mines.Has(c) {
			continue
		}
		s.Revealed.Add(c)

		if s.AdjacentCounts[c] != 0 {
			continue
		}
		for _, n := range s.neighbors(c) {
			if !s.Revealed.Has(n) {
				stack = append(stack, n)
			}
		}
	}
}
