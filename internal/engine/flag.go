package engine

import "math/rand/v2"

// ToggleFlag flips the flag on a hidden cell. Finished games, out-of-bounds
// coordinates, revealed cells and immune flags are left untouched.
func (s BoardState) ToggleFlag(row, col int) BoardState {
	c := Cell{row, col}
	if s.GameOver || !s.InBounds(c) || s.Revealed.Has(c) || s.ImmuneFlags.Has(c) {
		return s
	}
	next := s.clone()
	if next.Flagged.Has(c) {
		delete(next.Flagged, c)
	} else {
		next.Flagged.Add(c)
	}
	return next
}

// ApplyClue safely probes a cell. A mine gets a permanent immune flag instead
// of ending the game; a safe cell is revealed as usual. On an uninitialized
// board the clue acts as the first reveal (which is always safe anyway).
// Using a clue can never lose the game.
func (s BoardState) ApplyClue(row, col, mineCount int, r *rand.Rand) (BoardState, error) {
	c := Cell{row, col}
	if s.GameOver || !s.InBounds(c) {
		return s, nil
	}
	if !s.Initialized {
		return s.Reveal(row, col, mineCount, r)
	}
	if s.Revealed.Has(c) || s.Flagged.Has(c) {
		return s, nil
	}
	if s.Mines.Has(c) {
		next := s.clone()
		next.Flagged.Add(c)
		next.ImmuneFlags.Add(c)
		return next, nil
	}
	return s.Reveal(row, col, mineCount, r)
}
