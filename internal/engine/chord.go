package engine

// ChordReveal opens every unflagged hidden neighbor of a revealed numbered
// cell, provided exactly that many neighbors are flagged. A wrong flag makes
// this lose the game; neighbors are revealed one at a time and the loop stops
// at the first reveal that ends the game, so later neighbors stay hidden.
func (s BoardState) ChordReveal(row, col int) BoardState {
	c := Cell{row, col}
	if s.GameOver || !s.InBounds(c) || !s.Revealed.Has(c) {
		return s
	}
	count := s.AdjacentCounts[c]
	if count == 0 {
		return s
	}

	flags := 0
	hidden := make([]Cell, 0, 8)
	for _, n := range s.neighbors(c) {
		if s.Flagged.Has(n) {
			flags++
		} else if !s.Revealed.Has(n) {
			hidden = append(hidden, n)
		}
	}
	if flags != count {
		return s
	}

	for _, n := range hidden {
		// board is initialized here, Reveal cannot fail
		s, _ = s.Reveal(n.Row, n.Col, 0, nil)
		if s.GameOver {
			break
		}
	}
	return s
}
