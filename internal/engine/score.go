package engine

// Score computes the points for one finished level:
//
//	100*level + 10*cellsRevealed + max(0, 300-timeElapsed)
//	- 50*cluesUsed + (won ? 500*level : 0)
//
// floored at zero. timeElapsed is in seconds.
func Score(level, cellsRevealed, timeElapsed, cluesUsed int, won bool) int {
	score := 100*level +
		10*cellsRevealed +
		max(0, 300-timeElapsed) -
		50*cluesUsed
	if won {
		score += 500 * level
	}
	return max(0, score)
}
