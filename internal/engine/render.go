package engine

import (
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
)

// CellState is one square as the client sees it: 0-8 for a revealed count,
// negative sentinels otherwise.
type CellState int8

const (
	Hidden     CellState = -1
	Flag       CellState = -2
	ImmuneFlag CellState = -3
	Mine       CellState = -4
	MineHit    CellState = -5
)

func (s CellState) String() string {
	switch {
	case 0 <= s && s <= 8:
		return strconv.Itoa(int(s))
	case s == Hidden:
		return " "
	case s == Flag:
		return "*"
	case s == ImmuneFlag:
		return "+"
	case s == Mine:
		return "o"
	case s == MineHit:
		return "X"
	default:
		return "!"
	}
}

// MarshalJSON writes counts as numbers and sentinels as the wire names the
// frontend renders by.
func (s CellState) MarshalJSON() ([]byte, error) {
	if 0 <= s && s <= 8 {
		return []byte(strconv.Itoa(int(s))), nil
	}
	var name string
	switch s {
	case Hidden:
		name = "hidden"
	case Flag:
		name = "flagged"
	case ImmuneFlag:
		name = "flagged_immune"
	case Mine:
		name = "mine"
	case MineHit:
		name = "mine_hit"
	default:
		return nil, fmt.Errorf("invalid cell state %d", int8(s))
	}
	return json.Marshal(name)
}

// ClientView is the sanitized projection of a board. It is the only board
// shape that may cross the wire: mine positions appear solely when the game
// is over or the caller explicitly asked for full disclosure.
type ClientView struct {
	Rows          int           `json:"rows"`
	Cols          int           `json:"cols"`
	Cells         [][]CellState `json:"cells"`
	GameOver      bool          `json:"game_over"`
	Won           bool          `json:"won"`
	FlagsCount    int           `json:"flags_count"`
	MinesCount    int           `json:"mines_count"`
	RevealedCount int           `json:"revealed_count"`
	Initialized   bool          `json:"initialized"`
}

// Render projects the board for the client without touching the state.
// revealAll forces mine disclosure regardless of game state (end-of-game
// screens, never for live boards).
func (s BoardState) Render(revealAll bool) ClientView {
	showMines := revealAll || s.GameOver

	cells := make([][]CellState, s.Rows)
	for row := range cells {
		line := make([]CellState, s.Cols)
		for col := range line {
			c := Cell{row, col}
			switch {
			case s.Revealed.Has(c) && s.Mines.Has(c):
				line[col] = MineHit
			case s.Revealed.Has(c):
				line[col] = CellState(s.AdjacentCounts[c])
			case s.ImmuneFlags.Has(c):
				line[col] = ImmuneFlag
			case s.Flagged.Has(c):
				line[col] = Flag
			case showMines && s.Mines.Has(c):
				line[col] = Mine
			default:
				line[col] = Hidden
			}
		}
		cells[row] = line
	}

	return ClientView{
		Rows:          s.Rows,
		Cols:          s.Cols,
		Cells:         cells,
		GameOver:      s.GameOver,
		Won:           s.Won,
		FlagsCount:    len(s.Flagged),
		MinesCount:    len(s.Mines),
		RevealedCount: len(s.Revealed),
		Initialized:   s.Initialized,
	}
}

func (v ClientView) String() string {
	var b strings.Builder
	for _, line := range v.Cells {
		for _, cell := range line {
			fmt.Fprint(&b, cell.String()+" ")
		}
		fmt.Fprint(&b, "\n")
	}
	return b.String()
}
