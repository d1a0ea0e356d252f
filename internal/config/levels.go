package config

import (
	"os"
	"strconv"
)

// Levels describes how board difficulty grows over a run. Every knob can
// be overridden with a LEVELS_* env variable.
type Levels struct {
	BaseRows      int
	BaseCols      int
	RowIncrement  int
	ColIncrement  int
	MaxRows       int
	MaxCols       int
	BaseMines     int
	MineIncrement int
	CluesPerLevel int
}

func intEnv(name string, fallback int) int {
	s, ok := os.LookupEnv(name)
	if !ok {
		return fallback
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		return fallback
	}
	return v
}

func NewLevels() Levels {
	return Levels{
		BaseRows:      intEnv("LEVELS_BASE_ROWS", 8),
		BaseCols:      intEnv("LEVELS_BASE_COLS", 8),
		RowIncrement:  intEnv("LEVELS_ROW_INCREMENT", 1),
		ColIncrement:  intEnv("LEVELS_COL_INCREMENT", 1),
		MaxRows:       intEnv("LEVELS_MAX_ROWS", 30),
		MaxCols:       intEnv("LEVELS_MAX_COLS", 30),
		BaseMines:     intEnv("LEVELS_BASE_MINES", 10),
		MineIncrement: intEnv("LEVELS_MINE_INCREMENT", 2),
		CluesPerLevel: intEnv("LEVELS_CLUES_PER_LEVEL", 1),
	}
}

func (l Levels) GridSize(level int) (rows, cols int) {
	rows = min(l.BaseRows+(level-1)*l.RowIncrement, l.MaxRows)
	cols = min(l.BaseCols+(level-1)*l.ColIncrement, l.MaxCols)
	return rows, cols
}

// MineCount grows linearly with the level but never exceeds a quarter of
// the grid, keeping late boards solvable.
func (l Levels) MineCount(level int) int {
	rows, cols := l.GridSize(level)
	return min(l.BaseMines+(level-1)*l.MineIncrement, rows*cols/4)
}
