// Package engine implements the RogueSweeper board state machine: deferred
// mine placement, flood-fill reveal, flag and immune-flag semantics, chord
// reveal, win/loss detection and scoring. Every operation takes a board value
// and returns a new one; the package does no I/O and keeps no state of its
// own, so a caller owns persistence and per-board serialization entirely.
package engine

import (
	"bytes"
	"encoding/gob"
	"errors"
	"fmt"
	"maps"
	"math/rand/v2"
)

var (
	// ErrInvalidConfiguration means the requested mine count does not fit
	// the grid once the safe zone is excluded.
	ErrInvalidConfiguration = errors.New("invalid board configuration")
	// ErrMissingConfiguration means a reveal reached an uninitialized board
	// without a mine count to place.
	ErrMissingConfiguration = errors.New("missing board configuration")
)

// Cell addresses a single grid square.
type Cell struct {
	Row int
	Col int
}

func (c Cell) String() string {
	return fmt.Sprintf("%d:%d", c.Row, c.Col)
}

type CellSet map[Cell]struct{}

func (s CellSet) Has(c Cell) bool {
	_, ok := s[c]
	return ok
}

func (s CellSet) Add(c Cell) {
	s[c] = struct{}{}
}

// clone always allocates: a gob round trip can turn an empty set into a nil
// map, and cloned sets must stay writable.
func (s CellSet) clone() CellSet {
	next := make(CellSet, len(s))
	maps.Copy(next, s)
	return next
}

// BoardState is the complete state of one board. A fresh board knows only its
// dimensions; mines and adjacency counts are fixed by the first reveal so the
// first click can never lose. Values are safe to copy with clone-on-write:
// operations never mutate their receiver.
type BoardState struct {
	Rows, Cols     int
	Mines          CellSet
	Revealed       CellSet
	Flagged        CellSet
	ImmuneFlags    CellSet
	AdjacentCounts map[Cell]int
	GameOver       bool
	Won            bool
	Initialized    bool
}

// NewBoard returns an uninitialized board of the given dimensions. Mines are
// placed by the first Reveal or ApplyClue.
func NewBoard(rows, cols int) BoardState {
	return BoardState{
		Rows:           rows,
		Cols:           cols,
		Mines:          CellSet{},
		Revealed:       CellSet{},
		Flagged:        CellSet{},
		ImmuneFlags:    CellSet{},
		AdjacentCounts: map[Cell]int{},
	}
}

// Initialize places mineCount mines uniformly outside the safe cell and its
// in-bounds neighbors and precomputes every non-mine cell's adjacent count.
func Initialize(rows, cols, mineCount int, safe Cell, r *rand.Rand) (BoardState, error) {
	excluded := CellSet{safe: {}}
	board := NewBoard(rows, cols)
	for _, n := range board.neighbors(safe) {
		excluded.Add(n)
	}

	candidates := make([]Cell, 0, rows*cols-len(excluded))
	for row := range rows {
		for col := range cols {
			if c := (Cell{row, col}); !excluded.Has(c) {
				candidates = append(candidates, c)
			}
		}
	}

	if mineCount > len(candidates) {
		return BoardState{}, fmt.Errorf(
			"cannot place %d mines, only %d cells outside the safe zone: %w",
			mineCount, len(candidates), ErrInvalidConfiguration,
		)
	}

	r.Shuffle(len(candidates), func(i, j int) {
		candidates[i], candidates[j] = candidates[j], candidates[i]
	})
	for _, c := range candidates[:mineCount] {
		board.Mines.Add(c)
	}

	for row := range rows {
		for col := range cols {
			c := Cell{row, col}
			if board.Mines.Has(c) {
				continue
			}
			count := 0
			for _, n := range board.neighbors(c) {
				if board.Mines.Has(n) {
					count++
				}
			}
			board.AdjacentCounts[c] = count
		}
	}

	board.Initialized = true
	return board, nil
}

func (s BoardState) InBounds(c Cell) bool {
	return 0 <= c.Row && c.Row < s.Rows && 0 <= c.Col && c.Col < s.Cols
}

// neighbors returns the in-bounds cells among the 8 surrounding c.
func (s BoardState) neighbors(c Cell) []Cell {
	ns := make([]Cell, 0, 8)
	for dr := -1; dr <= 1; dr++ {
		for dc := -1; dc <= 1; dc++ {
			if dr == 0 && dc == 0 {
				continue
			}
			if n := (Cell{c.Row + dr, c.Col + dc}); s.InBounds(n) {
				ns = append(ns, n)
			}
		}
	}
	return ns
}

// clone copies the mutable sets so the returned state shares nothing a later
// operation could change. Mines and AdjacentCounts are fixed at initialization
// and safe to share.
func (s BoardState) clone() BoardState {
	next := s
	next.Revealed = s.Revealed.clone()
	next.Flagged = s.Flagged.clone()
	next.ImmuneFlags = s.ImmuneFlags.clone()
	return next
}

// DecodeBoardState restores a board from its Bytes form.
func DecodeBoardState(buf []byte) (BoardState, error) {
	var s BoardState
	err := gob.NewDecoder(bytes.NewReader(buf)).Decode(&s)
	return s, err
}

// Bytes serializes the board for storage as an opaque value.
func (s BoardState) Bytes() ([]byte, error) {
	var buf bytes.Buffer
	if err := gob.NewEncoder(&buf).Encode(s); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
