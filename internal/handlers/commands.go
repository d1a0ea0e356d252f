package handlers

import (
	"errors"
	"strconv"
	"strings"
)

type action int

const (
	actionReveal action = iota
	actionFlag
	actionChord
	actionClue
	actionGet
)

type Command struct {
	Action action
	Row    int
	Col    int
}

// Maps known commands to number of arguments
var commandNargs = map[string]int{
	"r": 2,
	"f": 2,
	"c": 2,
	"u": 2,
	"g": 0,
}

var commandActions = map[string]action{
	"r": actionReveal,
	"f": actionFlag,
	"c": actionChord,
	"u": actionClue,
	"g": actionGet,
}

func parseRowCol(twoStrings []string) (row int, col int, err error) {
	if row, err = strconv.Atoi(twoStrings[0]); err != nil {
		err = errors.New("first argument must be an int")
		return
	}
	if col, err = strconv.Atoi(twoStrings[1]); err != nil {
		err = errors.New("second argument must be an int")
		return
	}
	return
}

func parseCommand(c string) (Command, error) {
	parts := strings.Split(c, " ")
	nargs, ok := commandNargs[parts[0]]
	if !ok {
		return Command{}, errors.New("unknown command")
	}
	if nargs != len(parts)-1 {
		return Command{}, errors.New("invalid number of arguments")
	}
	cmd := Command{Action: commandActions[parts[0]]}
	if nargs == 2 {
		row, col, err := parseRowCol(parts[1:])
		if err != nil {
			return Command{}, err
		}
		cmd.Row = row
		cmd.Col = col
	}
	return cmd, nil
}
