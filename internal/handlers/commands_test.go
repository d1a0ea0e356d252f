package handlers

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseCommand(t *testing.T) {
	for _, tt := range []struct {
		input string
		want  Command
	}{
		{"r 3 4", Command{actionReveal, 3, 4}},
		{"f 0 0", Command{actionFlag, 0, 0}},
		{"c 10 2", Command{actionChord, 10, 2}},
		{"u 1 7", Command{actionClue, 1, 7}},
		{"g", Command{Action: actionGet}},
	} {
		cmd, err := parseCommand(tt.input)
		require.NoError(t, err, "command %q", tt.input)
		assert.Equal(t, tt.want, cmd, "command %q", tt.input)
	}
}

func TestParseCommandRejectsGarbage(t *testing.T) {
	for _, input := range []string{
		"",
		"x 1 2",
		"r 1",
		"r 1 2 3",
		"r one two",
		"g 1 2",
		"u 4 abc",
	} {
		_, err := parseCommand(input)
		assert.Error(t, err, "command %q", input)
	}
}
