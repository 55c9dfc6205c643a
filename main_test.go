package main

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func execute(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	rootCmd.SetArgs(args)
	rootCmd.SetIn(strings.NewReader(input))
	rootCmd.SetOut(&out)
	rootCmd.SetErr(&out)

	err := rootCmd.Execute()

	return out.String(), err
}

func TestSuggestCommand(t *testing.T) {
	t.Run("blocks the open row", func(t *testing.T) {
		// Given: X needs one more token in row A
		// When: O asks for advice
		out, err := execute(t, "", "suggest", "--board", "XXXX./...../...../...../.....", "--player", "o")

		// Then: the first blocking label is printed
		require.NoError(t, err)
		assert.Equal(t, "5 block\n", out)
	})

	t.Run("bad board", func(t *testing.T) {
		_, err := execute(t, "", "suggest", "--board", "XXXX", "--player", "X")

		require.Error(t, err)
	})
}

func TestPlayCommand(t *testing.T) {
	// Given: a hot-seat game where X fills row A
	input := "1\nE\n2\nE\n3\nE\n4\nE\n5\n"

	// When: the game is played through the command
	out, err := execute(t, input, "play", "--mode", "two-player")

	// Then: X wins
	require.NoError(t, err)
	assert.Contains(t, out, "X wins!")
}

func TestPlayCommand_Quit(t *testing.T) {
	out, err := execute(t, "q\n", "play", "--mode", "two-player")

	require.NoError(t, err)
	assert.Contains(t, out, "Bye!")
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, "DEBUG", parseLevel("debug").String())
	assert.Equal(t, "ERROR", parseLevel("error").String())
	assert.Equal(t, "INFO", parseLevel("verbose").String())
}
