package entity

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

var ErrBadBoardText = errors.New("board text must hold 25 cells of X, O or .")

// ParseBoard - reads the cells in row-major order from text made of 'X', 'O' and '.'.
// Whitespace and '/' are ignored so rows can be separated. The result has X to move.
func ParseBoard(text string) (Board, error) {
	board := NewBoard()
	cell := 0

	for _, char := range strings.ToUpper(text) {
		if unicode.IsSpace(char) || char == '/' {
			continue
		}

		if cell >= Dim*Dim {
			return Board{}, fmt.Errorf("%w: too many cells", ErrBadBoardText)
		}

		switch char {
		case 'X':
			board.Cells[cell/Dim][cell%Dim] = MarkX
		case 'O':
			board.Cells[cell/Dim][cell%Dim] = MarkO
		case '.', '_':
		default:
			return Board{}, fmt.Errorf("%w: unexpected %q", ErrBadBoardText, char)
		}

		cell++
	}

	if cell != Dim*Dim {
		return Board{}, fmt.Errorf("%w: got %d cells", ErrBadBoardText, cell)
	}

	return board, nil
}
