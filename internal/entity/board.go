package entity

import (
	"errors"
	"fmt"
	"strings"
)

// Dim is the side length of the board.
const Dim = 5

var ErrOutOfBounds = errors.New("cell is out of bounds")

// Position addresses a cell by zero-based row and column.
type Position struct {
	Row int
	Col int
}

// WinLines holds every line that wins the game when a single player fills it:
// five rows, five columns, the main diagonal and the anti-diagonal.
var WinLines = buildWinLines()

func buildWinLines() [][Dim]Position {
	lines := make([][Dim]Position, 0, 2*Dim+2)

	for row := 0; row < Dim; row++ {
		var line [Dim]Position
		for col := 0; col < Dim; col++ {
			line[col] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	for col := 0; col < Dim; col++ {
		var line [Dim]Position
		for row := 0; row < Dim; row++ {
			line[row] = Position{Row: row, Col: col}
		}
		lines = append(lines, line)
	}

	var diagonal, antiDiagonal [Dim]Position
	for i := 0; i < Dim; i++ {
		diagonal[i] = Position{Row: i, Col: i}
		antiDiagonal[i] = Position{Row: Dim - 1 - i, Col: i}
	}

	return append(lines, diagonal, antiDiagonal)
}

// Board is the 5x5 grid plus whose turn it is. It is a value type: assigning a Board
// copies the whole grid, so a copy can be played on without touching the original.
type Board struct {
	Cells   [Dim][Dim]Mark `json:"cells"`
	Current Mark           `json:"current"`
}

// NewBoard - returns an empty board with X to move.
func NewBoard() Board {
	board := Board{}
	board.Clear()

	return board
}

// Clear - empties every cell and gives the move back to X.
func (that *Board) Clear() {
	that.Cells = [Dim][Dim]Mark{}
	that.Current = MarkX
}

// ApplyMove - shoves the player's token into the line named by label. The token enters
// at index 0 and every token up to the first empty cell moves one step toward the far
// end; if the line was full, the token at the far end falls off the board.
// The turn is not changed.
func (that *Board) ApplyMove(label Label, player Mark) error {
	if !label.IsValid() {
		return &InvalidMoveError{Label: label.String()}
	}

	if !player.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, player)
	}

	line := label.Index()
	carried := player
	for offset := 0; offset < Dim; offset++ {
		cell := that.lineCell(label, line, offset)
		if *cell == Empty {
			*cell = carried
			return nil
		}

		*cell, carried = carried, *cell
	}

	return nil
}

func (that *Board) lineCell(label Label, line, offset int) *Mark {
	if label.IsColumn() {
		return &that.Cells[offset][line]
	}
	return &that.Cells[line][offset]
}

// Submit - plays label for the player to move and passes the turn.
func (that *Board) Submit(label Label) error {
	if err := that.ApplyMove(label, that.Current); err != nil {
		return err
	}

	that.Current = that.Current.Opponent()

	return nil
}

// CheckWinner - scans all rows, columns and both diagonals. When both players own a
// full line at the same time the result is a tie.
func (that Board) CheckWinner() Result {
	var xOwnsLine, oOwnsLine bool

	for _, line := range WinLines {
		switch that.lineOwner(line) {
		case MarkX:
			xOwnsLine = true
		case MarkO:
			oOwnsLine = true
		}
	}

	switch {
	case xOwnsLine && oOwnsLine:
		return ResultTie
	case xOwnsLine:
		return ResultXWins
	case oOwnsLine:
		return ResultOWins
	default:
		return ResultUndecided
	}
}

func (that Board) lineOwner(line [Dim]Position) Mark {
	owner := that.Cells[line[0].Row][line[0].Col]
	if owner == Empty {
		return Empty
	}

	for _, pos := range line[1:] {
		if that.Cells[pos.Row][pos.Col] != owner {
			return Empty
		}
	}

	return owner
}

func (that Board) CurrentPlayer() Mark {
	return that.Current
}

func (that *Board) SetCurrentPlayer(player Mark) error {
	if !player.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, player)
	}

	that.Current = player

	return nil
}

func (that Board) At(row, col int) Mark {
	if !inBounds(row, col) {
		return Empty
	}
	return that.Cells[row][col]
}

// Set - writes a mark directly into a cell, bypassing the shove rules.
func (that *Board) Set(row, col int, mark Mark) error {
	if !inBounds(row, col) {
		return fmt.Errorf("%w: (%d, %d)", ErrOutOfBounds, row, col)
	}

	if mark != Empty && !mark.IsPlayer() {
		return fmt.Errorf("%w: %q", ErrInvalidPlayer, mark)
	}

	that.Cells[row][col] = mark

	return nil
}

// Count - returns how many cells hold the given mark.
func (that Board) Count(mark Mark) int {
	count := 0
	for _, row := range that.Cells {
		for _, cell := range row {
			if cell == mark {
				count++
			}
		}
	}

	return count
}

func (that Board) Occupied() int {
	return Dim*Dim - that.Count(Empty)
}

// String - draws the grid with the column labels on top and the row labels on the left.
func (that Board) String() string {
	var sb strings.Builder

	sb.WriteString("  ")
	for i := 0; i < Dim; i++ {
		sb.WriteString(canonicalLabels[i].String())
	}
	sb.WriteString("\n /" + strings.Repeat("-", Dim) + "\\\n")

	for row := 0; row < Dim; row++ {
		sb.WriteString(canonicalLabels[Dim+row].String() + "|")
		for col := 0; col < Dim; col++ {
			sb.WriteString(that.Cells[row][col].symbol())
		}
		sb.WriteString("|\n")
	}

	sb.WriteString(" \\" + strings.Repeat("-", Dim) + "/\n")

	return sb.String()
}

func inBounds(row, col int) bool {
	return row >= 0 && row < Dim && col >= 0 && col < Dim
}
