package entity

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fillColumn(t *testing.T, board *Board, col int, mark Mark) {
	t.Helper()
	for row := 0; row < Dim; row++ {
		require.NoError(t, board.Set(row, col, mark))
	}
}

func fillRow(t *testing.T, board *Board, row int, mark Mark) {
	t.Helper()
	for col := 0; col < Dim; col++ {
		require.NoError(t, board.Set(row, col, mark))
	}
}

func TestNewBoard(t *testing.T) {
	// When: a new board is created
	board := NewBoard()

	// Then: every cell is empty and X moves first
	assert.Equal(t, Dim*Dim, board.Count(Empty))
	assert.Equal(t, MarkX, board.CurrentPlayer())
	assert.Equal(t, ResultUndecided, board.CheckWinner())
}

func TestBoard_ApplyMove(t *testing.T) {
	t.Run("Column label enters at the top row", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: X plays column 2
		require.NoError(t, board.ApplyMove('2', MarkX))

		// Then: the token sits at row 0, column 1 and the turn is untouched
		assert.Equal(t, MarkX, board.At(0, 1))
		assert.Equal(t, 1, board.Occupied())
		assert.Equal(t, MarkX, board.CurrentPlayer())
	})

	t.Run("Row label enters at the left column", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: O plays row C
		require.NoError(t, board.ApplyMove('C', MarkO))

		// Then: the token sits at row 2, column 0
		assert.Equal(t, MarkO, board.At(2, 0))
	})

	t.Run("Shove pushes existing tokens toward the far end", func(t *testing.T) {
		// Given: column 1 holds X at row 0 and O at row 1
		board := NewBoard()
		require.NoError(t, board.ApplyMove('1', MarkO))
		require.NoError(t, board.ApplyMove('1', MarkX))

		// When: O plays column 1 again
		require.NoError(t, board.ApplyMove('1', MarkO))

		// Then: the column reads O, X, O from the top
		assert.Equal(t, MarkO, board.At(0, 0))
		assert.Equal(t, MarkX, board.At(1, 0))
		assert.Equal(t, MarkO, board.At(2, 0))
		assert.Equal(t, Empty, board.At(3, 0))
		assert.Equal(t, 3, board.Occupied())
	})

	t.Run("Shove stops at the first empty cell", func(t *testing.T) {
		// Given: row A has X at columns 0 and 1, a gap at 2 and O at 3
		board := NewBoard()
		require.NoError(t, board.Set(0, 0, MarkX))
		require.NoError(t, board.Set(0, 1, MarkX))
		require.NoError(t, board.Set(0, 3, MarkO))

		// When: O plays row A
		require.NoError(t, board.ApplyMove('A', MarkO))

		// Then: the gap is filled and the token past it is not moved
		assert.Equal(t, MarkO, board.At(0, 0))
		assert.Equal(t, MarkX, board.At(0, 1))
		assert.Equal(t, MarkX, board.At(0, 2))
		assert.Equal(t, MarkO, board.At(0, 3))
		assert.Equal(t, Empty, board.At(0, 4))
	})

	t.Run("Full column ejects the far-end token", func(t *testing.T) {
		// Given: column 3 is full of X
		board := NewBoard()
		fillColumn(t, &board, 2, MarkX)

		// When: O plays column 3
		require.NoError(t, board.ApplyMove('3', MarkO))

		// Then: O is at the entry cell, four X tokens remain below it
		assert.Equal(t, MarkO, board.At(0, 2))
		for row := 1; row < Dim; row++ {
			assert.Equal(t, MarkX, board.At(row, 2))
		}
		assert.Equal(t, Dim-1, board.Count(MarkX))
		assert.Equal(t, Dim, board.Occupied())
	})

	t.Run("Full row keeps order and drops the last token", func(t *testing.T) {
		// Given: row E reads X O X O X
		board := NewBoard()
		for col, mark := range []Mark{MarkX, MarkO, MarkX, MarkO, MarkX} {
			require.NoError(t, board.Set(4, col, mark))
		}

		// When: O plays row E
		require.NoError(t, board.ApplyMove('E', MarkO))

		// Then: the row reads O X O X O and the trailing X is gone
		expected := [Dim]Mark{MarkO, MarkX, MarkO, MarkX, MarkO}
		assert.Equal(t, expected, board.Cells[4])
	})

	t.Run("Invalid label is rejected without touching the board", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: an out-of-range label is applied
		err := board.ApplyMove('F', MarkX)

		// Then: an InvalidMoveError is returned and the board is unchanged
		var moveErr *InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, "F", moveErr.Label)
		assert.Equal(t, NewBoard(), board)
	})

	t.Run("Invalid player is rejected", func(t *testing.T) {
		// Given: an empty board
		board := NewBoard()

		// When: an empty mark is applied
		err := board.ApplyMove('1', Empty)

		// Then: ErrInvalidPlayer is returned
		require.ErrorIs(t, err, ErrInvalidPlayer)
		assert.Equal(t, 0, board.Occupied())
	})
}

func TestBoard_ApplyMoveOccupiedCount(t *testing.T) {
	// Given: a board played through a fixed sequence of moves
	board := NewBoard()
	sequence := "11111133333ABCDEEEEEE2"

	for i := 0; i < len(sequence); i++ {
		label := Label(sequence[i])
		mark := MarkX
		if i%2 == 1 {
			mark = MarkO
		}

		before := board.Occupied()
		lineWasFull := lineFull(board, label)

		// When: the next move is applied
		require.NoError(t, board.ApplyMove(label, mark))

		// Then: the count grows by one unless the line was already full
		if lineWasFull {
			assert.Equal(t, before, board.Occupied(), "move %d (%s)", i, label)
		} else {
			assert.Equal(t, before+1, board.Occupied(), "move %d (%s)", i, label)
		}
	}
}

func lineFull(board Board, label Label) bool {
	for offset := 0; offset < Dim; offset++ {
		if *board.lineCell(label, label.Index(), offset) == Empty {
			return false
		}
	}
	return true
}

func TestBoard_Submit(t *testing.T) {
	// Given: a new board
	board := NewBoard()
	moves := []Label{'1', 'A', '5', 'C', '3'}

	for n, label := range moves {
		// When: the player to move submits a label
		mover := board.CurrentPlayer()
		require.NoError(t, board.Submit(label))

		// Then: the mover's token was placed and the turn alternates with parity
		assert.NotEqual(t, mover, board.CurrentPlayer())
		if (n+1)%2 == 0 {
			assert.Equal(t, MarkX, board.CurrentPlayer())
		} else {
			assert.Equal(t, MarkO, board.CurrentPlayer())
		}
	}

	t.Run("Invalid label keeps the turn", func(t *testing.T) {
		board := NewBoard()

		err := board.Submit('0')

		var moveErr *InvalidMoveError
		require.ErrorAs(t, err, &moveErr)
		assert.Equal(t, MarkX, board.CurrentPlayer())
	})
}

func TestBoard_CheckWinner(t *testing.T) {
	t.Run("Row win", func(t *testing.T) {
		// Given: row B is all O
		board := NewBoard()
		fillRow(t, &board, 1, MarkO)

		// Then: O wins
		assert.Equal(t, ResultOWins, board.CheckWinner())
	})

	t.Run("Column win", func(t *testing.T) {
		// Given: column 5 is all X
		board := NewBoard()
		fillColumn(t, &board, 4, MarkX)

		// Then: X wins
		assert.Equal(t, ResultXWins, board.CheckWinner())
	})

	t.Run("Main diagonal win", func(t *testing.T) {
		// Given: X on (0,0) through (4,4), everything else empty
		board := NewBoard()
		for i := 0; i < Dim; i++ {
			require.NoError(t, board.Set(i, i, MarkX))
		}

		// Then: X wins
		assert.Equal(t, ResultXWins, board.CheckWinner())
	})

	t.Run("Anti-diagonal win", func(t *testing.T) {
		// Given: O from bottom-left to top-right
		board := NewBoard()
		for i := 0; i < Dim; i++ {
			require.NoError(t, board.Set(Dim-1-i, i, MarkO))
		}

		// Then: O wins
		assert.Equal(t, ResultOWins, board.CheckWinner())
	})

	t.Run("Row and crossing column is a single win, not a tie", func(t *testing.T) {
		// Given: row 0 all X and column 0 O everywhere except the shared cell
		board := NewBoard()
		fillRow(t, &board, 0, MarkX)
		for row := 1; row < Dim; row++ {
			require.NoError(t, board.Set(row, 0, MarkO))
		}

		// Then: only X owns a full line
		assert.Equal(t, ResultXWins, board.CheckWinner())
	})

	t.Run("Tie when both players own a line", func(t *testing.T) {
		// Given: row A all X and row E all O
		board := NewBoard()
		fillRow(t, &board, 0, MarkX)
		fillRow(t, &board, 4, MarkO)

		// Then: the result is a tie
		assert.Equal(t, ResultTie, board.CheckWinner())
	})

	t.Run("Single shove completes lines for both players", func(t *testing.T) {
		// Given: column 1 reads O O O O X from the top, columns 2-5 hold X in row A and O in row E
		board := NewBoard()
		for row := 0; row < Dim-1; row++ {
			require.NoError(t, board.Set(row, 0, MarkO))
		}
		require.NoError(t, board.Set(4, 0, MarkX))
		for col := 1; col < Dim; col++ {
			require.NoError(t, board.Set(0, col, MarkX))
			require.NoError(t, board.Set(4, col, MarkO))
		}

		// When: X shoves column 1, pushing O down into row E
		require.NoError(t, board.ApplyMove('1', MarkX))

		// Then: row A is all X and row E is all O
		assert.Equal(t, ResultTie, board.CheckWinner())
	})

	t.Run("Mixed and partial lines are undecided", func(t *testing.T) {
		// Given: row A holds four X and one O, column 2 holds four O
		board := NewBoard()
		for col, mark := range []Mark{MarkX, MarkX, MarkO, MarkX, MarkX} {
			require.NoError(t, board.Set(0, col, mark))
		}
		for row := 1; row < Dim; row++ {
			require.NoError(t, board.Set(row, 1, MarkO))
		}

		// Then: no player owns a line
		assert.Equal(t, ResultUndecided, board.CheckWinner())
	})
}

func TestBoard_Clear(t *testing.T) {
	// Given: a board with moves and O to play
	board := NewBoard()
	require.NoError(t, board.Submit('1'))
	require.NoError(t, board.ApplyMove('B', MarkX))

	// When: the board is cleared
	board.Clear()

	// Then: it equals a fresh board
	assert.Equal(t, NewBoard(), board)
}

func TestBoard_SetCurrentPlayer(t *testing.T) {
	board := NewBoard()

	require.NoError(t, board.SetCurrentPlayer(MarkO))
	assert.Equal(t, MarkO, board.CurrentPlayer())

	require.ErrorIs(t, board.SetCurrentPlayer(Empty), ErrInvalidPlayer)
	assert.Equal(t, MarkO, board.CurrentPlayer())
}

func TestBoard_CopyIsIndependent(t *testing.T) {
	// Given: a board and a copy of it
	board := NewBoard()
	require.NoError(t, board.ApplyMove('1', MarkX))
	snapshot := board

	// When: the copy is played on
	require.NoError(t, snapshot.ApplyMove('1', MarkO))

	// Then: the original is unchanged
	assert.Equal(t, 1, board.Occupied())
	assert.Equal(t, 2, snapshot.Occupied())
}

func TestBoard_Set(t *testing.T) {
	board := NewBoard()

	require.ErrorIs(t, board.Set(5, 0, MarkX), ErrOutOfBounds)
	require.ErrorIs(t, board.Set(0, -1, MarkX), ErrOutOfBounds)
	require.ErrorIs(t, board.Set(0, 0, Mark("Z")), ErrInvalidPlayer)
	assert.Equal(t, Empty, board.At(-1, 2))
}

func TestBoard_String(t *testing.T) {
	// Given: X in the top-left corner and O at the end of row E
	board := NewBoard()
	require.NoError(t, board.Set(0, 0, MarkX))
	require.NoError(t, board.Set(4, 4, MarkO))

	// Then: the drawing has labels and borders
	expected := "  12345\n" +
		" /-----\\\n" +
		"A|X    |\n" +
		"B|     |\n" +
		"C|     |\n" +
		"D|     |\n" +
		"E|    O|\n" +
		" \\-----/\n"
	assert.Equal(t, expected, board.String())
}

func TestWinLines(t *testing.T) {
	require.Len(t, WinLines, 2*Dim+2)
	assert.Equal(t, Position{Row: 4, Col: 0}, WinLines[len(WinLines)-1][0])
	assert.Equal(t, Position{Row: 0, Col: 4}, WinLines[len(WinLines)-1][4])
}
