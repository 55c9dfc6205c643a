package advisor

import "github.com/rocketscienceinc/slide-backend/internal/entity"

// Evaluate - scores the board for player: the number of lines still open for the
// player minus the number still open for the opponent. A line is open for a side when
// it has at least one empty cell, at least one of that side's tokens, and none of the
// other side's.
func Evaluate(board entity.Board, player entity.Mark) int {
	open, opponentOpen := OpenLines(board, player)
	return open - opponentOpen
}

// OpenLines - counts the open lines for player and for the opponent.
func OpenLines(board entity.Board, player entity.Mark) (int, int) {
	opponent := player.Opponent()
	open, opponentOpen := 0, 0

	for _, line := range entity.WinLines {
		var hasEmpty, hasPlayer, hasOpponent bool

		for _, pos := range line {
			switch board.At(pos.Row, pos.Col) {
			case entity.Empty:
				hasEmpty = true
			case player:
				hasPlayer = true
			case opponent:
				hasOpponent = true
			}
		}

		if hasEmpty && hasPlayer && !hasOpponent {
			open++
		}

		if hasEmpty && hasOpponent && !hasPlayer {
			opponentOpen++
		}
	}

	return open, opponentOpen
}
