package entity

import "errors"

// Mark is the content of a single board cell: one of the two players or Empty.
type Mark string

const (
	MarkX Mark = "X"
	MarkO Mark = "O"
	Empty Mark = ""
)

var ErrInvalidPlayer = errors.New("invalid player mark")

// IsPlayer - reports whether the mark belongs to one of the two players.
func (that Mark) IsPlayer() bool {
	return that == MarkX || that == MarkO
}

// Opponent - returns the other player's mark. Empty has no opponent.
func (that Mark) Opponent() Mark {
	switch that {
	case MarkX:
		return MarkO
	case MarkO:
		return MarkX
	default:
		return Empty
	}
}

func (that Mark) symbol() string {
	if that == Empty {
		return " "
	}
	return string(that)
}
