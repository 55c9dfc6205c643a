package entity

import "fmt"

// Result is the outcome of a board scan.
type Result uint8

const (
	ResultUndecided Result = iota
	ResultXWins
	ResultOWins
	ResultTie
)

var resultNames = map[Result]string{
	ResultUndecided: "undecided",
	ResultXWins:     "x",
	ResultOWins:     "o",
	ResultTie:       "tie",
}

// ResultFor - returns the result in which the given mark wins.
func ResultFor(mark Mark) Result {
	switch mark {
	case MarkX:
		return ResultXWins
	case MarkO:
		return ResultOWins
	default:
		return ResultUndecided
	}
}

// Winner - returns the winning mark, false for a tie or an undecided board.
func (that Result) Winner() (Mark, bool) {
	switch that {
	case ResultXWins:
		return MarkX, true
	case ResultOWins:
		return MarkO, true
	default:
		return Empty, false
	}
}

func (that Result) IsDecided() bool {
	return that != ResultUndecided
}

func (that Result) String() string {
	if name, ok := resultNames[that]; ok {
		return name
	}
	return fmt.Sprintf("result(%d)", uint8(that))
}

func (that Result) MarshalText() ([]byte, error) {
	name, ok := resultNames[that]
	if !ok {
		return nil, fmt.Errorf("unknown game result %d", uint8(that))
	}

	return []byte(name), nil
}

func (that *Result) UnmarshalText(text []byte) error {
	for result, name := range resultNames {
		if name == string(text) {
			*that = result
			return nil
		}
	}

	return fmt.Errorf("unknown game result %q", string(text))
}
