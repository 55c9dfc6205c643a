package entity

import "fmt"

// Label is one of the ten move tokens: columns '1'..'5' shove down, rows 'A'..'E' shove right.
type Label byte

var canonicalLabels = [...]Label{'1', '2', '3', '4', '5', 'A', 'B', 'C', 'D', 'E'}

// InvalidMoveError is returned for anything that is not one of the ten labels.
type InvalidMoveError struct {
	Label string
}

func (that *InvalidMoveError) Error() string {
	return fmt.Sprintf("invalid move label %q", that.Label)
}

// Labels - returns all labels in canonical order: the five columns, then the five rows.
func Labels() []Label {
	labels := make([]Label, len(canonicalLabels))
	copy(labels, canonicalLabels[:])

	return labels
}

// ParseLabel - parses a single-character move token.
func ParseLabel(value string) (Label, error) {
	if len(value) != 1 {
		return 0, &InvalidMoveError{Label: value}
	}

	label := Label(value[0])
	if !label.IsValid() {
		return 0, &InvalidMoveError{Label: value}
	}

	return label, nil
}

func (that Label) IsValid() bool {
	return that.IsColumn() || that.IsRow()
}

func (that Label) IsColumn() bool {
	return that >= '1' && that <= '5'
}

func (that Label) IsRow() bool {
	return that >= 'A' && that <= 'E'
}

// Index - returns the zero-based column or row the label shoves into, -1 for an invalid label.
func (that Label) Index() int {
	switch {
	case that.IsColumn():
		return int(that - '1')
	case that.IsRow():
		return int(that - 'A')
	default:
		return -1
	}
}

func (that Label) String() string {
	return string(rune(that))
}

func (that Label) MarshalText() ([]byte, error) {
	if !that.IsValid() {
		return nil, &InvalidMoveError{Label: that.String()}
	}

	return []byte{byte(that)}, nil
}

func (that *Label) UnmarshalText(text []byte) error {
	label, err := ParseLabel(string(text))
	if err != nil {
		return err
	}

	*that = label

	return nil
}
