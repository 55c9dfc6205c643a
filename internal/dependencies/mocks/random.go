package mocks

import (
	"github.com/rocketscienceinc/slide-backend/internal/dependencies/random"
)

// MockRandom returns queued values instead of random ones.
type MockRandom struct {
	IntnResults []int
	intnIndex   int

	StringResults []string
	stringIndex   int

	// IntnCalls records the n passed to every Intn call.
	IntnCalls []int
}

var _ random.Random = (*MockRandom)(nil)

func NewMockRandom() *MockRandom {
	return &MockRandom{}
}

// Intn returns the next queued result, or 0 if none remaining.
func (that *MockRandom) Intn(n int) int {
	that.IntnCalls = append(that.IntnCalls, n)

	if that.intnIndex >= len(that.IntnResults) {
		return 0
	}

	result := that.IntnResults[that.intnIndex]
	that.intnIndex++

	return result
}

// String returns the next queued result, or empty string if none remaining.
func (that *MockRandom) String(_ int, _ string) string {
	if that.stringIndex >= len(that.StringResults) {
		return ""
	}

	result := that.StringResults[that.stringIndex]
	that.stringIndex++

	return result
}

func (that *MockRandom) QueueIntn(values ...int) {
	that.IntnResults = append(that.IntnResults, values...)
}

func (that *MockRandom) QueueString(values ...string) {
	that.StringResults = append(that.StringResults, values...)
}

func (that *MockRandom) Reset() {
	that.IntnResults = nil
	that.intnIndex = 0
	that.StringResults = nil
	that.stringIndex = 0
	that.IntnCalls = nil
}
