package random

import (
	"crypto/rand"
	"math/big"
	mathrand "math/rand"
	"sync"
)

// Random provides random number generation that can be mocked for testing.
type Random interface {
	// Intn returns a random int in [0, n)
	Intn(n int) int

	// String generates a random string of the given length from the given alphabet
	String(length int, alphabet string) string
}

// CryptoRandom implements Random using crypto/rand.
type CryptoRandom struct{}

func New() *CryptoRandom {
	return &CryptoRandom{}
}

func (that *CryptoRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		return 0
	}

	return int(result.Int64())
}

func (that *CryptoRandom) String(length int, alphabet string) string {
	return randomString(that, length, alphabet)
}

// SeededRandom is a reproducible source; the same seed yields the same sequence.
type SeededRandom struct {
	mu  sync.Mutex
	rnd *mathrand.Rand
}

func NewSeeded(seed int64) *SeededRandom {
	return &SeededRandom{
		rnd: mathrand.New(mathrand.NewSource(seed)), //nolint: gosec // reproducible games, not secrets
	}
}

func (that *SeededRandom) Intn(n int) int {
	if n <= 0 {
		return 0
	}

	that.mu.Lock()
	defer that.mu.Unlock()

	return that.rnd.Intn(n)
}

func (that *SeededRandom) String(length int, alphabet string) string {
	return randomString(that, length, alphabet)
}

func randomString(rnd Random, length int, alphabet string) string {
	if length <= 0 || len(alphabet) == 0 {
		return ""
	}

	result := make([]byte, length)
	for i := range result {
		result[i] = alphabet[rnd.Intn(len(alphabet))]
	}

	return string(result)
}
