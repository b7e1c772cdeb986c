package random

import (
	"crypto/rand"
	"math/big"
)

// Random is the source of randomness for shuffling and dealer selection
type Random interface {
	// Intn returns a uniformly distributed int in [0, n)
	Intn(n int) int
}

// CryptoRandom implements Random using crypto/rand so deals cannot be predicted
type CryptoRandom struct{}

// New creates a new CryptoRandom
func New() *CryptoRandom {
	return &CryptoRandom{}
}

// Intn returns a cryptographically random int in [0, n)
func (r *CryptoRandom) Intn(n int) int {
	if n <= 1 {
		return 0
	}
	result, err := rand.Int(rand.Reader, big.NewInt(int64(n)))
	if err != nil {
		// crypto/rand only fails if the OS entropy source is unavailable
		panic("random: crypto source failed: " + err.Error())
	}
	return int(result.Int64())
}
