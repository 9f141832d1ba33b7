package game

import (
	"math/rand/v2"
	"strings"
)

// SeedAlphabet is the character set of generated seeds.
const SeedAlphabet = "0123456789ABCDEFGHIJKLMNOPQRSTUVWXYZ"

// SeedLength is the length of generated seeds.
const SeedLength = 8

// Roller is the slice of *rand.Rand the event deck draws from.
type Roller interface {
	IntN(n int) int
}

// NewRNG builds the deterministic stream for a seed string. The seed's bytes
// are right-padded with zeros (or truncated) to the 32-byte ChaCha8 key, so
// identical seed strings always yield identical streams.
func NewRNG(seed string) *rand.Rand {
	var key [32]byte
	copy(key[:], seed)
	// Non-cryptographic use: reproducible event draws shared across players.
	// #nosec G404
	return rand.New(rand.NewChaCha8(key))
}

// GenerateSeed returns a fresh SeedLength seed from a non-deterministic source.
func GenerateSeed() string {
	var b strings.Builder
	b.Grow(SeedLength)
	for range SeedLength {
		b.WriteByte(SeedAlphabet[rand.IntN(len(SeedAlphabet))])
	}
	return b.String()
}
