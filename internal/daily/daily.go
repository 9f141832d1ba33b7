// internal/daily/daily.go
//
// Seed of the day: every player who starts the daily game on the same UTC
// date gets the same seed, and therefore the same event sequence.

package daily

import (
	"crypto/hmac"
	"crypto/sha256"
	"time"

	"github.com/robalobadob/liferoguelite/internal/game"
)

// DateKey returns YYYY-MM-DD in UTC.
func DateKey(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}

// Seed derives the seed for a date from HMAC(salt, YYYY-MM-DD). Each of the
// first SeedLength bytes of the MAC picks one character of the seed alphabet.
func Seed(date time.Time, salt string) string {
	h := hmac.New(sha256.New, []byte(salt))
	h.Write([]byte(DateKey(date)))
	sum := h.Sum(nil)

	out := make([]byte, game.SeedLength)
	for i := range out {
		out[i] = game.SeedAlphabet[int(sum[i])%len(game.SeedAlphabet)]
	}
	return string(out)
}
