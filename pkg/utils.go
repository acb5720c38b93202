package pkg

import (
	"math/rand"
	"time"
)

var codeRunes = []rune("ABCDEFGHJKLMNPQRSTUVWXYZ23456789")

func init() {
	rand.Seed(time.Now().UnixNano())
}

// RandString generates a join code of the given length. Ambiguous
// characters (0/O, 1/I) are left out of the alphabet.
func RandString(n int) string {
	b := make([]rune, n)
	for i := range b {
		b[i] = codeRunes[rand.Intn(len(codeRunes))]
	}
	return string(b)
}
