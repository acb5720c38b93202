package pkg

import (
	"strings"
	"testing"
)

func TestRandStringLength(t *testing.T) {
	for _, n := range []int{1, 8, 20} {
		if got := len(RandString(n)); got != n {
			t.Fatalf("len = %d, want %d", got, n)
		}
	}
}

func TestRandStringAlphabet(t *testing.T) {
	for i := 0; i < 50; i++ {
		code := RandString(8)
		for _, r := range code {
			if !strings.ContainsRune(string(codeRunes), r) {
				t.Fatalf("code %q contains %q outside the alphabet", code, r)
			}
		}
		if strings.ContainsAny(code, "0O1I") {
			t.Fatalf("code %q contains an ambiguous character", code)
		}
	}
}
