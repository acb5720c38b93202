package socket

import (
	"strings"
	"testing"

	jwt "github.com/form3tech-oss/jwt-go"
)

func TestDecodeValidMessage(t *testing.T) {
	var msg bidMsg
	if err := decode(`{"game_id":"abc","ts":5,"amount":120}`, &msg); err != nil {
		t.Fatalf("decode: %v", err)
	}
	if msg.GameID != "abc" || msg.Ts != 5 || msg.Amount != 120 {
		t.Fatalf("decoded %+v", msg)
	}
}

func TestDecodeRejectsMalformed(t *testing.T) {
	var msg baseMsg
	for _, raw := range []string{"", "{", `"just a string"`, `{"ts":"NaN"}`} {
		if err := decode(raw, &msg); err == nil {
			t.Fatalf("decode accepted %q", raw)
		}
	}
}

func TestDecodeRejectsOversized(t *testing.T) {
	var msg baseMsg
	raw := `{"game_id":"` + strings.Repeat("x", MaxMessageSize) + `"}`
	if err := decode(raw, &msg); err != errOversized {
		t.Fatalf("oversized frame got through: %v", err)
	}
}

func TestSessionTimestampMonotonic(t *testing.T) {
	s := &session{}
	if err := s.checkTs(10); err != nil {
		t.Fatalf("first timestamp rejected: %v", err)
	}
	if err := s.checkTs(10); err == nil {
		t.Fatal("replayed timestamp accepted")
	}
	if err := s.checkTs(7); err == nil {
		t.Fatal("reordered timestamp accepted")
	}
	if err := s.checkTs(11); err != nil {
		t.Fatalf("advancing timestamp rejected: %v", err)
	}
	if err := s.checkTs(0); err == nil {
		t.Fatal("zero timestamp accepted")
	}
}

func signToken(t *testing.T, secret []byte, claims jwt.MapClaims) string {
	t.Helper()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(secret)
	if err != nil {
		t.Fatalf("sign: %v", err)
	}
	return signed
}

func TestVerifyToken(t *testing.T) {
	raw := signToken(t, jwtSecret, jwt.MapClaims{"user_id": "u-42"})
	userID, err := VerifyToken(raw)
	if err != nil {
		t.Fatalf("verify: %v", err)
	}
	if userID != "u-42" {
		t.Fatalf("user id = %q, want u-42", userID)
	}
}

func TestVerifyTokenWrongSecret(t *testing.T) {
	raw := signToken(t, []byte("not-the-secret"), jwt.MapClaims{"user_id": "u-42"})
	if _, err := VerifyToken(raw); err == nil {
		t.Fatal("forged token accepted")
	}
}

func TestVerifyTokenMissingClaim(t *testing.T) {
	raw := signToken(t, jwtSecret, jwt.MapClaims{"sub": "u-42"})
	if _, err := VerifyToken(raw); err == nil {
		t.Fatal("token without user id accepted")
	}
}

func TestVerifyTokenGarbage(t *testing.T) {
	if _, err := VerifyToken("not.a.token"); err == nil {
		t.Fatal("garbage token accepted")
	}
}
