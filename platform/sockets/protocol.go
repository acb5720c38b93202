package socket

import (
	"encoding/json"
	"errors"
	"fmt"

	jwt "github.com/form3tech-oss/jwt-go"
)

// The wire boundary: every inbound payload is size-checked and decoded
// into a closed struct before any engine sees it. Anything malformed
// dies here.

const MaxMessageSize = 4096

var errOversized = errors.New("message too large")

func decode(jsonStr string, v interface{}) error {
	if len(jsonStr) > MaxMessageSize {
		return errOversized
	}
	if err := json.Unmarshal([]byte(jsonStr), v); err != nil {
		return fmt.Errorf("malformed message: %w", err)
	}
	return nil
}

// baseMsg carries what every command needs: the room and a sender-side
// monotonic timestamp. Replays and reordered frames are dropped by the
// timestamp check in the session.
type baseMsg struct {
	GameID string `json:"game_id"`
	Ts     int64  `json:"ts"`
}

type joinMsg struct {
	baseMsg
	Token string `json:"token"`
}

type bidMsg struct {
	baseMsg
	Amount int `json:"amount"`
}

type buildMsg struct {
	baseMsg
	Pos   int  `json:"pos"`
	Hotel bool `json:"hotel"`
}

type posMsg struct {
	baseMsg
	Pos int `json:"pos"`
}

type tradeMsg struct {
	baseMsg
	Receiver string        `json:"receiver"`
	Offer    tradeOfferMsg `json:"offer"`
	Ask      tradeOfferMsg `json:"ask"`
}

type tradeOfferMsg struct {
	Cash       int   `json:"cash"`
	Properties []int `json:"properties"`
	JailCards  int   `json:"jail_cards"`
}

// session is the per-connection context: who this socket is, which
// room it sits in, and the last accepted timestamp.
type session struct {
	UserID   string
	Username string
	GameID   string
	lastTs   int64
}

func (s *session) checkTs(ts int64) error {
	if ts <= 0 || ts <= s.lastTs {
		return errors.New("stale or missing timestamp")
	}
	s.lastTs = ts
	return nil
}

// jwtSecret matches the signing key the auth controller mints with.
var jwtSecret = []byte("secret")

// VerifyToken extracts the authenticated user id from an access token.
func VerifyToken(tokenStr string) (string, error) {
	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return jwtSecret, nil
	})
	if err != nil {
		return "", err
	}
	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok || !token.Valid {
		return "", errors.New("invalid token")
	}
	userID, ok := claims["user_id"].(string)
	if !ok || userID == "" {
		return "", errors.New("token carries no user id")
	}
	return userID, nil
}
