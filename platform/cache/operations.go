package cache

import (
	"fmt"

	"github.com/gomodule/redigo/redis"
)

// Lobby bookkeeping lives in Redis: which users sit in which room, and
// whether a room has gone live. Live game state itself is owned by the
// room goroutine and never touches Redis.

func roomKey(gameID string) string {
	return fmt.Sprintf("room.%s.seats", gameID)
}

func userKey(userID string) string {
	return fmt.Sprintf("user.%s.room", userID)
}

func liveKey(gameID string) string {
	return fmt.Sprintf("room.%s.live", gameID)
}

// ReserveSeat adds the user to the room's seat list. Returns the seat
// count after joining.
func ReserveSeat(gameID, userID string, conn redis.Conn) (int, error) {
	if _, err := conn.Do("SADD", roomKey(gameID), userID); err != nil {
		return 0, err
	}
	if _, err := conn.Do("SET", userKey(userID), gameID); err != nil {
		return 0, err
	}
	return redis.Int(conn.Do("SCARD", roomKey(gameID)))
}

// ReleaseSeat removes the user from the room's seat list.
func ReleaseSeat(gameID, userID string, conn redis.Conn) (int, error) {
	if _, err := conn.Do("SREM", roomKey(gameID), userID); err != nil {
		return 0, err
	}
	if _, err := conn.Do("DEL", userKey(userID)); err != nil {
		return 0, err
	}
	return redis.Int(conn.Do("SCARD", roomKey(gameID)))
}

// RoomMembers lists the user ids currently seated in the room.
func RoomMembers(gameID string, conn redis.Conn) ([]string, error) {
	return redis.Strings(conn.Do("SMEMBERS", roomKey(gameID)))
}

// SeatCount returns how many users are seated in the room.
func SeatCount(gameID string, conn redis.Conn) (int, error) {
	return redis.Int(conn.Do("SCARD", roomKey(gameID)))
}

// UserRoom resolves which room a user is seated in, "" if none.
func UserRoom(userID string, conn redis.Conn) (string, error) {
	res, err := redis.String(conn.Do("GET", userKey(userID)))
	if err == redis.ErrNil {
		return "", nil
	}
	return res, err
}

// MarkLive flags a room as in progress so the lobby stops listing it.
func MarkLive(gameID string, conn redis.Conn) error {
	_, err := conn.Do("SET", liveKey(gameID), "1")
	return err
}

// IsLive reports whether the room's game has started.
func IsLive(gameID string, conn redis.Conn) (bool, error) {
	res, err := redis.Int(conn.Do("EXISTS", liveKey(gameID)))
	return res == 1, err
}

// Cleanup drops every key the room ever wrote.
func Cleanup(gameID string, conn redis.Conn) error {
	members, err := RoomMembers(gameID, conn)
	if err != nil {
		return err
	}
	for _, userID := range members {
		if _, err := conn.Do("DEL", userKey(userID)); err != nil {
			return err
		}
	}
	if _, err := conn.Do("DEL", roomKey(gameID), liveKey(gameID)); err != nil {
		return err
	}
	return nil
}
