package socket

import (
	"sync"

	socketio "github.com/googollee/go-socket.io"

	"github.com/tycoon-games/tycoon-backend/platform/game"
)

// registry maps live rooms and connected users. It only guards lookup
// tables; game state is guarded by each room's own goroutine.
type registry struct {
	mu    sync.Mutex
	rooms map[string]*game.Room
	conns map[string]socketio.Conn // user id -> socket
}

func newRegistry() *registry {
	return &registry{
		rooms: make(map[string]*game.Room),
		conns: make(map[string]socketio.Conn),
	}
}

func (r *registry) room(gameID string) *game.Room {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.rooms[gameID]
}

func (r *registry) addRoom(room *game.Room) bool {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, exists := r.rooms[room.ID]; exists {
		return false
	}
	r.rooms[room.ID] = room
	return true
}

func (r *registry) removeRoom(gameID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.rooms, gameID)
}

func (r *registry) bind(userID string, conn socketio.Conn) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.conns[userID] = conn
}

func (r *registry) unbind(userID string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.conns, userID)
}

func (r *registry) conn(userID string) (socketio.Conn, bool) {
	r.mu.Lock()
	defer r.mu.Unlock()
	c, ok := r.conns[userID]
	return c, ok
}
