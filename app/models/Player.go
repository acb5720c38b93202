package models

// Player is the roster row binding a user to a game.
type Player struct {
	User_id  string
	Game_id  string
	Username string
	Seat     int
}
