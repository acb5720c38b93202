package models

// Game is the lobby row for a room. Status moves open -> in progress ->
// finished; Winner is filled in when the room reports a result.
type Game struct {
	Id       string
	Name     string
	Status   string
	Capacity int
	Winner   string
}

const (
	GameOpen       = "open"
	GameInProgress = "in progress"
	GameFinished   = "finished"
)

type GameCreateDto struct {
	Name     string
	Capacity int
}

type VerifyGameDto struct {
	Code    string
	User_id string
}
