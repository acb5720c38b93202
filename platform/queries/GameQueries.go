package queries

import (
	"github.com/go-pg/pg/v10"

	"github.com/tycoon-games/tycoon-backend/app/models"
)

// Lobby persistence: who registered, which rooms exist, who sits where.
// Nothing here touches live game state; that belongs to the room
// goroutine.

func GetGame(id string, db *pg.DB) (*models.Game, error) {
	game := &models.Game{Id: id}
	if err := db.Model(game).WherePK().Select(); err != nil {
		return nil, err
	}
	return game, nil
}

func GetUserData(userID string, db *pg.DB) (*models.User, error) {
	user := new(models.User)
	err := db.Model(user).Where("id = ?", userID).Select()
	if err != nil {
		return nil, err
	}
	return user, nil
}

func CreatePlayer(player models.Player, db *pg.DB) error {
	_, err := db.Model(&player).Insert()
	return err
}

func DeletePlayer(userID string, gameID string, db *pg.DB) error {
	player := new(models.Player)
	_, err := db.Model(player).Where("user_id = ? and game_id = ?", userID, gameID).Delete()
	return err
}

// Roster returns the seated players of a game in join order.
func Roster(gameID string, db *pg.DB) ([]models.Player, error) {
	var players []models.Player
	err := db.Model(&players).Where("game_id = ?", gameID).Order("seat ASC").Select()
	return players, err
}

func SetGameStatus(gameID string, status string, db *pg.DB) error {
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().Set("status = ?", status).Update()
	return err
}

// RecordResult closes the books on a finished game.
func RecordResult(gameID string, winner string, db *pg.DB) error {
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().
		Set("status = ?", models.GameFinished).
		Set("winner = ?", winner).
		Update()
	return err
}

// CleanupGame removes the roster rows and the game itself (abandoned
// rooms).
func CleanupGame(gameID string, db *pg.DB) error {
	player := new(models.Player)
	if _, err := db.Model(player).Where("game_id = ?", gameID).Delete(); err != nil {
		return err
	}
	game := &models.Game{Id: gameID}
	_, err := db.Model(game).WherePK().Delete()
	return err
}
