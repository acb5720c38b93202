package controllers

import (
	"github.com/gofiber/fiber/v2"

	"github.com/tycoon-games/tycoon-backend/app/models"
	"github.com/tycoon-games/tycoon-backend/pkg"
	"github.com/tycoon-games/tycoon-backend/platform/cache"
	"github.com/tycoon-games/tycoon-backend/platform/database"
	"github.com/tycoon-games/tycoon-backend/platform/logging"
	"github.com/tycoon-games/tycoon-backend/platform/queries"
)

func CreateGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	gameCreateDto := new(models.GameCreateDto)
	if err := c.BodyParser(gameCreateDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}
	capacity := gameCreateDto.Capacity
	if capacity < 2 || capacity > 4 {
		capacity = 4
	}

	game := &models.Game{
		Id:       pkg.RandString(8),
		Name:     gameCreateDto.Name,
		Status:   models.GameOpen,
		Capacity: capacity,
	}

	if _, err := db.Model(game).Insert(); err != nil {
		logging.Error("create game: ", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(fiber.Map{"id": game.Id})
}

func GetAllAvailGames(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	err := db.Model(&games).Where("status = ?", models.GameOpen).Select()
	if err != nil {
		logging.Error("list games: ", err)
		return c.SendStatus(fiber.StatusInternalServerError)
	}

	return c.JSON(games)
}

// FindAvailGame picks one open game for quick matchmaking. The row
// status can lag a just-started room, so the Redis live flag is
// checked too.
func FindAvailGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	var games []models.Game
	err := db.Model(&games).Where("status = ?", models.GameOpen).Select()
	if err != nil || len(games) == 0 {
		return c.JSON(fiber.Map{"status": false})
	}

	conn, err := cache.CreateRedisConnection()
	if err != nil {
		logging.Error("find game: ", err)
		return c.JSON(fiber.Map{"status": true, "id": games[0].Id})
	}
	defer conn.Close()

	for _, game := range games {
		if live, _ := cache.IsLive(game.Id, conn); !live {
			return c.JSON(fiber.Map{"status": true, "id": game.Id})
		}
	}
	return c.JSON(fiber.Map{"status": false})
}

func VerifyGame(c *fiber.Ctx) error {
	db := database.PostgreSQLConnection()
	defer db.Close()

	verifyGameDto := new(models.VerifyGameDto)
	if err := c.QueryParser(verifyGameDto); err != nil {
		return c.SendStatus(fiber.StatusBadRequest)
	}

	game, err := queries.GetGame(verifyGameDto.Code, db)
	if err != nil {
		return c.JSON(fiber.Map{"status": false})
	}
	return c.JSON(fiber.Map{"status": game.Status == models.GameOpen})
}
