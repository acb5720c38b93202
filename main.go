package main

import (
	"os"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
	jwtware "github.com/gofiber/jwt/v2"

	"github.com/tycoon-games/tycoon-backend/app/controllers"
	"github.com/tycoon-games/tycoon-backend/pkg/routes"
	"github.com/tycoon-games/tycoon-backend/platform/logging"
	socket "github.com/tycoon-games/tycoon-backend/platform/sockets"
)

func main() {
	logging.Init()

	app := fiber.New()

	app.Use(cors.New())
	routes.AuthRoutes(app)
	routes.GameRoutes(app)

	app.Use(jwtware.New(jwtware.Config{
		SigningKey: []byte("secret"),
	}))

	app.Get("/user/cur", controllers.Cur)

	go socket.CreateSocketIOServer()

	addr := os.Getenv("API_ADDR")
	if addr == "" {
		addr = ":4101"
	}
	logging.Info("api listening on ", addr)
	app.Listen(addr)
}
