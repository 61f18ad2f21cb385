package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

func AuthRoutes(app *fiber.App, ctrl *controllers.AuthController, protect fiber.Handler) {
	auth := app.Group("/api/v1/auth")

	auth.Post("/signup", ctrl.Signup)
	auth.Post("/login", ctrl.Login)
	auth.Get("/me", protect, ctrl.Me)
}
