package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

func UserRoutes(app *fiber.App, ctrl *controllers.UserController, protect, identify fiber.Handler) {
	user := app.Group("/api/v1/users")

	user.Get("/:id/posts", identify, ctrl.GetUserPosts)
	user.Get("/:id/comments", identify, ctrl.GetUserComments)
	user.Put("/profile", protect, ctrl.UpdateProfile)
	user.Get("/:username", ctrl.GetPublicProfile)
}
