package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

func EngagementRoutes(app *fiber.App, likes *controllers.LikeController, comments *controllers.CommentController, protect fiber.Handler) {
	app.Post("/api/v1/likes/toggle", protect, likes.ToggleLike)

	comment := app.Group("/api/v1/comments", protect)
	comment.Post("/", comments.CreateComment)
	comment.Put("/:id", comments.UpdateComment)
	comment.Delete("/:id", comments.DeleteComment)
}
