package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

// PostRoutes sets up the post, feed and post-comment listing routes.
// The feed uses the optional-auth middleware so anonymous clients get the
// public view and authenticated clients get the personalized one.
func PostRoutes(app *fiber.App, posts *controllers.PostController, comments *controllers.CommentController, protect, identify fiber.Handler) {
	app.Get("/api/v1/feed", identify, posts.GetFeed)

	post := app.Group("/api/v1/posts")
	post.Post("/", protect, posts.CreatePost)
	post.Get("/:id", identify, posts.GetPostByID)
	post.Put("/:id", protect, posts.UpdatePost)
	post.Delete("/:id", protect, posts.DeletePost)
	post.Get("/:id/comments", identify, comments.GetPostComments)
}
