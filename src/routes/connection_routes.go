package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

// ConnectionRoutes sets up connection-related routes for sending, accepting
// and rejecting requests, listing the caller's network and pending requests,
// checking status and discovering new practitioners
func ConnectionRoutes(app *fiber.App, ctrl *controllers.ConnectionController, protect fiber.Handler) {
	connection := app.Group("/api/v1/connections", protect)

	connection.Post("/", ctrl.SendConnectionRequest)
	connection.Put("/:id/accept", ctrl.AcceptConnectionRequest)
	connection.Delete("/:id", ctrl.RejectConnectionRequest)
	connection.Get("/pending", ctrl.GetPendingRequests)
	connection.Get("/mine", ctrl.GetMyNetwork)
	connection.Get("/status/:userId", ctrl.GetConnectionStatus)
	connection.Get("/candidates", ctrl.GetCandidates)
}
