package routes

import (
	"github.com/gofiber/fiber/v2"

	"github.com/mednest/Backend-Med-Nest/src/controllers"
)

func NotificationRoutes(app *fiber.App, ctrl *controllers.NotificationController, protect fiber.Handler) {
	notification := app.Group("/api/v1/notifications", protect)

	notification.Get("/", ctrl.GetNotifications)
	notification.Put("/:id/read", ctrl.MarkNotificationRead)
	notification.Delete("/:id", ctrl.DeleteNotification)
}
