package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type NotificationController struct {
	notifications *services.NotificationService
	log           *zap.SugaredLogger
}

func NewNotificationController(notifications *services.NotificationService, log *zap.SugaredLogger) *NotificationController {
	return &NotificationController{notifications: notifications, log: log}
}

// GetNotifications lists the caller's notifications newest-first
func (ctrl *NotificationController) GetNotifications(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	notifications, hasMore, err := ctrl.notifications.List(c.Context(), currentUser(c).Id, page, limit)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(notifications, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}

// MarkNotificationRead marks one of the caller's notifications as read
func (ctrl *NotificationController) MarkNotificationRead(c *fiber.Ctx) error {
	notificationID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	if err := ctrl.notifications.MarkRead(c.Context(), notificationID, currentUser(c).Id); err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "notification marked as read"})
}

// DeleteNotification removes one of the caller's notifications
func (ctrl *NotificationController) DeleteNotification(c *fiber.Ctx) error {
	notificationID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	if err := ctrl.notifications.Delete(c.Context(), notificationID, currentUser(c).Id); err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "notification deleted"})
}
