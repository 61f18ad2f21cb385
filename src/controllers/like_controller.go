package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type LikeController struct {
	likes *services.LikeService
	log   *zap.SugaredLogger
}

func NewLikeController(likes *services.LikeService, log *zap.SugaredLogger) *LikeController {
	return &LikeController{likes: likes, log: log}
}

// ToggleLike likes or unlikes a post or comment for the authenticated user
func (ctrl *LikeController) ToggleLike(c *fiber.Ctx) error {
	var req struct {
		TargetID   string `json:"targetId" validate:"required"`
		TargetKind string `json:"targetKind" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	targetID, err := primitive.ObjectIDFromHex(req.TargetID)
	if err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid targetId format"))
	}

	liked, count, err := ctrl.likes.Toggle(c.Context(), currentUser(c).Id, targetID, models.TargetKind(req.TargetKind))
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	return c.JSON(lib.DataResponse(fiber.Map{
		"liked":      liked,
		"likesCount": count,
	}))
}
