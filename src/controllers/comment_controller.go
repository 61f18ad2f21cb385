package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type CommentController struct {
	posts *services.PostService
	log   *zap.SugaredLogger
}

func NewCommentController(posts *services.PostService, log *zap.SugaredLogger) *CommentController {
	return &CommentController{posts: posts, log: log}
}

// CreateComment adds a comment to a post
func (ctrl *CommentController) CreateComment(c *fiber.Ctx) error {
	var req struct {
		PostID  string `json:"postId" validate:"required"`
		Content string `json:"content" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	postID, err := primitive.ObjectIDFromHex(req.PostID)
	if err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid postId format"))
	}

	comment, err := ctrl.posts.AddComment(c.Context(), currentUser(c), postID, req.Content)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse(comment))
}

// UpdateComment edits a comment owned by the authenticated user
func (ctrl *CommentController) UpdateComment(c *fiber.Ctx) error {
	commentID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	var req struct {
		Content string `json:"content" validate:"required"`
	}
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	comment, err := ctrl.posts.UpdateComment(c.Context(), commentID, currentUser(c).Id, req.Content)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(comment))
}

// DeleteComment removes a comment owned by the authenticated user
func (ctrl *CommentController) DeleteComment(c *fiber.Ctx) error {
	commentID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	deleted, err := ctrl.posts.DeleteComment(c.Context(), commentID, currentUser(c).Id)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	if !deleted {
		return respondError(c, ctrl.log, lib.NotFoundOrNotAuthorized())
	}
	return c.JSON(fiber.Map{"success": true, "message": "comment deleted successfully"})
}

// GetPostComments lists a post's comments newest-first
func (ctrl *CommentController) GetPostComments(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	page, limit := pageParams(c)
	comments, hasMore, err := ctrl.posts.CommentsForPost(c.Context(), postID, viewerID(c), page, limit)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(comments, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}
