package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type PostController struct {
	posts *services.PostService
	feed  *services.FeedService
	log   *zap.SugaredLogger
}

func NewPostController(posts *services.PostService, feed *services.FeedService, log *zap.SugaredLogger) *PostController {
	return &PostController{posts: posts, feed: feed, log: log}
}

type postRequest struct {
	Description string      `json:"description" validate:"required"`
	Media       []mediaItem `json:"media"`
}

// CreatePost stores a new post for the authenticated user. Media files are
// uploaded to the image host; items that fail upload are skipped.
func (ctrl *PostController) CreatePost(c *fiber.Ctx) error {
	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	uploads, err := decodeMedia(req.Media)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	post, err := ctrl.posts.Create(c.Context(), currentUser(c), req.Description, uploads)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse(post))
}

// GetFeed returns the paginated feed; viewer-aware when authenticated
func (ctrl *PostController) GetFeed(c *fiber.Ctx) error {
	page, limit := pageParams(c)

	posts, hasMore, err := ctrl.feed.Feed(c.Context(), viewerID(c), page, limit)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(posts, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}

// GetPostByID returns a single post with engagement counts
func (ctrl *PostController) GetPostByID(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	post, err := ctrl.posts.Get(c.Context(), postID, viewerID(c))
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(post))
}

// UpdatePost edits a post owned by the authenticated user
func (ctrl *PostController) UpdatePost(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	var req postRequest
	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	uploads, err := decodeMedia(req.Media)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	post, err := ctrl.posts.Update(c.Context(), postID, currentUser(c).Id, req.Description, uploads)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(post))
}

// DeletePost removes a post and everything hanging off it
func (ctrl *PostController) DeletePost(c *fiber.Ctx) error {
	postID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	deleted, err := ctrl.posts.Delete(c.Context(), postID, currentUser(c).Id)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	if !deleted {
		return respondError(c, ctrl.log, lib.NotFoundOrNotAuthorized())
	}
	return c.JSON(fiber.Map{"success": true, "message": "post deleted successfully"})
}
