package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type UserController struct {
	users repository.UserRepository
	feed  *services.FeedService
	posts *services.PostService
	log   *zap.SugaredLogger
}

func NewUserController(
	users repository.UserRepository,
	feed *services.FeedService,
	posts *services.PostService,
	log *zap.SugaredLogger,
) *UserController {
	return &UserController{users: users, feed: feed, posts: posts, log: log}
}

// GetPublicProfile returns a user's public profile by username
func (ctrl *UserController) GetPublicProfile(c *fiber.Ctx) error {
	username := c.Params("username")
	if username == "" {
		return respondError(c, ctrl.log, lib.Validation("username is required"))
	}

	user, err := ctrl.users.FindByUsername(c.Context(), username)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	if user == nil {
		return respondError(c, ctrl.log, lib.NotFound("user not found"))
	}

	user.Password = ""
	return c.JSON(lib.DataResponse(user))
}

// UpdateProfile updates the caller's profile with allow-listed fields only
func (ctrl *UserController) UpdateProfile(c *fiber.Ctx) error {
	var update models.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}

	user, err := ctrl.users.UpdateProfile(c.Context(), currentUser(c).Id, update)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	if user == nil {
		return respondError(c, ctrl.log, lib.NotFound("user not found"))
	}

	user.Password = ""
	return c.JSON(lib.DataResponse(user))
}

// GetUserPosts lists a user's posts with feed enrichment but no
// self-exclusion; isLiked is relative to whoever is asking
func (ctrl *UserController) GetUserPosts(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	page, limit := pageParams(c)
	posts, hasMore, err := ctrl.feed.UserPosts(c.Context(), userID, viewerID(c), page, limit)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(posts, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}

// GetUserComments lists a user's comments with the same enrichment shape
func (ctrl *UserController) GetUserComments(c *fiber.Ctx) error {
	userID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	page, limit := pageParams(c)
	comments, hasMore, err := ctrl.posts.CommentsByUser(c.Context(), userID, viewerID(c), page, limit)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(comments, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}
