package middleware

import (
	"strings"

	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

// ProtectRoute rejects requests without a valid bearer token and attaches the
// authenticated user to the request context.
func ProtectRoute(users repository.UserRepository, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		user, ok := resolveUser(c, users, jwtSecret)
		if !ok {
			return c.Status(fiber.StatusUnauthorized).JSON(lib.MessageResponse("unauthorized"))
		}
		c.Locals("user", user)
		return c.Next()
	}
}

// IdentifyUser is the optional variant for viewer-aware public routes like
// the feed: a valid token attaches the user, anything else stays anonymous.
func IdentifyUser(users repository.UserRepository, jwtSecret string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		if user, ok := resolveUser(c, users, jwtSecret); ok {
			c.Locals("user", user)
		}
		return c.Next()
	}
}

func resolveUser(c *fiber.Ctx, users repository.UserRepository, jwtSecret string) (models.User, bool) {
	authHeader := c.Get("Authorization")
	const prefix = "Bearer "
	if !strings.HasPrefix(authHeader, prefix) {
		return models.User{}, false
	}

	userID, err := lib.VerifyJWT(authHeader[len(prefix):], jwtSecret)
	if err != nil {
		return models.User{}, false
	}

	objectID, err := primitive.ObjectIDFromHex(userID)
	if err != nil {
		return models.User{}, false
	}

	user, err := users.FindByID(c.Context(), objectID)
	if err != nil || user == nil {
		return models.User{}, false
	}

	user.Password = ""
	return *user, true
}
