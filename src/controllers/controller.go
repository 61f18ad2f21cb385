// Package controllers holds the HTTP handlers. Controllers parse and validate
// input, call one service, and translate the error taxonomy to a status code;
// no storage detail leaks past this boundary.
package controllers

import (
	"encoding/base64"
	"errors"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

var validate = validator.New()

func respondError(c *fiber.Ctx, log *zap.SugaredLogger, err error) error {
	var apiErr *lib.APIError
	if errors.As(err, &apiErr) {
		return c.Status(apiErr.Status).JSON(lib.MessageResponse(apiErr.Message))
	}

	log.Errorw("unhandled error", "path", c.Path(), "error", err)
	return c.Status(fiber.StatusInternalServerError).JSON(lib.MessageResponse("internal server error"))
}

func validationError(err error) *lib.APIError {
	var fieldErrs validator.ValidationErrors
	if errors.As(err, &fieldErrs) && len(fieldErrs) > 0 {
		field := strings.ToLower(fieldErrs[0].Field())
		switch fieldErrs[0].Tag() {
		case "required":
			return lib.Validation(field + " is required")
		case "min":
			return lib.Validation(field + " is too short")
		case "email":
			return lib.Validation(field + " must be a valid email")
		}
		return lib.Validation(field + " is invalid")
	}
	return lib.Validation("invalid request body")
}

func currentUser(c *fiber.Ctx) models.User {
	return c.Locals("user").(models.User)
}

// viewerID returns the authenticated user id, or nil on anonymous requests
// that went through the optional-auth middleware.
func viewerID(c *fiber.Ctx) *primitive.ObjectID {
	user, ok := c.Locals("user").(models.User)
	if !ok {
		return nil
	}
	return &user.Id
}

func objectIDParam(c *fiber.Ctx, name string) (primitive.ObjectID, error) {
	id, err := primitive.ObjectIDFromHex(c.Params(name))
	if err != nil {
		return primitive.NilObjectID, lib.Validation("invalid " + name + " format")
	}
	return id, nil
}

func pageParams(c *fiber.Ctx) (int, int) {
	page, _ := strconv.Atoi(c.Query("page", "1"))
	limit, _ := strconv.Atoi(c.Query("limit", "10"))
	return page, limit
}

// mediaItem is the wire form of an attached file: base64 payload plus metadata.
type mediaItem struct {
	Kind     string `json:"kind"`
	FileName string `json:"fileName"`
	Data     string `json:"data"`
}

func decodeMedia(items []mediaItem) ([]services.MediaUpload, error) {
	uploads := make([]services.MediaUpload, 0, len(items))
	for _, item := range items {
		payload := item.Data
		// tolerate data-URI payloads from browser clients
		if idx := strings.Index(payload, ";base64,"); idx >= 0 {
			payload = payload[idx+len(";base64,"):]
		}

		data, err := base64.StdEncoding.DecodeString(payload)
		if err != nil {
			return nil, lib.Validation("media data must be base64 encoded")
		}
		uploads = append(uploads, services.MediaUpload{
			Kind:     models.MediaKind(item.Kind),
			FileName: item.FileName,
			Data:     data,
		})
	}
	return uploads, nil
}
