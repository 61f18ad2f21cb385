package controllers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"golang.org/x/crypto/bcrypt"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/models"
	"github.com/mednest/Backend-Med-Nest/src/repository"
)

type AuthController struct {
	users     repository.UserRepository
	jwtSecret string
	log       *zap.SugaredLogger
}

func NewAuthController(users repository.UserRepository, jwtSecret string, log *zap.SugaredLogger) *AuthController {
	return &AuthController{users: users, jwtSecret: jwtSecret, log: log}
}

// Signup registers a practitioner account and returns a token
func (ctrl *AuthController) Signup(c *fiber.Ctx) error {
	var req struct {
		Name        string `json:"name" validate:"required"`
		Username    string `json:"username" validate:"required"`
		Email       string `json:"email" validate:"required,email"`
		Password    string `json:"password" validate:"required,min=6"`
		Specialty   string `json:"specialty"`
		Institution string `json:"institution"`
		Location    string `json:"location"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), 11)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	user := models.User{
		Name:        req.Name,
		Username:    req.Username,
		Email:       req.Email,
		Password:    string(hashedPassword),
		Specialty:   req.Specialty,
		Institution: req.Institution,
		Location:    req.Location,
	}

	if err := ctrl.users.Create(c.Context(), &user); err != nil {
		if errors.Is(err, repository.ErrDuplicateKey) {
			return respondError(c, ctrl.log, lib.Conflict("username or email already exists"))
		}
		return respondError(c, ctrl.log, err)
	}

	token, err := lib.GenerateJWT(user.Id.Hex(), ctrl.jwtSecret)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse(fiber.Map{
		"token": token,
		"user":  user.ToDto(),
	}))
}

// Login authenticates by username and password and returns a token
func (ctrl *AuthController) Login(c *fiber.Ctx) error {
	var req struct {
		Username string `json:"username" validate:"required"`
		Password string `json:"password" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	user, err := ctrl.users.FindByUsername(c.Context(), req.Username)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	if user == nil {
		return respondError(c, ctrl.log, lib.Unauthenticated("invalid credentials"))
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)) != nil {
		return respondError(c, ctrl.log, lib.Unauthenticated("invalid credentials"))
	}

	token, err := lib.GenerateJWT(user.Id.Hex(), ctrl.jwtSecret)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	return c.JSON(lib.DataResponse(fiber.Map{
		"token": token,
		"user":  user.ToDto(),
	}))
}

// Me returns the authenticated user's own account
func (ctrl *AuthController) Me(c *fiber.Ctx) error {
	user := currentUser(c)
	return c.JSON(lib.DataResponse(user))
}
