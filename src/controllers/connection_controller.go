package controllers

import (
	"github.com/gofiber/fiber/v2"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.uber.org/zap"

	"github.com/mednest/Backend-Med-Nest/src/lib"
	"github.com/mednest/Backend-Med-Nest/src/services"
)

type ConnectionController struct {
	connections *services.ConnectionService
	discovery   *services.DiscoveryService
	log         *zap.SugaredLogger
}

func NewConnectionController(
	connections *services.ConnectionService,
	discovery *services.DiscoveryService,
	log *zap.SugaredLogger,
) *ConnectionController {
	return &ConnectionController{connections: connections, discovery: discovery, log: log}
}

// SendConnectionRequest sends a connection request to another practitioner
func (ctrl *ConnectionController) SendConnectionRequest(c *fiber.Ctx) error {
	var req struct {
		RecipientID string `json:"recipientId" validate:"required"`
	}

	if err := c.BodyParser(&req); err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid request body"))
	}
	if err := validate.Struct(req); err != nil {
		return respondError(c, ctrl.log, validationError(err))
	}

	recipientID, err := primitive.ObjectIDFromHex(req.RecipientID)
	if err != nil {
		return respondError(c, ctrl.log, lib.Validation("invalid recipientId format"))
	}

	conn, err := ctrl.connections.SendRequest(c.Context(), currentUser(c).Id, recipientID)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.Status(fiber.StatusCreated).JSON(lib.DataResponse(conn))
}

// AcceptConnectionRequest accepts a pending request addressed to the caller
func (ctrl *ConnectionController) AcceptConnectionRequest(c *fiber.Ctx) error {
	requestID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	if err := ctrl.connections.AcceptRequest(c.Context(), requestID, currentUser(c).Id); err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "connection accepted"})
}

// RejectConnectionRequest deletes a pending request addressed to the caller
func (ctrl *ConnectionController) RejectConnectionRequest(c *fiber.Ctx) error {
	requestID, err := objectIDParam(c, "id")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	if err := ctrl.connections.RejectRequest(c.Context(), requestID, currentUser(c).Id); err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(fiber.Map{"success": true, "message": "connection request rejected"})
}

// GetPendingRequests lists requests awaiting the caller's decision
func (ctrl *ConnectionController) GetPendingRequests(c *fiber.Ctx) error {
	requests, err := ctrl.connections.Pending(c.Context(), currentUser(c).Id)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(requests))
}

// GetMyNetwork lists the caller's accepted connections
func (ctrl *ConnectionController) GetMyNetwork(c *fiber.Ctx) error {
	network, err := ctrl.connections.Network(c.Context(), currentUser(c).Id)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(network))
}

// GetConnectionStatus reports the relationship with another user
func (ctrl *ConnectionController) GetConnectionStatus(c *fiber.Ctx) error {
	otherID, err := objectIDParam(c, "userId")
	if err != nil {
		return respondError(c, ctrl.log, err)
	}

	status, err := ctrl.connections.StatusBetween(c.Context(), currentUser(c).Id, otherID)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.DataResponse(fiber.Map{"status": status}))
}

// GetCandidates returns the paginated discovery list of practitioners the
// caller is not connected to, optionally filtered by a search term
func (ctrl *ConnectionController) GetCandidates(c *fiber.Ctx) error {
	page, limit := pageParams(c)
	search := c.Query("search")

	candidates, hasMore, err := ctrl.discovery.Discover(c.Context(), currentUser(c).Id, page, limit, search)
	if err != nil {
		return respondError(c, ctrl.log, err)
	}
	return c.JSON(lib.PagedResponse(candidates, lib.Pagination{Page: page, Limit: limit, HasMore: hasMore}))
}
