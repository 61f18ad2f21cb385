package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Connection is a directed request from Requester to Recipient. Acceptance is
// the only mutation; rejecting deletes the record, so there is no rejected state.
type Connection struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Requester primitive.ObjectID `json:"requester" bson:"requester"`
	Recipient primitive.ObjectID `json:"recipient" bson:"recipient"`
	Accepted  bool               `json:"accepted" bson:"accepted"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

// ConnectionStatus is always relative to a viewer: "pending" means the viewer
// sent the request, "received" means it is waiting on the viewer.
type ConnectionStatus string

const (
	ConnectionStatusNone      ConnectionStatus = "none"
	ConnectionStatusPending   ConnectionStatus = "pending"
	ConnectionStatusReceived  ConnectionStatus = "received"
	ConnectionStatusConnected ConnectionStatus = "connected"
)

// ConnectionRequestDto is a pending request enriched with the requester profile.
type ConnectionRequestDto struct {
	ID        primitive.ObjectID `json:"id"`
	Requester UserDto            `json:"requester"`
	CreatedAt time.Time          `json:"createdAt"`
}
