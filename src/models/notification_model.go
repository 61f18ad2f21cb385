package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type NotificationType string

const (
	NotificationTypeLike               NotificationType = "like"
	NotificationTypeComment            NotificationType = "comment"
	NotificationTypeConnectionAccepted NotificationType = "connectionAccepted"
)

type Notification struct {
	Id          primitive.ObjectID  `json:"id" bson:"_id,omitempty"`
	Recipient   primitive.ObjectID  `json:"recipient" bson:"recipient"`
	Type        NotificationType    `json:"type" bson:"type"`
	RelatedUser *primitive.ObjectID `json:"relatedUser,omitempty" bson:"relatedUser,omitempty"`
	RelatedPost *primitive.ObjectID `json:"relatedPost,omitempty" bson:"relatedPost,omitempty"`
	Read        bool                `json:"read" bson:"read"`
	CreatedAt   time.Time           `json:"createdAt" bson:"createdAt"`
}
