package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// TargetKind discriminates what a like points at. Posts and comments share one
// ledger so the uniqueness invariant and toggle logic live in a single place.
type TargetKind string

const (
	TargetKindPost    TargetKind = "post"
	TargetKindComment TargetKind = "comment"
)

func (k TargetKind) Valid() bool {
	return k == TargetKindPost || k == TargetKindComment
}

// Like is a fact, not a flag: the record's existence is the liked state.
type Like struct {
	Id         primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	User       primitive.ObjectID `json:"user" bson:"user"`
	Target     primitive.ObjectID `json:"target" bson:"target"`
	TargetKind TargetKind         `json:"targetKind" bson:"targetKind"`
	CreatedAt  time.Time          `json:"createdAt" bson:"createdAt"`
}
