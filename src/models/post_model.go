package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type MediaKind string

const (
	MediaKindImage MediaKind = "image"
	MediaKindVideo MediaKind = "video"
)

// MediaRef points at a file held by the upload collaborator.
type MediaRef struct {
	Kind       MediaKind `json:"kind" bson:"kind"`
	URL        string    `json:"url" bson:"url"`
	ExternalID string    `json:"externalId" bson:"external_id"`
	FileName   string    `json:"fileName" bson:"file_name"`
	ByteSize   int64     `json:"byteSize" bson:"byte_size"`
}

type Post struct {
	Id          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Author      primitive.ObjectID `json:"author" bson:"author"`
	Description string             `json:"description" bson:"description"`
	Media       []MediaRef         `json:"media" bson:"media"`
	CreatedAt   time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt   time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// PostDto is the feed projection: post core fields, trimmed author, live
// engagement counts and the viewer's own like state.
type PostDto struct {
	ID            primitive.ObjectID `json:"id"`
	Author        UserDto            `json:"author"`
	Description   string             `json:"description"`
	Media         []MediaRef         `json:"media"`
	LikesCount    int64              `json:"likesCount"`
	CommentsCount int64              `json:"commentsCount"`
	IsLiked       bool               `json:"isLiked"`
	CreatedAt     time.Time          `json:"createdAt"`
	UpdatedAt     time.Time          `json:"updatedAt"`
}
