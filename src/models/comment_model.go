package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type Comment struct {
	Id        primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Post      primitive.ObjectID `json:"post" bson:"post"`
	Author    primitive.ObjectID `json:"author" bson:"author"`
	Content   string             `json:"content" bson:"content"`
	CreatedAt time.Time          `json:"createdAt" bson:"createdAt"`
}

type CommentDto struct {
	ID         primitive.ObjectID `json:"id"`
	PostID     primitive.ObjectID `json:"postId"`
	Author     UserDto            `json:"author"`
	Content    string             `json:"content"`
	LikesCount int64              `json:"likesCount"`
	IsLiked    bool               `json:"isLiked"`
	CreatedAt  time.Time          `json:"createdAt"`
}
