package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	Id             primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	Name           string             `json:"name" bson:"name"`
	Username       string             `json:"username" bson:"username"`
	Email          string             `json:"email" bson:"email"`
	Password       string             `json:"-" bson:"password"`
	Specialty      string             `json:"specialty" bson:"specialty"`
	Institution    string             `json:"institution" bson:"institution"`
	Location       string             `json:"location" bson:"location"`
	About          string             `json:"about" bson:"about"`
	ProfilePicture string             `json:"profilePicture" bson:"profile_picture"`
	CreatedAt      time.Time          `json:"createdAt" bson:"createdAt"`
	UpdatedAt      time.Time          `json:"updatedAt" bson:"updatedAt"`
}

// UserDto is the trimmed profile projection attached to posts, comments and
// discovery results. It never carries email or other account fields.
type UserDto struct {
	ID             primitive.ObjectID `json:"id"`
	Name           string             `json:"name"`
	Username       string             `json:"username"`
	Specialty      string             `json:"specialty"`
	Institution    string             `json:"institution"`
	ProfilePicture string             `json:"profilePicture"`
}

func (u *User) ToDto() UserDto {
	return UserDto{
		ID:             u.Id,
		Name:           u.Name,
		Username:       u.Username,
		Specialty:      u.Specialty,
		Institution:    u.Institution,
		ProfilePicture: u.ProfilePicture,
	}
}

// CandidateDto is a discovery result: a not-yet-connected user annotated with
// the viewer-relative connection status and the candidate's accepted count.
type CandidateDto struct {
	ID               primitive.ObjectID `json:"id"`
	Name             string             `json:"name"`
	Username         string             `json:"username"`
	Specialty        string             `json:"specialty"`
	Institution      string             `json:"institution"`
	Location         string             `json:"location"`
	ProfilePicture   string             `json:"profilePicture"`
	ConnectionStatus ConnectionStatus   `json:"connectionStatus"`
	ConnectionCount  int64              `json:"connectionCount"`
}

// ProfileUpdate carries the allow-listed profile fields a user may change.
// Nil means "leave unchanged".
type ProfileUpdate struct {
	Name           *string `json:"name"`
	Specialty      *string `json:"specialty"`
	Institution    *string `json:"institution"`
	Location       *string `json:"location"`
	About          *string `json:"about"`
	ProfilePicture *string `json:"profilePicture"`
}
