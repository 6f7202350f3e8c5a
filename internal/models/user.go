package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

type User struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name       string             `bson:"name" json:"name"`
	Email      string             `bson:"email" json:"email"`
	Password   string             `bson:"password" json:"-"`
	IsAdmin    bool               `bson:"is_admin" json:"isAdmin"`
	ProfilePic string             `bson:"profile_pic,omitempty" json:"profilePic,omitempty"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}

// Role is what goes into the JWT role claim.
func (u *User) Role() string {
	if u.IsAdmin {
		return "admin"
	}
	return "user"
}
