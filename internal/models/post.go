package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Post is a feed entry in the "posts" collection. The post feature is
// owned by another service; this service only touches posts when an
// account is deleted.
type Post struct {
	ID        primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID    string             `bson:"user_id" json:"user_id"`
	Text      string             `bson:"text" json:"text"`
	Name      string             `bson:"name,omitempty" json:"name,omitempty"`
	Avatar    string             `bson:"avatar,omitempty" json:"avatar,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}
