package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Hamper statuses. A hamper is a curated order variant with its own, shorter
// lifecycle; it is a parallel entity, not an order subtype.
const (
	HamperStatusPending   = "pending"
	HamperStatusConfirmed = "confirmed"
	HamperStatusDelivered = "delivered"
	HamperStatusCancelled = "cancelled"
)

var hamperStatuses = map[string]bool{
	HamperStatusPending:   true,
	HamperStatusConfirmed: true,
	HamperStatusDelivered: true,
	HamperStatusCancelled: true,
}

// ValidHamperStatus reports whether s is one of the hamper status enum values.
func ValidHamperStatus(s string) bool {
	return hamperStatuses[s]
}

type HamperItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Quantity  int                `bson:"quantity" json:"quantity"`
}

type Hamper struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"user" json:"user"`
	Title      string             `bson:"title" json:"title"`
	Items      []HamperItem       `bson:"items" json:"items"`
	CustomNote string             `bson:"custom_note,omitempty" json:"customNote,omitempty"`
	TotalPrice float64            `bson:"total_price" json:"totalPrice"`
	Status     string             `bson:"status" json:"status"`
	CreatedAt  time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt  time.Time          `bson:"updated_at" json:"updated_at"`
}
