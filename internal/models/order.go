package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Order statuses. Transitions are admin-only and unconditional.
const (
	OrderStatusPending   = "pending"
	OrderStatusPaid      = "paid"
	OrderStatusShipped   = "shipped"
	OrderStatusDelivered = "delivered"
	OrderStatusCancelled = "cancelled"
)

var orderStatuses = map[string]bool{
	OrderStatusPending:   true,
	OrderStatusPaid:      true,
	OrderStatusShipped:   true,
	OrderStatusDelivered: true,
	OrderStatusCancelled: true,
}

// ValidOrderStatus reports whether s is one of the order status enum values.
func ValidOrderStatus(s string) bool {
	return orderStatuses[s]
}

// OrderItem freezes the catalog price at order time; historical orders are
// unaffected by later price changes.
type OrderItem struct {
	ProductID primitive.ObjectID `bson:"product" json:"product"`
	Name      string             `bson:"name" json:"name"`
	Qty       int                `bson:"qty" json:"qty"`
	Price     float64            `bson:"price" json:"price"`
}

type ShippingAddress struct {
	Street  string `bson:"street" json:"street" binding:"required"`
	City    string `bson:"city" json:"city" binding:"required"`
	State   string `bson:"state" json:"state" binding:"required"`
	Pincode string `bson:"pincode" json:"pincode" binding:"required"`
}

type Order struct {
	ID              primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID          primitive.ObjectID `bson:"user" json:"user"`
	Items           []OrderItem        `bson:"items" json:"items"`
	Total           float64            `bson:"total" json:"total"`
	Status          string             `bson:"status" json:"status"`
	Payment         string             `bson:"payment" json:"payment"`
	PaymentID       string             `bson:"payment_id,omitempty" json:"paymentId,omitempty"`
	ShippingAddress ShippingAddress    `bson:"shipping_address" json:"shippingAddress"`
	CreatedAt       time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt       time.Time          `bson:"updated_at" json:"updated_at"`
}
