package utils

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gehna-backend/internal/models"
)

func TestOrderConfirmationHTML(t *testing.T) {
	order := models.Order{
		ID: primitive.NewObjectID(),
		Items: []models.OrderItem{
			{Name: "Gold Ring", Qty: 2, Price: 500},
			{Name: "Pearl Pendant", Qty: 1, Price: 1200},
		},
		Total: 2200,
		ShippingAddress: models.ShippingAddress{
			Street: "12 MG Road", City: "Pune", State: "Maharashtra", Pincode: "411001",
		},
	}

	html := OrderConfirmationHTML(order, "Asha")

	assert.Contains(t, html, order.ID.Hex())
	assert.Contains(t, html, "Gold Ring")
	assert.Contains(t, html, "Pearl Pendant")
	assert.Contains(t, html, "₹2200.00")
	assert.Contains(t, html, "12 MG Road")
	assert.Contains(t, html, "411001")
	assert.Contains(t, html, "Asha")
}

func TestOrderStatusHTML(t *testing.T) {
	order := models.Order{ID: primitive.NewObjectID(), Status: models.OrderStatusShipped}

	html := OrderStatusHTML(order, "Asha")

	assert.Contains(t, html, order.ID.Hex())
	assert.Contains(t, html, "shipped")
}

func TestHamperTemplates(t *testing.T) {
	hamper := models.Hamper{
		ID:         primitive.NewObjectID(),
		Title:      "Diwali Special",
		Items:      []models.HamperItem{{Quantity: 2}},
		TotalPrice: 3500,
		Status:     models.HamperStatusConfirmed,
	}

	confirmation := HamperConfirmationHTML(hamper, "Ravi")
	assert.Contains(t, confirmation, "Diwali Special")
	assert.Contains(t, confirmation, "₹3500.00")

	status := HamperStatusHTML(hamper, "Ravi")
	assert.Contains(t, status, "confirmed")
}

func TestWelcomeHTML(t *testing.T) {
	assert.Contains(t, WelcomeHTML("Priya"), "Priya")
}
