package order

import (
	"context"
	"errors"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gehna-backend/internal/database"
	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

type hamperItemInput struct {
	Product  string `json:"product" binding:"required"`
	Quantity int    `json:"quantity"`
}

type createHamperRequest struct {
	Title      string            `json:"title"`
	Items      []hamperItemInput `json:"items" binding:"required,min=1,dive"`
	CustomNote string            `json:"customNote"`
}

// buildHamperItems prices a hamper from current catalog prices. Unlike
// orders, unresolvable product references are silently dropped rather than
// aborting the hamper — the storefront lets stale cart entries fall away.
func buildHamperItems(ctx context.Context, lookup productLookup, inputs []hamperItemInput) ([]models.HamperItem, float64) {
	items := make([]models.HamperItem, 0, len(inputs))
	var total float64

	for _, in := range inputs {
		oid, err := primitive.ObjectIDFromHex(in.Product)
		if err != nil {
			continue
		}
		p, err := lookup(ctx, oid)
		if err != nil {
			continue
		}
		qty := in.Quantity
		if qty < 1 {
			qty = 1
		}
		items = append(items, models.HamperItem{ProductID: p.ID, Quantity: qty})
		total += p.Price * float64(qty)
	}

	return items, total
}

// CreateHamper places a custom hamper for the authenticated user.
func CreateHamper(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	var req createHamperRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Please select at least one product"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, total := buildHamperItems(ctx, lookupProduct, req.Items)

	title := req.Title
	if title == "" {
		title = "Custom Hamper"
	}

	now := time.Now()
	h := models.Hamper{
		UserID:     user.ID,
		Title:      title,
		Items:      items,
		CustomNote: req.CustomNote,
		TotalPrice: total,
		Status:     models.HamperStatusPending,
		CreatedAt:  now,
		UpdatedAt:  now,
	}

	result, err := database.Hampers().InsertOne(ctx, h)
	if err != nil {
		log.Println("❌ Hamper insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Server error while creating hamper"})
		return
	}
	h.ID = result.InsertedID.(primitive.ObjectID)

	utils.SendEmailAsync(user.Email, "Hamper confirmed 🎁", utils.HamperConfirmationHTML(h, user.Name))

	c.JSON(http.StatusCreated, h)
}

// MyHampers lists the caller's hampers, newest first.
func MyHampers(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Hampers().Find(ctx, bson.M{"user": user.ID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hampers"})
		return
	}
	defer cursor.Close(ctx)

	hampers := []models.Hamper{}
	if err := cursor.All(ctx, &hampers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode hampers"})
		return
	}

	c.JSON(http.StatusOK, hampers)
}

// ListAllHampers returns every hamper. Admin only.
func ListAllHampers(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Hampers().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list hampers"})
		return
	}
	defer cursor.Close(ctx)

	hampers := []models.Hamper{}
	if err := cursor.All(ctx, &hampers); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode hampers"})
		return
	}

	c.JSON(http.StatusOK, hampers)
}

// UpdateHamperStatus moves a hamper through its lifecycle. Admin only.
func UpdateHamperStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hamper ID"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidHamperStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid hamper status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	after := options.After
	var h models.Hamper
	err = database.Hampers().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&h)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Hamper not found"})
			return
		}
		log.Println("❌ Hamper status update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update hamper"})
		return
	}

	notifyOwner(ctx, h.UserID, func(u models.User) (string, string) {
		return "Hamper update 🎁", utils.HamperStatusHTML(h, u.Name)
	})

	c.JSON(http.StatusOK, h)
}
