package product

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

	"gehna-backend/internal/cache"
	"gehna-backend/internal/database"
	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
)

type reviewRequest struct {
	Rating  int    `json:"rating" binding:"required,min=1,max=5"`
	Comment string `json:"comment"`
}

// AddReview appends a review and refreshes the product's aggregate rating.
// One review per user per product; a second attempt gets 409 and leaves the
// product untouched.
func AddReview(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req reviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	if p.HasReviewFrom(user.ID) {
		c.JSON(http.StatusConflict, gin.H{"error": "Product already reviewed"})
		return
	}

	p.Reviews = append(p.Reviews, models.Review{
		UserID:    user.ID,
		Name:      user.Name,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now(),
	})
	p.RecomputeRating()

	_, err = database.Products().UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{
		"reviews":     p.Reviews,
		"rating":      p.Rating,
		"num_reviews": p.NumReviews,
		"updated_at":  time.Now(),
	}})
	if err != nil {
		log.Println("❌ Review update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to add review"})
		return
	}

	cache.InvalidateProducts(ctx, oid.Hex())

	c.JSON(http.StatusCreated, gin.H{"message": "Review added!"})
}
