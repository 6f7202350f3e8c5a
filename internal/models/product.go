package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Review is embedded inside its product; the product owns the review lifecycle.
type Review struct {
	UserID    primitive.ObjectID `bson:"user" json:"user"`
	Name      string             `bson:"name" json:"name"`
	Rating    int                `bson:"rating" json:"rating"` // 1-5
	Comment   string             `bson:"comment,omitempty" json:"comment,omitempty"`
	CreatedAt time.Time          `bson:"created_at" json:"created_at"`
}

type Product struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Name          string             `bson:"name" json:"name"`
	Description   string             `bson:"description,omitempty" json:"description,omitempty"`
	Price         float64            `bson:"price" json:"price"`
	OriginalPrice float64            `bson:"original_price,omitempty" json:"originalPrice,omitempty"`
	OnSale        bool               `bson:"on_sale" json:"onSale"`
	Category      string             `bson:"category,omitempty" json:"category,omitempty"`
	Stock         int                `bson:"stock" json:"stock"`
	Image         string             `bson:"image,omitempty" json:"image,omitempty"`
	Images        []string           `bson:"images,omitempty" json:"images,omitempty"`
	Slug          string             `bson:"slug" json:"slug"`
	Reviews       []Review           `bson:"reviews" json:"reviews"`
	Rating        float64            `bson:"rating" json:"rating"`
	NumReviews    int                `bson:"num_reviews" json:"numReviews"`
	Tags          []string           `bson:"tags,omitempty" json:"tags,omitempty"`
	Featured      bool               `bson:"featured" json:"featured"`
	CreatedAt     time.Time          `bson:"created_at" json:"created_at"`
	UpdatedAt     time.Time          `bson:"updated_at" json:"updated_at"`
}

// HasReviewFrom reports whether the user already left a review on this product.
func (p *Product) HasReviewFrom(userID primitive.ObjectID) bool {
	for _, r := range p.Reviews {
		if r.UserID == userID {
			return true
		}
	}
	return false
}

// RecomputeRating refreshes the aggregate rating and review count from the
// embedded review list. Must be called after every review write so the
// aggregates stay consistent with the list.
func (p *Product) RecomputeRating() {
	p.NumReviews = len(p.Reviews)
	if p.NumReviews == 0 {
		p.Rating = 0
		return
	}
	sum := 0
	for _, r := range p.Reviews {
		sum += r.Rating
	}
	p.Rating = float64(sum) / float64(p.NumReviews)
}
