package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

func TestRecomputeRating(t *testing.T) {
	p := Product{}

	// No reviews: both aggregates zero.
	p.RecomputeRating()
	assert.Equal(t, 0, p.NumReviews)
	assert.Equal(t, 0.0, p.Rating)

	p.Reviews = append(p.Reviews, Review{Rating: 4})
	p.RecomputeRating()
	assert.Equal(t, 1, p.NumReviews)
	assert.Equal(t, 4.0, p.Rating)

	p.Reviews = append(p.Reviews, Review{Rating: 5}, Review{Rating: 3})
	p.RecomputeRating()
	assert.Equal(t, 3, p.NumReviews)
	assert.Equal(t, 4.0, p.Rating)

	p.Reviews = append(p.Reviews, Review{Rating: 1})
	p.RecomputeRating()
	assert.Equal(t, 4, p.NumReviews)
	assert.Equal(t, 3.25, p.Rating)
}

func TestRecomputeRatingAfterClearing(t *testing.T) {
	p := Product{Reviews: []Review{{Rating: 5}}, Rating: 5, NumReviews: 1}

	p.Reviews = nil
	p.RecomputeRating()
	assert.Equal(t, 0, p.NumReviews)
	assert.Equal(t, 0.0, p.Rating)
}

func TestHasReviewFrom(t *testing.T) {
	alice := primitive.NewObjectID()
	bob := primitive.NewObjectID()

	p := Product{Reviews: []Review{{UserID: alice, Rating: 5}}}

	assert.True(t, p.HasReviewFrom(alice))
	assert.False(t, p.HasReviewFrom(bob))
}
