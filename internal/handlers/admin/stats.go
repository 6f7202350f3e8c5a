package admin

import (
	"context"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"

	"gehna-backend/internal/cache"
	"gehna-backend/internal/database"
)

// Stats returns the dashboard rollups: entity counts plus total revenue
// (sum over all order totals). Read only, cached for a minute.
func Stats(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cached gin.H
	if cache.GetJSON(ctx, cache.StatsKey, &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	totalUsers, err := database.Users().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	totalProducts, err := database.Products().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	totalOrders, err := database.Orders().CountDocuments(ctx, bson.M{})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}

	pipeline := []bson.M{
		{"$group": bson.M{"_id": nil, "total": bson.M{"$sum": "$total"}}},
	}
	cursor, err := database.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching stats"})
		return
	}
	defer cursor.Close(ctx)

	var revenue float64
	var agg []struct {
		Total float64 `bson:"total"`
	}
	if err := cursor.All(ctx, &agg); err != nil {
		log.Println("❌ Revenue aggregation decode:", err)
	} else if len(agg) > 0 {
		revenue = agg[0].Total
	}

	resp := gin.H{
		"users":    totalUsers,
		"products": totalProducts,
		"orders":   totalOrders,
		"revenue":  revenue,
	}

	cache.SetJSON(ctx, cache.StatsKey, resp, cache.StatsCacheTTL)

	c.JSON(http.StatusOK, resp)
}

type salesBucket struct {
	Date    string  `bson:"_id" json:"date"`
	Orders  int64   `bson:"orders" json:"orders"`
	Revenue float64 `bson:"revenue" json:"revenue"`
}

// SalesHistory returns a daily count/revenue series for the dashboard chart,
// covering the last ?days= days (default 30).
func SalesHistory(c *gin.Context) {
	days, err := strconv.Atoi(c.DefaultQuery("days", "30"))
	if err != nil || days < 1 {
		days = 30
	}
	since := time.Now().AddDate(0, 0, -days)

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	pipeline := []bson.M{
		{"$match": bson.M{"created_at": bson.M{"$gte": since}}},
		{"$group": bson.M{
			"_id":     bson.M{"$dateToString": bson.M{"format": "%Y-%m-%d", "date": "$created_at"}},
			"orders":  bson.M{"$sum": 1},
			"revenue": bson.M{"$sum": "$total"},
		}},
		{"$sort": bson.M{"_id": 1}},
	}

	cursor, err := database.Orders().Aggregate(ctx, pipeline)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error fetching sales history"})
		return
	}
	defer cursor.Close(ctx)

	buckets := []salesBucket{}
	if err := cursor.All(ctx, &buckets); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Error decoding sales history"})
		return
	}

	c.JSON(http.StatusOK, buckets)
}
