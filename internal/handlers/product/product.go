package product

import (
	"context"
	"errors"
	"log"
	"math"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gehna-backend/internal/cache"
	"gehna-backend/internal/database"
	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

type createRequest struct {
	Name          string   `json:"name" binding:"required"`
	Description   string   `json:"description"`
	Price         float64  `json:"price" binding:"required"`
	OriginalPrice float64  `json:"originalPrice"`
	OnSale        bool     `json:"onSale"`
	Category      string   `json:"category"`
	Stock         int      `json:"stock"`
	Image         string   `json:"image"`
	Images        []string `json:"images"`
	Tags          []string `json:"tags"`
	Featured      bool     `json:"featured"`
}

func slugTaken(ctx context.Context, s string) (bool, error) {
	n, err := database.Products().CountDocuments(ctx, bson.M{"slug": s})
	if err != nil {
		return false, err
	}
	return n > 0, nil
}

// Create inserts a new product with a generated unique slug. Admin only.
func Create(c *gin.Context) {
	var req createRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	productSlug, err := utils.UniqueSlug(ctx, req.Name, slugTaken)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
		return
	}

	now := time.Now()
	p := models.Product{
		Name:          req.Name,
		Description:   req.Description,
		Price:         req.Price,
		OriginalPrice: req.OriginalPrice,
		OnSale:        req.OnSale,
		Category:      req.Category,
		Stock:         req.Stock,
		Image:         req.Image,
		Images:        req.Images,
		Slug:          productSlug,
		Reviews:       []models.Review{},
		Tags:          req.Tags,
		Featured:      req.Featured,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	result, err := database.Products().InsertOne(ctx, p)
	if err != nil {
		log.Println("❌ Product insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create product"})
		return
	}
	p.ID = result.InsertedID.(primitive.ObjectID)

	cache.InvalidateProducts(ctx)

	c.JSON(http.StatusCreated, p)
}

// List returns a filtered, sorted, paginated product page:
// ?search= ?category= ?tag= ?featured=true ?min= ?max=
// ?sort=price_asc|price_desc|newest ?page= ?limit=
func List(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	filter := bson.M{}
	if search := c.Query("search"); search != "" {
		filter["name"] = bson.M{"$regex": search, "$options": "i"}
	}
	if category := c.Query("category"); category != "" {
		filter["category"] = bson.M{"$regex": category, "$options": "i"}
	}
	if tag := c.Query("tag"); tag != "" {
		filter["tags"] = tag
	}
	if c.Query("featured") == "true" {
		filter["featured"] = true
	}

	price := bson.M{}
	if min := c.Query("min"); min != "" {
		if v, err := strconv.ParseFloat(min, 64); err == nil {
			price["$gte"] = v
		}
	}
	if max := c.Query("max"); max != "" {
		if v, err := strconv.ParseFloat(max, 64); err == nil {
			price["$lte"] = v
		}
	}
	if len(price) > 0 {
		filter["price"] = price
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	if page < 1 {
		page = 1
	}
	limit, _ := strconv.Atoi(c.DefaultQuery("limit", "12"))
	if limit < 1 {
		limit = 12
	}

	// The unfiltered first page is the storefront's hottest request; it is
	// the only listing variant worth caching.
	cacheable := len(filter) == 0 && page == 1 && limit == 12 && c.Query("sort") == ""
	if cacheable {
		var cached gin.H
		if cache.GetJSON(ctx, cache.ProductListKey, &cached) {
			c.JSON(http.StatusOK, cached)
			return
		}
	}

	findOpts := options.Find().
		SetSkip(int64((page - 1) * limit)).
		SetLimit(int64(limit))

	switch c.Query("sort") {
	case "price_asc":
		findOpts.SetSort(bson.D{{Key: "price", Value: 1}})
	case "price_desc":
		findOpts.SetSort(bson.D{{Key: "price", Value: -1}})
	case "newest":
		findOpts.SetSort(bson.D{{Key: "created_at", Value: -1}})
	}

	total, err := database.Products().CountDocuments(ctx, filter)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to count products"})
		return
	}

	cursor, err := database.Products().Find(ctx, filter, findOpts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	resp := gin.H{
		"products":      products,
		"totalProducts": total,
		"page":          page,
		"totalPages":    int(math.Ceil(float64(total) / float64(limit))),
	}

	if cacheable {
		cache.SetJSON(ctx, cache.ProductListKey, resp, cache.ProductCacheTTL)
	}

	c.JSON(http.StatusOK, resp)
}

// ListSale returns every product currently flagged onSale.
func ListSale(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, bson.M{"on_sale": true})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list sale products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// ListByCategory matches the category case-insensitively.
func ListByCategory(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	cursor, err := database.Products().Find(ctx, bson.M{
		"category": bson.M{"$regex": c.Param("category"), "$options": "i"},
	})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list products"})
		return
	}
	defer cursor.Close(ctx)

	products := []models.Product{}
	if err := cursor.All(ctx, &products); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode products"})
		return
	}

	c.JSON(http.StatusOK, products)
}

// GetByID returns one product or 404.
func GetByID(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var cached models.Product
	if cache.GetJSON(ctx, cache.ProductKey(oid.Hex()), &cached) {
		c.JSON(http.StatusOK, cached)
		return
	}

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": oid}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	cache.SetJSON(ctx, cache.ProductKey(oid.Hex()), p, cache.ProductCacheTTL)

	c.JSON(http.StatusOK, p)
}

// GetBySlug returns one product by its slug or 404.
func GetBySlug(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"slug": c.Param("slug")}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch product"})
		return
	}

	c.JSON(http.StatusOK, p)
}

type updateRequest struct {
	Name          *string   `json:"name"`
	Description   *string   `json:"description"`
	Price         *float64  `json:"price"`
	OriginalPrice *float64  `json:"originalPrice"`
	OnSale        *bool     `json:"onSale"`
	Category      *string   `json:"category"`
	Stock         *int      `json:"stock"`
	Image         *string   `json:"image"`
	Images        *[]string `json:"images"`
	Tags          *[]string `json:"tags"`
	Featured      *bool     `json:"featured"`
}

// Update merges the provided fields into the product; a name change
// regenerates the slug. Admin only.
func Update(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	var req updateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	set := bson.M{"updated_at": time.Now()}
	if req.Name != nil {
		set["name"] = *req.Name
		newSlug, err := utils.UniqueSlug(ctx, *req.Name, slugTaken)
		if err != nil {
			c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to generate slug"})
			return
		}
		set["slug"] = newSlug
	}
	if req.Description != nil {
		set["description"] = *req.Description
	}
	if req.Price != nil {
		set["price"] = *req.Price
	}
	if req.OriginalPrice != nil {
		set["original_price"] = *req.OriginalPrice
	}
	if req.OnSale != nil {
		set["on_sale"] = *req.OnSale
	}
	if req.Category != nil {
		set["category"] = *req.Category
	}
	if req.Stock != nil {
		set["stock"] = *req.Stock
	}
	if req.Image != nil {
		set["image"] = *req.Image
	}
	if req.Images != nil {
		set["images"] = *req.Images
	}
	if req.Tags != nil {
		set["tags"] = *req.Tags
	}
	if req.Featured != nil {
		set["featured"] = *req.Featured
	}

	after := options.After
	var updated models.Product
	err = database.Products().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": set},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&updated)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Println("❌ Product update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update product"})
		return
	}

	cache.InvalidateProducts(ctx, oid.Hex())

	c.JSON(http.StatusOK, updated)
}

// Delete removes a product. Admin only.
func Delete(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid product ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	result, err := database.Products().DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to delete product"})
		return
	}
	if result.DeletedCount == 0 {
		c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
		return
	}

	cache.InvalidateProducts(ctx, oid.Hex())

	c.JSON(http.StatusOK, gin.H{"message": "Product removed"})
}
