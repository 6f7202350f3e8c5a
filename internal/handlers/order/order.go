package order

import (
	"context"
	"errors"
	"fmt"
	"log"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gehna-backend/internal/cache"
	"gehna-backend/internal/database"
	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

// ErrProductNotFound aborts order creation entirely: no partial orders.
var ErrProductNotFound = errors.New("product not found")

// productLookup resolves a product id against the catalog. Injected so the
// pricing logic is testable without a live database.
type productLookup func(ctx context.Context, id primitive.ObjectID) (*models.Product, error)

// lookupProduct is swapped out in tests.
var lookupProduct productLookup = fetchProduct

func fetchProduct(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
	var p models.Product
	if err := database.Products().FindOne(ctx, bson.M{"_id": id}).Decode(&p); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id.Hex())
		}
		return nil, err
	}
	return &p, nil
}

type orderItemInput struct {
	Product string `json:"product" binding:"required"`
	Qty     int    `json:"qty" binding:"required,min=1"`
}

type createOrderRequest struct {
	Items     []orderItemInput       `json:"items" binding:"required,min=1,dive"`
	Address   models.ShippingAddress `json:"address" binding:"required"`
	Payment   string                 `json:"payment"`
	PaymentID string                 `json:"paymentId"`
}

// buildOrderItems re-fetches every referenced product and freezes its current
// catalog price into the line. Client-submitted prices are never trusted.
// Any unresolvable reference fails the whole build.
func buildOrderItems(ctx context.Context, lookup productLookup, inputs []orderItemInput) ([]models.OrderItem, float64, error) {
	items := make([]models.OrderItem, 0, len(inputs))
	var total float64

	for _, in := range inputs {
		oid, err := primitive.ObjectIDFromHex(in.Product)
		if err != nil {
			return nil, 0, fmt.Errorf("%w: %s", ErrProductNotFound, in.Product)
		}
		p, err := lookup(ctx, oid)
		if err != nil {
			return nil, 0, err
		}
		items = append(items, models.OrderItem{
			ProductID: p.ID,
			Name:      p.Name,
			Qty:       in.Qty,
			Price:     p.Price,
		})
		total += p.Price * float64(in.Qty)
	}

	return items, total, nil
}

// Create places a new order for the authenticated user.
func Create(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	var req createOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	items, total, err := buildOrderItems(ctx, lookupProduct, req.Items)
	if err != nil {
		if errors.Is(err, ErrProductNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Product not found"})
			return
		}
		log.Println("❌ Product lookup failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}

	payment := req.Payment
	if payment == "" {
		payment = "Cash on Delivery"
	}

	now := time.Now()
	o := models.Order{
		UserID:          user.ID,
		Items:           items,
		Total:           total,
		Status:          models.OrderStatusPending,
		Payment:         payment,
		PaymentID:       req.PaymentID,
		ShippingAddress: req.Address,
		CreatedAt:       now,
		UpdatedAt:       now,
	}

	result, err := database.Orders().InsertOne(ctx, o)
	if err != nil {
		log.Println("❌ Order insert failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to create order"})
		return
	}
	o.ID = result.InsertedID.(primitive.ObjectID)

	cache.InvalidateStats(ctx)

	utils.SendEmailAsync(user.Email, "Order confirmed ✅", utils.OrderConfirmationHTML(o, user.Name))
	log.Printf("🛍️ Order %s placed by %s (total ₹%.2f)", o.ID.Hex(), user.Email, o.Total)

	c.JSON(http.StatusCreated, o)
}

// MyOrders lists the caller's orders, newest first.
func MyOrders(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{"user": user.ID}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

// GetByID returns one order. Owners see their own; admins see any.
func GetByID(c *gin.Context) {
	user, ok := c.MustGet(middleware.CtxUser).(models.User)
	if !ok {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Not authorized"})
		return
	}

	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	var o models.Order
	if err := database.Orders().FindOne(ctx, bson.M{"_id": oid}).Decode(&o); err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to fetch order"})
		return
	}

	if o.UserID != user.ID && !user.IsAdmin {
		c.JSON(http.StatusForbidden, gin.H{"error": "Not authorized to view this order"})
		return
	}

	c.JSON(http.StatusOK, o)
}

// ListAll returns every order. Admin only.
func ListAll(c *gin.Context) {
	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	opts := options.Find().SetSort(bson.D{{Key: "created_at", Value: -1}})
	cursor, err := database.Orders().Find(ctx, bson.M{}, opts)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to list orders"})
		return
	}
	defer cursor.Close(ctx)

	orders := []models.Order{}
	if err := cursor.All(ctx, &orders); err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to decode orders"})
		return
	}

	c.JSON(http.StatusOK, orders)
}

type statusRequest struct {
	Status string `json:"status" binding:"required"`
}

// UpdateStatus moves an order through its lifecycle. Transitions are
// unconditional; only the enum is enforced. Admin only. Each transition
// mails the owner.
func UpdateStatus(c *gin.Context) {
	oid, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order ID"})
		return
	}

	var req statusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if !models.ValidOrderStatus(req.Status) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid order status"})
		return
	}

	ctx, cancel := context.WithTimeout(c.Request.Context(), 10*time.Second)
	defer cancel()

	after := options.After
	var o models.Order
	err = database.Orders().FindOneAndUpdate(ctx,
		bson.M{"_id": oid},
		bson.M{"$set": bson.M{"status": req.Status, "updated_at": time.Now()}},
		options.FindOneAndUpdate().SetReturnDocument(after),
	).Decode(&o)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			c.JSON(http.StatusNotFound, gin.H{"error": "Order not found"})
			return
		}
		log.Println("❌ Order status update failed:", err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Failed to update order"})
		return
	}

	notifyOwner(ctx, o.UserID, func(u models.User) (string, string) {
		return "Order update 📦", utils.OrderStatusHTML(o, u.Name)
	})

	c.JSON(http.StatusOK, o)
}

// notifyOwner looks up the owning user and mails them. A missing owner is
// only logged; the mutation already happened.
func notifyOwner(ctx context.Context, userID primitive.ObjectID, build func(models.User) (subject, body string)) {
	var u models.User
	if err := database.Users().FindOne(ctx, bson.M{"_id": userID}).Decode(&u); err != nil {
		log.Printf("⚠️ Owner %s not found for notification: %v", userID.Hex(), err)
		return
	}
	subject, body := build(u)
	utils.SendEmailAsync(u.Email, subject, body)
}
