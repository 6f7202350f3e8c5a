package order

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"gehna-backend/internal/middleware"
	"gehna-backend/internal/models"
)

func init() {
	gin.SetMode(gin.TestMode)
}

// catalogStub resolves product ids from an in-memory map, standing in for
// the products collection.
func catalogStub(products map[primitive.ObjectID]models.Product) productLookup {
	return func(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
		p, ok := products[id]
		if !ok {
			return nil, fmt.Errorf("%w: %s", ErrProductNotFound, id.Hex())
		}
		return &p, nil
	}
}

func TestBuildOrderItemsFreezesCatalogPrices(t *testing.T) {
	ringID := primitive.NewObjectID()
	pendantID := primitive.NewObjectID()
	lookup := catalogStub(map[primitive.ObjectID]models.Product{
		ringID:    {ID: ringID, Name: "Gold Ring", Price: 500},
		pendantID: {ID: pendantID, Name: "Pearl Pendant", Price: 1200},
	})

	items, total, err := buildOrderItems(context.Background(), lookup, []orderItemInput{
		{Product: ringID.Hex(), Qty: 2},
		{Product: pendantID.Hex(), Qty: 1},
	})
	require.NoError(t, err)

	require.Len(t, items, 2)
	assert.Equal(t, 2200.0, total)
	assert.Equal(t, "Gold Ring", items[0].Name)
	assert.Equal(t, 500.0, items[0].Price)
	assert.Equal(t, 2, items[0].Qty)
	assert.Equal(t, 1200.0, items[1].Price)

	// Total always matches the frozen per-line prices.
	var recomputed float64
	for _, it := range items {
		recomputed += it.Price * float64(it.Qty)
	}
	assert.Equal(t, recomputed, total)
}

func TestBuildOrderItemsAbortsOnUnknownProduct(t *testing.T) {
	ringID := primitive.NewObjectID()
	lookup := catalogStub(map[primitive.ObjectID]models.Product{
		ringID: {ID: ringID, Name: "Gold Ring", Price: 500},
	})

	items, total, err := buildOrderItems(context.Background(), lookup, []orderItemInput{
		{Product: ringID.Hex(), Qty: 1},
		{Product: primitive.NewObjectID().Hex(), Qty: 3},
	})

	require.ErrorIs(t, err, ErrProductNotFound)
	assert.Nil(t, items)
	assert.Equal(t, 0.0, total)
}

func TestBuildOrderItemsRejectsMalformedID(t *testing.T) {
	lookup := catalogStub(nil)

	_, _, err := buildOrderItems(context.Background(), lookup, []orderItemInput{
		{Product: "not-an-object-id", Qty: 1},
	})

	assert.ErrorIs(t, err, ErrProductNotFound)
}

func TestBuildOrderItemsPropagatesLookupFailures(t *testing.T) {
	dbDown := errors.New("server selection timeout")
	lookup := func(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
		return nil, dbDown
	}

	_, _, err := buildOrderItems(context.Background(), lookup, []orderItemInput{
		{Product: primitive.NewObjectID().Hex(), Qty: 1},
	})

	require.ErrorIs(t, err, dbDown)
	assert.False(t, errors.Is(err, ErrProductNotFound),
		"a database failure must not read as a missing product")
}

// swapLookup replaces the catalog lookup used by the handlers for the test's
// duration.
func swapLookup(t *testing.T, lookup productLookup) {
	t.Helper()
	orig := lookupProduct
	lookupProduct = lookup
	t.Cleanup(func() { lookupProduct = orig })
}

func postOrder(user models.User, body string) *httptest.ResponseRecorder {
	r := gin.New()
	r.POST("/api/orders", func(c *gin.Context) {
		c.Set(middleware.CtxUser, user)
	}, Create)

	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/orders", bytes.NewBufferString(body))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func orderBody(productID string) string {
	return fmt.Sprintf(`{
		"items": [{"product": %q, "qty": 1}],
		"address": {"street": "1 MG Road", "city": "Jaipur", "state": "Rajasthan", "pincode": "302001"}
	}`, productID)
}

func TestCreateAnswersNotFoundForMissingProduct(t *testing.T) {
	swapLookup(t, catalogStub(nil))

	w := postOrder(models.User{ID: primitive.NewObjectID()}, orderBody(primitive.NewObjectID().Hex()))

	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Contains(t, w.Body.String(), "Product not found")
}

func TestCreateSurfacesLookupFailureAsServerError(t *testing.T) {
	swapLookup(t, func(ctx context.Context, id primitive.ObjectID) (*models.Product, error) {
		return nil, errors.New("server selection timeout")
	})

	w := postOrder(models.User{ID: primitive.NewObjectID()}, orderBody(primitive.NewObjectID().Hex()))

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.NotContains(t, w.Body.String(), "Product not found",
		"a database outage must not read as a missing product")
}

func TestBuildHamperItemsDropsUnresolvedProducts(t *testing.T) {
	banglesID := primitive.NewObjectID()
	lookup := catalogStub(map[primitive.ObjectID]models.Product{
		banglesID: {ID: banglesID, Name: "Temple Bangles", Price: 1899},
	})

	items, total := buildHamperItems(context.Background(), lookup, []hamperItemInput{
		{Product: banglesID.Hex(), Quantity: 2},
		{Product: primitive.NewObjectID().Hex(), Quantity: 5}, // unknown, dropped
		{Product: "garbage-id", Quantity: 1},                  // malformed, dropped
	})

	require.Len(t, items, 1)
	assert.Equal(t, banglesID, items[0].ProductID)
	assert.Equal(t, 3798.0, total)
}

func TestBuildHamperItemsDefaultsQuantityToOne(t *testing.T) {
	pendantID := primitive.NewObjectID()
	lookup := catalogStub(map[primitive.ObjectID]models.Product{
		pendantID: {ID: pendantID, Name: "Meenakari Pendant", Price: 1499},
	})

	items, total := buildHamperItems(context.Background(), lookup, []hamperItemInput{
		{Product: pendantID.Hex()}, // no quantity given
	})

	require.Len(t, items, 1)
	assert.Equal(t, 1, items[0].Quantity)
	assert.Equal(t, 1499.0, total)
}
