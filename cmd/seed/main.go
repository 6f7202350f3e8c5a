package main

import (
	"context"
	"flag"
	"log"
	"strings"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	"gehna-backend/internal/config"
	"gehna-backend/internal/database"
	"gehna-backend/internal/models"
	"gehna-backend/internal/utils"
)

// Bootstrap tool: seeds a starter catalog when the products collection is
// empty and, with -admin, upserts a back-office admin account.
//
//	go run ./cmd/seed
//	go run ./cmd/seed -admin "Admin User,admin@example.com,123456"
func main() {
	adminSpec := flag.String("admin", "", "create an admin account: name,email,password")
	skipCatalog := flag.Bool("no-catalog", false, "skip catalog seeding")
	flag.Parse()

	config.Load()
	database.Connect()
	defer database.Close()

	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if *adminSpec != "" {
		createAdmin(ctx, *adminSpec)
	}
	if !*skipCatalog {
		seedCatalog(ctx)
	}
}

func createAdmin(ctx context.Context, arg string) {
	parts := strings.SplitN(arg, ",", 3)
	if len(parts) != 3 {
		log.Fatal("❌ -admin expects name,email,password")
	}
	name, email, password := parts[0], parts[1], parts[2]

	var existing models.User
	if err := database.Users().FindOne(ctx, bson.M{"email": email}).Decode(&existing); err == nil {
		log.Println("⚡ Admin already exists:", email)
		return
	}

	hashed, err := utils.HashPassword(password)
	if err != nil {
		log.Fatal("❌ Failed to hash password:", err)
	}

	now := time.Now()
	admin := models.User{
		Name:      name,
		Email:     email,
		Password:  hashed,
		IsAdmin:   true,
		CreatedAt: now,
		UpdatedAt: now,
	}
	if _, err := database.Users().InsertOne(ctx, admin); err != nil {
		log.Fatal("❌ Failed to create admin:", err)
	}
	log.Println("✅ Admin created:", email)
}

func seedCatalog(ctx context.Context) {
	count, err := database.Products().CountDocuments(ctx, bson.M{})
	if err != nil {
		log.Fatal("❌ Failed to count products:", err)
	}
	if count > 0 {
		log.Printf("⚡ Catalog already has %d products, skipping seed", count)
		return
	}

	now := time.Now()
	starters := []models.Product{
		{Name: "Gold Plated Kundan Necklace", Price: 2499, OriginalPrice: 2999, OnSale: true,
			Category: "Necklaces", Stock: 25, Tags: []string{"navratri", "featured"}, Featured: true},
		{Name: "Silver Oxidised Jhumka", Price: 799,
			Category: "Earrings", Stock: 60, Tags: []string{"diwali"}},
		{Name: "Pearl Drop Earrings", Price: 1199,
			Category: "Earrings", Stock: 40},
		{Name: "Antique Temple Bangle Set", Price: 1899, OriginalPrice: 2299, OnSale: true,
			Category: "Bangles", Stock: 30, Tags: []string{"dussehra"}},
		{Name: "Meenakari Pendant Chain", Price: 1499,
			Category: "Pendants", Stock: 35, Tags: []string{"diwali", "navratri"}, Featured: true},
	}

	docs := make([]interface{}, 0, len(starters))
	for i := range starters {
		starters[i].Slug = utils.Slugify(starters[i].Name)
		starters[i].Reviews = []models.Review{}
		starters[i].CreatedAt = now
		starters[i].UpdatedAt = now
		docs = append(docs, starters[i])
	}

	if _, err := database.Products().InsertMany(ctx, docs); err != nil {
		log.Fatal("❌ Failed to seed catalog:", err)
	}
	log.Printf("✅ Seeded %d products", len(docs))
}
