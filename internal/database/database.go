package database

import (
	"context"
	"log"
	"os"
	"time"

	"github.com/minio/minio-go/v7"
	"github.com/minio/minio-go/v7/pkg/credentials"
	"github.com/redis/go-redis/v9"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"gehna-backend/internal/config"
)

var (
	Mongo *mongo.Client
	DB    *mongo.Database
	Redis *redis.Client
	MinIO *minio.Client
)

// Connect wires up MongoDB (store of record, fatal on failure), Redis (cache,
// degrades to direct DB reads when absent) and MinIO (image storage, upload
// endpoints fail until configured).
func Connect() {
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	connectMongo(ctx)
	connectRedis(ctx)
	connectMinIO()

	log.Println("✅ All datastores wired up")
}

func connectMongo(ctx context.Context) {
	uri := config.Getenv("MONGO_URI", "mongodb://localhost:27017")

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("❌ MongoDB connection failed: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("❌ MongoDB ping failed: %v", err)
	}

	Mongo = client
	DB = client.Database(config.Getenv("MONGO_DB", "gehna"))
	log.Println("✅ Connected to MongoDB")

	ensureIndexes(ctx)
}

// ensureIndexes creates the unique indexes the handlers rely on: one account
// per email, one product per slug.
func ensureIndexes(ctx context.Context) {
	unique := options.Index().SetUnique(true)

	if _, err := Users().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "email", Value: 1}},
		Options: unique,
	}); err != nil {
		log.Printf("⚠️ users.email index: %v", err)
	}

	if _, err := Products().Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys:    bson.D{{Key: "slug", Value: 1}},
		Options: unique,
	}); err != nil {
		log.Printf("⚠️ products.slug index: %v", err)
	}
}

func connectRedis(ctx context.Context) {
	Redis = redis.NewClient(&redis.Options{
		Addr:     config.Getenv("REDIS_HOST", "localhost:6379"),
		Password: os.Getenv("REDIS_PASSWORD"),
		DB:       0,
	})

	if err := Redis.Ping(ctx).Err(); err != nil {
		log.Println("⚠️ Redis unavailable, running without cache:", err)
		Redis = nil
		return
	}
	log.Println("✅ Connected to Redis")
}

func connectMinIO() {
	endpoint := os.Getenv("MINIO_ENDPOINT")
	if endpoint == "" {
		log.Println("⚠️ MINIO_ENDPOINT not set, image uploads disabled")
		return
	}

	client, err := minio.New(endpoint, &minio.Options{
		Creds:  credentials.NewStaticV4(os.Getenv("MINIO_ACCESS_KEY"), os.Getenv("MINIO_SECRET_KEY"), ""),
		Secure: config.Getenv("MINIO_USE_SSL", "false") == "true",
	})
	if err != nil {
		log.Println("⚠️ MinIO not configured:", err)
		return
	}

	MinIO = client
	log.Println("✅ Connected to MinIO:", endpoint)
}

// Close releases the Mongo connection. Redis and MinIO clients don't hold
// resources that need an explicit shutdown here.
func Close() {
	if Mongo == nil {
		return
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := Mongo.Disconnect(ctx); err != nil {
		log.Println("⚠️ MongoDB disconnect:", err)
	} else {
		log.Println("🔌 MongoDB connection closed")
	}
}

// Collection helpers so handlers never hardcode collection names.

func Users() *mongo.Collection    { return DB.Collection("users") }
func Products() *mongo.Collection { return DB.Collection("products") }
func Orders() *mongo.Collection   { return DB.Collection("orders") }
func Hampers() *mongo.Collection  { return DB.Collection("hampers") }
