package config

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var db *mongo.Database

// ConnectDB connects to MongoDB using MONGODB_URI/MONGODB_DB and keeps
// the database handle for GetCollection. Fails fast on startup if the
// server is unreachable.
func ConnectDB() {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGODB_DB")
	if dbName == "" {
		dbName = "greengrass"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		log.Fatalf("Mongo connect error: %v", err)
	}
	if err := client.Ping(ctx, nil); err != nil {
		log.Fatalf("Mongo ping failed: %v", err)
	}

	log.Println("Connected to MongoDB")
	db = client.Database(dbName)
}

// GetCollection returns a collection handle on the connected database.
func GetCollection(name string) *mongo.Collection {
	return db.Collection(name)
}

// CollectionName reads an override from the environment, falling back to
// the given default. Lets deployments point collections elsewhere
// without code changes.
func CollectionName(envKey, fallback string) string {
	if name := os.Getenv(envKey); name != "" {
		return name
	}
	return fallback
}
