package db

import (
	"context"
	"log"
	"os"
	"time"

	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

var (
	Client *mongo.Client

	CountriesCollection *mongo.Collection
	CollegesCollection  *mongo.Collection
	ExamsCollection     *mongo.Collection
	BlogsCollection     *mongo.Collection
	EnquiriesCollection *mongo.Collection
	UsersCollection     *mongo.Collection
)

// Connect establishes the MongoDB connection and binds the collection
// globals. Called once from main; tests run against the in-memory store
// and never connect.
func Connect() error {
	uri := os.Getenv("MONGODB_URI")
	if uri == "" {
		uri = "mongodb://localhost:27017"
	}
	dbName := os.Getenv("MONGO_DB")
	if dbName == "" {
		dbName = "gradbridge"
	}

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, options.Client().ApplyURI(uri))
	if err != nil {
		return err
	}
	if err := client.Ping(ctx, nil); err != nil {
		return err
	}
	Client = client

	database := client.Database(dbName)
	CountriesCollection = database.Collection("countries")
	CollegesCollection = database.Collection("colleges")
	ExamsCollection = database.Collection("exams")
	BlogsCollection = database.Collection("blogs")
	EnquiriesCollection = database.Collection("enquiries")
	UsersCollection = database.Collection("users")

	log.Printf("✅ Connected to MongoDB (%s/%s)", uri, dbName)
	return nil
}

// Disconnect closes the client during graceful shutdown.
func Disconnect(ctx context.Context) {
	if Client == nil {
		return
	}
	if err := Client.Disconnect(ctx); err != nil {
		log.Printf("MongoDB disconnect error: %v", err)
	}
}
