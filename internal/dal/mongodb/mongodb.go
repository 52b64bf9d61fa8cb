package mongodb

import (
	"context"
	"fmt"
	"os"
	"time"

	"github.com/spf13/viper"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MustNewDatabase connects to MongoDB and returns the cart database handle.
func MustNewDatabase() *mongo.Database {
	uri := fmt.Sprintf(
		"mongodb://%s:%s@%s:27017",
		os.Getenv("CHECKOUT_MONGO_USER"),
		os.Getenv("CHECKOUT_MONGO_PASSWORD"),
		os.Getenv("CHECKOUT_MONGO_HOST"),
	)

	clientOpts := options.Client().
		ApplyURI(uri).
		SetConnectTimeout(10 * time.Second).
		SetServerSelectionTimeout(5 * time.Second).
		SetMaxPoolSize(100).
		SetMinPoolSize(10)

	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()

	client, err := mongo.Connect(ctx, clientOpts)
	if err != nil {
		panic(fmt.Sprintf("failed to connect to MongoDB: %v", err))
	}

	if err := client.Ping(ctx, nil); err != nil {
		panic(fmt.Sprintf("failed to ping MongoDB: %v", err))
	}

	return client.Database(viper.GetString("mongo.database"))
}
