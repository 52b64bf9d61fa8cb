package mongorepo

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/webshop-labs/checkout/internal/dal/interfaces/icartrepo"
	"github.com/webshop-labs/checkout/internal/service/models/cart"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
)

// MongoCartRepository reads carts from the cart collection. Carts are owned
// by the cart service; checkout only reads them and empties them after a
// successful order.
type MongoCartRepository struct {
	collection *mongo.Collection
}

// NewMongoCartRepository creates a new Mongo cart repository.
func NewMongoCartRepository(db *mongo.Database) *MongoCartRepository {
	return &MongoCartRepository{
		collection: db.Collection("carts"),
	}
}

// GetCart retrieves the cart of a user.
func (m *MongoCartRepository) GetCart(ctx context.Context, userID int64) (*cart.Cart, error) {
	var c cart.Cart

	filter := bson.M{"user_id": userID}
	err := m.collection.FindOne(ctx, filter).Decode(&c)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, icartrepo.ErrCartNotFound
		}

		return nil, fmt.Errorf("failed to get cart: %w", err)
	}

	return &c, nil
}

// Empty removes all items from the cart of a user.
func (m *MongoCartRepository) Empty(ctx context.Context, userID int64) error {
	filter := bson.M{"user_id": userID}
	update := bson.M{
		"$set": bson.M{
			"items":      []cart.Item{},
			"updated_at": time.Now(),
		},
	}

	result, err := m.collection.UpdateOne(ctx, filter, update)
	if err != nil {
		return fmt.Errorf("failed to empty cart: %w", err)
	}
	if result.MatchedCount == 0 {
		return icartrepo.ErrCartNotFound
	}

	return nil
}
