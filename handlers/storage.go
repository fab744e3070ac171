package handlers

import (
	"context"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kingezdev/GreenGrass/config"
	"github.com/Kingezdev/GreenGrass/models"
)

// mongoTransactionLog is the production TransactionLog on the
// transactions collection.
type mongoTransactionLog struct {
	collection *mongo.Collection
}

func NewMongoTransactionLog() TransactionLog {
	return &mongoTransactionLog{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_TRANSACTIONS", "transactions")),
	}
}

func (m *mongoTransactionLog) Create(ctx context.Context, tx models.Transaction) error {
	if tx.ID.IsZero() {
		tx.ID = primitive.NewObjectID()
	}
	_, err := m.collection.InsertOne(ctx, tx)
	return err
}

func (m *mongoTransactionLog) MarkStatus(ctx context.Context, reference, status, gatewayID string, completedAt time.Time) error {
	update := bson.M{"status": status, "completedAt": completedAt}
	if gatewayID != "" {
		update["gatewayId"] = gatewayID
	}
	_, err := m.collection.UpdateOne(ctx, bson.M{"reference": reference}, bson.M{"$set": update})
	return err
}

func (m *mongoTransactionLog) ListByUser(ctx context.Context, userID primitive.ObjectID) ([]models.Transaction, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": -1})
	cursor, err := m.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	transactions := make([]models.Transaction, 0)
	if err := cursor.All(ctx, &transactions); err != nil {
		return nil, err
	}
	return transactions, nil
}

// mongoPropertyChecker answers existence checks against the properties
// collection.
type mongoPropertyChecker struct {
	collection *mongo.Collection
}

func NewMongoPropertyChecker() PropertyChecker {
	return &mongoPropertyChecker{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

func (m *mongoPropertyChecker) Exists(ctx context.Context, externalID string) (bool, error) {
	count, err := m.collection.CountDocuments(ctx, bson.M{"_id": externalID})
	if err != nil {
		return false, err
	}
	return count > 0, nil
}
