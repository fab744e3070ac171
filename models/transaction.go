package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Transaction record statuses.
const (
	TxPending    = "pending"
	TxSuccessful = "successful"
	TxFailed     = "failed"
	TxAbandoned  = "abandoned"
)

// Transaction is the durable record of one payment attempt. Reference is
// a UUID generated when the payment is submitted; GatewayID is the
// confirmation id reported by the payment backend on settlement.
type Transaction struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	Reference   string             `bson:"reference" json:"reference"`
	UserID      primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID  string             `bson:"propertyId" json:"propertyId"`
	Amount      int64              `bson:"amount" json:"amount"`
	Currency    string             `bson:"currency" json:"currency"`
	Method      string             `bson:"method" json:"method"`
	Status      string             `bson:"status" json:"status"`
	GatewayID   string             `bson:"gatewayId,omitempty" json:"gatewayId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
	CompletedAt *time.Time         `bson:"completedAt,omitempty" json:"completedAt,omitempty"`
}
