package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Favorite links a tenant to a saved property. AddedDate drives recency
// ordering when the favorite view is queried.
type Favorite struct {
	ID         primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	UserID     primitive.ObjectID `bson:"userId" json:"userId"`
	PropertyID string             `bson:"propertyId" json:"propertyId"`
	AddedDate  time.Time          `bson:"addedDate" json:"addedDate"`
}
