package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Listing status values. Landlord catalogs use active/pending/rented,
// tenant favorite views use available/applied.
const (
	StatusActive    = "active"
	StatusPending   = "pending"
	StatusRented    = "rented"
	StatusAvailable = "available"
	StatusApplied   = "applied"
)

// Property is one rentable listing. Price is kept in the smallest
// currency unit (kobo). Views and Inquiries are landlord-only metrics.
type Property struct {
	ExternalID string              `bson:"_id" json:"externalId"`
	Title      string              `bson:"title" json:"title" validate:"required"`
	Location   string              `bson:"location" json:"location" validate:"required"`
	Price      int64               `bson:"price" json:"price" validate:"gte=0"`
	Status     string              `bson:"status" json:"status"`
	Views      int64               `bson:"views" json:"views"`
	Inquiries  int64               `bson:"inquiries" json:"inquiries"`
	Verified   bool                `bson:"verified" json:"verified"`
	CreatedBy  *primitive.ObjectID `bson:"createdBy" json:"createdBy"`
	CreatedAt  time.Time           `bson:"createdAt" json:"createdAt"`
	UpdatedAt  time.Time           `bson:"updatedAt" json:"updatedAt"`
}

// ValidStatus reports whether s is one of the enumerated listing statuses.
func ValidStatus(s string) bool {
	switch s {
	case StatusActive, StatusPending, StatusRented, StatusAvailable, StatusApplied:
		return true
	}
	return false
}
