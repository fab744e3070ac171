package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Caller roles. The role acts as a capability tag on the catalog the
// caller queries: landlord catalogs expose views/inquiries metrics,
// tenant catalogs are favorite views.
const (
	RoleLandlord = "landlord"
	RoleTenant   = "tenant"
)

// Session identifies the caller for one request. It is decoded from an
// externally issued bearer token by the session middleware and passed
// explicitly to anything that needs the caller's identity; no component
// reads it from ambient state.
type Session struct {
	UserID primitive.ObjectID `json:"userId"`
	Name   string             `json:"name"`
	Role   string             `json:"role"`
}

// IsLandlord reports whether the session carries the landlord capability.
func (s Session) IsLandlord() bool {
	return s.Role == RoleLandlord
}
