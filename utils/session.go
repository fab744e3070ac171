package utils

import (
	"errors"
	"os"

	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"github.com/Kingezdev/GreenGrass/models"
)

// SessionClaims is the token payload the platform's account service puts
// in a bearer token. This service only decodes tokens; it never issues
// them — account handling lives outside this codebase.
type SessionClaims struct {
	UserID primitive.ObjectID `json:"user_id"`
	Name   string             `json:"name"`
	Role   string             `json:"role"`
	jwt.RegisteredClaims
}

// ParseSessionToken validates tokenString against JWT_SECRET and returns
// the caller session it carries.
func ParseSessionToken(tokenString string) (models.Session, error) {
	jwtSecret := os.Getenv("JWT_SECRET")
	if jwtSecret == "" {
		return models.Session{}, errors.New("JWT_SECRET not set")
	}

	token, err := jwt.ParseWithClaims(tokenString, &SessionClaims{}, func(token *jwt.Token) (interface{}, error) {
		return []byte(jwtSecret), nil
	})
	if err != nil {
		return models.Session{}, err
	}

	claims, ok := token.Claims.(*SessionClaims)
	if !ok || !token.Valid {
		return models.Session{}, errors.New("invalid token")
	}

	return models.Session{UserID: claims.UserID, Name: claims.Name, Role: claims.Role}, nil
}
