package handlers

import (
	"context"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kingezdev/GreenGrass/config"
	"github.com/Kingezdev/GreenGrass/middleware"
	"github.com/Kingezdev/GreenGrass/models"
	"github.com/Kingezdev/GreenGrass/query"
	"github.com/Kingezdev/GreenGrass/utils"
)

type FavoriteController struct {
	collection *mongo.Collection
	properties *mongo.Collection
}

func NewFavoriteController() *FavoriteController {
	return &FavoriteController{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_FAVORITES", "favorites")),
		properties: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
	}
}

func (fc *FavoriteController) CreateFavorite(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.FormValue("propertyId")
	if !utils.IsValidExternalID(propertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	exists, err := fc.properties.CountDocuments(context.Background(), bson.M{"_id": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property"})
	}
	if exists == 0 {
		return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
	}

	count, err := fc.collection.CountDocuments(context.Background(), bson.M{"userId": session.UserID, "propertyId": propertyID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check favorite"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Property already favorited"})
	}

	favorite := models.Favorite{
		ID:         primitive.NewObjectID(),
		UserID:     session.UserID,
		PropertyID: propertyID,
		AddedDate:  time.Now(),
	}
	if _, err := fc.collection.InsertOne(context.Background(), favorite); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to favorite property"})
	}
	return c.JSON(http.StatusCreated, favorite)
}

// ListFavorites returns the tenant's favorite view filtered and sorted
// like any other catalog: the saved listings are assembled in the order
// they were favorited and handed to the query engine.
func (fc *FavoriteController) ListFavorites(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	var spec query.Spec
	if err := c.Bind(&spec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	catalog, err := fc.tenantCatalog(c.Request().Context(), session.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch favorites"})
	}

	return c.JSON(http.StatusOK, query.Apply(catalog, spec))
}

func (fc *FavoriteController) DeleteFavorite(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	propertyID := c.Param("propertyId")
	if !utils.IsValidExternalID(propertyID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}
	if _, err := fc.collection.DeleteOne(context.Background(), bson.M{"userId": session.UserID, "propertyId": propertyID}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to remove favorite"})
	}
	return c.JSON(http.StatusOK, map[string]string{"message": "Favorite removed successfully"})
}

// tenantCatalog joins the tenant's favorites with the listing records
// they point at, ordered by when each was favorited. Recency ordering on
// a tenant catalog means "when I saved it", so the record's CreatedAt is
// replaced by the favorite's AddedDate in the assembled view.
func (fc *FavoriteController) tenantCatalog(ctx context.Context, userID primitive.ObjectID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.M{"addedDate": 1})
	cursor, err := fc.collection.Find(ctx, bson.M{"userId": userID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var favorites []models.Favorite
	if err := cursor.All(ctx, &favorites); err != nil {
		return nil, err
	}

	catalog := make([]models.Property, 0, len(favorites))
	for _, fav := range favorites {
		var property models.Property
		if err := fc.properties.FindOne(ctx, bson.M{"_id": fav.PropertyID}).Decode(&property); err != nil {
			// Listing deleted since it was favorited; drop it from the view.
			continue
		}
		property.CreatedAt = fav.AddedDate
		catalog = append(catalog, property)
	}
	return catalog, nil
}
