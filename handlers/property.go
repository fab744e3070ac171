package handlers

import (
	"context"
	"net/http"
	"os"
	"strconv"
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

// listingCachePrefix namespaces cached query results per landlord so a
// catalog change only invalidates that landlord's entries.
const listingCachePrefix = "listings"

type PropertyController struct {
	collection *mongo.Collection
	cacheTTL   time.Duration
}

func NewPropertyController() *PropertyController {
	ttl := 60 * time.Second
	if v := os.Getenv("LISTING_CACHE_TTL_SECONDS"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			ttl = time.Duration(n) * time.Second
		}
	}
	return &PropertyController{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		cacheTTL:   ttl,
	}
}

func (pc *PropertyController) CreateProperty(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	var property models.Property
	if err := c.Bind(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&property); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing or invalid listing fields"})
	}
	if !utils.IsValidExternalID(property.ExternalID) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid externalId: must be PROP followed by a number greater than 1000"})
	}
	if !models.ValidStatus(property.Status) {
		property.Status = models.StatusActive
	}

	count, err := pc.collection.CountDocuments(context.Background(), bson.M{"_id": property.ExternalID})
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to check property existence"})
	}
	if count > 0 {
		return c.JSON(http.StatusConflict, map[string]string{"error": "Property with this externalId already exists"})
	}

	property.CreatedBy = &session.UserID
	property.Views = 0
	property.Inquiries = 0
	property.CreatedAt = time.Now()
	property.UpdatedAt = time.Now()
	if _, err := pc.collection.InsertOne(context.Background(), property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to create property"})
	}

	pc.invalidateCatalogCache(c, session)
	return c.JSON(http.StatusCreated, property)
}

func (pc *PropertyController) GetProperty(c echo.Context) error {
	id := c.Param("id")
	if !utils.IsValidExternalID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	session, _ := middleware.CallerSession(c)

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}

	// A tenant viewing a listing counts toward its views metric; the
	// owner browsing their own dashboard does not.
	if property.CreatedBy == nil || *property.CreatedBy != session.UserID {
		_, _ = pc.collection.UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$inc": bson.M{"views": 1}})
		property.Views++
	}

	return c.JSON(http.StatusOK, property)
}

// UpdateProperty replaces the mutable listing fields wholesale; partial
// patches are not supported, an edit is always a whole-record replace.
func (pc *PropertyController) UpdateProperty(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	id := c.Param("id")
	if !utils.IsValidExternalID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.CreatedBy == nil || *property.CreatedBy != session.UserID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to update this property"})
	}

	var update models.Property
	if err := c.Bind(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&update); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Missing or invalid listing fields"})
	}
	if !models.ValidStatus(update.Status) {
		update.Status = property.Status
	}

	updateDoc := bson.M{
		"title":     update.Title,
		"location":  update.Location,
		"price":     update.Price,
		"status":    update.Status,
		"verified":  update.Verified,
		"updatedAt": time.Now(),
	}
	if _, err := pc.collection.UpdateOne(context.Background(), bson.M{"_id": id}, bson.M{"$set": updateDoc}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to update property"})
	}

	if err := pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch updated property"})
	}

	pc.invalidateCatalogCache(c, session)
	return c.JSON(http.StatusOK, property)
}

func (pc *PropertyController) DeleteProperty(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	id := c.Param("id")
	if !utils.IsValidExternalID(id) {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid property ID"})
	}

	var property models.Property
	err := pc.collection.FindOne(context.Background(), bson.M{"_id": id}).Decode(&property)
	if err != nil {
		if err == mongo.ErrNoDocuments {
			return c.JSON(http.StatusNotFound, map[string]string{"error": "Property not found"})
		}
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch property"})
	}
	if property.CreatedBy == nil || *property.CreatedBy != session.UserID {
		return c.JSON(http.StatusForbidden, map[string]string{"error": "You are not authorized to delete this property"})
	}

	if _, err := pc.collection.DeleteOne(context.Background(), bson.M{"_id": id}); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to delete property"})
	}

	pc.invalidateCatalogCache(c, session)
	return c.JSON(http.StatusOK, map[string]string{"message": "Property deleted successfully"})
}

// ListProperties returns the landlord's catalog filtered and sorted by
// the search/status/sortBy query parameters. The filtered view is cached
// briefly in redis keyed by caller and parameters.
func (pc *PropertyController) ListProperties(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	var spec query.Spec
	if err := c.Bind(&spec); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid query parameters"})
	}

	cacheKey := utils.GenerateQueryCacheKey(listingCachePrefix+":"+session.UserID.Hex(), map[string]string{
		"search": spec.SearchTerm,
		"status": spec.Status,
		"sortBy": spec.SortBy,
	})
	var cached []models.Property
	if hit, err := utils.GetCached(c.Request().Context(), cacheKey, &cached); err == nil && hit {
		return c.JSON(http.StatusOK, cached)
	}

	catalog, err := pc.ownerCatalog(c.Request().Context(), session.UserID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch properties"})
	}

	results := query.Apply(catalog, spec)

	_ = utils.SetCached(c.Request().Context(), cacheKey, results, pc.cacheTTL)
	return c.JSON(http.StatusOK, results)
}

// ownerCatalog loads a landlord's listings in insertion order (creation
// time ascending), the order the query engine treats as the catalog's
// original order.
func (pc *PropertyController) ownerCatalog(ctx context.Context, ownerID primitive.ObjectID) ([]models.Property, error) {
	opts := options.Find().SetSort(bson.M{"createdAt": 1})
	cursor, err := pc.collection.Find(ctx, bson.M{"createdBy": ownerID}, opts)
	if err != nil {
		return nil, err
	}
	defer cursor.Close(ctx)

	var catalog []models.Property
	for cursor.Next(ctx) {
		var property models.Property
		if err := cursor.Decode(&property); err != nil {
			continue
		}
		catalog = append(catalog, property)
	}
	return catalog, nil
}

func (pc *PropertyController) invalidateCatalogCache(c echo.Context, session models.Session) {
	_ = utils.InvalidatePrefix(c.Request().Context(), listingCachePrefix+":"+session.UserID.Hex())
}
