package handlers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/Kingezdev/GreenGrass/config"
	"github.com/Kingezdev/GreenGrass/middleware"
	"github.com/Kingezdev/GreenGrass/moderation"
	"github.com/Kingezdev/GreenGrass/models"
	"github.com/Kingezdev/GreenGrass/utils"
)

type MessageController struct {
	collection *mongo.Collection
	properties *mongo.Collection
	policy     moderation.Policy
}

// NewMessageController wires the message store with the moderation
// policy applied to every outgoing message.
func NewMessageController(policy moderation.Policy) *MessageController {
	return &MessageController{
		collection: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_MESSAGES", "messages")),
		properties: config.GetCollection(config.CollectionName("MONGODB_COLLECTION_PROPERTIES", "properties")),
		policy:     policy,
	}
}

// SendMessageRequest is the payload to append one message to a thread.
// PropertyID optionally ties the thread to a listing for inquiry counts.
type SendMessageRequest struct {
	ThreadID   string `json:"threadId" validate:"required"`
	Text       string `json:"text"`
	PropertyID string `json:"propertyId,omitempty"`
}

// SendMessage appends a message to a conversation thread. The body is
// checked against the moderation policy first; a rejected message is
// never appended and is not retried.
func (mc *MessageController) SendMessage(c echo.Context) error {
	session, ok := middleware.CallerSession(c)
	if !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}

	var req SendMessageRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Invalid request body"})
	}
	if err := c.Validate(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "threadId is required"})
	}

	// Empty input is the caller's guard, rejected here before the policy
	// ever sees it.
	if strings.TrimSpace(req.Text) == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Message text is required"})
	}

	if verdict := mc.policy.Evaluate(req.Text); !verdict.Allowed {
		return c.JSON(http.StatusUnprocessableEntity, map[string]string{
			"error":  "Sharing contact info is not allowed.",
			"reason": verdict.Reason,
		})
	}

	ctx := c.Request().Context()
	seq, err := mc.nextSeq(ctx, req.ThreadID)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
	}

	msg := models.Message{
		ThreadID: req.ThreadID,
		Seq:      seq,
		From:     session.Name,
		FromID:   session.UserID,
		Text:     req.Text,
		SentAt:   time.Now(),
	}
	result, err := mc.collection.InsertOne(ctx, msg)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to send message"})
	}
	if oid, ok := result.InsertedID.(primitive.ObjectID); ok {
		msg.ID = oid
	}

	// The first message of a listing-bound thread is a new inquiry.
	if seq == 1 && utils.IsValidExternalID(req.PropertyID) {
		_, _ = mc.properties.UpdateOne(ctx, bson.M{"_id": req.PropertyID}, bson.M{"$inc": bson.M{"inquiries": 1}})
	}

	return c.JSON(http.StatusCreated, msg)
}

// GetThread returns the ordered message sequence of one conversation.
func (mc *MessageController) GetThread(c echo.Context) error {
	if _, ok := middleware.CallerSession(c); !ok {
		return c.JSON(http.StatusUnauthorized, map[string]string{"error": "No session"})
	}
	threadID := c.Param("threadId")
	if threadID == "" {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "Thread ID is required"})
	}

	ctx := c.Request().Context()
	opts := options.Find().SetSort(bson.M{"seq": 1})
	cursor, err := mc.collection.Find(ctx, bson.M{"threadId": threadID}, opts)
	if err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch messages"})
	}
	defer cursor.Close(ctx)

	messages := make([]models.Message, 0)
	if err := cursor.All(ctx, &messages); err != nil {
		return c.JSON(http.StatusInternalServerError, map[string]string{"error": "Failed to fetch messages"})
	}
	return c.JSON(http.StatusOK, messages)
}

// nextSeq yields the next monotonically increasing sequence number for a
// thread. A thread lives in one conversation view at a time, so the
// count+1 scheme is safe under the caller-serialized model.
func (mc *MessageController) nextSeq(ctx context.Context, threadID string) (int64, error) {
	count, err := mc.collection.CountDocuments(ctx, bson.M{"threadId": threadID})
	if err != nil {
		return 0, err
	}
	return count + 1, nil
}
