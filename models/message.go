package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is one unit of conversation. Seq increases monotonically
// within a thread; a message only gets a Seq after the moderation
// filter has allowed it.
type Message struct {
	ID       primitive.ObjectID `bson:"_id,omitempty" json:"id"`
	ThreadID string             `bson:"threadId" json:"threadId"`
	Seq      int64              `bson:"seq" json:"seq"`
	From     string             `bson:"from" json:"from"`
	FromID   primitive.ObjectID `bson:"fromId" json:"fromId"`
	Text     string             `bson:"text" json:"text"`
	SentAt   time.Time          `bson:"sentAt" json:"sentAt"`
}
