package models

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Message is an immutable notification record written as a side effect of
// workflow transitions. Messages are append-only and never mutated.
type Message struct {
	ID          primitive.ObjectID `json:"id" bson:"_id,omitempty"`
	DateSent    time.Time          `json:"date_sent" bson:"date_sent"`
	Subject     string             `json:"subject" bson:"subject"`
	Body        string             `json:"body" bson:"body"`
	FromEmail   string             `json:"from_email" bson:"from_email"`
	ToEmail     string             `json:"to_email" bson:"to_email"`
	RecipientID uint               `json:"recipient_id" bson:"recipient_id"`
}
