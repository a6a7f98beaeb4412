package repositories

import (
	"context"
	"time"

	"github.com/cinelist/backend/internal/models"
	"github.com/cinelist/backend/pkg/apperrors"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

// MessageRepository defines the interface for the append-only message archive
type MessageRepository interface {
	Create(ctx context.Context, msg *models.Message) error
	ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.Message, error)
}

// MongoMessageRepository implements MessageRepository for MongoDB
type MongoMessageRepository struct {
	collection *mongo.Collection
}

// NewMongoMessageRepository creates a new MongoMessageRepository
func NewMongoMessageRepository(db *mongo.Database) *MongoMessageRepository {
	return &MongoMessageRepository{collection: db.Collection("messages")}
}

// Create appends a message to the archive
func (r *MongoMessageRepository) Create(ctx context.Context, msg *models.Message) error {
	msg.ID = primitive.NewObjectID()
	if msg.DateSent.IsZero() {
		msg.DateSent = time.Now()
	}
	if _, err := r.collection.InsertOne(ctx, msg); err != nil {
		return apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to store message")
	}
	return nil
}

// ListByRecipient retrieves a user's messages, newest first
func (r *MongoMessageRepository) ListByRecipient(ctx context.Context, recipientID uint, limit int64) ([]models.Message, error) {
	findOptions := options.Find().SetSort(bson.D{{Key: "date_sent", Value: -1}})
	if limit > 0 {
		findOptions = findOptions.SetLimit(limit)
	}
	cursor, err := r.collection.Find(ctx, bson.M{"recipient_id": recipientID}, findOptions)
	if err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to list messages")
	}
	defer cursor.Close(ctx)

	var messages []models.Message
	if err = cursor.All(ctx, &messages); err != nil {
		return nil, apperrors.Wrap(err, apperrors.ErrCodeInternalError, "failed to decode messages")
	}
	return messages, nil
}
