// internal/repository/mongo/session_repo.go
package mongo

import (
	"alcyxob/fitsocial/internal/domain"
	"alcyxob/fitsocial/internal/repository"
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"
)

const sessionCollectionName = "sessions"

// sessionDocument wraps the record with its fixed key and a write timestamp.
type sessionDocument struct {
	Key       string         `bson:"_id"`
	Session   domain.Session `bson:"session"`
	UpdatedAt time.Time      `bson:"updatedAt"`
}

// mongoSessionRepository implements repository.SessionRepository. Every
// client process pointed at the same database shares one record.
type mongoSessionRepository struct {
	collection *mongo.Collection
}

// NewMongoSessionRepository creates a new session repository.
func NewMongoSessionRepository(db *mongo.Database) repository.SessionRepository {
	return &mongoSessionRepository{
		collection: db.Collection(sessionCollectionName),
	}
}

func (r *mongoSessionRepository) Get(ctx context.Context) (*domain.Session, error) {
	var doc sessionDocument
	err := r.collection.FindOne(ctx, bson.M{"_id": domain.SessionKey}).Decode(&doc)
	if err != nil {
		if errors.Is(err, mongo.ErrNoDocuments) {
			return nil, repository.ErrNotFound
		}
		return nil, err
	}
	return &doc.Session, nil
}

// Save upserts the record; concurrent writers overwrite each other.
func (r *mongoSessionRepository) Save(ctx context.Context, s *domain.Session) error {
	if s == nil || s.User.ID == "" {
		return errors.New("session with a user id is required")
	}
	doc := sessionDocument{
		Key:       domain.SessionKey,
		Session:   *s,
		UpdatedAt: time.Now().UTC(),
	}
	_, err := r.collection.ReplaceOne(ctx, bson.M{"_id": domain.SessionKey}, doc, options.Replace().SetUpsert(true))
	return err
}

func (r *mongoSessionRepository) Delete(ctx context.Context) error {
	_, err := r.collection.DeleteOne(ctx, bson.M{"_id": domain.SessionKey})
	return err
}
