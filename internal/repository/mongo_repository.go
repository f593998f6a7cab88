package repository

import (
	"context"
	"errors"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"github.com/iliyamo/portfolio-backend/internal/model"
)

// MongoStatusRepo stores status checks as documents in the status_checks
// collection.
type MongoStatusRepo struct {
	coll *mongo.Collection
}

func NewMongoStatusRepo(db *mongo.Database) *MongoStatusRepo {
	return &MongoStatusRepo{coll: db.Collection(StatusCollection)}
}

func (r *MongoStatusRepo) Insert(ctx context.Context, s *model.StatusCheck) error {
	res, err := r.coll.InsertOne(ctx, s)
	return insertResult(res, err, "status check")
}

// List returns up to limit status checks in natural order.
func (r *MongoStatusRepo) List(ctx context.Context, limit int) ([]model.StatusCheck, error) {
	opts := options.Find().SetLimit(int64(clampLimit(limit, StatusListLimit)))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find status checks: %w", err)
	}
	var out []model.StatusCheck
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode status checks: %w", err)
	}
	return out, nil
}

// MongoContactRepo stores contact submissions in the contact_submissions
// collection.
type MongoContactRepo struct {
	coll *mongo.Collection
}

func NewMongoContactRepo(db *mongo.Database) *MongoContactRepo {
	return &MongoContactRepo{coll: db.Collection(ContactCollection)}
}

func (r *MongoContactRepo) Insert(ctx context.Context, s *model.ContactSubmission) error {
	res, err := r.coll.InsertOne(ctx, s)
	return insertResult(res, err, "contact submission")
}

// ListRecent sorts on submittedAt descending and applies the limit on the
// server.
func (r *MongoContactRepo) ListRecent(ctx context.Context, limit int) ([]model.ContactSubmission, error) {
	opts := options.Find().
		SetSort(bson.D{{Key: "submittedAt", Value: -1}}).
		SetLimit(int64(clampLimit(limit, ContactListLimit)))
	cur, err := r.coll.Find(ctx, bson.D{}, opts)
	if err != nil {
		return nil, fmt.Errorf("find contact submissions: %w", err)
	}
	var out []model.ContactSubmission
	if err := cur.All(ctx, &out); err != nil {
		return nil, fmt.Errorf("decode contact submissions: %w", err)
	}
	return out, nil
}

// EnsureIndexes creates the submittedAt index used by the admin listing.
// It is idempotent.
func (r *MongoContactRepo) EnsureIndexes(ctx context.Context) error {
	_, err := r.coll.Indexes().CreateOne(ctx, mongo.IndexModel{
		Keys: bson.D{{Key: "submittedAt", Value: -1}},
	})
	return err
}

func insertResult(res *mongo.InsertOneResult, err error, what string) error {
	if err != nil {
		if errors.Is(err, mongo.ErrUnacknowledgedWrite) {
			return ErrNotAcknowledged
		}
		return fmt.Errorf("insert %s: %w", what, err)
	}
	if res == nil || res.InsertedID == nil {
		return ErrNotAcknowledged
	}
	return nil
}

// NewMongoStore returns a Store over db. Closing the store disconnects
// client.
func NewMongoStore(client *mongo.Client, db *mongo.Database) *Store {
	return &Store{
		Status:   NewMongoStatusRepo(db),
		Contacts: NewMongoContactRepo(db),
		close:    client.Disconnect,
	}
}
