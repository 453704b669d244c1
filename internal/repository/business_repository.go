package repository

import (
	"context"
	"errors"
	"time"

	"go.mongodb.org/mongo-driver/v2/bson"
	"go.mongodb.org/mongo-driver/v2/mongo"
	"go.mongodb.org/mongo-driver/v2/mongo/options"

	"github.com/aidesk/saas-backend/internal/model"
)

// BusinessRepo persists tenant records in the `business` collection.
type BusinessRepo struct {
	coll *mongo.Collection
}

func NewBusinessRepo(db *mongo.Database) *BusinessRepo {
	return &BusinessRepo{coll: db.Collection("business")}
}

// Create inserts the business and fills in its id and timestamps.
func (r *BusinessRepo) Create(ctx context.Context, b *model.Business) error {
	now := time.Now().UTC()
	b.CreatedAt = now
	b.UpdatedAt = now
	res, err := r.coll.InsertOne(ctx, b)
	if err != nil {
		return err
	}
	if id, ok := res.InsertedID.(bson.ObjectID); ok {
		b.ID = id
	}
	return nil
}

func (r *BusinessRepo) GetByID(ctx context.Context, id string) (model.Business, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Business{}, ErrNotFound
	}
	var b model.Business
	err = r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return model.Business{}, ErrNotFound
	}
	return b, err
}

// List returns one page of businesses, skipping (page-1)*limit records.
func (r *BusinessRepo) List(ctx context.Context, page, limit int64) ([]model.Business, error) {
	opts := options.Find().SetSkip((page - 1) * limit).SetLimit(limit)
	cur, err := r.coll.Find(ctx, bson.M{}, opts)
	if err != nil {
		return nil, err
	}
	businesses := []model.Business{}
	if err := cur.All(ctx, &businesses); err != nil {
		return nil, err
	}
	return businesses, nil
}

// Update applies a partial $set of the given fields and returns the updated
// document.
func (r *BusinessRepo) Update(ctx context.Context, id string, fields map[string]any) (model.Business, error) {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return model.Business{}, ErrNotFound
	}
	delete(fields, "_id")
	fields["updatedAt"] = time.Now().UTC()
	res, err := r.coll.UpdateByID(ctx, oid, bson.M{"$set": fields})
	if err != nil {
		return model.Business{}, err
	}
	if res.MatchedCount == 0 {
		return model.Business{}, ErrNotFound
	}
	var b model.Business
	if err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&b); err != nil {
		return model.Business{}, err
	}
	return b, nil
}

func (r *BusinessRepo) Delete(ctx context.Context, id string) error {
	oid, err := bson.ObjectIDFromHex(id)
	if err != nil {
		return ErrNotFound
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return err
	}
	if res.DeletedCount == 0 {
		return ErrNotFound
	}
	return nil
}

// ApplyTicketEvent folds one support-ticket event into the analytics
// counters of a business.
//
// The read-modify-write is not atomic across concurrent consumers. The
// queue is consumed by a single worker, which is the only writer of these
// counters.
func (r *BusinessRepo) ApplyTicketEvent(ctx context.Context, businessID string, resolved bool, responseSecs, satisfaction float64) error {
	b, err := r.GetByID(ctx, businessID)
	if err != nil {
		return err
	}
	_, err = r.coll.UpdateByID(ctx, b.ID, bson.M{"$set": bson.M{
		"analytics": b.Analytics.ApplyTicket(resolved, responseSecs, satisfaction),
		"updatedAt": time.Now().UTC(),
	}})
	return err
}
