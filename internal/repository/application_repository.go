package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"
	"go.mongodb.org/mongo-driver/mongo/options"

	"rent-property-service/internal/model"
	mongostore "rent-property-service/internal/mongo"
)

type ApplicationRepository struct {
	coll *mongo.Collection
}

func NewApplicationRepository(db *mongo.Database) *ApplicationRepository {
	return &ApplicationRepository{coll: db.Collection(mongostore.ApplicationsCollection)}
}

func (r *ApplicationRepository) Insert(ctx context.Context, a *model.Application) (primitive.ObjectID, error) {
	if a.CreatedAt.IsZero() {
		a.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, a)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("ApplicationRepository.Insert: %w", err)
	}
	a.ID = insertedID(res.InsertedID)
	return a.ID, nil
}

func (r *ApplicationRepository) FindByRenter(ctx context.Context, email string) ([]model.Application, error) {
	return r.find(ctx, bson.M{"renterEmail": email}, "FindByRenter")
}

func (r *ApplicationRepository) FindByProperty(ctx context.Context, propertyID string) ([]model.Application, error) {
	return r.find(ctx, bson.M{"propertyId": propertyID}, "FindByProperty")
}

// FindLatest returns the most recent application of renterEmail for the
// property, or nil, nil when there is none.
func (r *ApplicationRepository) FindLatest(ctx context.Context, propertyID, renterEmail string) (*model.Application, error) {
	opts := options.FindOne().SetSort(bson.D{{Key: "_id", Value: -1}})
	var a model.Application
	err := r.coll.FindOne(ctx, bson.M{"propertyId": propertyID, "renterEmail": renterEmail}, opts).Decode(&a)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.FindLatest: %w", err)
	}
	return &a, nil
}

// UpdateStatusForSeller sets the status of application id only if it belongs
// to sellerEmail. Ownership check and mutation are one filtered update.
// A malformed id matches nothing.
func (r *ApplicationRepository) UpdateStatusForSeller(ctx context.Context, id, sellerEmail string, status model.ApplicationStatus) (model.UpdateResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	filter := bson.M{"_id": oid, "sellerEmail": sellerEmail}
	res, err := r.coll.UpdateOne(ctx, filter, bson.M{"$set": bson.M{"status": status}})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("ApplicationRepository.UpdateStatusForSeller: %w", err)
	}
	return model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}

func (r *ApplicationRepository) find(ctx context.Context, filter bson.M, op string) ([]model.Application, error) {
	cur, err := r.coll.Find(ctx, filter, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}))
	if err != nil {
		return nil, fmt.Errorf("ApplicationRepository.%s: %w", op, err)
	}
	list := []model.Application{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("ApplicationRepository.%s: %w", op, err)
	}
	return list, nil
}
