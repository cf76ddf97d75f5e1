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

type PropertyRepository struct {
	coll *mongo.Collection
}

func NewPropertyRepository(db *mongo.Database) *PropertyRepository {
	return &PropertyRepository{coll: db.Collection(mongostore.PropertiesCollection)}
}

func (r *PropertyRepository) Insert(ctx context.Context, p *model.Property) (primitive.ObjectID, error) {
	if p.CreatedAt.IsZero() {
		p.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, p)
	if err != nil {
		return primitive.NilObjectID, fmt.Errorf("PropertyRepository.Insert: %w", err)
	}
	p.ID = insertedID(res.InsertedID)
	return p.ID, nil
}

// List returns every property in insertion order, or newest first.
func (r *PropertyRepository) List(ctx context.Context, newestFirst bool) ([]model.Property, error) {
	dir := 1
	if newestFirst {
		dir = -1
	}
	opts := options.Find().SetSort(bson.D{{Key: "_id", Value: dir}})
	return r.find(ctx, bson.M{}, opts, "List")
}

// FindByID returns nil, nil for unknown or malformed ids.
func (r *PropertyRepository) FindByID(ctx context.Context, id string) (*model.Property, error) {
	oid, ok := objectID(id)
	if !ok {
		return nil, nil
	}
	var p model.Property
	err := r.coll.FindOne(ctx, bson.M{"_id": oid}).Decode(&p)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.FindByID: %w", err)
	}
	return &p, nil
}

func (r *PropertyRepository) FindBySeller(ctx context.Context, email string) ([]model.Property, error) {
	return r.find(ctx, bson.M{"sellerEmail": email}, options.Find().SetSort(bson.D{{Key: "_id", Value: 1}}), "FindBySeller")
}

// Delete removes the property if present; a malformed id deletes nothing.
func (r *PropertyRepository) Delete(ctx context.Context, id string) (model.DeleteResult, error) {
	oid, ok := objectID(id)
	if !ok {
		return model.DeleteResult{Acknowledged: true}, nil
	}
	res, err := r.coll.DeleteOne(ctx, bson.M{"_id": oid})
	if err != nil {
		return model.DeleteResult{}, fmt.Errorf("PropertyRepository.Delete: %w", err)
	}
	return model.DeleteResult{Acknowledged: true, DeletedCount: res.DeletedCount}, nil
}

// SetPhoto records the GridFS file id of the property's photo.
func (r *PropertyRepository) SetPhoto(ctx context.Context, id, fileID string) error {
	oid, ok := objectID(id)
	if !ok {
		return fmt.Errorf("PropertyRepository.SetPhoto: invalid id %q", id)
	}
	if _, err := r.coll.UpdateOne(ctx, bson.M{"_id": oid}, bson.M{"$set": bson.M{"photoFileId": fileID}}); err != nil {
		return fmt.Errorf("PropertyRepository.SetPhoto: %w", err)
	}
	return nil
}

func (r *PropertyRepository) find(ctx context.Context, filter bson.M, opts *options.FindOptions, op string) ([]model.Property, error) {
	cur, err := r.coll.Find(ctx, filter, opts)
	if err != nil {
		return nil, fmt.Errorf("PropertyRepository.%s: %w", op, err)
	}
	list := []model.Property{}
	if err := cur.All(ctx, &list); err != nil {
		return nil, fmt.Errorf("PropertyRepository.%s: %w", op, err)
	}
	return list, nil
}
