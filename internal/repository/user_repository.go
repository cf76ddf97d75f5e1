package repository

import (
	"context"
	"errors"
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo"

	"rent-property-service/internal/model"
	mongostore "rent-property-service/internal/mongo"
)

type UserRepository struct {
	coll *mongo.Collection
}

func NewUserRepository(db *mongo.Database) *UserRepository {
	return &UserRepository{coll: db.Collection(mongostore.UsersCollection)}
}

// Insert stores a new user. Relies on the unique email index, so two
// concurrent signups for one email cannot both succeed.
func (r *UserRepository) Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error) {
	if u.CreatedAt.IsZero() {
		u.CreatedAt = time.Now().UTC()
	}
	res, err := r.coll.InsertOne(ctx, u)
	if err != nil {
		if mongo.IsDuplicateKeyError(err) {
			return primitive.NilObjectID, ErrDuplicateEmail
		}
		return primitive.NilObjectID, fmt.Errorf("UserRepository.Insert: %w", err)
	}
	u.ID = insertedID(res.InsertedID)
	return u.ID, nil
}

// FindByEmail returns nil, nil when no user has that email.
func (r *UserRepository) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	var u model.User
	err := r.coll.FindOne(ctx, bson.M{"email": email}).Decode(&u)
	if errors.Is(err, mongo.ErrNoDocuments) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("UserRepository.FindByEmail: %w", err)
	}
	return &u, nil
}

// UpdateProfile sets the non-empty fields of p on the user with that email.
func (r *UserRepository) UpdateProfile(ctx context.Context, email string, p model.ProfileUpdate) (model.UpdateResult, error) {
	set := bson.M{}
	if p.Name != "" {
		set["name"] = p.Name
	}
	if p.Phone != "" {
		set["phone"] = p.Phone
	}
	if p.Address != "" {
		set["address"] = p.Address
	}
	if p.PhotoURL != "" {
		set["photoUrl"] = p.PhotoURL
	}
	if len(set) == 0 {
		// Nothing to change; report whether the user exists.
		n, err := r.coll.CountDocuments(ctx, bson.M{"email": email})
		if err != nil {
			return model.UpdateResult{}, fmt.Errorf("UserRepository.UpdateProfile: %w", err)
		}
		return model.UpdateResult{Acknowledged: true, MatchedCount: n}, nil
	}
	return r.update(ctx, email, set, "UpdateProfile")
}

func (r *UserRepository) SetRole(ctx context.Context, email string, role model.Role) (model.UpdateResult, error) {
	return r.update(ctx, email, bson.M{"role": role}, "SetRole")
}

func (r *UserRepository) update(ctx context.Context, email string, set bson.M, op string) (model.UpdateResult, error) {
	res, err := r.coll.UpdateOne(ctx, bson.M{"email": email}, bson.M{"$set": set})
	if err != nil {
		return model.UpdateResult{}, fmt.Errorf("UserRepository.%s: %w", op, err)
	}
	return model.UpdateResult{
		Acknowledged:  true,
		MatchedCount:  res.MatchedCount,
		ModifiedCount: res.ModifiedCount,
	}, nil
}
