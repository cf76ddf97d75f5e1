package service

import (
	"context"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rent-property-service/internal/model"
)

// UserStore is the subset of the user repository the services need.
type UserStore interface {
	Insert(ctx context.Context, u *model.User) (primitive.ObjectID, error)
	FindByEmail(ctx context.Context, email string) (*model.User, error)
}

type PropertyFinder interface {
	FindByID(ctx context.Context, id string) (*model.Property, error)
}

type ApplicationStore interface {
	Insert(ctx context.Context, a *model.Application) (primitive.ObjectID, error)
	UpdateStatusForSeller(ctx context.Context, id, sellerEmail string, status model.ApplicationStatus) (model.UpdateResult, error)
}

type TokenIssuer interface {
	Issue(email string) (string, error)
}
