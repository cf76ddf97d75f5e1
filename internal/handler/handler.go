package handler

import (
	"context"
	"io"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"

	"rent-property-service/internal/model"
)

// UserStore is what the user routes and the admin guard need from storage.
type UserStore interface {
	FindByEmail(ctx context.Context, email string) (*model.User, error)
	UpdateProfile(ctx context.Context, email string, p model.ProfileUpdate) (model.UpdateResult, error)
}

type PropertyStore interface {
	Insert(ctx context.Context, p *model.Property) (primitive.ObjectID, error)
	List(ctx context.Context, newestFirst bool) ([]model.Property, error)
	FindByID(ctx context.Context, id string) (*model.Property, error)
	FindBySeller(ctx context.Context, email string) ([]model.Property, error)
	Delete(ctx context.Context, id string) (model.DeleteResult, error)
	SetPhoto(ctx context.Context, id, fileID string) error
}

type ApplicationReader interface {
	FindByRenter(ctx context.Context, email string) ([]model.Application, error)
	FindByProperty(ctx context.Context, propertyID string) ([]model.Application, error)
	FindLatest(ctx context.Context, propertyID, renterEmail string) (*model.Application, error)
}

type PhotoStore interface {
	Upload(ctx context.Context, file io.Reader, filename, contentType string) (string, error)
	Download(ctx context.Context, photoID string) ([]byte, string, error)
	Delete(ctx context.Context, photoID string) error
}

// internalError logs err under the handler's name and answers 500.
func internalError(c *gin.Context, where string, err error) {
	log.Printf("[%s] request_id=%s: %v", where, c.GetString("request_id"), err)
	c.JSON(http.StatusInternalServerError, gin.H{"message": "internal server error"})
}

func badRequest(c *gin.Context, err error) {
	c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
}
