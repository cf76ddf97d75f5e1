package model

import (
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// Property is a rental listing posted by a seller.
type Property struct {
	ID          primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	SellerEmail string             `bson:"sellerEmail" json:"sellerEmail"`
	SellerName  string             `bson:"sellerName,omitempty" json:"sellerName,omitempty"`
	Title       string             `bson:"title" json:"title"`
	Description string             `bson:"description,omitempty" json:"description,omitempty"`
	Location    string             `bson:"location,omitempty" json:"location,omitempty"`
	Price       float64            `bson:"price" json:"price"`
	Bedrooms    int                `bson:"bedrooms,omitempty" json:"bedrooms,omitempty"`
	Bathrooms   int                `bson:"bathrooms,omitempty" json:"bathrooms,omitempty"`
	Area        float64            `bson:"area,omitempty" json:"area,omitempty"`
	Type        string             `bson:"type,omitempty" json:"type,omitempty"` // flat, house, room...
	ImageURL    string             `bson:"imageUrl,omitempty" json:"imageUrl,omitempty"`
	PhotoFileID string             `bson:"photoFileId,omitempty" json:"photoFileId,omitempty"`
	CreatedAt   time.Time          `bson:"createdAt" json:"createdAt"`
}
