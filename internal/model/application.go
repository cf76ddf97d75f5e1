package model

import (
	"fmt"
	"time"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ApplicationStatus is the seller's decision on a rental application.
type ApplicationStatus string

const (
	StatusPending  ApplicationStatus = "pending"
	StatusAccepted ApplicationStatus = "accepted"
	StatusRejected ApplicationStatus = "rejected"
)

var ErrInvalidStatus = fmt.Errorf("status must be one of %q, %q, %q", StatusPending, StatusAccepted, StatusRejected)

// ParseApplicationStatus validates a raw status value.
func ParseApplicationStatus(s string) (ApplicationStatus, error) {
	switch st := ApplicationStatus(s); st {
	case StatusPending, StatusAccepted, StatusRejected:
		return st, nil
	}
	return "", ErrInvalidStatus
}

// Application is a renter's request to rent a property.
// PropertyID is the hex id of the property; it is not checked against the properties collection.
type Application struct {
	ID            primitive.ObjectID `bson:"_id,omitempty" json:"_id,omitempty"`
	PropertyID    string             `bson:"propertyId" json:"propertyId"`
	PropertyTitle string             `bson:"propertyTitle,omitempty" json:"propertyTitle,omitempty"`
	RenterEmail   string             `bson:"renterEmail" json:"renterEmail"`
	RenterName    string             `bson:"renterName,omitempty" json:"renterName,omitempty"`
	SellerEmail   string             `bson:"sellerEmail" json:"sellerEmail"`
	Message       string             `bson:"message,omitempty" json:"message,omitempty"`
	Status        ApplicationStatus  `bson:"status" json:"status"`
	CreatedAt     time.Time          `bson:"createdAt" json:"createdAt"`
}
