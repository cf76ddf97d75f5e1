package repository

import (
	"errors"

	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ErrDuplicateEmail is returned by UserRepository.Insert when the email is already registered.
var ErrDuplicateEmail = errors.New("email already registered")

// objectID parses a hex id. ok is false for malformed ids, which callers
// treat the same as "no such document".
func objectID(id string) (primitive.ObjectID, bool) {
	oid, err := primitive.ObjectIDFromHex(id)
	if err != nil {
		return primitive.NilObjectID, false
	}
	return oid, true
}

func insertedID(v interface{}) primitive.ObjectID {
	if oid, ok := v.(primitive.ObjectID); ok {
		return oid
	}
	return primitive.NilObjectID
}
