package service

import (
	"context"
	"errors"
	"fmt"

	"rent-property-service/internal/model"
)

// ErrNotSeller means no application with that id belongs to the given seller.
var ErrNotSeller = errors.New("application not found for seller")

// ApplicationService contains the rules around rental applications.
type ApplicationService struct {
	apps       ApplicationStore
	properties PropertyFinder
}

func NewApplicationService(apps ApplicationStore, properties PropertyFinder) *ApplicationService {
	return &ApplicationService{apps: apps, properties: properties}
}

// Apply records a's application on behalf of renterEmail.
// New applications always start pending; only the seller's decision moves them.
// Seller and title are copied from the property when it exists; a missing
// property does not block the application.
func (s *ApplicationService) Apply(ctx context.Context, renterEmail string, a *model.Application) (model.InsertResult, error) {
	a.RenterEmail = renterEmail
	a.Status = model.StatusPending

	p, err := s.properties.FindByID(ctx, a.PropertyID)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("ApplicationService.Apply: %w", err)
	}
	if p != nil {
		a.SellerEmail = p.SellerEmail
		if a.PropertyTitle == "" {
			a.PropertyTitle = p.Title
		}
	}

	id, err := s.apps.Insert(ctx, a)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("ApplicationService.Apply: %w", err)
	}
	return model.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

// Decide sets the status of application id if sellerEmail owns it.
func (s *ApplicationService) Decide(ctx context.Context, id, sellerEmail, rawStatus string) (model.UpdateResult, model.ApplicationStatus, error) {
	status, err := model.ParseApplicationStatus(rawStatus)
	if err != nil {
		return model.UpdateResult{}, "", err
	}

	res, err := s.apps.UpdateStatusForSeller(ctx, id, sellerEmail, status)
	if err != nil {
		return model.UpdateResult{}, "", fmt.Errorf("ApplicationService.Decide: %w", err)
	}
	if res.MatchedCount == 0 {
		return res, "", ErrNotSeller
	}
	return res, status, nil
}
