// Package memrepo is an in-memory stand-in for the Mongo repositories,
// used by handler, middleware and service tests.
package memrepo

import (
	"context"
	"errors"
	"io"
	"sync"

	"go.mongodb.org/mongo-driver/bson/primitive"

	"rent-property-service/internal/model"
	"rent-property-service/internal/repository"
)

// ErrStore is what every method returns once Fail has been called.
var ErrStore = errors.New("memrepo: store unavailable")

// Store holds all three collections plus photos behind one mutex.
type Store struct {
	mu           sync.Mutex
	failing      bool
	users        map[string]model.User
	properties   []model.Property
	applications []model.Application
	photos       map[string]photo
}

type photo struct {
	data        []byte
	contentType string
}

func New() *Store {
	return &Store{
		users:  map[string]model.User{},
		photos: map[string]photo{},
	}
}

// Fail makes every subsequent call return ErrStore.
func (s *Store) Fail() {
	s.mu.Lock()
	s.failing = true
	s.mu.Unlock()
}

func (s *Store) Users() *Users               { return &Users{s} }
func (s *Store) Properties() *Properties     { return &Properties{s} }
func (s *Store) Applications() *Applications { return &Applications{s} }
func (s *Store) Photos() *Photos             { return &Photos{s} }

func (s *Store) lock() error {
	s.mu.Lock()
	if s.failing {
		s.mu.Unlock()
		return ErrStore
	}
	return nil
}

type Users struct{ s *Store }

func (r *Users) Insert(_ context.Context, u *model.User) (primitive.ObjectID, error) {
	if err := r.s.lock(); err != nil {
		return primitive.NilObjectID, err
	}
	defer r.s.mu.Unlock()
	if _, ok := r.s.users[u.Email]; ok {
		return primitive.NilObjectID, repository.ErrDuplicateEmail
	}
	u.ID = primitive.NewObjectID()
	r.s.users[u.Email] = *u
	return u.ID, nil
}

func (r *Users) FindByEmail(_ context.Context, email string) (*model.User, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return nil, nil
	}
	return &u, nil
}

func (r *Users) UpdateProfile(_ context.Context, email string, p model.ProfileUpdate) (model.UpdateResult, error) {
	if err := r.s.lock(); err != nil {
		return model.UpdateResult{}, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	before := u
	if p.Name != "" {
		u.Name = p.Name
	}
	if p.Phone != "" {
		u.Phone = p.Phone
	}
	if p.Address != "" {
		u.Address = p.Address
	}
	if p.PhotoURL != "" {
		u.PhotoURL = p.PhotoURL
	}
	r.s.users[email] = u
	res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
	if u != before {
		res.ModifiedCount = 1
	}
	return res, nil
}

func (r *Users) SetRole(_ context.Context, email string, role model.Role) (model.UpdateResult, error) {
	if err := r.s.lock(); err != nil {
		return model.UpdateResult{}, err
	}
	defer r.s.mu.Unlock()
	u, ok := r.s.users[email]
	if !ok {
		return model.UpdateResult{Acknowledged: true}, nil
	}
	u.Role = role
	r.s.users[email] = u
	return model.UpdateResult{Acknowledged: true, MatchedCount: 1, ModifiedCount: 1}, nil
}

type Properties struct{ s *Store }

func (r *Properties) Insert(_ context.Context, p *model.Property) (primitive.ObjectID, error) {
	if err := r.s.lock(); err != nil {
		return primitive.NilObjectID, err
	}
	defer r.s.mu.Unlock()
	p.ID = primitive.NewObjectID()
	r.s.properties = append(r.s.properties, *p)
	return p.ID, nil
}

func (r *Properties) List(_ context.Context, newestFirst bool) ([]model.Property, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := append([]model.Property{}, r.s.properties...)
	if newestFirst {
		for i, j := 0, len(out)-1; i < j; i, j = i+1, j-1 {
			out[i], out[j] = out[j], out[i]
		}
	}
	return out, nil
}

func (r *Properties) FindByID(_ context.Context, id string) (*model.Property, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for _, p := range r.s.properties {
		if p.ID.Hex() == id {
			return &p, nil
		}
	}
	return nil, nil
}

func (r *Properties) FindBySeller(_ context.Context, email string) ([]model.Property, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := []model.Property{}
	for _, p := range r.s.properties {
		if p.SellerEmail == email {
			out = append(out, p)
		}
	}
	return out, nil
}

func (r *Properties) Delete(_ context.Context, id string) (model.DeleteResult, error) {
	if err := r.s.lock(); err != nil {
		return model.DeleteResult{}, err
	}
	defer r.s.mu.Unlock()
	for i, p := range r.s.properties {
		if p.ID.Hex() == id {
			r.s.properties = append(r.s.properties[:i], r.s.properties[i+1:]...)
			return model.DeleteResult{Acknowledged: true, DeletedCount: 1}, nil
		}
	}
	return model.DeleteResult{Acknowledged: true}, nil
}

func (r *Properties) SetPhoto(_ context.Context, id, fileID string) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	for i := range r.s.properties {
		if r.s.properties[i].ID.Hex() == id {
			r.s.properties[i].PhotoFileID = fileID
			return nil
		}
	}
	return nil
}

type Applications struct{ s *Store }

func (r *Applications) Insert(_ context.Context, a *model.Application) (primitive.ObjectID, error) {
	if err := r.s.lock(); err != nil {
		return primitive.NilObjectID, err
	}
	defer r.s.mu.Unlock()
	a.ID = primitive.NewObjectID()
	r.s.applications = append(r.s.applications, *a)
	return a.ID, nil
}

func (r *Applications) FindByRenter(_ context.Context, email string) ([]model.Application, error) {
	return r.filter(func(a model.Application) bool { return a.RenterEmail == email })
}

func (r *Applications) FindByProperty(_ context.Context, propertyID string) ([]model.Application, error) {
	return r.filter(func(a model.Application) bool { return a.PropertyID == propertyID })
}

func (r *Applications) FindLatest(_ context.Context, propertyID, renterEmail string) (*model.Application, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	for i := len(r.s.applications) - 1; i >= 0; i-- {
		a := r.s.applications[i]
		if a.PropertyID == propertyID && a.RenterEmail == renterEmail {
			return &a, nil
		}
	}
	return nil, nil
}

func (r *Applications) UpdateStatusForSeller(_ context.Context, id, sellerEmail string, status model.ApplicationStatus) (model.UpdateResult, error) {
	if err := r.s.lock(); err != nil {
		return model.UpdateResult{}, err
	}
	defer r.s.mu.Unlock()
	for i := range r.s.applications {
		a := &r.s.applications[i]
		if a.ID.Hex() == id && a.SellerEmail == sellerEmail {
			res := model.UpdateResult{Acknowledged: true, MatchedCount: 1}
			if a.Status != status {
				a.Status = status
				res.ModifiedCount = 1
			}
			return res, nil
		}
	}
	return model.UpdateResult{Acknowledged: true}, nil
}

// All returns a snapshot of every stored application.
func (r *Applications) All() []model.Application {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return append([]model.Application{}, r.s.applications...)
}

func (r *Applications) filter(keep func(model.Application) bool) ([]model.Application, error) {
	if err := r.s.lock(); err != nil {
		return nil, err
	}
	defer r.s.mu.Unlock()
	out := []model.Application{}
	for _, a := range r.s.applications {
		if keep(a) {
			out = append(out, a)
		}
	}
	return out, nil
}

type Photos struct{ s *Store }

func (r *Photos) Upload(_ context.Context, file io.Reader, _ string, contentType string) (string, error) {
	data, err := io.ReadAll(file)
	if err != nil {
		return "", err
	}
	if err := r.s.lock(); err != nil {
		return "", err
	}
	defer r.s.mu.Unlock()
	id := primitive.NewObjectID().Hex()
	r.s.photos[id] = photo{data: data, contentType: contentType}
	return id, nil
}

func (r *Photos) Download(_ context.Context, photoID string) ([]byte, string, error) {
	if err := r.s.lock(); err != nil {
		return nil, "", err
	}
	defer r.s.mu.Unlock()
	p, ok := r.s.photos[photoID]
	if !ok {
		return nil, "", repository.ErrPhotoNotFound
	}
	return p.data, p.contentType, nil
}

func (r *Photos) Delete(_ context.Context, photoID string) error {
	if err := r.s.lock(); err != nil {
		return err
	}
	defer r.s.mu.Unlock()
	delete(r.s.photos, photoID)
	return nil
}

// Count reports how many photos are stored.
func (r *Photos) Count() int {
	r.s.mu.Lock()
	defer r.s.mu.Unlock()
	return len(r.s.photos)
}
