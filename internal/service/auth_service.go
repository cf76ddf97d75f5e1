package service

import (
	"context"
	"errors"
	"fmt"

	"rent-property-service/internal/auth"
	"rent-property-service/internal/model"
	"rent-property-service/internal/repository"
)

var (
	ErrEmailTaken     = errors.New("email already registered")
	ErrBadCredentials = errors.New("invalid email or password")
)

// AuthService handles signup and login.
type AuthService struct {
	users  UserStore
	tokens TokenIssuer
}

func NewAuthService(users UserStore, tokens TokenIssuer) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// Signup stores u with plain hashed into its password. The role is always
// cleared; admins are granted out of band.
func (s *AuthService) Signup(ctx context.Context, u *model.User, plain string) (model.InsertResult, error) {
	hash, err := auth.HashPassword(plain)
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("AuthService.Signup: %w", err)
	}
	u.Password = hash
	u.Role = ""

	id, err := s.users.Insert(ctx, u)
	if errors.Is(err, repository.ErrDuplicateEmail) {
		return model.InsertResult{}, ErrEmailTaken
	}
	if err != nil {
		return model.InsertResult{}, fmt.Errorf("AuthService.Signup: %w", err)
	}
	return model.InsertResult{Acknowledged: true, InsertedID: id.Hex()}, nil
}

// Login returns the user and a fresh token when email and password match.
func (s *AuthService) Login(ctx context.Context, email, plain string) (*model.User, string, error) {
	u, err := s.users.FindByEmail(ctx, email)
	if err != nil {
		return nil, "", fmt.Errorf("AuthService.Login: %w", err)
	}
	if u == nil || !auth.CheckPassword(u.Password, plain) {
		return nil, "", ErrBadCredentials
	}

	token, err := s.tokens.Issue(u.Email)
	if err != nil {
		return nil, "", fmt.Errorf("AuthService.Login: %w", err)
	}
	return u, token, nil
}
