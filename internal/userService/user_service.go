package user

import (
	"fmt"

	"auction-house/internal/auctionerrors"
	"auction-house/internal/models"
	"auction-house/internal/repository"
	"auction-house/utils"
)

// UserService registers and resolves user identities. Authentication and
// token issuance live upstream; this only provides the identity lookup the
// lifecycle managers need.
type UserService struct {
	users repository.UserStore
}

// NewUserService creates a new UserService instance
func NewUserService(users repository.UserStore) *UserService {
	return &UserService{users: users}
}

// RegisterUser persists a new user.
func (s *UserService) RegisterUser(username string) (models.User, error) {
	if username == "" {
		return models.User{}, fmt.Errorf("service: %w - missing username", auctionerrors.ErrInvalidParameter)
	}

	user := models.User{
		UserID:   utils.GenerateID(),
		Username: username,
	}
	if err := s.users.SaveUser(user); err != nil {
		return models.User{}, fmt.Errorf("service: %w: save user: %v", auctionerrors.ErrBusinessFailure, err)
	}
	return user, nil
}

// GetUserByID returns a single user.
func (s *UserService) GetUserByID(userID string) (models.User, error) {
	user, err := s.users.GetUserByID(userID)
	if err != nil {
		return models.User{}, fmt.Errorf("service: %w", err)
	}
	return user, nil
}
