package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/templui/devcamper/internal/model"
	"github.com/templui/devcamper/internal/repository"
)

var ErrInvalidCurrentPassword = errors.New("current password is incorrect")

// UserChanges lists the user fields to change. Nil fields are left as they are.
type UserChanges struct {
	Name     *string
	Email    *string
	Role     *string
	Password *string
}

type UserService struct {
	userRepository repository.UserRepository
	authService    *AuthService
}

func NewUserService(userRepository repository.UserRepository, authService *AuthService) *UserService {
	return &UserService{
		userRepository: userRepository,
		authService:    authService,
	}
}

func (s *UserService) List(ctx context.Context) ([]*model.User, error) {
	return s.userRepository.List(ctx)
}

func (s *UserService) ByID(ctx context.Context, id string) (*model.User, error) {
	return s.userRepository.ByID(ctx, id)
}

// Create adds a user with any role, admin included.
func (s *UserService) Create(ctx context.Context, name, email, password, role string) (*model.User, error) {
	if role == "" {
		role = model.RoleUser
	}

	user := &model.User{
		ID:        uuid.NewString(),
		Name:      strings.TrimSpace(name),
		Email:     strings.TrimSpace(strings.ToLower(email)),
		Role:      role,
		CreatedAt: time.Now().UTC(),
	}

	err := s.authService.SetPassword(user, password)
	if err != nil {
		return nil, err
	}

	err = user.Validate()
	if err != nil {
		return nil, err
	}

	err = s.userRepository.Create(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

func (s *UserService) Update(ctx context.Context, id string, changes UserChanges) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if changes.Name != nil {
		user.Name = strings.TrimSpace(*changes.Name)
	}
	if changes.Email != nil {
		user.Email = strings.TrimSpace(strings.ToLower(*changes.Email))
	}
	if changes.Role != nil {
		user.Role = *changes.Role
	}
	if changes.Password != nil {
		err = s.authService.SetPassword(user, *changes.Password)
		if err != nil {
			return nil, err
		}
	}

	err = user.Validate()
	if err != nil {
		return nil, err
	}

	err = s.userRepository.Update(ctx, user)
	if err != nil {
		return nil, err
	}

	return user, nil
}

// UpdateDetails changes the name and email of the user itself. The role is kept.
func (s *UserService) UpdateDetails(ctx context.Context, id string, name, email *string) (*model.User, error) {
	return s.Update(ctx, id, UserChanges{Name: name, Email: email})
}

func (s *UserService) UpdatePassword(ctx context.Context, userID, currentPassword, newPassword string) (*model.User, error) {
	user, err := s.userRepository.ByID(ctx, userID)
	if err != nil {
		return nil, fmt.Errorf("failed to get user: %w", err)
	}

	err = s.authService.ComparePassword(currentPassword, user.PasswordHash)
	if err != nil {
		return nil, ErrInvalidCurrentPassword
	}

	err = s.authService.SetPassword(user, newPassword)
	if err != nil {
		return nil, err
	}

	err = s.userRepository.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update password: %w", err)
	}

	return user, nil
}

// Delete removes a user. Bootcamps, courses and reviews go with it.
func (s *UserService) Delete(ctx context.Context, id string) error {
	return s.userRepository.Delete(ctx, id)
}
