package service

import (
	"context"
	"fmt"
	"strings"

	"courseapp/internal/common"
	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"
	"courseapp/internal/domain/repository"
	"courseapp/internal/platform/email"

	"github.com/google/uuid"
)

type UserService struct {
	userRepo repository.UserRepository
	mailer   email.Service
}

func NewUserService(userRepo repository.UserRepository, mailer email.Service) *UserService {
	return &UserService{userRepo: userRepo, mailer: mailer}
}

type CreateUserRequest struct {
	Name   string           `json:"name" validate:"required"`
	Email  string           `json:"email" validate:"required,email"`
	Phone  string           `json:"phone"`
	Role   model.Role       `json:"role" validate:"omitempty,oneof=student instructor admin"`
	Status model.UserStatus `json:"status" validate:"omitempty,oneof=active inactive suspended"`
}

type UpdateUserRequest struct {
	ID     string            `json:"id" validate:"required"`
	Name   *string           `json:"name,omitempty"`
	Phone  *string           `json:"phone,omitempty"`
	Role   *model.Role       `json:"role,omitempty"`
	Status *model.UserStatus `json:"status,omitempty"`
}

func (s *UserService) List(ctx context.Context) ([]model.User, error) {
	users, err := s.userRepo.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("failed to list users: %w", err)
	}
	for i := range users {
		users[i].HashedPassword = ""
	}
	return users, nil
}

// Create provisions an account on a user's behalf (admin only, enforced at
// the route). The account gets a generated temporary password, sent to the
// new user by mail.
func (s *UserService) Create(ctx context.Context, req CreateUserRequest) (*model.User, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}
	if req.Role == "" {
		req.Role = model.RoleStudent
	}
	if req.Status == "" {
		req.Status = model.StatusActive
	}

	tempPassword := strings.Join(strings.Fields(req.Name), "") + "@123"
	hashedPassword, err := security.HashPassword(tempPassword)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	user := &model.User{
		ID:             uuid.NewString(),
		Name:           req.Name,
		Email:          req.Email,
		HashedPassword: hashedPassword,
		Phone:          req.Phone,
		Role:           req.Role,
		Status:         req.Status,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	s.mailer.Send(user.Name, user.Email, "Your CourseApp account",
		fmt.Sprintf("An account has been created for you. Temporary password: %s", tempPassword))

	user.HashedPassword = ""
	return user, nil
}

// Update changes name, phone, role and/or status. Role is immutable anywhere
// else; this admin-only path is the single place it can change.
func (s *UserService) Update(ctx context.Context, req UpdateUserRequest) (*model.User, error) {
	if err := common.ValidateStruct(req); err != nil {
		return nil, err
	}

	user, err := s.userRepo.FindByID(ctx, req.ID)
	if err != nil {
		return nil, err
	}

	if req.Name != nil {
		user.Name = *req.Name
	}
	if req.Phone != nil {
		user.Phone = *req.Phone
	}
	if req.Role != nil {
		if !req.Role.Valid() {
			return nil, fmt.Errorf("unknown role %q: %w", *req.Role, common.ErrValidation)
		}
		user.Role = *req.Role
	}
	if req.Status != nil {
		if !req.Status.Valid() {
			return nil, fmt.Errorf("unknown status %q: %w", *req.Status, common.ErrValidation)
		}
		user.Status = *req.Status
	}

	updated, err := s.userRepo.Update(ctx, user)
	if err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}
	updated.HashedPassword = ""
	return updated, nil
}
