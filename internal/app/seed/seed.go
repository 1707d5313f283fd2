package seed

import (
	"context"
	"fmt"
	"log"

	"courseapp/internal/common/security"
	"courseapp/internal/domain/model"
	"courseapp/internal/domain/repository"
	"courseapp/internal/platform/config"

	"github.com/google/uuid"
)

// EnsureAdmin creates the first admin account when none exists yet, so a
// fresh deployment is never left without an admin.
func EnsureAdmin(ctx context.Context, userRepo repository.UserRepository) error {
	count, err := userRepo.CountByRole(ctx, model.RoleAdmin)
	if err != nil {
		return fmt.Errorf("checking for existing admin: %w", err)
	}
	if count > 0 {
		log.Println("Admin already exists. Skipping seed.")
		return nil
	}

	hashedPassword, err := security.HashPassword(config.AppConfig.AdminPassword)
	if err != nil {
		return fmt.Errorf("hashing admin password: %w", err)
	}

	admin := &model.User{
		ID:             uuid.NewString(),
		Name:           config.AppConfig.AdminName,
		Email:          config.AppConfig.AdminEmail,
		HashedPassword: hashedPassword,
		Role:           model.RoleAdmin,
		Status:         model.StatusActive,
	}
	if err := userRepo.Create(ctx, admin); err != nil {
		return fmt.Errorf("creating first admin: %w", err)
	}
	log.Println("First admin created successfully.")
	return nil
}
