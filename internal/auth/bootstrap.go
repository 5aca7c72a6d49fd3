package auth

import (
	"context"
	"fmt"
	"log"

	"golang.org/x/crypto/bcrypt"
	"vehicle-registry/db"
	"vehicle-registry/models"
)

// EnsureDefaultUser creates the bootstrap account when the user table is
// empty. It must complete before the server starts accepting requests; a
// failure here means the service would run with no valid account at all.
func EnsureDefaultUser(ctx context.Context, users db.UserRepository, username, password string) error {
	count, err := users.Count(ctx)
	if err != nil {
		return fmt.Errorf("failed to count users: %w", err)
	}
	if count > 0 {
		return nil
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return fmt.Errorf("failed to hash default password: %w", err)
	}

	user := &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
	if _, err := users.Create(ctx, user); err != nil {
		return fmt.Errorf("failed to create default user: %w", err)
	}

	log.Printf("Created default account %q", username)
	return nil
}
