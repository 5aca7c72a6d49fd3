package testutils

import (
	"testing"

	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"vehicle-registry/models"
)

// CreateTestVehicleBody is a valid six-field submission.
func CreateTestVehicleBody() map[string]string {
	return map[string]string{
		"name":          "Alice Johnson",
		"phone":         "555-0100",
		"make":          "Toyota",
		"model":         "Corolla",
		"color":         "Blue",
		"license_plate": "ABC-1234",
	}
}

func CreateTestUser(t *testing.T, username, password string) *models.User {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)

	return &models.User{
		Username:     username,
		PasswordHash: string(hash),
	}
}
