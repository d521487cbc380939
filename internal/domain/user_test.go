package domain_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parceldesk/parceldesk-api/internal/domain"
)

func TestNewUser(t *testing.T) {
	t.Parallel()

	t.Run("applies defaults", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("jdoe", "jdoe@example.com", "J. Doe", "password123")
		require.NoError(t, err)

		assert.NotEqual(t, "", user.ID.String())
		assert.Equal(t, domain.RoleUser, user.Role)
		assert.Equal(t, domain.UserStatusActive, user.Status)
		assert.False(t, user.CreatedAt.IsZero())
	})

	t.Run("normalizes email case", func(t *testing.T) {
		t.Parallel()
		user, err := domain.NewUser("jdoe", "JDoe@Example.COM", "J. Doe", "password123")
		require.NoError(t, err)
		assert.Equal(t, "jdoe@example.com", user.Email)
	})

	tests := []struct {
		name     string
		username string
		email    string
		fullName string
		password string
		wantErr  error
	}{
		{
			name:     "rejects malformed email",
			username: "jdoe",
			email:    "not-an-email",
			fullName: "J. Doe",
			password: "password123",
			wantErr:  domain.ErrInvalidEmail,
		},
		{
			name:     "rejects short password",
			username: "jdoe",
			email:    "jdoe@example.com",
			fullName: "J. Doe",
			password: "short",
			wantErr:  domain.ErrPasswordTooShort,
		},
		{
			name:     "rejects password above bcrypt limit",
			username: "jdoe",
			email:    "jdoe@example.com",
			fullName: "J. Doe",
			password: strings.Repeat("x", 73),
			wantErr:  domain.ErrPasswordTooLong,
		},
	}

	for _, tc := range tests {
		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			_, err := domain.NewUser(tc.username, tc.email, tc.fullName, tc.password)
			assert.ErrorIs(t, err, tc.wantErr)
		})
	}
}

func TestUserSanitized(t *testing.T) {
	t.Parallel()

	user, err := domain.NewUser("jdoe", "jdoe@example.com", "J. Doe", "password123")
	require.NoError(t, err)
	user.HashedPassword = "bcrypt-hash"

	sanitized := user.Sanitized()
	assert.Equal(t, "", sanitized.Password)
	assert.Equal(t, "", sanitized.HashedPassword)

	// The original is untouched.
	assert.Equal(t, "bcrypt-hash", user.HashedPassword)
}
