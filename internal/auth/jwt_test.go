package auth

import (
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/locauto/locauto-backend/internal/database"
)

func TestIssueAndParse(t *testing.T) {
	userID := uuid.New()

	token, err := Issue("secret", userID, database.RoleCompany, time.Hour)
	require.NoError(t, err)
	require.NotEmpty(t, token)

	claims, err := ParseAuth("Bearer "+token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, database.RoleCompany, claims.Role)
}

func TestParseAuth_BareToken(t *testing.T) {
	userID := uuid.New()

	token, err := Issue("secret", userID, database.RoleUser, time.Hour)
	require.NoError(t, err)

	claims, err := ParseAuth(token, "secret")
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
}

func TestParseAuth_Failures(t *testing.T) {
	userID := uuid.New()

	valid, err := Issue("secret", userID, database.RoleUser, time.Hour)
	require.NoError(t, err)

	expired, err := Issue("secret", userID, database.RoleUser, -time.Minute)
	require.NoError(t, err)

	badRole, err := Issue("secret", userID, database.Role("admin"), time.Hour)
	require.NoError(t, err)

	tests := []struct {
		name     string
		header   string
		secret   string
		expected error
	}{
		{"empty header", "", "secret", ErrMissingToken},
		{"bearer with no token", "Bearer ", "secret", ErrMissingToken},
		{"garbage token", "Bearer not.a.jwt", "secret", ErrInvalidToken},
		{"wrong secret", "Bearer " + valid, "other-secret", ErrInvalidToken},
		{"expired token", "Bearer " + expired, "secret", ErrInvalidToken},
		{"unknown role", "Bearer " + badRole, "secret", ErrInvalidToken},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := ParseAuth(tt.header, tt.secret)
			assert.ErrorIs(t, err, tt.expected)
		})
	}
}
