package token_test

import (
	"testing"
	"time"

	"go-gudang-tekstil/pkg/token"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret-at-least-32-characters!!"

func TestGenerateAndValidate(t *testing.T) {
	maker := token.NewMaker(testSecret, time.Hour)
	userID := uuid.New()

	tok, err := maker.Generate(userID, "admin")
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims, err := maker.Validate(tok)
	require.NoError(t, err)
	assert.Equal(t, userID, claims.UserID)
	assert.Equal(t, "admin", claims.Role)
	assert.WithinDuration(t, time.Now().Add(time.Hour), claims.ExpiresAt.Time, time.Minute)
}

func TestValidateExpiredToken(t *testing.T) {
	maker := token.NewMaker(testSecret, -time.Minute)

	tok, err := maker.Generate(uuid.New(), "staff")
	require.NoError(t, err)

	_, err = maker.Validate(tok)
	assert.ErrorIs(t, err, token.ErrExpiredToken)
}

func TestValidateInvalidToken(t *testing.T) {
	maker := token.NewMaker(testSecret, time.Hour)

	_, err := maker.Validate("not-a-token")
	assert.ErrorIs(t, err, token.ErrInvalidToken)

	// A token signed with a different secret is rejected.
	other := token.NewMaker("another-secret-also-32-characters!!!", time.Hour)
	tok, err := other.Generate(uuid.New(), "staff")
	require.NoError(t, err)

	_, err = maker.Validate(tok)
	assert.ErrorIs(t, err, token.ErrInvalidToken)
}
