package auth

import (
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/spec-kit/user-service/internal/domain"
)

func testIdentity() domain.Identity {
	return domain.Identity{
		ID:        "0b7c8f5e-6a55-4f0e-9d0a-3b1f0e4a6c21",
		FirstName: "Sharath",
		LastName:  "Shankar",
		Email:     "sharath@example.com",
		Role:      domain.RoleRef{ID: "7d1e2f3a-0000-4000-8000-000000000001", Name: domain.RoleAdmin},
	}
}

func TestTokenManager_RoundTrip(t *testing.T) {
	tm, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, exp, err := tm.Issue(NewClaims(testIdentity()), time.Hour)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Verify(token)
	require.NoError(t, err)
	assert.Equal(t, testIdentity().ID, claims.UserID())
	assert.Equal(t, "sharath@example.com", claims.Data.Email)
	assert.Equal(t, "Sharath", claims.Data.FirstName)
	assert.Equal(t, domain.RoleAdmin, claims.Role.Name)
	assert.NotEmpty(t, claims.ID)
}

func TestTokenManager_Expired(t *testing.T) {
	issuedAt := time.Now().Add(-2 * time.Hour)
	issuer, err := NewTokenManager("secret", time.Hour, WithClock(func() time.Time { return issuedAt }))
	require.NoError(t, err)
	verifier, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	token, _, err := issuer.Issue(NewClaims(testIdentity()), time.Hour)
	require.NoError(t, err)

	_, err = verifier.Verify(token)
	assert.ErrorIs(t, err, ErrTokenExpired)
	assert.NotErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Tampered(t *testing.T) {
	tm, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)
	other, err := NewTokenManager("another-secret", time.Hour)
	require.NoError(t, err)

	token, _, err := tm.Issue(NewClaims(testIdentity()), time.Hour)
	require.NoError(t, err)
	forged, _, err := other.Issue(NewClaims(testIdentity()), time.Hour)
	require.NoError(t, err)

	parts := strings.Split(token, ".")
	forgedParts := strings.Split(forged, ".")
	require.Len(t, parts, 3)
	tampered := parts[0] + "." + parts[1] + "." + forgedParts[2]

	_, err = tm.Verify(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)

	_, err = tm.Verify(forged)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestTokenManager_Malformed(t *testing.T) {
	tm, err := NewTokenManager("secret", time.Hour)
	require.NoError(t, err)

	for _, raw := range []string{"", "not-a-token", "a.b.c"} {
		_, err := tm.Verify(raw)
		assert.ErrorIs(t, err, ErrTokenInvalid, raw)
	}
}

func TestNewTokenManager_RequiresSecret(t *testing.T) {
	_, err := NewTokenManager("", time.Hour)
	assert.Error(t, err)
}
