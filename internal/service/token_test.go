package service

import (
	"errors"
	"testing"
	"time"

	"iot-dashboard/internal/domain"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestTokenManager_RoundTrip(t *testing.T) {
	tm := NewTokenManager([]byte("secret-secret-secret"), time.Hour)
	tok, exp, err := tm.Issue("sid-1", domain.RoleAdmin)
	require.NoError(t, err)
	assert.WithinDuration(t, time.Now().Add(time.Hour), exp, 5*time.Second)

	claims, err := tm.Parse(tok)
	require.NoError(t, err)
	assert.Equal(t, "sid-1", claims.SessionID)
	assert.Equal(t, "admin", claims.Role)
}

func TestTokenManager_Expired(t *testing.T) {
	tm := NewTokenManager([]byte("secret-secret-secret"), time.Minute)
	tm.now = func() time.Time { return testNow }
	tok, _, err := tm.Issue("sid-1", domain.RoleCustomer)
	require.NoError(t, err)

	tm.now = func() time.Time { return testNow.Add(2 * time.Minute) }
	_, err = tm.Parse(tok)
	assert.True(t, errors.Is(err, ErrTokenExpired))
}

func TestTokenManager_WrongSecretOrAlg(t *testing.T) {
	issuer := NewTokenManager([]byte("secret-one-secret-one"), time.Hour)
	tok, _, err := issuer.Issue("sid-1", domain.RoleAdmin)
	require.NoError(t, err)

	other := NewTokenManager([]byte("secret-two-secret-two"), time.Hour)
	_, err = other.Parse(tok)
	assert.True(t, errors.Is(err, ErrTokenInvalid))

	none := jwt.NewWithClaims(jwt.SigningMethodNone, &SessionClaims{SessionID: "sid-1", Role: "admin"})
	unsigned, err := none.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)
	_, err = issuer.Parse(unsigned)
	assert.True(t, errors.Is(err, ErrTokenInvalid))

	_, err = issuer.Parse("garbage")
	assert.True(t, errors.Is(err, ErrTokenInvalid))
}
