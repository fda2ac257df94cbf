package auth

import (
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestTokenService() *TokenService {
	return NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", 15*time.Minute, 7*24*time.Hour)
}

func TestIssueAccess_VerifiesWithClaims(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueAccess("user-123", "a@x.com")
	require.NoError(t, err)
	assert.NotEmpty(t, token)

	claims, err := svc.VerifyAccess(token)
	require.NoError(t, err)
	assert.Equal(t, "user-123", claims.UserID)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestVerifyAccess_Expired(t *testing.T) {
	svc := NewTokenService("access-secret-for-tests", "refresh-secret-for-tests", -time.Minute, time.Hour)

	token, err := svc.IssueAccess("user-123", "a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyAccess(token)
	assert.ErrorIs(t, err, ErrTokenExpired, "past-expiry failure must be distinguishable from invalid")
}

func TestVerifyAccess_Tampered(t *testing.T) {
	svc := newTestTokenService()

	token, err := svc.IssueAccess("user-123", "a@x.com")
	require.NoError(t, err)

	tampered := token[:len(token)-5] + "XXXXX"

	_, err = svc.VerifyAccess(tampered)
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerify_CrossSecretRejection(t *testing.T) {
	svc := newTestTokenService()

	access, err := svc.IssueAccess("user-123", "a@x.com")
	require.NoError(t, err)
	refresh, err := svc.IssueRefresh("user-123", "a@x.com")
	require.NoError(t, err)

	_, err = svc.VerifyRefresh(access)
	assert.ErrorIs(t, err, ErrTokenInvalid, "access token must not verify as refresh")

	_, err = svc.VerifyAccess(refresh)
	assert.ErrorIs(t, err, ErrTokenInvalid, "refresh token must not verify as access")
}

func TestVerifyAccess_Missing(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.VerifyAccess("")
	assert.ErrorIs(t, err, ErrTokenMissing)
}

func TestVerifyAccess_Malformed(t *testing.T) {
	svc := newTestTokenService()

	_, err := svc.VerifyAccess("not.a.jwt")
	assert.ErrorIs(t, err, ErrTokenInvalid)
}

func TestVerifyAccess_RejectsNonHMACAlgorithm(t *testing.T) {
	svc := newTestTokenService()

	claims := Claims{
		UserID: "attacker",
		Email:  "attacker@evil.com",
		RegisteredClaims: jwt.RegisteredClaims{
			IssuedAt:  jwt.NewNumericDate(time.Now()),
			ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodNone, claims)
	unsigned, err := token.SignedString(jwt.UnsafeAllowNoneSignatureType)
	require.NoError(t, err)

	_, err = svc.VerifyAccess(unsigned)
	assert.ErrorIs(t, err, ErrTokenInvalid, "alg=none must never be accepted")
}
