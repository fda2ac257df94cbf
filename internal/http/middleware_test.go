package http

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func doAuthHeader(t *testing.T, router http.Handler, header string) *httptest.ResponseRecorder {
	t.Helper()

	req := httptest.NewRequest(http.MethodGet, "/api/users/", nil)
	if header != "" {
		req.Header.Set("Authorization", header)
	}
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)
	return rec
}

func TestRequireAuth_MissingOrMalformedHeader(t *testing.T) {
	router, _ := newTestAPI(t)

	cases := map[string]string{
		"no header":       "",
		"wrong scheme":    "Basic dXNlcjpwYXNz",
		"bare token":      "sometoken",
		"empty bearer":    "Bearer ",
		"too many fields": "Bearer one two",
	}
	for name, header := range cases {
		rec := doAuthHeader(t, router, header)
		assert.Equal(t, http.StatusNotFound, rec.Code, name)
		assert.Equal(t, "no auth header", decodeBody(t, rec)["message"], name)
	}
}

func TestRequireAuth_ExpiredToken(t *testing.T) {
	router, _ := newTestAPI(t)

	expired := signClaims(t, testAccessSecret, "user-123", "a@x.com", -time.Minute)

	rec := doAuthHeader(t, router, "Bearer "+expired)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.Equal(t, "access token expired", decodeBody(t, rec)["message"])
}

func TestRequireAuth_InvalidToken(t *testing.T) {
	router, _ := newTestAPI(t)

	// wrong secret; the historical behavior answers 500 here, not 401
	forged := signClaims(t, "some-other-secret", "user-123", "a@x.com", time.Hour)

	rec := doAuthHeader(t, router, "Bearer "+forged)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.Equal(t, "authentication error", decodeBody(t, rec)["message"])
}

func TestRequireAuth_RefreshTokenRejected(t *testing.T) {
	router, tokens := newTestAPI(t)

	refresh, err := tokens.IssueRefresh("user-123", "a@x.com")
	require.NoError(t, err)

	rec := doAuthHeader(t, router, "Bearer "+refresh)
	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestRequireAuth_ClaimsWithoutUserData(t *testing.T) {
	router, _ := newTestAPI(t)

	cases := map[string]string{
		"no id":    signClaims(t, testAccessSecret, "", "a@x.com", time.Hour),
		"no email": signClaims(t, testAccessSecret, "user-123", "", time.Hour),
	}
	for name, token := range cases {
		rec := doAuthHeader(t, router, "Bearer "+token)
		assert.Equal(t, http.StatusNotFound, rec.Code, name)
		assert.Equal(t, "no user data", decodeBody(t, rec)["message"], name)
	}
}

func TestRequireAuth_ValidToken(t *testing.T) {
	router, _ := newTestAPI(t)

	access, _ := signupTokens(t, router, "a@x.com")

	rec := doAuthHeader(t, router, "Bearer "+access)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func signClaims(t *testing.T, secret, userID, email string, ttl time.Duration) string {
	t.Helper()

	now := time.Now()
	claims := jwt.MapClaims{
		"id":    userID,
		"email": email,
		"iat":   now.Unix(),
		"exp":   now.Add(ttl).Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}
