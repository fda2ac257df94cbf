package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"blog-server/internal/auth"
	"blog-server/internal/repository/sqlite"
)

func newTestUserService(t *testing.T) (UserService, *auth.TokenService) {
	t.Helper()

	db, err := sqlite.Open(":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	repo := sqlite.NewUserRepository(db)
	require.NoError(t, repo.Init(context.Background()))

	tokens := auth.NewTokenService("access-secret", "refresh-secret", 15*time.Minute, 7*24*time.Hour)
	return NewUserService(repo, tokens), tokens
}

func signupInput(email string) SignupInput {
	return SignupInput{
		Username: "a",
		Email:    email,
		Password: "secret1",
	}
}

func TestSignup_IssuesVerifiableTokenPair(t *testing.T) {
	svc, tokens := newTestUserService(t)
	ctx := context.Background()

	pair, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)
	assert.NotEmpty(t, pair.AccessToken)
	assert.NotEmpty(t, pair.RefreshToken)

	accessClaims, err := tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", accessClaims.Email)
	assert.NotEmpty(t, accessClaims.UserID)

	refreshClaims, err := tokens.VerifyRefresh(pair.RefreshToken)
	require.NoError(t, err)
	assert.Equal(t, accessClaims.UserID, refreshClaims.UserID)
}

func TestSignup_DuplicateEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Signup(ctx, signupInput("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken)
}

func TestSignup_NormalizesEmail(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("  A@X.Com "))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "secret1")
	assert.NoError(t, err)

	_, err = svc.Signup(ctx, signupInput("a@x.com"))
	assert.ErrorIs(t, err, ErrEmailTaken, "case variants of one email are the same address")
}

func TestLogin_Success(t *testing.T) {
	svc, tokens := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	pair, err := svc.Login(ctx, "a@x.com", "secret1")
	require.NoError(t, err)

	claims, err := tokens.VerifyAccess(pair.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestLogin_UnknownEmail(t *testing.T) {
	svc, _ := newTestUserService(t)

	_, err := svc.Login(context.Background(), "nobody@x.com", "secret1")
	assert.ErrorIs(t, err, ErrEmailNotFound)
}

func TestLogin_WrongPassword(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Login(ctx, "a@x.com", "wrong-password")
	assert.ErrorIs(t, err, ErrPasswordMismatch)
}

func TestRefresh_MintsNewAccessToken(t *testing.T) {
	svc, tokens := newTestUserService(t)
	ctx := context.Background()

	pair, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	access, err := svc.Refresh(ctx, pair.RefreshToken)
	require.NoError(t, err)

	claims, err := tokens.VerifyAccess(access)
	require.NoError(t, err)
	assert.Equal(t, "a@x.com", claims.Email)
}

func TestRefresh_RejectsAccessToken(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	pair, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	_, err = svc.Refresh(ctx, pair.AccessToken)
	assert.ErrorIs(t, err, auth.ErrTokenInvalid)
}

func TestRefresh_UserNoLongerExists(t *testing.T) {
	svc, tokens := newTestUserService(t)

	// a well-signed refresh token whose subject was never persisted
	ghost, err := tokens.IssueRefresh("ghost-id", "ghost@x.com")
	require.NoError(t, err)

	_, err = svc.Refresh(context.Background(), ghost)
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestList_StripsPasswordHash(t *testing.T) {
	svc, _ := newTestUserService(t)
	ctx := context.Background()

	_, err := svc.Signup(ctx, signupInput("a@x.com"))
	require.NoError(t, err)

	users, err := svc.List(ctx)
	require.NoError(t, err)
	require.Len(t, users, 1)
	assert.Empty(t, users[0].PasswordHash)
	assert.Equal(t, "a@x.com", users[0].Email)
}
