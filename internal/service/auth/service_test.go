package auth

import (
	"context"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/lib/pq"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/config"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/domain"
	"github.com/kami-jami/GraphicRequestSystem-sub001/internal/mocks"
)

func testUser(t *testing.T, password string, roles ...string) *domain.User {
	t.Helper()
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.MinCost)
	require.NoError(t, err)
	return &domain.User{
		ID:           uuid.New(),
		Email:        "designer@example.com",
		PasswordHash: string(hash),
		FullName:     "Dana",
		Roles:        pq.StringArray(roles),
		IsActive:     true,
	}
}

func testConfig() *config.Config {
	return &config.Config{JWTSecret: "test-secret", JWTAccessExpiry: 15 * time.Minute}
}

func TestService_LoginAndResolve(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.UserRepository)
	svc := NewService(repo, testConfig())
	user := testUser(t, "s3cret", "designer", "approver", "janitor")

	repo.On("GetByEmail", ctx, "designer@example.com").Return(user, nil)
	repo.On("GetByID", ctx, user.ID).Return(user, nil)

	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: " Designer@Example.com ", Password: "s3cret"})
	require.NoError(t, err)
	assert.Equal(t, int64(900), tokens.ExpiresIn)

	claims, err := svc.ValidateAccessToken(tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, claims.UserID)

	_, identity, err := svc.ResolveIdentity(ctx, tokens.AccessToken)
	require.NoError(t, err)
	assert.Equal(t, user.ID, identity.UserID)
	assert.Equal(t, []domain.Role{domain.RoleDesigner, domain.RoleApprover}, identity.Roles)
}

func TestService_LoginRejectsBadCredentials(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.UserRepository)
	svc := NewService(repo, testConfig())
	user := testUser(t, "s3cret", "requester")

	repo.On("GetByEmail", ctx, "designer@example.com").Return(user, nil)
	repo.On("GetByEmail", ctx, "nobody@example.com").Return(nil, domain.ErrNotFound)

	_, _, err := svc.Login(ctx, domain.LoginInput{Email: "designer@example.com", Password: "wrong"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)

	_, _, err = svc.Login(ctx, domain.LoginInput{Email: "nobody@example.com", Password: "s3cret"})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestService_ValidateAccessTokenRejectsForeignSignature(t *testing.T) {
	svc := NewService(new(mocks.UserRepository), testConfig())

	claims := &Claims{UserID: uuid.New(), RegisteredClaims: jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
	}}
	forged, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte("other-secret"))
	require.NoError(t, err)

	_, err = svc.ValidateAccessToken(forged)
	assert.ErrorIs(t, err, ErrInvalidToken)

	_, err = svc.ValidateAccessToken("not.a.token")
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestService_ResolveIdentityRejectsInactiveUser(t *testing.T) {
	ctx := context.Background()
	repo := new(mocks.UserRepository)
	svc := NewService(repo, testConfig())
	user := testUser(t, "s3cret", "requester")

	repo.On("GetByEmail", ctx, user.Email).Return(user, nil)
	_, tokens, err := svc.Login(ctx, domain.LoginInput{Email: user.Email, Password: "s3cret"})
	require.NoError(t, err)

	inactive := *user
	inactive.IsActive = false
	repo.On("GetByID", ctx, user.ID).Return(&inactive, nil)

	_, _, err = svc.ResolveIdentity(ctx, tokens.AccessToken)
	assert.ErrorIs(t, err, ErrUserInactive)
}
