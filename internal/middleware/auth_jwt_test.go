package middleware_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inventory/internal/config"
	"inventory/internal/domain/model"
	"inventory/internal/middleware"
	"inventory/internal/repository"
)

const testSecret = "test-secret"

func signToken(t *testing.T, secret string, claims jwt.MapClaims) string {
	t.Helper()

	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func validClaims(userID int64, tv int) jwt.MapClaims {
	now := time.Now()
	return jwt.MapClaims{
		"sub": userID,
		"tv":  tv,
		"iat": now.Unix(),
		"exp": now.Add(time.Hour).Unix(),
	}
}

// AuthJWTに通した結果のcontextと応答を返す
func runAuthJWT(t *testing.T, authz string) (echo.Context, *httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	if authz != "" {
		req.Header.Set("Authorization", authz)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	nextCalled := false
	h := middleware.AuthJWT(config.Config{JWTSecret: testSecret})(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return c, rec, nextCalled
}

func TestAuthJWT_ValidToken(t *testing.T) {
	token := signToken(t, testSecret, validClaims(42, 3))

	c, rec, nextCalled := runAuthJWT(t, "Bearer "+token)
	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, int64(42), c.Get(middleware.CtxUserIDKey))
	assert.Equal(t, 3, c.Get(middleware.CtxTokenVersionKey))
}

func TestAuthJWT_MissingHeader(t *testing.T) {
	_, rec, nextCalled := runAuthJWT(t, "")
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_NotBearer(t *testing.T) {
	_, rec, nextCalled := runAuthJWT(t, "Basic abc")
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_WrongSignature(t *testing.T) {
	token := signToken(t, "other-secret", validClaims(42, 0))

	_, rec, nextCalled := runAuthJWT(t, "Bearer "+token)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAuthJWT_ExpiredToken(t *testing.T) {
	claims := validClaims(42, 0)
	claims["exp"] = time.Now().Add(-time.Hour).Unix()
	token := signToken(t, testSecret, claims)

	_, rec, nextCalled := runAuthJWT(t, "Bearer "+token)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

// =====================
// TokenVersionGuard
// =====================

type stubUserRepo struct {
	user *model.User
}

func (s *stubUserRepo) Create(ctx context.Context, user *model.User) error { panic("not used") }

func (s *stubUserRepo) FindByID(ctx context.Context, userID int64) (*model.User, error) {
	if s.user == nil || s.user.ID != userID {
		return nil, repository.ErrUserNotFound
	}
	return s.user, nil
}

func (s *stubUserRepo) FindByEmail(ctx context.Context, email string) (*model.User, error) {
	panic("not used")
}

func (s *stubUserRepo) Update(ctx context.Context, user *model.User) error { panic("not used") }

func (s *stubUserRepo) IncrementTokenVersion(ctx context.Context, userID int64) error {
	panic("not used")
}

func (s *stubUserRepo) CountAll(ctx context.Context) (int64, error) { panic("not used") }

func runGuard(t *testing.T, repo repository.UserRepository, userID interface{}, tv interface{}) (*httptest.ResponseRecorder, bool) {
	t.Helper()

	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/products", nil)
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)
	c.Set(middleware.CtxUserIDKey, userID)
	c.Set(middleware.CtxTokenVersionKey, tv)

	nextCalled := false
	h := middleware.TokenVersionGuard(repo)(func(c echo.Context) error {
		nextCalled = true
		return c.NoContent(http.StatusOK)
	})
	require.NoError(t, h(c))
	return rec, nextCalled
}

func TestTokenVersionGuard_Match(t *testing.T) {
	repo := &stubUserRepo{user: &model.User{ID: 1, TokenVersion: 2, IsActive: true}}

	rec, nextCalled := runGuard(t, repo, int64(1), 2)
	assert.True(t, nextCalled)
	assert.Equal(t, http.StatusOK, rec.Code)
}

// ログアウト後の古いトークンを想定
func TestTokenVersionGuard_Mismatch(t *testing.T) {
	repo := &stubUserRepo{user: &model.User{ID: 1, TokenVersion: 3, IsActive: true}}

	rec, nextCalled := runGuard(t, repo, int64(1), 2)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_InactiveUser(t *testing.T) {
	repo := &stubUserRepo{user: &model.User{ID: 1, TokenVersion: 2, IsActive: false}}

	rec, nextCalled := runGuard(t, repo, int64(1), 2)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestTokenVersionGuard_UnknownUser(t *testing.T) {
	repo := &stubUserRepo{}

	rec, nextCalled := runGuard(t, repo, int64(9), 0)
	assert.False(t, nextCalled)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}
