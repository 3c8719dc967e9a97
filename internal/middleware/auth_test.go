package middleware

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/confstay/booking-service/internal/models"
	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

const testSecret = "test-secret"

type mockSessionRepo struct {
	findFn func(ctx context.Context, token string) (*models.Session, error)
}

func (m *mockSessionRepo) FindByToken(ctx context.Context, token string) (*models.Session, error) {
	if m.findFn != nil {
		return m.findFn(ctx, token)
	}
	return nil, gorm.ErrRecordNotFound
}

func signToken(t *testing.T, secret string, userID int) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{"userId": userID})
	signed, err := tok.SignedString([]byte(secret))
	require.NoError(t, err)
	return signed
}

func invoke(t *testing.T, mw echo.MiddlewareFunc, authHeader string) (*httptest.ResponseRecorder, int, error) {
	t.Helper()
	e := echo.New()
	req := httptest.NewRequest(http.MethodGet, "/booking", nil)
	if authHeader != "" {
		req.Header.Set(echo.HeaderAuthorization, authHeader)
	}
	rec := httptest.NewRecorder()
	c := e.NewContext(req, rec)

	var resolvedID int
	next := func(c echo.Context) error {
		resolvedID = UserID(c)
		return c.NoContent(http.StatusOK)
	}
	err := mw(next)(c)
	return rec, resolvedID, err
}

func TestAuth_MissingToken(t *testing.T) {
	mw := Auth(testSecret, &mockSessionRepo{})

	_, _, err := invoke(t, mw, "")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_MalformedToken(t *testing.T) {
	mw := Auth(testSecret, &mockSessionRepo{})

	_, _, err := invoke(t, mw, "Bearer not-a-jwt")

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_WrongSecret(t *testing.T) {
	token := signToken(t, "other-secret", 7)
	mw := Auth(testSecret, &mockSessionRepo{})

	_, _, err := invoke(t, mw, "Bearer "+token)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_ValidTokenWithoutSession(t *testing.T) {
	token := signToken(t, testSecret, 7)
	mw := Auth(testSecret, &mockSessionRepo{}) // no session rows

	_, _, err := invoke(t, mw, "Bearer "+token)

	he, ok := err.(*echo.HTTPError)
	assert.True(t, ok)
	assert.Equal(t, http.StatusUnauthorized, he.Code)
}

func TestAuth_ValidTokenAndSession(t *testing.T) {
	token := signToken(t, testSecret, 7)
	sessions := &mockSessionRepo{
		findFn: func(ctx context.Context, got string) (*models.Session, error) {
			assert.Equal(t, token, got)
			return &models.Session{ID: 1, UserID: 7, Token: got}, nil
		},
	}
	mw := Auth(testSecret, sessions)

	rec, resolvedID, err := invoke(t, mw, "Bearer "+token)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, 7, resolvedID)
}

func TestUserID_Unset(t *testing.T) {
	e := echo.New()
	c := e.NewContext(httptest.NewRequest(http.MethodGet, "/", nil), httptest.NewRecorder())

	assert.Equal(t, 0, UserID(c))
}
