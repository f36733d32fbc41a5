package http_test

import (
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	api "laundry/internal/adapters/in/http"
	"laundry/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

func token(t *testing.T, secret string, actor api.Actor, ttl time.Duration) string {
	t.Helper()
	tok, err := api.SignToken(secret, actor, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(ttl)),
	})
	require.NoError(t, err)
	return tok
}

func newAuthEcho() *echo.Echo {
	e := echo.New()
	g := e.Group("", api.ActorMiddleware(testSecret))
	g.GET("/staff", func(c echo.Context) error {
		actor, _ := api.ActorFrom(c)
		return c.String(http.StatusOK, actor.ID.String())
	}, api.RequireRole(api.RoleStaff, api.RoleAdmin))
	return e
}

func TestActorMiddleware(t *testing.T) {
	staff := api.Actor{ID: kernel.NewUUID(), Role: api.RoleStaff}

	tests := []struct {
		name   string
		header string
		want   int
	}{
		{"no header", "", http.StatusUnauthorized},
		{"not bearer", "Basic abc", http.StatusUnauthorized},
		{"garbage token", "Bearer abc", http.StatusUnauthorized},
		{"wrong secret", "Bearer " + token(t, "other", staff, time.Hour), http.StatusUnauthorized},
		{"expired", "Bearer " + token(t, testSecret, staff, -time.Minute), http.StatusUnauthorized},
		{"role not allowed", "Bearer " + token(t, testSecret, api.Actor{ID: kernel.NewUUID(), Role: api.RoleDriver}, time.Hour), http.StatusForbidden},
		{"unknown role", "Bearer " + token(t, testSecret, api.Actor{ID: kernel.NewUUID(), Role: "janitor"}, time.Hour), http.StatusUnauthorized},
		{"staff", "Bearer " + token(t, testSecret, staff, time.Hour), http.StatusOK},
		{"admin", "bearer " + token(t, testSecret, api.Actor{ID: kernel.NewUUID(), Role: api.RoleAdmin}, time.Hour), http.StatusOK},
	}
	e := newAuthEcho()
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest(http.MethodGet, "/staff", nil)
			if tt.header != "" {
				req.Header.Set(echo.HeaderAuthorization, tt.header)
			}
			rec := httptest.NewRecorder()

			e.ServeHTTP(rec, req)

			assert.Equal(t, tt.want, rec.Code)
		})
	}

	t.Run("actor id comes from the subject", func(t *testing.T) {
		req := httptest.NewRequest(http.MethodGet, "/staff", nil)
		req.Header.Set(echo.HeaderAuthorization, "Bearer "+token(t, testSecret, staff, time.Hour))
		rec := httptest.NewRecorder()

		e.ServeHTTP(rec, req)

		assert.Equal(t, staff.ID.String(), rec.Body.String())
	})
}
