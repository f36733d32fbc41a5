package http

import (
	"errors"
	"net/http"
	"slices"
	"strings"

	"laundry/internal/core/domain/model/kernel"

	jwt "github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
)

// Role of an authenticated caller.
type Role string

const (
	RoleCustomer Role = "customer"
	RoleStaff    Role = "staff"
	RoleDriver   Role = "driver"
	RoleAdmin    Role = "admin"
)

// Actor is the caller resolved from the bearer token.
type Actor struct {
	ID   kernel.UUID
	Role Role
}

const actorKey = "actor"

// Claims carried by access tokens. The subject is the actor id.
type Claims struct {
	Role string `json:"role"`
	jwt.RegisteredClaims
}

// ActorMiddleware validates an HS256 bearer token and stores the Actor on the
// echo context.
func ActorMiddleware(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			header := c.Request().Header.Get(echo.HeaderAuthorization)
			parts := strings.SplitN(header, " ", 2)
			if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing bearer token")
			}

			actor, err := parseActor(strings.TrimSpace(parts[1]), secret)
			if err != nil {
				return echo.NewHTTPError(http.StatusUnauthorized, "invalid token").SetInternal(err)
			}
			c.Set(actorKey, actor)
			return next(c)
		}
	}
}

// RequireRole rejects actors whose role is not listed.
func RequireRole(roles ...Role) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			actor, ok := ActorFrom(c)
			if !ok {
				return echo.NewHTTPError(http.StatusUnauthorized, "missing actor")
			}
			if !slices.Contains(roles, actor.Role) {
				return echo.NewHTTPError(http.StatusForbidden, "role "+string(actor.Role)+" may not call this endpoint")
			}
			return next(c)
		}
	}
}

// ActorFrom returns the actor stored by ActorMiddleware.
func ActorFrom(c echo.Context) (Actor, bool) {
	actor, ok := c.Get(actorKey).(Actor)
	return actor, ok
}

func mustActor(c echo.Context) Actor {
	actor, _ := ActorFrom(c)
	return actor
}

func parseActor(token, secret string) (Actor, error) {
	if secret == "" {
		return Actor{}, errors.New("jwt secret is empty")
	}

	tok, err := jwt.ParseWithClaims(token, &Claims{}, func(t *jwt.Token) (any, error) {
		if t.Method.Alg() != jwt.SigningMethodHS256.Alg() {
			return nil, errors.New("unexpected signing method")
		}
		return []byte(secret), nil
	})
	if err != nil {
		return Actor{}, err
	}
	claims, ok := tok.Claims.(*Claims)
	if !ok || !tok.Valid {
		return Actor{}, errors.New("invalid claims")
	}

	id, err := kernel.UUIDFromString(claims.Subject)
	if err != nil {
		return Actor{}, err
	}
	role := Role(strings.ToLower(claims.Role))
	switch role {
	case RoleCustomer, RoleStaff, RoleDriver, RoleAdmin:
	default:
		return Actor{}, errors.New("unknown role " + claims.Role)
	}
	return Actor{ID: id, Role: role}, nil
}

// SignToken issues a token for actor. Used by tests and the token CLI command.
func SignToken(secret string, actor Actor, claims jwt.RegisteredClaims) (string, error) {
	claims.Subject = actor.ID.String()
	return jwt.NewWithClaims(jwt.SigningMethodHS256, Claims{
		Role:             string(actor.Role),
		RegisteredClaims: claims,
	}).SignedString([]byte(secret))
}
