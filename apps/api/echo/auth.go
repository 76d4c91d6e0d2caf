package echoapi

import (
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"
	"github.com/pkg/errors"

	"github.com/dnhuan/rollcall/core"
	"github.com/dnhuan/rollcall/core/user"
)

const (
	contextIdentityKey = "identity"

	// legacy identity headers, trusted as-is when no bearer token is sent
	headerUserID = "x-user-id"
	headerRole   = "x-role"
)

// Claims represents the authorization claims transmitted via a JWT.
type Claims struct {
	jwt.RegisteredClaims
	Username string `json:"username,omitempty"`
	Role     string `json:"role,omitempty"`
}

func GetUserClaims(usr user.User) *Claims {
	now := time.Now()
	return &Claims{
		RegisteredClaims: jwt.RegisteredClaims{
			Issuer:    core.Conf.AppName,
			Subject:   usr.ID,
			ExpiresAt: jwt.NewNumericDate(now.Add(core.Conf.Server.JWTExpirationDelta)),
			IssuedAt:  jwt.NewNumericDate(now),
		},
		Username: usr.Username,
		Role:     usr.Role,
	}
}

// GenerateToken generates a signed JWT token string representing the Claims.
func GenerateToken(claims *Claims) (string, error) {
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	ss, err := token.SignedString(core.Conf.SecretKey)
	if err != nil {
		return "", errors.Wrap(err, "signing token")
	}
	return ss, nil
}

func parseToken(tokenStr string) (*Claims, error) {
	claims := new(Claims)
	token, err := jwt.ParseWithClaims(
		tokenStr,
		claims,
		func(t *jwt.Token) (interface{}, error) { return core.Conf.SecretKey, nil },
		jwt.WithValidMethods([]string{jwt.SigningMethodHS256.Alg()}),
	)
	if err != nil || !token.Valid {
		return nil, errInvalidToken
	}
	return claims, nil
}

func authenticate(uname, pwd string, svc *user.Service, ctx echo.Context) (user.User, error) {
	usr, err := svc.GetByUsernameOrEmail(ctx.Request().Context(), uname)
	if err != nil {
		if errors.Cause(err) == user.ErrNotFound {
			return user.User{}, errAuthenticationFailed
		}
		return user.User{}, errors.Wrap(err, "finding user by username or email")
	}
	if err = usr.CheckPassword(pwd); err != nil {
		return user.User{}, errAuthenticationFailed
	}
	return usr, nil
}

// identityMiddleware resolves the caller's identity from a Bearer JWT or, as
// a fallback, the legacy x-user-id/x-role headers. Requests without either
// pass through anonymous; role gates reject them downstream.
func identityMiddleware(next echo.HandlerFunc) echo.HandlerFunc {
	return func(ctx echo.Context) error {
		if auth := ctx.Request().Header.Get(echo.HeaderAuthorization); strings.HasPrefix(auth, "Bearer ") {
			claims, err := parseToken(strings.TrimPrefix(auth, "Bearer "))
			if err != nil {
				return err
			}
			ctx.Set(contextIdentityKey, core.Identity{UserID: claims.Subject, Role: claims.Role})
			return next(ctx)
		}

		if uid := core.CleanString(ctx.Request().Header.Get(headerUserID)); uid != "" {
			role := core.NormalizeCode(ctx.Request().Header.Get(headerRole))
			ctx.Set(contextIdentityKey, core.Identity{UserID: uid, Role: role})
		}
		return next(ctx)
	}
}

func getContextIdentity(ctx echo.Context) (core.Identity, error) {
	if ident, ok := ctx.Get(contextIdentityKey).(core.Identity); ok && !ident.IsZero() {
		return ident, nil
	}
	return core.Identity{}, errUnauthorized
}

func requireRole(role string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(ctx echo.Context) error {
			ident, err := getContextIdentity(ctx)
			if err != nil {
				return err
			}
			if ident.Role != role {
				return errHttpForbidden
			}
			return next(ctx)
		}
	}
}

var (
	requireTeacher = requireRole(core.RoleTeacher)
	requireStudent = requireRole(core.RoleStudent)
)
