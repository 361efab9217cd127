package serverutils

import (
	"errors"
	"fmt"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/golang-jwt/jwt/v5"
)

const LocalUserId = "user_id"

var ErrMissingToken = errors.New("missing token")

// BearerToken reads the token from the Authorization header, falling back to
// the "token" query parameter (browsers cannot set headers on websockets).
func BearerToken(ctx *fiber.Ctx) string {
	authHeader := ctx.Get("Authorization")
	if len(authHeader) > 7 && strings.EqualFold(authHeader[:7], "Bearer ") {
		return authHeader[7:]
	}
	return ctx.Query("token")
}

// ParseUserId verifies an HS256 token and returns its user id claim
// ("user_id", or "sub" for tokens issued by a hosted auth provider).
func ParseUserId(tokenStr, secret string) (string, error) {
	if tokenStr == "" {
		return "", ErrMissingToken
	}

	token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	})
	if err != nil {
		return "", err
	}
	if !token.Valid {
		return "", errors.New("invalid token")
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return "", errors.New("invalid claims")
	}
	if id, ok := claims["user_id"].(string); ok && id != "" {
		return id, nil
	}
	if sub, err := claims.GetSubject(); err == nil && sub != "" {
		return sub, nil
	}
	return "", errors.New("token missing user id")
}

// JwtMiddleware rejects requests without a valid token.
func JwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		userId, err := ParseUserId(BearerToken(ctx), secret)
		if errors.Is(err, ErrMissingToken) {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Missing token"))
		}
		if err != nil {
			return ctx.Status(fiber.StatusUnauthorized).JSON(ErrorResponse(fiber.StatusUnauthorized, "Invalid token"))
		}
		ctx.Locals(LocalUserId, userId)
		return ctx.Next()
	}
}

// OptionalJwtMiddleware stores the user id when a valid token is present and
// otherwise lets the request through anonymously.
func OptionalJwtMiddleware(secret string) fiber.Handler {
	return func(ctx *fiber.Ctx) error {
		if userId, err := ParseUserId(BearerToken(ctx), secret); err == nil {
			ctx.Locals(LocalUserId, userId)
		}
		return ctx.Next()
	}
}

// UserId returns the id stored by the middleware, or "" for anonymous requests.
func UserId(ctx *fiber.Ctx) string {
	id, _ := ctx.Locals(LocalUserId).(string)
	return id
}
