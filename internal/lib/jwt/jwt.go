package jwt

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-chi/jwtauth/v5"
	"github.com/golang-jwt/jwt/v5"

	"newspaper/internal/domain/models"
)

var ErrNoUserClaim = errors.New("token has no user claim")

func NewToken(user models.User, duration time.Duration, secret string) (string, error) {
	token := jwt.New(jwt.SigningMethodHS256)

	claims := token.Claims.(jwt.MapClaims)
	claims["uid"] = user.ID
	claims["name"] = user.Username
	claims["exp"] = time.Now().Add(duration).Unix()

	tokenString, err := token.SignedString([]byte(secret))
	if err != nil {
		return "", err
	}

	return tokenString, nil
}

// UserID returns the "uid" claim of the token verified by jwtauth.Verifier.
func UserID(ctx context.Context) (int64, error) {
	const op = "lib.jwt.UserID"

	_, claims, err := jwtauth.FromContext(ctx)
	if err != nil {
		return 0, fmt.Errorf("%s: %w", op, err)
	}

	// JSON numbers arrive as float64.
	switch uid := claims["uid"].(type) {
	case float64:
		return int64(uid), nil
	case int64:
		return uid, nil
	default:
		return 0, fmt.Errorf("%s: %w", op, ErrNoUserClaim)
	}
}
