package middleware

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/Nitingarg01/Major-project-sub001/internal/models"
	"github.com/Nitingarg01/Major-project-sub001/internal/utils"

	"github.com/golang-jwt/jwt/v5"
)

const userIDKey contextKey = "user_id"

// clock skew tolerated on exp and nbf
const tokenLeeway = 30 * time.Second

var (
	ErrMissingAuthHeader = errors.New("missing or malformed Authorization header")
	ErrInvalidToken      = errors.New("invalid token")
	ErrInvalidClaims     = errors.New("invalid token claims")
)

func newTokenParser() *jwt.Parser {
	return jwt.NewParser(
		jwt.WithValidMethods([]string{"HS256", "HS384", "HS512"}),
		jwt.WithLeeway(tokenLeeway),
	)
}

func bearerToken(r *http.Request) (string, error) {
	scheme, token, ok := strings.Cut(r.Header.Get("Authorization"), " ")
	if !ok || !strings.EqualFold(scheme, "Bearer") || strings.TrimSpace(token) == "" {
		return "", ErrMissingAuthHeader
	}
	return strings.TrimSpace(token), nil
}

// VerifyToken checks the request's bearer token against an HMAC secret and
// returns its claims.
func VerifyToken(r *http.Request, secret string) (jwt.MapClaims, error) {
	return verifyWith(newTokenParser(), r, []byte(secret))
}

func verifyWith(parser *jwt.Parser, r *http.Request, key []byte) (jwt.MapClaims, error) {
	raw, err := bearerToken(r)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{}
	if _, err := parser.ParseWithClaims(raw, claims, func(*jwt.Token) (interface{}, error) {
		return key, nil
	}); err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidToken, err)
	}
	return claims, nil
}

// GetUserIDFromClaims returns the token subject. Numeric subjects, which
// decode as float64, are formatted as integers.
func GetUserIDFromClaims(claims jwt.MapClaims) (string, error) {
	if n, ok := claims["sub"].(float64); ok {
		return strconv.FormatInt(int64(n), 10), nil
	}
	sub, err := claims.GetSubject()
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrInvalidClaims, err)
	}
	if sub == "" {
		return "", fmt.Errorf("%w: missing sub", ErrInvalidClaims)
	}
	return sub, nil
}

// Authenticate requires a valid bearer token signed with secret and puts
// the token subject in the request context. An empty secret disables the
// check.
func Authenticate(secret string) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		if secret == "" {
			return next
		}
		parser, key := newTokenParser(), []byte(secret)
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, err := verifyWith(parser, r, key)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}

			userID, err := GetUserIDFromClaims(claims)
			if err != nil {
				utils.JSON(w, http.StatusUnauthorized, models.ErrorResponse{
					Code:    "unauthorized",
					Message: err.Error(),
				})
				return
			}

			next.ServeHTTP(w, r.WithContext(WithUserID(r.Context(), userID)))
		})
	}
}

// WithUserID marks ctx as authenticated for userID.
func WithUserID(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userIDKey, userID)
}

// UserIDFromContext returns the authenticated user, or "" when the request
// was not authenticated.
func UserIDFromContext(ctx context.Context) string {
	userID, _ := ctx.Value(userIDKey).(string)
	return userID
}
