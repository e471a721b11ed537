// Package session issues and reads the signed tokens carried in the
// httpOnly session cookies.
package session

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const (
	UserCookie  = "token"
	AdminCookie = "admin_token"

	UserClaim  = "userId"
	AdminClaim = "adminId"
)

var (
	ErrMissingToken = errors.New("no token provided")
	ErrInvalidToken = errors.New("invalid or expired token")
)

// Issue signs an HS256 token carrying id under claimKey.
func Issue(claimKey string, id primitive.ObjectID, secret string, ttl time.Duration) (string, error) {
	now := time.Now()
	claims := jwt.MapClaims{
		claimKey: id.Hex(),
		"iat":    now.Unix(),
		"exp":    now.Add(ttl).Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(secret))
}

// Subject validates raw and returns the object id stored under claimKey.
func Subject(raw, claimKey, secret string) (primitive.ObjectID, error) {
	token, err := jwt.Parse(raw, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method %v", t.Header["alg"])
		}
		return []byte(secret), nil
	}, jwt.WithExpirationRequired())
	if err != nil || !token.Valid {
		return primitive.NilObjectID, ErrInvalidToken
	}

	claims, ok := token.Claims.(jwt.MapClaims)
	if !ok {
		return primitive.NilObjectID, ErrInvalidToken
	}

	value, ok := claims[claimKey].(string)
	if !ok || strings.TrimSpace(value) == "" {
		return primitive.NilObjectID, ErrInvalidToken
	}

	id, err := primitive.ObjectIDFromHex(value)
	if err != nil {
		return primitive.NilObjectID, ErrInvalidToken
	}
	return id, nil
}

// FromRequest reads the token from cookieName, falling back to an
// Authorization bearer header for non-browser clients.
func FromRequest(c *gin.Context, cookieName string) (string, error) {
	if value, err := c.Cookie(cookieName); err == nil && strings.TrimSpace(value) != "" {
		return value, nil
	}

	raw := strings.TrimSpace(c.GetHeader("Authorization"))
	if raw == "" {
		return "", ErrMissingToken
	}
	parts := strings.Split(raw, " ")
	if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
		return "", ErrInvalidToken
	}
	return parts[1], nil
}

func SetCookie(c *gin.Context, name, token string, ttl time.Duration, production bool) {
	writeCookie(c, name, token, int(ttl.Seconds()), production)
}

func ClearCookie(c *gin.Context, name string, production bool) {
	writeCookie(c, name, "", -1, production)
}

func writeCookie(c *gin.Context, name, value string, maxAge int, production bool) {
	if production {
		c.SetSameSite(http.SameSiteNoneMode)
	} else {
		c.SetSameSite(http.SameSiteLaxMode)
	}
	c.SetCookie(name, value, maxAge, "/", "", production, true)
}
