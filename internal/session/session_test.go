package session

import (
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

const secret = "test-secret"

func TestIssueAndSubjectRoundTrip(t *testing.T) {
	id := primitive.NewObjectID()

	token, err := Issue(UserClaim, id, secret, time.Hour)
	require.NoError(t, err)

	got, err := Subject(token, UserClaim, secret)
	require.NoError(t, err)
	assert.Equal(t, id, got)
}

func TestSubjectRejects(t *testing.T) {
	id := primitive.NewObjectID()
	valid, err := Issue(AdminClaim, id, secret, time.Hour)
	require.NoError(t, err)
	expired, err := Issue(AdminClaim, id, secret, -time.Minute)
	require.NoError(t, err)
	noExp, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{AdminClaim: id.Hex()}).SignedString([]byte(secret))
	require.NoError(t, err)
	badID, err := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		AdminClaim: "not-an-id",
		"exp":      time.Now().Add(time.Hour).Unix(),
	}).SignedString([]byte(secret))
	require.NoError(t, err)

	tests := []struct {
		name     string
		token    string
		claimKey string
		secret   string
	}{
		{name: "wrong secret", token: valid, claimKey: AdminClaim, secret: "other"},
		{name: "wrong claim", token: valid, claimKey: UserClaim, secret: secret},
		{name: "expired", token: expired, claimKey: AdminClaim, secret: secret},
		{name: "no expiry", token: noExp, claimKey: AdminClaim, secret: secret},
		{name: "bad id", token: badID, claimKey: AdminClaim, secret: secret},
		{name: "garbage", token: "abc.def.ghi", claimKey: AdminClaim, secret: secret},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Subject(tt.token, tt.claimKey, tt.secret)
			assert.ErrorIs(t, err, ErrInvalidToken)
		})
	}
}

func newContext(req *http.Request) (*gin.Context, *httptest.ResponseRecorder) {
	gin.SetMode(gin.TestMode)
	rec := httptest.NewRecorder()
	c, _ := gin.CreateTestContext(rec)
	c.Request = req
	return c, rec
}

func TestFromRequestPrefersCookie(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.AddCookie(&http.Cookie{Name: UserCookie, Value: "cookie-token"})
	req.Header.Set("Authorization", "Bearer header-token")
	c, _ := newContext(req)

	token, err := FromRequest(c, UserCookie)
	require.NoError(t, err)
	assert.Equal(t, "cookie-token", token)
}

func TestFromRequestBearerFallback(t *testing.T) {
	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "bearer header-token")
	c, _ := newContext(req)

	token, err := FromRequest(c, AdminCookie)
	require.NoError(t, err)
	assert.Equal(t, "header-token", token)
}

func TestFromRequestMissingAndMalformed(t *testing.T) {
	c, _ := newContext(httptest.NewRequest(http.MethodGet, "/", nil))
	_, err := FromRequest(c, UserCookie)
	assert.ErrorIs(t, err, ErrMissingToken)

	req := httptest.NewRequest(http.MethodGet, "/", nil)
	req.Header.Set("Authorization", "Token abc")
	c, _ = newContext(req)
	_, err = FromRequest(c, UserCookie)
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestSetCookieAttributes(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	SetCookie(c, UserCookie, "tok", 7*24*time.Hour, false)

	header := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "token=tok"))
	assert.Contains(t, header, "Max-Age=604800")
	assert.Contains(t, header, "HttpOnly")
	assert.Contains(t, header, "SameSite=Lax")
	assert.NotContains(t, header, "Secure")

	c, rec = newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	SetCookie(c, AdminCookie, "tok", time.Hour, true)
	header = rec.Header().Get("Set-Cookie")
	assert.Contains(t, header, "Secure")
	assert.Contains(t, header, "SameSite=None")
}

func TestClearCookieExpires(t *testing.T) {
	c, rec := newContext(httptest.NewRequest(http.MethodPost, "/", nil))
	ClearCookie(c, AdminCookie, false)

	header := rec.Header().Get("Set-Cookie")
	assert.True(t, strings.HasPrefix(header, "admin_token=;"))
	assert.Contains(t, header, "Max-Age=0")
}
