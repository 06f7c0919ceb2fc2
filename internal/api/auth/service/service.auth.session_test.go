// Package authsvc - Test cấp phiên và parse token
package authsvc

import (
	"testing"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/stretchr/testify/assert"

	authmodels "flora_commerce/internal/api/auth/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/utility"
)

func TestIssueSession_Authenticated(t *testing.T) {
	svc, err := NewSessionService("test-secret")
	assert.NoError(t, err)

	before := utility.NowUnixMilli()
	session, token, err := svc.IssueSession("user-42")
	after := utility.NowUnixMilli()

	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.Equal(t, "user-42", session.UserID)
	assert.False(t, session.Anonymous)
	assert.NotEmpty(t, session.SessionID)
	assert.GreaterOrEqual(t, session.StartedAt, before)
	assert.LessOrEqual(t, session.StartedAt, after)
	assert.Equal(t, "user-42", session.Identity())
}

func TestIssueSession_Anonymous(t *testing.T) {
	svc, _ := NewSessionService("test-secret")

	session, token, err := svc.IssueSession("")
	assert.NoError(t, err)
	assert.NotEmpty(t, token)
	assert.True(t, session.Anonymous)
	assert.Empty(t, session.UserID)
	// Phiên ẩn danh scope theo SessionID
	assert.Equal(t, session.SessionID, session.Identity())
}

func TestNewSessionService_EmptySecret(t *testing.T) {
	_, err := NewSessionService("")
	assert.Error(t, err)
}

func TestParseToken_RoundTrip(t *testing.T) {
	svc, _ := NewSessionService("test-secret")

	issued, token, err := svc.IssueSession("user-42")
	assert.NoError(t, err)

	parsed, err := svc.ParseToken(token)
	assert.NoError(t, err)
	assert.Equal(t, issued.SessionID, parsed.SessionID)
	assert.Equal(t, issued.UserID, parsed.UserID)
	assert.Equal(t, issued.Anonymous, parsed.Anonymous)
	// StartedAt phải giữ nguyên qua token — mốc admission filter không đổi
	assert.Equal(t, issued.StartedAt, parsed.StartedAt)
}

func TestParseToken_WrongSecret(t *testing.T) {
	issuer, _ := NewSessionService("secret-a")
	verifier, _ := NewSessionService("secret-b")

	_, token, _ := issuer.IssueSession("user-42")
	_, err := verifier.ParseToken(token)
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseToken_Garbage(t *testing.T) {
	svc, _ := NewSessionService("test-secret")
	_, err := svc.ParseToken("không-phải-jwt")
	assert.ErrorIs(t, err, common.ErrTokenInvalid)
}

func TestParseToken_Expired(t *testing.T) {
	svc, _ := NewSessionService("test-secret")

	// Ký tay một token đã hết hạn với cùng secret
	claims := authmodels.JwtClaims{
		SessionID: "sid-1",
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Add(-2 * time.Hour).Unix(),
			ExpiresAt: time.Now().Add(-time.Hour).Unix(),
		},
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte("test-secret"))
	assert.NoError(t, err)

	_, parseErr := svc.ParseToken(signed)
	assert.ErrorIs(t, parseErr, common.ErrTokenExpired)
}
