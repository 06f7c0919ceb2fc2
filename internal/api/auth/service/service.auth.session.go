// Package authsvc cấp và xác thực session cho dashboard.
// Phiên có thể gắn user đã xác thực hoặc ẩn danh (khách mở dashboard chưa đăng nhập);
// cả hai đều đủ điều kiện mở các live query subscription.
package authsvc

import (
	"fmt"
	"time"

	"github.com/dgrijalva/jwt-go"
	"github.com/google/uuid"

	authmodels "flora_commerce/internal/api/auth/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/utility"
)

// SessionService cấp session mới và parse token của session hiện có
type SessionService struct {
	jwtSecret []byte
}

// NewSessionService tạo SessionService với secret ký JWT
func NewSessionService(jwtSecret string) (*SessionService, error) {
	if jwtSecret == "" {
		return nil, fmt.Errorf("jwt secret is empty")
	}
	return &SessionService{jwtSecret: []byte(jwtSecret)}, nil
}

// IssueSession tạo phiên mới. userID rỗng thì cấp phiên ẩn danh.
// StartedAt được chốt tại đây và không đổi suốt đời phiên — đây là mốc
// ngăn record lịch sử bị phát lại thành notification sau mỗi lần reload.
func (s *SessionService) IssueSession(userID string) (*authmodels.Session, string, error) {
	session := &authmodels.Session{
		SessionID: uuid.NewString(),
		UserID:    userID,
		Anonymous: userID == "",
		StartedAt: utility.NowUnixMilli(),
	}

	claims := authmodels.JwtClaims{
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Anonymous: session.Anonymous,
		StartedAt: session.StartedAt,
		StandardClaims: jwt.StandardClaims{
			IssuedAt:  time.Now().Unix(),
			ExpiresAt: time.Now().Add(30 * 24 * time.Hour).Unix(),
		},
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return nil, "", fmt.Errorf("sign session token: %w", err)
	}

	return session, signed, nil
}

// ParseToken xác thực token và dựng lại Session từ claims
func (s *SessionService) ParseToken(tokenString string) (*authmodels.Session, error) {
	claims := &authmodels.JwtClaims{}
	token, err := jwt.ParseWithClaims(tokenString, claims, func(t *jwt.Token) (interface{}, error) {
		if _, ok := t.Method.(*jwt.SigningMethodHMAC); !ok {
			return nil, fmt.Errorf("unexpected signing method: %v", t.Header["alg"])
		}
		return s.jwtSecret, nil
	})
	if err != nil {
		if vErr, ok := err.(*jwt.ValidationError); ok && vErr.Errors&jwt.ValidationErrorExpired != 0 {
			return nil, common.ErrTokenExpired
		}
		return nil, common.ErrTokenInvalid
	}
	if !token.Valid {
		return nil, common.ErrTokenInvalid
	}

	return &authmodels.Session{
		SessionID: claims.SessionID,
		UserID:    claims.UserID,
		Anonymous: claims.Anonymous,
		StartedAt: claims.StartedAt,
	}, nil
}
