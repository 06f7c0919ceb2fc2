// Package models - Session, JwtClaims thuộc domain auth.
package models

import "github.com/dgrijalva/jwt-go"

// Session là danh tính của một phiên làm việc trên dashboard.
// Được tạo một lần khi đăng nhập (hoặc cấp ẩn danh) và truyền tường minh
// vào mọi subscription handler — không dùng global mutable state.
type Session struct {
	SessionID string `json:"sessionId"`           // ID duy nhất của phiên
	UserID    string `json:"userId,omitempty"`    // ID user đã xác thực; rỗng với phiên ẩn danh
	Anonymous bool   `json:"anonymous"`           // Phiên ẩn danh (chưa đăng nhập)
	StartedAt int64  `json:"startedAt"`           // Thời điểm bắt đầu phiên (Unix ms) — mốc của admission filter, không đổi suốt phiên
}

// Identity trả về định danh để scope dữ liệu persist theo phiên:
// user đã đăng nhập dùng UserID (feed giữ qua các phiên), ẩn danh dùng SessionID.
func (s *Session) Identity() string {
	if s.UserID != "" {
		return s.UserID
	}
	return s.SessionID
}

// JwtClaims chứa data được mã hóa trong JWT token của phiên.
type JwtClaims struct {
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	Anonymous bool   `json:"anonymous"`
	StartedAt int64  `json:"startedAt"`
	jwt.StandardClaims
}
