package authdto

// CreateSessionInput là body của POST /auth/session.
// UserID để trống thì cấp phiên ẩn danh.
type CreateSessionInput struct {
	UserID string `json:"userId" validate:"omitempty,printable"`
}

// CreateSessionResponse trả token và thông tin phiên cho client
type CreateSessionResponse struct {
	Token     string `json:"token"`
	SessionID string `json:"sessionId"`
	UserID    string `json:"userId,omitempty"`
	Anonymous bool   `json:"anonymous"`
	StartedAt int64  `json:"startedAt"`
}
