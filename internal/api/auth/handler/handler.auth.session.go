// Package authhdl cấp phiên dashboard qua POST /auth/session.
//
// Ranh giới tin cậy: endpoint này KHÔNG xác thực credential. Việc xác thực
// user thuộc về hệ thống auth bên ngoài (reverse proxy / identity provider
// đứng trước API); userId trong body được tin là đã được xác minh ở tầng đó.
// Endpoint này chỉ được expose trong mạng nội bộ của dashboard — đặt nó ra
// Internet công khai thì bất kỳ ai cũng nhận được phiên mang userId tùy ý
// và đọc được feed notification đã lưu của user đó.
package authhdl

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authdto "flora_commerce/internal/api/auth/dto"
	authsvc "flora_commerce/internal/api/auth/service"
	basehdl "flora_commerce/internal/api/base/handler"
	"flora_commerce/internal/global"
)

// SessionHandler xử lý các request cấp phiên dashboard
type SessionHandler struct {
	sessionService *authsvc.SessionService
}

// NewSessionHandler tạo instance mới của SessionHandler
func NewSessionHandler() (*SessionHandler, error) {
	sessionService, err := authsvc.NewSessionService(global.ServerConfig.JwtSecret)
	if err != nil {
		return nil, fmt.Errorf("failed to create session service: %v", err)
	}
	return &SessionHandler{sessionService: sessionService}, nil
}

// HandleCreateSession cấp phiên mới cho dashboard.
// Body trống hoặc không có userId thì cấp phiên ẩn danh.
func (h *SessionHandler) HandleCreateSession(c fiber.Ctx) error {
	var input authdto.CreateSessionInput
	if len(c.Body()) > 0 {
		if err := basehdl.ParseRequestBody(c, &input); err != nil {
			return basehdl.HandleResponse(c, nil, err)
		}
	}

	session, token, err := h.sessionService.IssueSession(input.UserID)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	return basehdl.HandleResponse(c, authdto.CreateSessionResponse{
		Token:     token,
		SessionID: session.SessionID,
		UserID:    session.UserID,
		Anonymous: session.Anonymous,
		StartedAt: session.StartedAt,
	}, nil)
}
