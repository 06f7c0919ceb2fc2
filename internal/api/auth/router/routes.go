// Package router đăng ký các route thuộc domain auth: cấp phiên dashboard.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	authhdl "flora_commerce/internal/api/auth/handler"
	apirouter "flora_commerce/internal/api/router"
)

// Register đăng ký các route auth lên v1
func Register(v1 fiber.Router, r *apirouter.Router) error {
	sessionHandler, err := authhdl.NewSessionHandler()
	if err != nil {
		return fmt.Errorf("failed to create session handler: %w", err)
	}

	// Cấp phiên không cần token: đây là điểm vào đầu tiên của dashboard
	v1.Post("/auth/session", sessionHandler.HandleCreateSession)
	return nil
}
