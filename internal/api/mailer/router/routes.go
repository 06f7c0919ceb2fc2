// Package router đăng ký route relay email trạng thái đơn hàng.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	mailerhdl "flora_commerce/internal/api/mailer/handler"
	apirouter "flora_commerce/internal/api/router"
)

// Register đăng ký route mailer lên v1.
// Endpoint này do shop app gọi, không yêu cầu phiên dashboard.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	mailerHandler, err := mailerhdl.NewMailerHandler()
	if err != nil {
		return fmt.Errorf("failed to create mailer handler: %w", err)
	}

	v1.Post("/send-order-email", mailerHandler.HandleSendOrderEmail)
	return nil
}
