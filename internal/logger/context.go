package logger

import (
	"context"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"
)

// WithRequest tạo log entry gắn thông tin request hiện tại (request_id, method, path, ip).
// Dùng trong handler và error handler để trace request qua log.
func WithRequest(c fiber.Ctx) *logrus.Entry {
	log := GetAppLogger()
	entry := log.WithContext(context.Background())

	// Request ID middleware có thể set vào Locals hoặc header
	var requestID string
	if rid := c.Locals("requestid"); rid != nil {
		if ridStr, ok := rid.(string); ok {
			requestID = ridStr
		}
	}
	if requestID == "" {
		requestID = c.Get("X-Request-ID")
	}
	if requestID == "" {
		requestID = c.GetRespHeader("X-Request-ID")
	}
	if requestID != "" {
		entry = entry.WithField("request_id", requestID)
	}

	return entry.WithFields(logrus.Fields{
		"method": c.Method(),
		"path":   c.Path(),
		"ip":     c.IP(),
	})
}

// WithModule tạo log entry gắn field module — dùng với FilterHook
// để bật/tắt log theo từng subsystem (notification, report, mailer, ...).
func WithModule(module string) *logrus.Entry {
	return GetAppLogger().WithField("module", module)
}
