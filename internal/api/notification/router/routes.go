// Package router đăng ký các route thuộc domain notification.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"flora_commerce/internal/api/middleware"
	notifyhdl "flora_commerce/internal/api/notification/handler"
	apirouter "flora_commerce/internal/api/router"
)

// Register đăng ký các route notification lên v1. Tất cả đều yêu cầu phiên.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	feedHandler, err := notifyhdl.NewFeedHandler()
	if err != nil {
		return fmt.Errorf("failed to create feed handler: %w", err)
	}

	sessionMiddleware := middleware.SessionMiddleware()
	mws := []fiber.Handler{sessionMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/", mws, feedHandler.HandleList)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "GET", "/unread-count", mws, feedHandler.HandleUnreadCount)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "POST", "/dismiss", mws, feedHandler.HandleDismiss)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "POST", "/clear", mws, feedHandler.HandleClearAll)
	apirouter.RegisterRouteWithMiddleware(v1, "/notifications", "POST", "/mark-all-read", mws, feedHandler.HandleMarkAllRead)
	return nil
}
