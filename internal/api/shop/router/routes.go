// Package router đăng ký các route thuộc domain shop: đơn hàng, sản phẩm,
// hội thoại, đánh giá.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"flora_commerce/internal/api/middleware"
	apirouter "flora_commerce/internal/api/router"
	shophdl "flora_commerce/internal/api/shop/handler"
)

// Register đăng ký các route shop lên v1. Tất cả đều yêu cầu phiên.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	orderHandler, err := shophdl.NewOrderHandler()
	if err != nil {
		return fmt.Errorf("failed to create order handler: %w", err)
	}
	productHandler, err := shophdl.NewProductHandler()
	if err != nil {
		return fmt.Errorf("failed to create product handler: %w", err)
	}
	chatHandler, err := shophdl.NewChatHandler()
	if err != nil {
		return fmt.Errorf("failed to create chat handler: %w", err)
	}
	feedbackHandler, err := shophdl.NewFeedbackHandler()
	if err != nil {
		return fmt.Errorf("failed to create feedback handler: %w", err)
	}

	sessionMiddleware := middleware.SessionMiddleware()
	mws := []fiber.Handler{sessionMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/", mws, orderHandler.HandleFindWithPagination)
	// /history phải đăng ký trước /:id để không bị match nhầm
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/history/:userId", mws, orderHandler.HandleOrderHistory)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "GET", "/:id", mws, orderHandler.HandleFindOneById)
	apirouter.RegisterRouteWithMiddleware(v1, "/orders", "PUT", "/:id/status", mws, orderHandler.HandleUpdateStatus)

	apirouter.RegisterRouteWithMiddleware(v1, "/products", "GET", "/", mws, productHandler.HandleFindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "POST", "/", mws, productHandler.HandleInsertOne)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "PUT", "/:id", mws, productHandler.HandleUpdateById)
	apirouter.RegisterRouteWithMiddleware(v1, "/products", "DELETE", "/:id", mws, productHandler.HandleDeleteById)

	apirouter.RegisterRouteWithMiddleware(v1, "/chats", "GET", "/", mws, chatHandler.HandleFindWithPagination)
	apirouter.RegisterRouteWithMiddleware(v1, "/chats", "POST", "/:id/mark-read", mws, chatHandler.HandleMarkRead)

	apirouter.RegisterRouteWithMiddleware(v1, "/feedback", "GET", "/", mws, feedbackHandler.HandleFindWithPagination)

	return nil
}
