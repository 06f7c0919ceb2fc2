// Package router đăng ký các route thuộc domain report.
package router

import (
	"fmt"

	"github.com/gofiber/fiber/v3"

	"flora_commerce/internal/api/middleware"
	reporthdl "flora_commerce/internal/api/report/handler"
	apirouter "flora_commerce/internal/api/router"
)

// Register đăng ký các route report lên v1. Tất cả đều yêu cầu phiên.
func Register(v1 fiber.Router, r *apirouter.Router) error {
	reportHandler, err := reporthdl.NewReportHandler()
	if err != nil {
		return fmt.Errorf("failed to create report handler: %w", err)
	}

	sessionMiddleware := middleware.SessionMiddleware()
	mws := []fiber.Handler{sessionMiddleware}

	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/customers", mws, reportHandler.HandleCustomerRollup)
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/top-sellers", mws, reportHandler.HandleTopSellers)
	apirouter.RegisterRouteWithMiddleware(v1, "/reports", "GET", "/hourly-histogram", mws, reportHandler.HandleHourlyHistogram)
	return nil
}
