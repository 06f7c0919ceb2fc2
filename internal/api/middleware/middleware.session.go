package middleware

import (
	"strings"
	"sync"

	"github.com/gofiber/fiber/v3"
	"github.com/sirupsen/logrus"

	authmodels "flora_commerce/internal/api/auth/models"
	authsvc "flora_commerce/internal/api/auth/service"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
	"flora_commerce/internal/logger"
)

var (
	sessionServiceInstance *authsvc.SessionService
	sessionServiceOnce     sync.Once
)

// getSessionService trả về instance duy nhất của SessionService (singleton pattern)
func getSessionService() *authsvc.SessionService {
	sessionServiceOnce.Do(func() {
		var err error
		sessionServiceInstance, err = authsvc.NewSessionService(global.ServerConfig.JwtSecret)
		if err != nil {
			panic(err)
		}
	})
	return sessionServiceInstance
}

// SessionMiddleware xác thực token phiên và gắn *models.Session vào c.Locals("session").
// Mọi route đứng sau middleware này đều đọc được mốc StartedAt của phiên.
func SessionMiddleware() fiber.Handler {
	sessionService := getSessionService()

	return func(c fiber.Ctx) error {
		authHeader := c.Get("Authorization")
		if authHeader == "" {
			// Chỉ log khi thiếu token
			logger.GetAppLogger().WithFields(logrus.Fields{
				"path":   c.Path(),
				"method": c.Method(),
			}).Warn("❌ [SESSION] Missing Authorization header")
			HandleErrorResponse(c, common.ErrTokenMissing)
			return nil
		}

		parts := strings.Split(authHeader, " ")
		if len(parts) != 2 || parts[0] != "Bearer" {
			HandleErrorResponse(c, common.ErrTokenInvalid)
			return nil
		}

		session, err := sessionService.ParseToken(parts[1])
		if err != nil {
			HandleErrorResponse(c, err)
			return nil
		}

		c.Locals("session", session)
		return c.Next()
	}
}

// SessionFromCtx đọc session đã được SessionMiddleware gắn vào context.
// Trả về nil nếu route không đi qua middleware.
func SessionFromCtx(c fiber.Ctx) *authmodels.Session {
	session, ok := c.Locals("session").(*authmodels.Session)
	if !ok {
		return nil
	}
	return session
}
