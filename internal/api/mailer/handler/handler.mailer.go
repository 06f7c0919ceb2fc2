// Package mailerhdl xử lý endpoint relay email trạng thái đơn hàng.
//
// Response của endpoint này giữ nguyên hình dạng phía shop app đang đọc
// (message/info, error/details), không dùng envelope chung của dashboard.
package mailerhdl

import (
	"bytes"
	"encoding/json"
	"fmt"

	"github.com/gofiber/fiber/v3"

	mailerdto "flora_commerce/internal/api/mailer/dto"
	mailersvc "flora_commerce/internal/api/mailer/service"
	"flora_commerce/internal/api/middleware"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
	"flora_commerce/internal/logger"
)

// MailerHandler xử lý request gửi email trạng thái đơn
type MailerHandler struct {
	orderMailer *mailersvc.OrderMailer
}

// NewMailerHandler tạo instance mới của MailerHandler
func NewMailerHandler() (*MailerHandler, error) {
	orderMailer, err := mailersvc.NewOrderMailer(global.ServerConfig)
	if err != nil {
		return nil, fmt.Errorf("failed to create order mailer: %v", err)
	}
	return &MailerHandler{orderMailer: orderMailer}, nil
}

// HandleSendOrderEmail gửi email trạng thái cho khách rồi ghi trạng thái mới
// vào record đơn. Thiếu trường bắt buộc trả 400; gửi mail hoặc ghi record lỗi
// trả 500 kèm chi tiết.
func (h *MailerHandler) HandleSendOrderEmail(c fiber.Ctx) error {
	var input mailerdto.SendOrderEmailInput
	decoder := json.NewDecoder(bytes.NewReader(c.Body()))
	if err := decoder.Decode(&input); err != nil {
		return middleware.JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"error": "Body không phải JSON hợp lệ",
		})
	}
	if err := global.Validate.Struct(&input); err != nil {
		return middleware.JSONResponse(c, common.StatusBadRequest, fiber.Map{
			"error": "Thiếu hoặc sai trường bắt buộc: customerEmail, customerName, orderId, status, productName",
		})
	}

	info, err := h.orderMailer.SendStatusEmail(&input)
	if err != nil {
		logger.WithModule("mailer").WithError(err).Error("Gửi email trạng thái đơn thất bại")
		return middleware.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"error":   "Không gửi được email",
			"details": err.Error(),
		})
	}

	if err := h.orderMailer.WriteStatusBack(c.Context(), input.OrderId, input.Status); err != nil {
		logger.WithModule("mailer").WithError(err).Error("Ghi trạng thái mới vào đơn thất bại sau khi đã gửi email")
		return middleware.JSONResponse(c, common.StatusInternalServerError, fiber.Map{
			"error":   "Đã gửi email nhưng không cập nhật được trạng thái đơn",
			"details": err.Error(),
		})
	}

	return middleware.JSONResponse(c, common.StatusOK, fiber.Map{
		"message": "Đã gửi email và cập nhật trạng thái đơn",
		"info":    info,
	})
}
