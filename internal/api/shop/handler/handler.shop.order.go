// Package shophdl xử lý các request quản lý dữ liệu shop từ dashboard.
package shophdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "flora_commerce/internal/api/base/handler"
	shopdto "flora_commerce/internal/api/shop/dto"
	shopsvc "flora_commerce/internal/api/shop/service"
	"flora_commerce/internal/common"
)

// OrderHandler xử lý các request trên đơn hàng
type OrderHandler struct {
	orderService *shopsvc.OrderService
}

// NewOrderHandler tạo instance mới của OrderHandler
func NewOrderHandler() (*OrderHandler, error) {
	orderService, err := shopsvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	return &OrderHandler{orderService: orderService}, nil
}

// HandleFindWithPagination liệt kê đơn hàng phân trang, mới nhất trước.
// Query: page, limit, status (lọc theo trạng thái, bỏ trống lấy tất cả).
func (h *OrderHandler) HandleFindWithPagination(c fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := bson.M{}
	if status := c.Query("status", ""); status != "" {
		filter["status"] = status
	}

	opts := options.Find().SetSort(bson.D{{Key: "orderedAt", Value: -1}})
	result, err := h.orderService.FindWithPagination(c.Context(), filter, page, limit, opts)
	return basehdl.HandleResponse(c, result, err)
}

// HandleFindOneById lấy một đơn hàng theo id
func (h *OrderHandler) HandleFindOneById(c fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat, "Id đơn hàng không hợp lệ", common.StatusBadRequest, err))
	}

	order, err := h.orderService.FindOneById(c.Context(), objID)
	return basehdl.HandleResponse(c, order, err)
}

// HandleUpdateStatus đổi trạng thái một đơn hàng
func (h *OrderHandler) HandleUpdateStatus(c fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat, "Id đơn hàng không hợp lệ", common.StatusBadRequest, err))
	}

	var input shopdto.OrderUpdateStatusInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	if err := h.orderService.UpdateStatus(c.Context(), objID, input.Status); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	order, err := h.orderService.FindOneById(c.Context(), objID)
	return basehdl.HandleResponse(c, order, err)
}

// HandleOrderHistory tra cứu toàn bộ đơn của một tài khoản khách.
// UserId lấy từ rollup khách hàng (propagate từ đơn đầu tiên của email đó).
func (h *OrderHandler) HandleOrderHistory(c fiber.Ctx) error {
	userId := c.Params("userId")
	if userId == "" {
		return basehdl.HandleResponse(c, nil, common.ErrRequiredField)
	}

	orders, err := h.orderService.FindByCustomerUserId(c.Context(), userId)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, shopdto.OrderHistoryResponse{
		UserId: userId,
		Orders: orders,
	}, nil)
}
