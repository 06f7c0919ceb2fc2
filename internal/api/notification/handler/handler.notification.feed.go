// Package notifyhdl xử lý các request trên feed notification của phiên hiện tại.
package notifyhdl

import (
	"github.com/gofiber/fiber/v3"

	basehdl "flora_commerce/internal/api/base/handler"
	"flora_commerce/internal/api/middleware"
	notifydto "flora_commerce/internal/api/notification/dto"
	notifysvc "flora_commerce/internal/api/notification/service"
	"flora_commerce/internal/common"
	"flora_commerce/internal/worker"
)

// FeedHandler xử lý các request trên feed notification
type FeedHandler struct{}

// NewFeedHandler tạo instance mới của FeedHandler
func NewFeedHandler() (*FeedHandler, error) {
	return &FeedHandler{}, nil
}

// feedForRequest lấy (hoặc dựng) feed của phiên gắn trong request
func (h *FeedHandler) feedForRequest(c fiber.Ctx) (*notifysvc.Feed, error) {
	session := middleware.SessionFromCtx(c)
	if session == nil {
		return nil, common.NewError(common.ErrCodeAuthSession, common.MsgUnauthorized, common.StatusUnauthorized, nil)
	}
	return worker.GetAggregationWorker().EnsureFeed(c.Context(), session)
}

// HandleList trả về feed hiện tại (mới nhất trước) kèm số chưa đọc
func (h *FeedHandler) HandleList(c fiber.Ctx) error {
	feed, err := h.feedForRequest(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, notifydto.FeedResponse{
		Items:       feed.List(),
		UnreadCount: feed.UnreadCount(),
	}, nil)
}

// HandleUnreadCount trả về số notification chưa đọc
func (h *FeedHandler) HandleUnreadCount(c fiber.Ctx) error {
	feed, err := h.feedForRequest(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}
	return basehdl.HandleResponse(c, notifydto.UnreadCountResponse{UnreadCount: feed.UnreadCount()}, nil)
}

// HandleDismiss bỏ một notification theo id. Id không tồn tại vẫn trả thành công.
func (h *FeedHandler) HandleDismiss(c fiber.Ctx) error {
	feed, err := h.feedForRequest(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	var input notifydto.DismissInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	feed.Dismiss(c.Context(), input.Id)
	return basehdl.HandleResponse(c, notifydto.FeedResponse{
		Items:       feed.List(),
		UnreadCount: feed.UnreadCount(),
	}, nil)
}

// HandleClearAll xóa sạch feed và bản đã lưu của phiên
func (h *FeedHandler) HandleClearAll(c fiber.Ctx) error {
	feed, err := h.feedForRequest(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	feed.ClearAll(c.Context())
	return basehdl.HandleResponse(c, notifydto.FeedResponse{Items: feed.List(), UnreadCount: 0}, nil)
}

// HandleMarkAllRead đánh dấu đã đọc toàn bộ feed
func (h *FeedHandler) HandleMarkAllRead(c fiber.Ctx) error {
	feed, err := h.feedForRequest(c)
	if err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	feed.MarkAllRead(c.Context())
	return basehdl.HandleResponse(c, notifydto.FeedResponse{
		Items:       feed.List(),
		UnreadCount: feed.UnreadCount(),
	}, nil)
}
