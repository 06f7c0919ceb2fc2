package shophdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "flora_commerce/internal/api/base/handler"
	shopsvc "flora_commerce/internal/api/shop/service"
	"flora_commerce/internal/common"
)

// ChatHandler xử lý các request trên hội thoại chăm sóc khách hàng
type ChatHandler struct {
	chatService *shopsvc.ChatService
}

// NewChatHandler tạo instance mới của ChatHandler
func NewChatHandler() (*ChatHandler, error) {
	chatService, err := shopsvc.NewChatService()
	if err != nil {
		return nil, fmt.Errorf("failed to create chat service: %v", err)
	}
	return &ChatHandler{chatService: chatService}, nil
}

// HandleFindWithPagination liệt kê hội thoại, tin nhắn mới nhất trước.
// Query: page, limit, unreadOnly=true để chỉ lấy hội thoại admin chưa đọc.
func (h *ChatHandler) HandleFindWithPagination(c fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := bson.M{}
	if c.Query("unreadOnly", "") == "true" {
		filter["adminRead"] = false
	}

	opts := options.Find().SetSort(bson.D{{Key: "lastMessageAt", Value: -1}})
	result, err := h.chatService.FindWithPagination(c.Context(), filter, page, limit, opts)
	return basehdl.HandleResponse(c, result, err)
}

// HandleMarkRead đánh dấu admin đã đọc một hội thoại
func (h *ChatHandler) HandleMarkRead(c fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat, "Id hội thoại không hợp lệ", common.StatusBadRequest, err))
	}

	err = h.chatService.MarkRead(c.Context(), objID)
	return basehdl.HandleResponse(c, nil, err)
}
