package shophdl

import (
	"fmt"
	"strconv"

	"github.com/gofiber/fiber/v3"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	basehdl "flora_commerce/internal/api/base/handler"
	shopsvc "flora_commerce/internal/api/shop/service"
	"flora_commerce/internal/common"
)

// FeedbackHandler xử lý các request trên đánh giá của khách
type FeedbackHandler struct {
	feedbackService *shopsvc.FeedbackService
}

// NewFeedbackHandler tạo instance mới của FeedbackHandler
func NewFeedbackHandler() (*FeedbackHandler, error) {
	feedbackService, err := shopsvc.NewFeedbackService()
	if err != nil {
		return nil, fmt.Errorf("failed to create feedback service: %v", err)
	}
	return &FeedbackHandler{feedbackService: feedbackService}, nil
}

// HandleFindWithPagination liệt kê đánh giá, mới nhất trước.
// Query: page, limit, rating (lọc theo số sao 1-5).
func (h *FeedbackHandler) HandleFindWithPagination(c fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := bson.M{}
	if ratingStr := c.Query("rating", ""); ratingStr != "" {
		rating, err := strconv.Atoi(ratingStr)
		if err != nil || rating < 1 || rating > 5 {
			return basehdl.HandleResponse(c, nil, common.NewError(
				common.ErrCodeValidationInput, "rating phải là số nguyên 1-5", common.StatusBadRequest, err))
		}
		filter["rating"] = rating
	}

	opts := options.Find().SetSort(bson.D{{Key: "submittedAt", Value: -1}})
	result, err := h.feedbackService.FindWithPagination(c.Context(), filter, page, limit, opts)
	return basehdl.HandleResponse(c, result, err)
}
