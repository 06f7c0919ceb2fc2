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
	shopmodels "flora_commerce/internal/api/shop/models"
	shopsvc "flora_commerce/internal/api/shop/service"
	"flora_commerce/internal/common"
)

// ProductHandler xử lý các request trên sản phẩm
type ProductHandler struct {
	productService *shopsvc.ProductService
}

// NewProductHandler tạo instance mới của ProductHandler
func NewProductHandler() (*ProductHandler, error) {
	productService, err := shopsvc.NewProductService()
	if err != nil {
		return nil, fmt.Errorf("failed to create product service: %v", err)
	}
	return &ProductHandler{productService: productService}, nil
}

// HandleFindWithPagination liệt kê sản phẩm phân trang.
// Query: page, limit, category (lọc theo nhóm, bỏ trống lấy tất cả).
func (h *ProductHandler) HandleFindWithPagination(c fiber.Ctx) error {
	page, _ := strconv.ParseInt(c.Query("page", "1"), 10, 64)
	limit, _ := strconv.ParseInt(c.Query("limit", "20"), 10, 64)

	filter := bson.M{}
	if category := c.Query("category", ""); category != "" {
		filter["category"] = category
	}

	opts := options.Find().SetSort(bson.D{{Key: "name", Value: 1}})
	result, err := h.productService.FindWithPagination(c.Context(), filter, page, limit, opts)
	return basehdl.HandleResponse(c, result, err)
}

// HandleInsertOne tạo sản phẩm mới
func (h *ProductHandler) HandleInsertOne(c fiber.Ctx) error {
	var input shopdto.ProductCreateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	product := shopmodels.ShopProduct{
		Name:        input.Name,
		Category:    input.Category,
		Price:       input.Price,
		Description: input.Description,
		ImageURL:    input.ImageURL,
		InStock:     input.InStock,
	}
	created, err := h.productService.InsertOne(c.Context(), product)
	return basehdl.HandleResponse(c, created, err)
}

// HandleUpdateById cập nhật sản phẩm, chỉ áp các trường có mặt trong body
func (h *ProductHandler) HandleUpdateById(c fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat, "Id sản phẩm không hợp lệ", common.StatusBadRequest, err))
	}

	var input shopdto.ProductUpdateInput
	if err := basehdl.ParseRequestBody(c, &input); err != nil {
		return basehdl.HandleResponse(c, nil, err)
	}

	update := bson.M{}
	if input.Name != "" {
		update["name"] = input.Name
	}
	if input.Category != "" {
		update["category"] = input.Category
	}
	if input.Price != nil {
		update["price"] = *input.Price
	}
	if input.Description != "" {
		update["description"] = input.Description
	}
	if input.ImageURL != "" {
		update["imageUrl"] = input.ImageURL
	}
	if input.InStock != nil {
		update["inStock"] = *input.InStock
	}
	if len(update) == 0 {
		return basehdl.HandleResponse(c, nil, common.ErrInvalidInput)
	}

	updated, err := h.productService.UpdateById(c.Context(), objID, update)
	return basehdl.HandleResponse(c, updated, err)
}

// HandleDeleteById xóa sản phẩm theo id
func (h *ProductHandler) HandleDeleteById(c fiber.Ctx) error {
	objID, err := primitive.ObjectIDFromHex(c.Params("id"))
	if err != nil {
		return basehdl.HandleResponse(c, nil, common.NewError(
			common.ErrCodeValidationFormat, "Id sản phẩm không hợp lệ", common.StatusBadRequest, err))
	}

	err = h.productService.DeleteById(c.Context(), objID)
	return basehdl.HandleResponse(c, nil, err)
}
