package shopdto

import (
	shopmodels "flora_commerce/internal/api/shop/models"
)

// OrderUpdateStatusInput là body của request đổi trạng thái đơn
type OrderUpdateStatusInput struct {
	Status string `json:"status" validate:"required,order_status"`
}

// ProductCreateInput là body tạo sản phẩm mới
type ProductCreateInput struct {
	Name        string  `json:"name" validate:"required,no_xss"`
	Category    string  `json:"category" validate:"omitempty,no_xss"`
	Price       float64 `json:"price" validate:"gte=0"`
	Description string  `json:"description" validate:"omitempty,no_xss"`
	ImageURL    string  `json:"imageUrl" validate:"omitempty,url"`
	InStock     bool    `json:"inStock"`
}

// ProductUpdateInput là body cập nhật sản phẩm
type ProductUpdateInput struct {
	Name        string   `json:"name,omitempty" validate:"omitempty,no_xss"`
	Category    string   `json:"category,omitempty" validate:"omitempty,no_xss"`
	Price       *float64 `json:"price,omitempty" validate:"omitempty,gte=0"`
	Description string   `json:"description,omitempty" validate:"omitempty,no_xss"`
	ImageURL    string   `json:"imageUrl,omitempty" validate:"omitempty,url"`
	InStock     *bool    `json:"inStock,omitempty"`
}

// OrderHistoryResponse là kết quả tra cứu lịch sử đơn của một tài khoản khách
type OrderHistoryResponse struct {
	UserId string                `json:"userId"`
	Orders []shopmodels.ShopOrder `json:"orders"` // Mới nhất trước
}
