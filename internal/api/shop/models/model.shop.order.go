// Package models - các model thuộc domain Shop (đơn hàng, sản phẩm, hội thoại, phản hồi).
package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// OrderItem là một dòng sản phẩm trong đơn hàng.
// Price có thể bằng 0 với dữ liệu cũ — khi đó revenue rollup fallback sang Total của đơn.
type OrderItem struct {
	ProductName string  `json:"productName" bson:"productName"` // Tên sản phẩm (bó hoa, lẵng hoa, ...)
	Quantity    int     `json:"quantity" bson:"quantity"`       // Số lượng
	Price       float64 `json:"price,omitempty" bson:"price,omitempty"` // Đơn giá tại thời điểm đặt
}

// ShopOrder lưu đơn hàng của khách (shop_orders).
type ShopOrder struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	// Khách hàng
	CustomerUserId string `json:"customerUserId,omitempty" bson:"customerUserId,omitempty"` // ID tài khoản khách trên app (dùng tra cứu lịch sử đơn)
	CustomerName   string `json:"customerName" bson:"customerName" validate:"required"`
	CustomerEmail  string `json:"customerEmail" bson:"customerEmail" validate:"required,email"`
	CustomerPhone  string `json:"customerPhone,omitempty" bson:"customerPhone,omitempty"`

	// Nội dung đơn
	Items []OrderItem `json:"items" bson:"items" validate:"required,min=1,dive"`
	Total float64     `json:"total" bson:"total"` // Tổng tiền đơn hàng

	// Trạng thái: Pending | Processing | Out for Delivery | Delivered | Cancelled
	Status string `json:"status" bson:"status" validate:"omitempty,order_status"`

	Note            string `json:"note,omitempty" bson:"note,omitempty" validate:"omitempty,no_xss"`
	ShippingAddress string `json:"shippingAddress,omitempty" bson:"shippingAddress,omitempty"`

	// OrderedAt là event time của đơn (Unix ms) — mốc so sánh với session start
	// trong admission filter của notification feed.
	OrderedAt int64 `json:"orderedAt" bson:"orderedAt"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"` // Thời gian tạo
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"` // Thời gian cập nhật
}
