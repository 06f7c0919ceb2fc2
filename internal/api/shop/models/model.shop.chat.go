package models

import (
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// ShopChat lưu hội thoại chăm sóc khách hàng (shop_chats) — một document mỗi khách,
// update khi có tin nhắn mới.
type ShopChat struct {
	ID primitive.ObjectID `json:"id,omitempty" bson:"_id,omitempty"`

	CustomerUserId string `json:"customerUserId,omitempty" bson:"customerUserId,omitempty"`
	CustomerName   string `json:"customerName" bson:"customerName"`

	// LastMessage là tóm tắt tin nhắn gần nhất của khách — rỗng nghĩa là
	// hội thoại chưa có nội dung, không tạo notification.
	LastMessage string `json:"lastMessage,omitempty" bson:"lastMessage,omitempty" validate:"omitempty,no_xss"`

	// AdminRead đánh dấu phía admin đã đọc hội thoại.
	// Hội thoại đã đọc không tạo notification kể cả khi có delta update.
	AdminRead bool `json:"adminRead" bson:"adminRead"`

	// LastMessageAt là event time của tin nhắn gần nhất (Unix ms)
	LastMessageAt int64 `json:"lastMessageAt" bson:"lastMessageAt"`

	CreatedAt int64 `json:"createdAt" bson:"createdAt"`
	UpdatedAt int64 `json:"updatedAt" bson:"updatedAt"`
}
