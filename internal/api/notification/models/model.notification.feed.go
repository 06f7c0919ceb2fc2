// Package models - định nghĩa notification trong feed của dashboard
// và các source event sinh ra chúng.
package models

// Các loại notification trong feed
const (
	KindNewOrder    = "new_order"    // Đơn hàng mới
	KindNewMessage  = "new_message"  // Tin nhắn mới từ khách
	KindNewFeedback = "new_feedback" // Đánh giá mới
)

// FeedNotification là một mục trong feed notification của dashboard.
// Id sinh deterministic từ id record nguồn nên delta bị phát lại không tạo mục trùng.
type FeedNotification struct {
	Id        string `json:"id" bson:"id"`
	Kind      string `json:"kind" bson:"kind"`
	Message   string `json:"message" bson:"message"`
	CreatedAt int64  `json:"createdAt" bson:"createdAt"` // Thời điểm aggregate, không phải thời điểm record nguồn
	Unread    bool   `json:"unread" bson:"unread"`
}
