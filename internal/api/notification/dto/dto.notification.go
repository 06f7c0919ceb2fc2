package notifydto

import (
	notifymodels "flora_commerce/internal/api/notification/models"
)

// FeedResponse là kết quả GET danh sách notification
type FeedResponse struct {
	Items       []notifymodels.FeedNotification `json:"items"` // Mới nhất trước
	UnreadCount int                             `json:"unreadCount"`
}

// UnreadCountResponse là kết quả GET số notification chưa đọc
type UnreadCountResponse struct {
	UnreadCount int `json:"unreadCount"`
}

// DismissInput là body của request bỏ một notification
type DismissInput struct {
	Id string `json:"id" validate:"required"`
}
