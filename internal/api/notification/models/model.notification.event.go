package models

import (
	"fmt"

	"go.mongodb.org/mongo-driver/bson"

	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/livequery"
)

// SourceEvent là một record nguồn đã decode từ delta, biết tự xét điều kiện
// vào feed và tự dựng FeedNotification tương ứng.
type SourceEvent interface {
	// EventTime trả về thời điểm của record nguồn (Unix ms),
	// dùng so với mốc bắt đầu phiên trong admission filter.
	EventTime() int64

	// Admit kiểm tra điều kiện riêng theo loại event với delta type đã cho
	Admit(deltaType string) bool

	// ToNotification dựng FeedNotification; now là thời điểm aggregate (Unix ms)
	ToNotification(now int64) FeedNotification
}

// OrderEvent bọc một đơn hàng đến từ order stream
type OrderEvent struct {
	Order shopmodels.ShopOrder
}

// DecodeOrderEvent decode record BSON của delta thành OrderEvent
func DecodeOrderEvent(raw bson.Raw) (*OrderEvent, error) {
	var order shopmodels.ShopOrder
	if err := bson.Unmarshal(raw, &order); err != nil {
		return nil, fmt.Errorf("decode order event: %w", err)
	}
	return &OrderEvent{Order: order}, nil
}

func (e *OrderEvent) EventTime() int64 {
	return e.Order.OrderedAt
}

// Admit chỉ nhận delta insert: đơn hàng chỉ báo một lần khi được tạo
func (e *OrderEvent) Admit(deltaType string) bool {
	return deltaType == livequery.DeltaInsert
}

func (e *OrderEvent) ToNotification(now int64) FeedNotification {
	return FeedNotification{
		Id:        "order-" + e.Order.ID.Hex(),
		Kind:      KindNewOrder,
		Message:   fmt.Sprintf("Đơn hàng mới từ %s — tổng %.0fđ", e.Order.CustomerName, e.Order.Total),
		CreatedAt: now,
		Unread:    true,
	}
}

// ChatEvent bọc một hội thoại đến từ message stream
type ChatEvent struct {
	Chat shopmodels.ShopChat
}

// DecodeChatEvent decode record BSON của delta thành ChatEvent
func DecodeChatEvent(raw bson.Raw) (*ChatEvent, error) {
	var chat shopmodels.ShopChat
	if err := bson.Unmarshal(raw, &chat); err != nil {
		return nil, fmt.Errorf("decode chat event: %w", err)
	}
	return &ChatEvent{Chat: chat}, nil
}

func (e *ChatEvent) EventTime() int64 {
	return e.Chat.LastMessageAt
}

// Admit nhận cả insert và update (tin nhắn mới đến trên hội thoại có sẵn là update),
// nhưng loại hội thoại admin đã đọc hoặc chưa có nội dung tin nhắn.
func (e *ChatEvent) Admit(deltaType string) bool {
	if deltaType != livequery.DeltaInsert && deltaType != livequery.DeltaUpdate {
		return false
	}
	if e.Chat.AdminRead {
		return false
	}
	return e.Chat.LastMessage != ""
}

func (e *ChatEvent) ToNotification(now int64) FeedNotification {
	return FeedNotification{
		// Key theo id hội thoại, không kèm timestamp: cùng một delta bị phát lại
		// phải ra cùng một id để dedup hoạt động.
		Id:        "chat-" + e.Chat.ID.Hex(),
		Kind:      KindNewMessage,
		Message:   fmt.Sprintf("Tin nhắn mới từ %s: %s", e.Chat.CustomerName, e.Chat.LastMessage),
		CreatedAt: now,
		Unread:    true,
	}
}

// FeedbackEvent bọc một đánh giá đến từ feedback stream
type FeedbackEvent struct {
	Feedback shopmodels.ShopFeedback
}

// DecodeFeedbackEvent decode record BSON của delta thành FeedbackEvent
func DecodeFeedbackEvent(raw bson.Raw) (*FeedbackEvent, error) {
	var feedback shopmodels.ShopFeedback
	if err := bson.Unmarshal(raw, &feedback); err != nil {
		return nil, fmt.Errorf("decode feedback event: %w", err)
	}
	return &FeedbackEvent{Feedback: feedback}, nil
}

func (e *FeedbackEvent) EventTime() int64 {
	return e.Feedback.SubmittedAt
}

// Admit chỉ nhận delta insert
func (e *FeedbackEvent) Admit(deltaType string) bool {
	return deltaType == livequery.DeltaInsert
}

func (e *FeedbackEvent) ToNotification(now int64) FeedNotification {
	return FeedNotification{
		Id:        "feedback-" + e.Feedback.ID.Hex(),
		Kind:      KindNewFeedback,
		Message:   fmt.Sprintf("Đánh giá mới %d★ từ %s", e.Feedback.Rating, e.Feedback.CustomerName),
		CreatedAt: now,
		Unread:    true,
	}
}
