// Package models - Test decode và admission của các source event
package models

import (
	"testing"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/livequery"
)

func TestOrderEvent_NotificationShape(t *testing.T) {
	id := primitive.NewObjectID()
	order := shopmodels.ShopOrder{
		ID:           id,
		CustomerName: "Lan",
		Total:        450000,
		OrderedAt:    1000,
	}
	raw, err := bson.Marshal(order)
	if err != nil {
		t.Fatalf("marshal: %v", err)
	}

	event, err := DecodeOrderEvent(raw)
	if err != nil {
		t.Fatalf("DecodeOrderEvent lỗi: %v", err)
	}
	if event.EventTime() != 1000 {
		t.Errorf("EventTime = %d, muốn 1000", event.EventTime())
	}
	if !event.Admit(livequery.DeltaInsert) {
		t.Error("đơn hàng insert phải được nhận")
	}
	if event.Admit(livequery.DeltaUpdate) {
		t.Error("đơn hàng update không được sinh notification")
	}

	notif := event.ToNotification(5000)
	if notif.Id != "order-"+id.Hex() {
		t.Errorf("id notification = %q, muốn prefix order- với hex của _id", notif.Id)
	}
	if notif.Kind != KindNewOrder {
		t.Errorf("kind = %q", notif.Kind)
	}
	if notif.CreatedAt != 5000 {
		t.Errorf("createdAt = %d, muốn thời điểm aggregate", notif.CreatedAt)
	}
	if !notif.Unread {
		t.Error("notification mới phải unread")
	}
	if notif.Message != "Đơn hàng mới từ Lan — tổng 450000đ" {
		t.Errorf("message = %q", notif.Message)
	}
}

func TestChatEvent_Admission(t *testing.T) {
	base := shopmodels.ShopChat{
		ID:            primitive.NewObjectID(),
		CustomerName:  "Minh",
		LastMessage:   "Shop ơi",
		LastMessageAt: 1000,
	}

	event := &ChatEvent{Chat: base}
	if !event.Admit(livequery.DeltaInsert) || !event.Admit(livequery.DeltaUpdate) {
		t.Error("hội thoại chưa đọc có nội dung phải được nhận với cả insert và update")
	}
	if event.Admit(livequery.DeltaDelete) {
		t.Error("delta delete không được nhận")
	}

	read := base
	read.AdminRead = true
	if (&ChatEvent{Chat: read}).Admit(livequery.DeltaUpdate) {
		t.Error("hội thoại admin đã đọc không được nhận")
	}

	empty := base
	empty.LastMessage = ""
	if (&ChatEvent{Chat: empty}).Admit(livequery.DeltaInsert) {
		t.Error("hội thoại không có nội dung tin nhắn không được nhận")
	}
}

func TestFeedbackEvent_NotificationShape(t *testing.T) {
	id := primitive.NewObjectID()
	event := &FeedbackEvent{Feedback: shopmodels.ShopFeedback{
		ID:           id,
		CustomerName: "Hoa",
		Rating:       5,
		SubmittedAt:  2000,
	}}

	if !event.Admit(livequery.DeltaInsert) {
		t.Error("feedback insert phải được nhận")
	}
	if event.Admit(livequery.DeltaUpdate) {
		t.Error("feedback update không được sinh notification")
	}

	notif := event.ToNotification(3000)
	if notif.Id != "feedback-"+id.Hex() {
		t.Errorf("id notification = %q", notif.Id)
	}
	if notif.Message != "Đánh giá mới 5★ từ Hoa" {
		t.Errorf("message = %q", notif.Message)
	}
}

func TestDecodeOrderEvent_BadData(t *testing.T) {
	if _, err := DecodeOrderEvent(bson.Raw("không phải bson")); err == nil {
		t.Error("decode dữ liệu hỏng phải trả về lỗi")
	}
}
