// Package notifysvc - Test aggregator feed notification: dedup, cap, thứ tự,
// admission filter theo mốc phiên, và lưu/khôi phục qua KV store.
package notifysvc

import (
	"context"
	"encoding/json"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	notifymodels "flora_commerce/internal/api/notification/models"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/kvstore"
	"flora_commerce/internal/livequery"
)

// countingStore bọc MemoryStore để đếm số lần ghi/xóa
type countingStore struct {
	*kvstore.MemoryStore
	sets    int
	removes int
}

func (s *countingStore) Set(ctx context.Context, key, value string) error {
	s.sets++
	return s.MemoryStore.Set(ctx, key, value)
}

func (s *countingStore) Remove(ctx context.Context, key string) error {
	s.removes++
	return s.MemoryStore.Remove(ctx, key)
}

func newTestFeed(t *testing.T, sessionStart int64) (*Feed, *countingStore) {
	t.Helper()
	store := &countingStore{MemoryStore: kvstore.NewMemoryStore()}
	feed := NewFeed("user-1", sessionStart, 0, NewFeedStore(store))
	feed.Initialize(context.Background())
	return feed, store
}

func makeNotification(id string) notifymodels.FeedNotification {
	return notifymodels.FeedNotification{
		Id:        id,
		Kind:      notifymodels.KindNewOrder,
		Message:   "Đơn hàng mới",
		CreatedAt: 1000,
		Unread:    true,
	}
}

func orderDelta(t *testing.T, deltaType string, orderedAt int64) livequery.Delta {
	t.Helper()
	order := shopmodels.ShopOrder{
		ID:            primitive.NewObjectID(),
		CustomerName:  "Lan",
		CustomerEmail: "lan@example.com",
		Total:         450000,
		OrderedAt:     orderedAt,
	}
	raw, err := bson.Marshal(order)
	if err != nil {
		t.Fatalf("marshal order: %v", err)
	}
	return livequery.Delta{Type: deltaType, Record: raw, DocumentID: order.ID}
}

func chatDelta(t *testing.T, deltaType string, lastMessage string, adminRead bool, lastMessageAt int64) livequery.Delta {
	t.Helper()
	chat := shopmodels.ShopChat{
		ID:            primitive.NewObjectID(),
		CustomerName:  "Minh",
		LastMessage:   lastMessage,
		AdminRead:     adminRead,
		LastMessageAt: lastMessageAt,
	}
	raw, err := bson.Marshal(chat)
	if err != nil {
		t.Fatalf("marshal chat: %v", err)
	}
	return livequery.Delta{Type: deltaType, Record: raw, DocumentID: chat.ID}
}

func TestFeedInsert_CapAndOrdering(t *testing.T) {
	ctx := context.Background()
	feed, _ := newTestFeed(t, 0)

	// Insert 25 mục, feed chỉ giữ 20 mục mới nhất, mới nhất đứng đầu
	for i := 0; i < 25; i++ {
		feed.Insert(ctx, makeNotification(fmt.Sprintf("order-%d", i)))
	}

	items := feed.List()
	assert.Len(t, items, DefaultFeedCap)
	assert.Equal(t, "order-24", items[0].Id)
	assert.Equal(t, "order-5", items[len(items)-1].Id)
}

func TestFeedInsert_DuplicateIdIsNoop(t *testing.T) {
	ctx := context.Background()
	feed, store := newTestFeed(t, 0)

	feed.Insert(ctx, makeNotification("order-a"))
	feed.Insert(ctx, makeNotification("order-b"))
	setsBefore := store.sets

	// Insert trùng id: danh sách không đổi, không ghi store
	feed.Insert(ctx, makeNotification("order-a"))

	items := feed.List()
	assert.Len(t, items, 2)
	assert.Equal(t, "order-b", items[0].Id)
	assert.Equal(t, "order-a", items[1].Id)
	assert.Equal(t, setsBefore, store.sets, "insert trùng id không được ghi store")
}

func TestFeedDismiss(t *testing.T) {
	ctx := context.Background()
	feed, store := newTestFeed(t, 0)

	feed.Insert(ctx, makeNotification("order-a"))
	feed.Insert(ctx, makeNotification("order-b"))

	feed.Dismiss(ctx, "order-a")
	items := feed.List()
	assert.Len(t, items, 1)
	assert.Equal(t, "order-b", items[0].Id)

	// Dismiss id không tồn tại: no-op, không ghi store
	setsBefore := store.sets
	feed.Dismiss(ctx, "order-zzz")
	assert.Len(t, feed.List(), 1)
	assert.Equal(t, setsBefore, store.sets)
}

func TestFeedClearAll_ErasesPersistedKey(t *testing.T) {
	ctx := context.Background()
	feed, store := newTestFeed(t, 0)

	feed.Insert(ctx, makeNotification("order-a"))
	feed.ClearAll(ctx)

	assert.Empty(t, feed.List())
	assert.Equal(t, 1, store.removes, "clearAll phải xóa hẳn key trong store")

	_, ok, err := store.Get(ctx, "dashboard:notifications:user-1")
	assert.NoError(t, err)
	assert.False(t, ok, "key feed phải biến mất sau clearAll")

	// Reload không có delta mới: feed rỗng
	reloaded := NewFeed("user-1", 0, 0, NewFeedStore(store))
	reloaded.Initialize(ctx)
	assert.Empty(t, reloaded.List())
}

func TestFeedMarkAllRead_Idempotent(t *testing.T) {
	ctx := context.Background()
	feed, store := newTestFeed(t, 0)

	feed.Insert(ctx, makeNotification("order-a"))
	feed.Insert(ctx, makeNotification("order-b"))
	assert.Equal(t, 2, feed.UnreadCount())

	feed.MarkAllRead(ctx)
	assert.Equal(t, 0, feed.UnreadCount())
	for _, item := range feed.List() {
		assert.False(t, item.Unread)
	}

	// Gọi lần hai khi không còn mục chưa đọc: no-op, không ghi store
	setsBefore := store.sets
	feed.MarkAllRead(ctx)
	assert.Equal(t, setsBefore, store.sets, "markAllRead lặp lại không được ghi store")
}

func TestFeedOnDelta_SessionStartFilter(t *testing.T) {
	ctx := context.Background()
	feed, _ := newTestFeed(t, 100)

	// Record có trước hoặc đúng mốc phiên bị loại, sau mốc được nhận
	feed.OnDelta(ctx, notifymodels.KindNewOrder, orderDelta(t, livequery.DeltaInsert, 90))
	assert.Empty(t, feed.List(), "record trước mốc phiên không được thành notification")

	feed.OnDelta(ctx, notifymodels.KindNewOrder, orderDelta(t, livequery.DeltaInsert, 100))
	assert.Empty(t, feed.List(), "record đúng mốc phiên cũng bị loại (so sánh strict)")

	feed.OnDelta(ctx, notifymodels.KindNewOrder, orderDelta(t, livequery.DeltaInsert, 101))
	assert.Len(t, feed.List(), 1)
	assert.Equal(t, notifymodels.KindNewOrder, feed.List()[0].Kind)
}

func TestFeedOnDelta_OrderUpdateNotAdmitted(t *testing.T) {
	ctx := context.Background()
	feed, _ := newTestFeed(t, 100)

	// Đơn hàng chỉ báo khi insert; update (vd đổi trạng thái) không sinh notification
	feed.OnDelta(ctx, notifymodels.KindNewOrder, orderDelta(t, livequery.DeltaUpdate, 200))
	assert.Empty(t, feed.List())
}

func TestFeedOnDelta_ChatAdmission(t *testing.T) {
	ctx := context.Background()
	feed, _ := newTestFeed(t, 100)

	// Hội thoại admin đã đọc: không báo, kể cả khi có tin nhắn mới hơn mốc phiên
	feed.OnDelta(ctx, notifymodels.KindNewMessage, chatDelta(t, livequery.DeltaUpdate, "Shop ơi", true, 200))
	assert.Empty(t, feed.List())

	// Không có nội dung tin nhắn: không báo
	feed.OnDelta(ctx, notifymodels.KindNewMessage, chatDelta(t, livequery.DeltaUpdate, "", false, 200))
	assert.Empty(t, feed.List())

	// Update hợp lệ: chưa đọc + có nội dung + sau mốc phiên
	feed.OnDelta(ctx, notifymodels.KindNewMessage, chatDelta(t, livequery.DeltaUpdate, "Shop ơi", false, 200))
	assert.Len(t, feed.List(), 1)
	assert.Equal(t, notifymodels.KindNewMessage, feed.List()[0].Kind)

	// Insert hợp lệ cũng được nhận
	feed.OnDelta(ctx, notifymodels.KindNewMessage, chatDelta(t, livequery.DeltaInsert, "Còn hoa hồng không?", false, 300))
	assert.Len(t, feed.List(), 2)
}

func TestFeedOnDelta_SameRecordRedeliveryDedup(t *testing.T) {
	ctx := context.Background()
	feed, _ := newTestFeed(t, 100)

	// Cùng một record bị phát lại (snapshot + stream trùng nhau) chỉ tạo một mục
	delta := orderDelta(t, livequery.DeltaInsert, 200)
	feed.OnDelta(ctx, notifymodels.KindNewOrder, delta)
	feed.OnDelta(ctx, notifymodels.KindNewOrder, delta)

	assert.Len(t, feed.List(), 1)
}

func TestFeedPersistence_RestoreAfterReload(t *testing.T) {
	ctx := context.Background()
	store := &countingStore{MemoryStore: kvstore.NewMemoryStore()}
	feedStore := NewFeedStore(store)

	feed := NewFeed("user-1", 0, 0, feedStore)
	feed.Initialize(ctx)
	feed.Insert(ctx, makeNotification("order-a"))
	feed.Insert(ctx, makeNotification("order-b"))
	feed.MarkAllRead(ctx)
	feed.Insert(ctx, makeNotification("order-c"))

	// Phiên mới cùng identity (reload trang): khôi phục đúng danh sách và cờ unread
	reloaded := NewFeed("user-1", 0, 0, feedStore)
	reloaded.Initialize(ctx)

	items := reloaded.List()
	assert.Len(t, items, 3)
	assert.Equal(t, "order-c", items[0].Id)
	assert.True(t, items[0].Unread)
	assert.False(t, items[1].Unread, "cờ unread=false phải được giữ qua reload")
	assert.False(t, items[2].Unread)
	assert.Equal(t, 1, reloaded.UnreadCount())
}

func TestFeedStore_CorruptDataStartsEmpty(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()
	store.Set(ctx, "dashboard:notifications:user-1", "{không phải json hợp lệ")

	feed := NewFeed("user-1", 0, 0, NewFeedStore(store))
	feed.Initialize(ctx)

	assert.Empty(t, feed.List(), "dữ liệu hỏng phải được xử lý như không có dữ liệu")
}

func TestFeedStore_MissingUnreadDefaultsTrue(t *testing.T) {
	ctx := context.Background()
	store := kvstore.NewMemoryStore()

	// Dữ liệu lưu từ phiên bản cũ không có field unread
	legacy := []map[string]interface{}{
		{"id": "order-x", "kind": "new_order", "message": "Đơn hàng mới", "createdAt": 1000},
	}
	data, _ := json.Marshal(legacy)
	store.Set(ctx, "dashboard:notifications:user-1", string(data))

	feed := NewFeed("user-1", 0, 0, NewFeedStore(store))
	feed.Initialize(ctx)

	items := feed.List()
	assert.Len(t, items, 1)
	assert.True(t, items[0].Unread, "unread vắng mặt phải mặc định là true")
	assert.Equal(t, int64(1000), items[0].CreatedAt)
}

func TestFeedPersistence_EveryMutationFlushesWholeList(t *testing.T) {
	ctx := context.Background()
	feed, store := newTestFeed(t, 0)

	feed.Insert(ctx, makeNotification("order-a"))

	// Store luôn chứa đúng danh sách hiện tại sau mỗi mutation
	value, ok, err := store.Get(ctx, "dashboard:notifications:user-1")
	assert.NoError(t, err)
	assert.True(t, ok)

	var persisted []notifymodels.FeedNotification
	assert.NoError(t, json.Unmarshal([]byte(value), &persisted))
	assert.Equal(t, feed.List(), persisted)
}
