// Package notifysvc chứa aggregator gom ba live query stream (đơn hàng,
// tin nhắn, đánh giá) thành một feed notification có dedup, giới hạn độ dài,
// và được lưu lại qua KV store sau mỗi mutation.
package notifysvc

import (
	"context"
	"sync"

	"github.com/sirupsen/logrus"

	notifymodels "flora_commerce/internal/api/notification/models"
	"flora_commerce/internal/livequery"
	"flora_commerce/internal/logger"
	"flora_commerce/internal/utility"
)

// DefaultFeedCap là số notification tối đa giữ lại trong feed
const DefaultFeedCap = 20

// Feed là aggregator notification của một phiên dashboard.
//
// Mọi mutation (OnDelta, Insert, Dismiss, ClearAll, MarkAllRead) chạy trọn vẹn
// dưới mutex: caller không bao giờ quan sát được danh sách ở trạng thái dở dang,
// và mỗi mutation thành công đều ghi lại toàn bộ danh sách xuống store.
type Feed struct {
	mu    sync.Mutex
	items []notifymodels.FeedNotification

	identity string
	// sessionStart chốt một lần khi dựng Feed và không bao giờ đổi:
	// đây là mốc chặn record lịch sử bị phát lại thành notification.
	sessionStart int64
	cap          int
	store        *FeedStore
	log          *logrus.Entry
}

// NewFeed tạo aggregator cho một phiên. sessionStart là Unix ms,
// cap <= 0 thì dùng DefaultFeedCap.
func NewFeed(identity string, sessionStart int64, cap int, store *FeedStore) *Feed {
	if cap <= 0 {
		cap = DefaultFeedCap
	}
	return &Feed{
		identity:     identity,
		sessionStart: sessionStart,
		cap:          cap,
		store:        store,
		log:          logger.WithModule("notification").WithField("identity", identity),
	}
}

// Initialize nạp feed đã lưu của phiên trước làm trạng thái ban đầu.
// Store lỗi hay dữ liệu hỏng thì bắt đầu với feed rỗng — không bao giờ fail.
func (f *Feed) Initialize(ctx context.Context) {
	items := f.store.Load(ctx, f.identity)
	if len(items) > f.cap {
		items = items[:f.cap]
	}

	f.mu.Lock()
	f.items = items
	f.mu.Unlock()
}

// OnDelta là điểm vào của các live query stream: decode record theo loại,
// chạy admission filter, và insert notification nếu đủ điều kiện.
// Delta không đủ điều kiện là no-op im lặng, không phải lỗi.
func (f *Feed) OnDelta(ctx context.Context, kind string, delta livequery.Delta) {
	if delta.Record == nil {
		return
	}

	var event notifymodels.SourceEvent
	var err error
	switch kind {
	case notifymodels.KindNewOrder:
		event, err = notifymodels.DecodeOrderEvent(delta.Record)
	case notifymodels.KindNewMessage:
		event, err = notifymodels.DecodeChatEvent(delta.Record)
	case notifymodels.KindNewFeedback:
		event, err = notifymodels.DecodeFeedbackEvent(delta.Record)
	default:
		return
	}
	if err != nil {
		f.log.WithError(err).WithField("kind", kind).Warn("Không decode được record của delta, bỏ qua")
		return
	}

	if !event.Admit(delta.Type) {
		return
	}
	// Record có trước mốc bắt đầu phiên không bao giờ thành notification:
	// so sánh strict — bằng đúng mốc cũng bị loại
	if event.EventTime() <= f.sessionStart {
		return
	}

	f.Insert(ctx, event.ToNotification(utility.NowUnixMilli()))
}

// Insert thêm notification vào đầu feed (mới nhất trước), cắt về cap.
// Trùng id với mục có sẵn là no-op: danh sách không đổi, không ghi store.
func (f *Feed) Insert(ctx context.Context, item notifymodels.FeedNotification) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for _, existing := range f.items {
		if existing.Id == item.Id {
			return
		}
	}

	f.items = append([]notifymodels.FeedNotification{item}, f.items...)
	if len(f.items) > f.cap {
		f.items = f.items[:f.cap]
	}

	f.store.Save(ctx, f.identity, f.items)
}

// Dismiss bỏ notification theo id. Id không tồn tại là no-op, không ghi store.
func (f *Feed) Dismiss(ctx context.Context, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()

	for i, item := range f.items {
		if item.Id == id {
			f.items = append(f.items[:i], f.items[i+1:]...)
			f.store.Save(ctx, f.identity, f.items)
			return
		}
	}
}

// ClearAll xóa sạch feed và xóa hẳn bản đã lưu trong store
func (f *Feed) ClearAll(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	f.items = nil
	f.store.Erase(ctx, f.identity)
}

// MarkAllRead đánh dấu đã đọc toàn bộ feed.
// Không còn mục chưa đọc nào thì là no-op — tránh ghi store vô ích.
func (f *Feed) MarkAllRead(ctx context.Context) {
	f.mu.Lock()
	defer f.mu.Unlock()

	hasUnread := false
	for _, item := range f.items {
		if item.Unread {
			hasUnread = true
			break
		}
	}
	if !hasUnread {
		return
	}

	for i := range f.items {
		f.items[i].Unread = false
	}
	f.store.Save(ctx, f.identity, f.items)
}

// UnreadCount đếm số notification chưa đọc
func (f *Feed) UnreadCount() int {
	f.mu.Lock()
	defer f.mu.Unlock()

	count := 0
	for _, item := range f.items {
		if item.Unread {
			count++
		}
	}
	return count
}

// List trả về bản sao của feed, mới nhất trước
func (f *Feed) List() []notifymodels.FeedNotification {
	f.mu.Lock()
	defer f.mu.Unlock()

	items := make([]notifymodels.FeedNotification, len(f.items))
	copy(items, f.items)
	return items
}

// Identity trả về identity của phiên sở hữu feed
func (f *Feed) Identity() string {
	return f.identity
}

// SessionStart trả về mốc bắt đầu phiên (Unix ms) của feed
func (f *Feed) SessionStart() int64 {
	return f.sessionStart
}
