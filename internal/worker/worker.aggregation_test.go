// Package worker - Test vòng đời aggregation theo phiên: dựng lại khi có
// phiên mới hơn cùng identity, teardown khi release và khi idle.
package worker

import (
	"context"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	authmodels "flora_commerce/internal/api/auth/models"
	notifysvc "flora_commerce/internal/api/notification/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/kvstore"
	"flora_commerce/internal/livequery"
)

// fakeStream là feedStream giả: delta được bơm tay qua channel, Close đếm được
type fakeStream struct {
	deltas chan livequery.Delta
	closed atomic.Bool
}

func newFakeStream() *fakeStream {
	return &fakeStream{deltas: make(chan livequery.Delta, 8)}
}

func (s *fakeStream) Deltas() <-chan livequery.Delta { return s.deltas }

func (s *fakeStream) Close() {
	if s.closed.CompareAndSwap(false, true) {
		close(s.deltas)
	}
}

// newTestAggregationWorker tạo worker với store in-memory và opener giả,
// trả về slice các stream đã mở để test kiểm tra teardown
func newTestAggregationWorker() (*AggregationWorker, *[]*fakeStream) {
	store := notifysvc.NewFeedStore(kvstore.NewMemoryStore())
	w := NewAggregationWorker(store, 0)

	var opened []*fakeStream
	w.openStream = func(ctx context.Context, collName string, sort bson.D) (feedStream, error) {
		s := newFakeStream()
		opened = append(opened, s)
		return s, nil
	}
	return w, &opened
}

func session(userID string, startedAt int64) *authmodels.Session {
	return &authmodels.Session{
		SessionID: "sid-" + userID,
		UserID:    userID,
		StartedAt: startedAt,
	}
}

func TestEnsureFeed_ReusesSameSession(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	first, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)
	assert.Len(t, *opened, 3, "mỗi phiên mở đúng ba stream")

	// Cùng phiên gọi lại: trả về đúng feed cũ, không mở thêm stream
	again, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)
	assert.Same(t, first, again)
	assert.Len(t, *opened, 3)
}

func TestEnsureFeed_RebuildsOnNewerSession(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	old, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)
	assert.Equal(t, int64(100), old.SessionStart())

	// Phiên mới hơn cùng UserID (login lại): aggregation cũ bị teardown,
	// feed mới lấy mốc admission của phiên mới — không kẹt ở phiên đầu
	rebuilt, err := w.EnsureFeed(ctx, session("user-1", 200))
	assert.NoError(t, err)
	assert.NotSame(t, old, rebuilt)
	assert.Equal(t, int64(200), rebuilt.SessionStart())

	assert.Len(t, *opened, 6)
	for i := 0; i < 3; i++ {
		assert.True(t, (*opened)[i].closed.Load(), "stream của phiên cũ phải bị đóng")
	}
	for i := 3; i < 6; i++ {
		assert.False(t, (*opened)[i].closed.Load(), "stream của phiên mới phải còn sống")
	}

	// Phiên CŨ hơn gọi lại (token cũ còn trong tay client): giữ nguyên feed hiện tại
	kept, err := w.EnsureFeed(ctx, session("user-1", 150))
	assert.NoError(t, err)
	assert.Same(t, rebuilt, kept)
	assert.Len(t, *opened, 6)
}

func TestEnsureFeed_NewerSessionCutoffApplies(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	_, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)
	rebuilt, err := w.EnsureFeed(ctx, session("user-1", 200))
	assert.NoError(t, err)

	// Stream đơn hàng của phiên mới là stream thứ 4 (index 3)
	orderStream := (*opened)[3]

	makeDelta := func(orderedAt int64) livequery.Delta {
		order := shopmodels.ShopOrder{ID: primitive.NewObjectID(), CustomerName: "Lan", OrderedAt: orderedAt}
		raw, err := bson.Marshal(order)
		if err != nil {
			t.Fatalf("marshal order: %v", err)
		}
		return livequery.Delta{Type: livequery.DeltaInsert, Record: raw, DocumentID: order.ID}
	}

	// Record giữa hai mốc phiên (150): trước mốc phiên mới nên bị loại.
	// Record sau mốc mới (250): được nhận.
	orderStream.deltas <- makeDelta(150)
	orderStream.deltas <- makeDelta(250)

	assert.Eventually(t, func() bool {
		return len(rebuilt.List()) == 1
	}, time.Second, 10*time.Millisecond, "chỉ record sau mốc phiên mới được thành notification")
	assert.Equal(t, "order-", rebuilt.List()[0].Id[:6])
	assert.Equal(t, 1, rebuilt.UnreadCount())
}

func TestRelease_TearsDownStreams(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	_, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)

	w.Release("user-1")
	assert.Nil(t, w.GetFeed("user-1"))
	for _, s := range *opened {
		assert.True(t, s.closed.Load())
	}

	// Release identity không tồn tại: no-op
	w.Release("user-zzz")
}

func TestReleaseIdle_EvictsStaleSessions(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	_, err := w.EnsureFeed(ctx, session("user-1", 100))
	assert.NoError(t, err)
	_, err = w.EnsureFeed(ctx, session("user-2", 100))
	assert.NoError(t, err)

	// user-1 đã lâu không đụng tới, user-2 vừa hoạt động
	w.mu.Lock()
	w.sessions["user-1"].lastActive = time.Now().Add(-time.Hour)
	w.mu.Unlock()

	released := w.ReleaseIdle(30 * time.Minute)
	assert.Equal(t, 1, released)
	assert.Nil(t, w.GetFeed("user-1"))
	assert.NotNil(t, w.GetFeed("user-2"))
	for i := 0; i < 3; i++ {
		assert.True(t, (*opened)[i].closed.Load(), "stream của phiên idle phải bị đóng")
	}
	for i := 3; i < 6; i++ {
		assert.False(t, (*opened)[i].closed.Load(), "phiên còn hoạt động không bị đụng")
	}
}

func TestReleaseAll_TearsDownEverything(t *testing.T) {
	ctx := context.Background()
	w, opened := newTestAggregationWorker()

	_, _ = w.EnsureFeed(ctx, session("user-1", 100))
	_, _ = w.EnsureFeed(ctx, session("user-2", 100))

	w.ReleaseAll()
	assert.Nil(t, w.GetFeed("user-1"))
	assert.Nil(t, w.GetFeed("user-2"))
	for _, s := range *opened {
		assert.True(t, s.closed.Load())
	}
}
