// Package worker - AggregationWorker quản lý feed notification theo phiên:
// mỗi identity có một Feed và ba live query subscription (đơn hàng, tin nhắn,
// đánh giá) bơm delta vào feed đó.
package worker

import (
	"context"
	"sync"
	"time"

	"go.mongodb.org/mongo-driver/bson"

	authmodels "flora_commerce/internal/api/auth/models"
	notifymodels "flora_commerce/internal/api/notification/models"
	notifysvc "flora_commerce/internal/api/notification/service"
	"flora_commerce/internal/global"
	"flora_commerce/internal/livequery"
	"flora_commerce/internal/logger"
)

// aggregationIdleTTL là thời gian một phiên không được đụng tới trước khi
// bị reaper teardown. Phiên quay lại sau đó sẽ được dựng lại qua EnsureFeed.
const aggregationIdleTTL = 30 * time.Minute

// aggregationReapInterval là chu kỳ quét phiên idle của reaper
const aggregationReapInterval = 5 * time.Minute

// feedStream là một nguồn delta đang hoạt động. *livequery.Subscription
// thỏa interface này; test thay bằng stream giả.
type feedStream interface {
	Deltas() <-chan livequery.Delta
	Close()
}

// streamOpener mở một feedStream trên collection với sort cho trước
type streamOpener func(ctx context.Context, collName string, sort bson.D) (feedStream, error)

// openLiveQuery là streamOpener mặc định: live query thật trên MongoDB
func openLiveQuery(ctx context.Context, collName string, sort bson.D) (feedStream, error) {
	coll, err := global.RegistryCollections.MustGet(collName)
	if err != nil {
		return nil, err
	}
	return livequery.Subscribe(ctx, coll, bson.M{}, sort)
}

// sessionAggregation là feed của một identity kèm các subscription đang bơm vào nó
type sessionAggregation struct {
	feed       *notifysvc.Feed
	subs       []feedStream
	cancel     context.CancelFunc
	lastActive time.Time
}

// AggregationWorker giữ các phiên aggregation đang hoạt động, key theo identity.
// Subscription chỉ được mở khi phiên có identity; identity đổi hoặc được cấp
// phiên mới hơn thì aggregation cũ bị teardown và dựng lại từ đầu.
type AggregationWorker struct {
	mu       sync.Mutex
	sessions map[string]*sessionAggregation

	store      *notifysvc.FeedStore
	feedCap    int
	openStream streamOpener
}

// NewAggregationWorker tạo worker với store lưu feed và cap của feed
func NewAggregationWorker(store *notifysvc.FeedStore, feedCap int) *AggregationWorker {
	return &AggregationWorker{
		sessions:   make(map[string]*sessionAggregation),
		store:      store,
		feedCap:    feedCap,
		openStream: openLiveQuery,
	}
}

// EnsureFeed trả về feed của phiên, dựng mới nếu identity chưa có:
// nạp feed đã lưu, mở ba subscription, và bơm delta vào feed.
// Mốc bắt đầu phiên lấy từ session.StartedAt — chốt lúc cấp phiên, không đổi.
//
// Cùng identity nhưng StartedAt mới hơn feed đang giữ nghĩa là một phiên mới
// đã được cấp (login lại, phiên cũ hết hạn): aggregation cũ bị teardown và
// dựng lại để mốc admission theo phiên hiện tại, không kẹt ở phiên đầu tiên.
func (w *AggregationWorker) EnsureFeed(ctx context.Context, session *authmodels.Session) (*notifysvc.Feed, error) {
	identity := session.Identity()

	w.mu.Lock()
	defer w.mu.Unlock()

	if existing, ok := w.sessions[identity]; ok {
		if session.StartedAt <= existing.feed.SessionStart() {
			existing.lastActive = time.Now()
			return existing.feed, nil
		}
		logger.GetAppLogger().WithField("identity", identity).
			Info("📦 [AGGREGATION] Phiên mới hơn cho identity, dựng lại aggregation")
		w.teardownLocked(existing)
		delete(w.sessions, identity)
	}

	feed := notifysvc.NewFeed(identity, session.StartedAt, w.feedCap, w.store)
	feed.Initialize(ctx)

	// Context riêng cho các subscription của phiên, tách khỏi request context
	subCtx, cancel := context.WithCancel(context.Background())

	streams := []struct {
		collName string
		kind     string
		sort     bson.D
	}{
		{global.ColNames.ShopOrders, notifymodels.KindNewOrder, bson.D{{Key: "orderedAt", Value: -1}}},
		{global.ColNames.ShopChats, notifymodels.KindNewMessage, bson.D{{Key: "lastMessageAt", Value: -1}}},
		{global.ColNames.ShopFeedback, notifymodels.KindNewFeedback, bson.D{{Key: "submittedAt", Value: -1}}},
	}

	agg := &sessionAggregation{feed: feed, cancel: cancel, lastActive: time.Now()}
	for _, stream := range streams {
		sub, err := w.openStream(subCtx, stream.collName, stream.sort)
		if err != nil {
			w.teardownLocked(agg)
			return nil, err
		}
		agg.subs = append(agg.subs, sub)

		go pumpFeed(subCtx, feed, stream.kind, stream.collName, sub)
	}

	w.sessions[identity] = agg
	return feed, nil
}

// GetFeed trả về feed đang hoạt động của identity, nil nếu chưa dựng
func (w *AggregationWorker) GetFeed(identity string) *notifysvc.Feed {
	w.mu.Lock()
	defer w.mu.Unlock()

	if agg, ok := w.sessions[identity]; ok {
		agg.lastActive = time.Now()
		return agg.feed
	}
	return nil
}

// Release teardown phiên của identity: đóng các subscription, bỏ feed khỏi map.
func (w *AggregationWorker) Release(identity string) {
	w.mu.Lock()
	defer w.mu.Unlock()

	if agg, ok := w.sessions[identity]; ok {
		w.teardownLocked(agg)
		delete(w.sessions, identity)
	}
}

// ReleaseIdle teardown các phiên không được đụng tới trong idleFor.
// Trả về số phiên đã teardown.
func (w *AggregationWorker) ReleaseIdle(idleFor time.Duration) int {
	cutoff := time.Now().Add(-idleFor)

	w.mu.Lock()
	defer w.mu.Unlock()

	released := 0
	for identity, agg := range w.sessions {
		if agg.lastActive.Before(cutoff) {
			w.teardownLocked(agg)
			delete(w.sessions, identity)
			released++
		}
	}
	return released
}

// ReleaseAll teardown toàn bộ phiên, dùng khi shutdown server
func (w *AggregationWorker) ReleaseAll() {
	w.mu.Lock()
	defer w.mu.Unlock()

	for identity, agg := range w.sessions {
		w.teardownLocked(agg)
		delete(w.sessions, identity)
	}
}

func (w *AggregationWorker) teardownLocked(agg *sessionAggregation) {
	for _, sub := range agg.subs {
		sub.Close()
	}
	agg.cancel()
}

// reapLoop quét định kỳ và teardown các phiên idle, chạy đến khi ctx bị hủy.
// Không có reaper thì mỗi phiên ẩn danh sẽ giữ ba change stream đến tận shutdown.
func (w *AggregationWorker) reapLoop(ctx context.Context, interval, idleFor time.Duration) {
	log := logger.GetAppLogger()
	ticker := time.NewTicker(interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			if released := w.ReleaseIdle(idleFor); released > 0 {
				log.WithField("released", released).Info("📦 [AGGREGATION] Đã teardown các phiên idle")
			}
		}
	}
}

// pumpFeed đọc delta từ một subscription và đưa vào feed cho đến khi
// subscription kết thúc. Panic trong vòng xử lý chỉ dừng stream đó,
// không kéo sập các stream còn lại của phiên.
func pumpFeed(ctx context.Context, feed *notifysvc.Feed, kind string, collName string, sub feedStream) {
	log := logger.GetAppLogger()
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).WithField("kind", kind).Error("📦 [AGGREGATION] Panic khi xử lý delta, stream dừng")
		}
	}()

	log.WithField("collection", collName).WithField("kind", kind).Info("📦 [AGGREGATION] Feed stream started")

	for delta := range sub.Deltas() {
		feed.OnDelta(ctx, kind, delta)
	}

	log.WithField("kind", kind).Info("📦 [AGGREGATION] Feed stream stopped")
}
