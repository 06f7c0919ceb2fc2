// Package worker - RollupWorker nuôi tập đơn hàng in-memory từ live query
// trên collection đơn hàng và fold lại các view tổng hợp sau mỗi delta.
package worker

import (
	"context"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	reportsvc "flora_commerce/internal/api/report/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/global"
	"flora_commerce/internal/livequery"
	"flora_commerce/internal/logger"
)

// RollupWorker subscribe stream đơn hàng không filter, giữ một bản đồ đầy đủ
// các đơn hiện có, và sau mỗi delta fold lại top sellers để đẩy vào cache
// document khi top-5 đổi. Các handler report đọc snapshot đơn từ đây và
// tự fold theo tham số request.
type RollupWorker struct {
	mu     sync.RWMutex
	orders map[string]shopmodels.ShopOrder // key: _id hex

	topSellers *reportsvc.TopSellersService
	sub        *livequery.Subscription
	done       chan struct{}
}

// NewRollupWorker tạo worker mới
func NewRollupWorker() *RollupWorker {
	return &RollupWorker{
		orders:     make(map[string]shopmodels.ShopOrder),
		topSellers: reportsvc.NewTopSellersService(),
		done:       make(chan struct{}),
	}
}

// Start mở live query trên collection đơn hàng và chạy vòng xử lý delta.
// Trả về lỗi nếu không mở được subscription; sau đó worker tự chạy nền.
func (w *RollupWorker) Start(ctx context.Context) error {
	coll, err := global.RegistryCollections.MustGet(global.ColNames.ShopOrders)
	if err != nil {
		return err
	}

	// Sort theo thời gian đơn giảm dần: thứ tự gặp của snapshot quyết định
	// cách phá hòa trong các rollup
	sub, err := livequery.Subscribe(ctx, coll, bson.M{}, bson.D{{Key: "orderedAt", Value: -1}})
	if err != nil {
		return err
	}
	w.sub = sub

	go w.run(ctx)
	return nil
}

// Stop dừng subscription và chờ vòng xử lý thoát
func (w *RollupWorker) Stop() {
	if w.sub != nil {
		w.sub.Close()
	}
	<-w.done
}

func (w *RollupWorker) run(ctx context.Context) {
	log := logger.GetAppLogger()
	defer close(w.done)
	defer func() {
		if r := recover(); r != nil {
			log.WithField("panic", r).Error("📊 [ROLLUP] Panic trong vòng xử lý delta, worker dừng")
		}
	}()

	log.Info("📊 [ROLLUP] Starting Rollup Worker...")

	for delta := range w.sub.Deltas() {
		w.applyDelta(delta)

		// Fold lại top sellers sau mỗi delta; chỉ ghi cache khi top-5 đổi
		topSellers := reportsvc.FoldTopSellers(w.OrdersSnapshot())
		w.topSellers.PublishIfChanged(ctx, topSellers)
	}

	log.Info("📊 [ROLLUP] Rollup Worker stopped")
}

// applyDelta cập nhật bản đồ đơn theo một delta
func (w *RollupWorker) applyDelta(delta livequery.Delta) {
	w.mu.Lock()
	defer w.mu.Unlock()

	switch delta.Type {
	case livequery.DeltaInsert, livequery.DeltaUpdate:
		var order shopmodels.ShopOrder
		if err := bson.Unmarshal(delta.Record, &order); err != nil {
			logger.WithModule("report").WithError(err).Warn("Không decode được đơn hàng từ delta, bỏ qua")
			return
		}
		w.orders[order.ID.Hex()] = order
	case livequery.DeltaDelete:
		if oid, ok := delta.DocumentID.(primitive.ObjectID); ok {
			delete(w.orders, oid.Hex())
		}
	}
}

// OrdersSnapshot trả về bản sao tập đơn hiện biết, sắp theo thời gian đơn
// giảm dần — cùng thứ tự với query nguồn
func (w *RollupWorker) OrdersSnapshot() []shopmodels.ShopOrder {
	w.mu.RLock()
	defer w.mu.RUnlock()

	orders := make([]shopmodels.ShopOrder, 0, len(w.orders))
	for _, order := range w.orders {
		orders = append(orders, order)
	}
	sort.SliceStable(orders, func(i, j int) bool {
		return orders[i].OrderedAt > orders[j].OrderedAt
	})
	return orders
}
