package worker

import (
	"context"
	"fmt"

	notifysvc "flora_commerce/internal/api/notification/service"
	"flora_commerce/internal/global"
	"flora_commerce/internal/kvstore"
)

// Các worker dùng chung toàn server, khởi tạo một lần lúc startup từ cmd/server
var (
	aggregationWorkerInstance *AggregationWorker
	rollupWorkerInstance      *RollupWorker
)

// InitWorkers khởi tạo và chạy các worker nền. Gọi sau khi MongoDB, Redis
// và registry collection đã sẵn sàng.
func InitWorkers(ctx context.Context) error {
	store := notifysvc.NewFeedStore(kvstore.NewRedisStore(global.Redis_Session))
	aggregationWorkerInstance = NewAggregationWorker(store, global.ServerConfig.NotifyFeedCap)
	go aggregationWorkerInstance.reapLoop(ctx, aggregationReapInterval, aggregationIdleTTL)

	rollupWorkerInstance = NewRollupWorker()
	if err := rollupWorkerInstance.Start(ctx); err != nil {
		return fmt.Errorf("start rollup worker: %w", err)
	}
	return nil
}

// StopWorkers dừng toàn bộ worker, dùng khi shutdown server
func StopWorkers() {
	if aggregationWorkerInstance != nil {
		aggregationWorkerInstance.ReleaseAll()
	}
	if rollupWorkerInstance != nil {
		rollupWorkerInstance.Stop()
	}
}

// GetAggregationWorker trả về worker quản lý feed theo phiên
func GetAggregationWorker() *AggregationWorker {
	return aggregationWorkerInstance
}

// GetRollupWorker trả về worker nuôi tập đơn cho các view tổng hợp
func GetRollupWorker() *RollupWorker {
	return rollupWorkerInstance
}
