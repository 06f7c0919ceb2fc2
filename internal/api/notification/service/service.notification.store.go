package notifysvc

import (
	"context"
	"encoding/json"

	notifymodels "flora_commerce/internal/api/notification/models"
	"flora_commerce/internal/kvstore"
	"flora_commerce/internal/logger"
)

// feedKeyPrefix + identity là key lưu feed của một phiên trong KV store
const feedKeyPrefix = "dashboard:notifications:"

// FeedStore lưu và nạp lại feed notification qua KV store,
// để reload dashboard khôi phục được các notification trước đó.
type FeedStore struct {
	store kvstore.Store
}

// NewFeedStore tạo FeedStore trên một KV store bất kỳ
func NewFeedStore(store kvstore.Store) *FeedStore {
	return &FeedStore{store: store}
}

// Load nạp feed đã lưu của identity. Mọi lỗi (đọc hỏng, JSON hỏng) đều được
// log rồi trả về danh sách rỗng — không bao giờ chặn khởi tạo feed.
// Mục không ghi rõ unread=false được mặc định là unread=true.
func (s *FeedStore) Load(ctx context.Context, identity string) []notifymodels.FeedNotification {
	log := logger.WithModule("notification").WithField("identity", identity)

	value, ok, err := s.store.Get(ctx, feedKeyPrefix+identity)
	if err != nil {
		log.WithError(err).Warn("Không đọc được feed đã lưu, bắt đầu với feed rỗng")
		return nil
	}
	if !ok {
		return nil
	}

	// Decode qua dạng raw để phân biệt "unread vắng mặt" với "unread=false":
	// dữ liệu lưu từ phiên bản cũ không có field unread vẫn phải hiện là chưa đọc.
	var rawItems []map[string]json.RawMessage
	if err := json.Unmarshal([]byte(value), &rawItems); err != nil {
		log.WithError(err).Warn("Feed đã lưu bị hỏng, bắt đầu với feed rỗng")
		return nil
	}

	items := make([]notifymodels.FeedNotification, 0, len(rawItems))
	for _, rawItem := range rawItems {
		item := notifymodels.FeedNotification{Unread: true}
		if rawID, ok := rawItem["id"]; ok {
			json.Unmarshal(rawID, &item.Id)
		}
		if item.Id == "" {
			continue
		}
		if rawKind, ok := rawItem["kind"]; ok {
			json.Unmarshal(rawKind, &item.Kind)
		}
		if rawMsg, ok := rawItem["message"]; ok {
			json.Unmarshal(rawMsg, &item.Message)
		}
		if rawAt, ok := rawItem["createdAt"]; ok {
			json.Unmarshal(rawAt, &item.CreatedAt)
		}
		if rawUnread, ok := rawItem["unread"]; ok {
			json.Unmarshal(rawUnread, &item.Unread)
		}
		items = append(items, item)
	}
	return items
}

// Save ghi toàn bộ feed xuống KV store. Ghi lỗi chỉ log, không trả về cho caller —
// một lần ghi hỏng đơn giản là bị bỏ qua, lần mutation sau sẽ ghi lại toàn bộ.
func (s *FeedStore) Save(ctx context.Context, identity string, items []notifymodels.FeedNotification) {
	if items == nil {
		items = []notifymodels.FeedNotification{}
	}
	data, err := json.Marshal(items)
	if err != nil {
		logger.WithModule("notification").WithError(err).Warn("Không serialize được feed, bỏ qua lần ghi này")
		return
	}
	if err := s.store.Set(ctx, feedKeyPrefix+identity, string(data)); err != nil {
		logger.WithModule("notification").WithError(err).Warn("Không ghi được feed xuống KV store, bỏ qua lần ghi này")
	}
}

// Erase xóa hẳn key feed của identity (dùng cho clear-all)
func (s *FeedStore) Erase(ctx context.Context, identity string) {
	if err := s.store.Remove(ctx, feedKeyPrefix+identity); err != nil {
		logger.WithModule("notification").WithError(err).Warn("Không xóa được key feed trong KV store")
	}
}
