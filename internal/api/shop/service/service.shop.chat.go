package shopsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"

	basesvc "flora_commerce/internal/api/base/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
	"flora_commerce/internal/utility"
)

// ChatService là service quản lý hội thoại chăm sóc khách hàng
type ChatService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.ShopChat]
}

// NewChatService tạo mới ChatService
func NewChatService() (*ChatService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.ShopChats)
	if !exist {
		return nil, fmt.Errorf("failed to get shop_chats collection: %v", common.ErrNotFound)
	}

	return &ChatService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.ShopChat](collection),
	}, nil
}

// MarkRead đánh dấu admin đã đọc hội thoại. Từ lúc này các delta update của
// hội thoại không sinh notification nữa cho đến khi có tin nhắn mới (shop app
// reset adminRead=false khi khách nhắn).
func (s *ChatService) MarkRead(ctx context.Context, id primitive.ObjectID) error {
	_, err := s.UpdateById(ctx, id, bson.M{
		"adminRead": true,
		"updatedAt": utility.NowUnixMilli(),
	})
	return err
}
