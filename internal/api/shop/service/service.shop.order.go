// Package shopsvc chứa các service CRUD trên dữ liệu shop: đơn hàng,
// sản phẩm, hội thoại, đánh giá.
package shopsvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/bson/primitive"
	"go.mongodb.org/mongo-driver/mongo/options"

	basesvc "flora_commerce/internal/api/base/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
	"flora_commerce/internal/utility"
)

// OrderService là service quản lý đơn hàng
type OrderService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.ShopOrder]
}

// NewOrderService tạo mới OrderService
func NewOrderService() (*OrderService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.ShopOrders)
	if !exist {
		return nil, fmt.Errorf("failed to get shop_orders collection: %v", common.ErrNotFound)
	}

	return &OrderService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.ShopOrder](collection),
	}, nil
}

// UpdateStatus cập nhật trạng thái đơn hàng. Status phải là một trong các
// trạng thái hợp lệ — endpoint relay email cũng đi qua đây.
func (s *OrderService) UpdateStatus(ctx context.Context, id primitive.ObjectID, status string) error {
	if !shopmodels.IsValidOrderStatus(status) {
		return common.NewError(common.ErrCodeBusinessState,
			fmt.Sprintf("Trạng thái đơn không hợp lệ: %s", status), common.StatusBadRequest, nil)
	}

	_, err := s.UpdateById(ctx, id, bson.M{
		"status":    status,
		"updatedAt": utility.NowUnixMilli(),
	})
	return err
}

// FindByCustomerUserId lấy toàn bộ đơn của một tài khoản khách,
// mới nhất trước. Dùng cho tra cứu lịch sử đơn từ rollup khách hàng.
func (s *OrderService) FindByCustomerUserId(ctx context.Context, userId string) ([]shopmodels.ShopOrder, error) {
	opts := options.Find().SetSort(bson.D{{Key: "orderedAt", Value: -1}})
	return s.Find(ctx, bson.M{"customerUserId": userId}, opts)
}
