package shopsvc

import (
	"fmt"

	basesvc "flora_commerce/internal/api/base/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
)

// FeedbackService là service quản lý đánh giá của khách
type FeedbackService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.ShopFeedback]
}

// NewFeedbackService tạo mới FeedbackService
func NewFeedbackService() (*FeedbackService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.ShopFeedback)
	if !exist {
		return nil, fmt.Errorf("failed to get shop_feedback collection: %v", common.ErrNotFound)
	}

	return &FeedbackService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.ShopFeedback](collection),
	}, nil
}
