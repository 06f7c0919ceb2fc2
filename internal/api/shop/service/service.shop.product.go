package shopsvc

import (
	"fmt"

	basesvc "flora_commerce/internal/api/base/service"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/common"
	"flora_commerce/internal/global"
)

// ProductService là service quản lý sản phẩm
type ProductService struct {
	*basesvc.BaseServiceMongoImpl[shopmodels.ShopProduct]
}

// NewProductService tạo mới ProductService
func NewProductService() (*ProductService, error) {
	collection, exist := global.RegistryCollections.Get(global.ColNames.ShopProducts)
	if !exist {
		return nil, fmt.Errorf("failed to get shop_products collection: %v", common.ErrNotFound)
	}

	return &ProductService{
		BaseServiceMongoImpl: basesvc.NewBaseServiceMongo[shopmodels.ShopProduct](collection),
	}, nil
}
