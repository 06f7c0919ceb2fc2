package reportsvc

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"go.mongodb.org/mongo-driver/bson"
	"go.mongodb.org/mongo-driver/mongo/options"

	reportmodels "flora_commerce/internal/api/report/models"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/global"
	"flora_commerce/internal/logger"
	"flora_commerce/internal/utility"
)

// TopSellersCount là số sản phẩm bán chạy được expose ra ngoài
const TopSellersCount = 5

// TopSellersService fold tập đơn thành top sản phẩm bán chạy và đẩy danh sách
// tên sản phẩm vào một document cache cố định mỗi khi top-5 thay đổi.
type TopSellersService struct {
	mu            sync.Mutex
	lastPublished []string // Top-5 đã ghi lần trước, dùng phát hiện thay đổi
}

// NewTopSellersService tạo instance mới của TopSellersService
func NewTopSellersService() *TopSellersService {
	return &TopSellersService{}
}

// FoldTopSellers fold toàn bộ tập đơn thành doanh số từng sản phẩm, key theo
// tên sản phẩm, rồi trả về top theo TotalSold giảm dần (tối đa TopSellersCount).
// Hòa được phá theo thứ tự gặp trong orders.
func FoldTopSellers(orders []shopmodels.ShopOrder) []reportmodels.ProductSales {
	byName := make(map[string]*reportmodels.ProductSales)
	encounter := make([]string, 0)

	for _, order := range orders {
		for _, item := range order.Items {
			if item.ProductName == "" {
				continue
			}
			sales, ok := byName[item.ProductName]
			if !ok {
				sales = &reportmodels.ProductSales{ProductName: item.ProductName}
				byName[item.ProductName] = sales
				encounter = append(encounter, item.ProductName)
			}
			sales.TotalSold += item.Quantity
			if item.Price > 0 {
				sales.Revenue += item.Price * float64(item.Quantity)
			} else {
				// Dòng hàng không có đơn giá: fallback về tổng tiền đơn
				sales.Revenue += order.Total
			}
		}
	}

	result := make([]reportmodels.ProductSales, 0, len(encounter))
	for _, name := range encounter {
		result = append(result, *byName[name])
	}
	sort.SliceStable(result, func(i, j int) bool {
		return result[i].TotalSold > result[j].TotalSold
	})

	if len(result) > TopSellersCount {
		result = result[:TopSellersCount]
	}
	return result
}

// PublishIfChanged ghi danh sách tên sản phẩm top-5 vào document cache cố định,
// chỉ khi danh sách khác lần ghi trước. Ghi lỗi chỉ log — không retry,
// không trả về cho caller.
func (s *TopSellersService) PublishIfChanged(ctx context.Context, topSellers []reportmodels.ProductSales) {
	names := make([]string, len(topSellers))
	for i, sales := range topSellers {
		names[i] = sales.ProductName
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if equalNames(s.lastPublished, names) {
		return
	}

	if err := s.writeCacheDoc(ctx, names); err != nil {
		logger.WithModule("report").WithError(err).Warn("Không ghi được top sellers vào cache document, bỏ qua")
		return
	}
	s.lastPublished = names
}

// writeCacheDoc upsert document cache duy nhất trong collection dashboard_cache
func (s *TopSellersService) writeCacheDoc(ctx context.Context, names []string) error {
	coll, err := global.RegistryCollections.MustGet(global.ColNames.DashboardCache)
	if err != nil {
		return fmt.Errorf("get dashboard cache collection: %w", err)
	}

	filter := bson.M{"key": reportmodels.TopSellersCacheKey}
	update := bson.M{"$set": bson.M{
		"key":          reportmodels.TopSellersCacheKey,
		"productNames": names,
		"updatedAt":    utility.NowUnixMilli(),
	}}
	_, err = coll.UpdateOne(ctx, filter, update, options.Update().SetUpsert(true))
	return err
}

func equalNames(a, b []string) bool {
	if len(a) != len(b) {
		return false
	}
	for i := range a {
		if a[i] != b[i] {
			return false
		}
	}
	return true
}
