// Package reportsvc - Test các hàm fold rollup: khách hàng, sản phẩm bán chạy,
// histogram theo giờ.
package reportsvc

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	reportmodels "flora_commerce/internal/api/report/models"
	shopmodels "flora_commerce/internal/api/shop/models"
)

func makeOrder(email, name string, orderedAt int64) shopmodels.ShopOrder {
	return shopmodels.ShopOrder{
		CustomerEmail: email,
		CustomerName:  name,
		OrderedAt:     orderedAt,
	}
}

func TestFoldCustomers_GroupByEmail(t *testing.T) {
	// orders theo thứ tự thời gian giảm dần như RollupWorker cung cấp
	orders := []shopmodels.ShopOrder{
		makeOrder("lan@example.com", "Lan", 3000),
		makeOrder("minh@example.com", "Minh", 2000),
		makeOrder("lan@example.com", "Lan", 1000),
	}

	result := FoldCustomers(orders, reportmodels.CustomerSortByName)

	assert.Len(t, result, 2)
	byEmail := map[string]reportmodels.CustomerRollup{}
	for _, rollup := range result {
		byEmail[rollup.Email] = rollup
	}
	assert.Equal(t, 2, byEmail["lan@example.com"].TotalOrders)
	assert.Equal(t, int64(3000), byEmail["lan@example.com"].LastOrderAt)
	assert.Equal(t, 1, byEmail["minh@example.com"].TotalOrders)
}

func TestFoldCustomers_SkipsEmptyEmail(t *testing.T) {
	orders := []shopmodels.ShopOrder{
		makeOrder("", "Khách vãng lai", 2000),
		makeOrder("lan@example.com", "Lan", 1000),
	}

	result := FoldCustomers(orders, reportmodels.CustomerSortByName)
	assert.Len(t, result, 1)
	assert.Equal(t, "lan@example.com", result[0].Email)
}

func TestFoldCustomers_UserIdFromFirstEncounter(t *testing.T) {
	// UserId lấy từ đơn đầu tiên gặp (đơn mới nhất), kể cả khi đơn cũ có giá trị khác
	newest := makeOrder("lan@example.com", "Lan", 3000)
	newest.CustomerUserId = "uid-new"
	oldest := makeOrder("lan@example.com", "Lan", 1000)
	oldest.CustomerUserId = "uid-old"

	result := FoldCustomers([]shopmodels.ShopOrder{newest, oldest}, reportmodels.CustomerSortByName)
	assert.Len(t, result, 1)
	assert.Equal(t, "uid-new", result[0].UserId)
}

func TestFoldCustomers_SortModes(t *testing.T) {
	orders := []shopmodels.ShopOrder{
		makeOrder("binh@example.com", "Bình", 5000),
		makeOrder("an@example.com", "An", 4000),
		makeOrder("an@example.com", "An", 3000),
		makeOrder("cuc@example.com", "Cúc", 2000),
		makeOrder("an@example.com", "An", 1000),
	}

	byName := FoldCustomers(orders, reportmodels.CustomerSortByName)
	assert.Equal(t, "An", byName[0].Name)
	assert.Equal(t, "Bình", byName[1].Name)
	assert.Equal(t, "Cúc", byName[2].Name)

	byTotal := FoldCustomers(orders, reportmodels.CustomerSortByTotalOrders)
	assert.Equal(t, "an@example.com", byTotal[0].Email)
	assert.Equal(t, 3, byTotal[0].TotalOrders)
	// Hòa (1 đơn mỗi người): giữ thứ tự gặp — Bình trước Cúc
	assert.Equal(t, "binh@example.com", byTotal[1].Email)
	assert.Equal(t, "cuc@example.com", byTotal[2].Email)

	byLast := FoldCustomers(orders, reportmodels.CustomerSortByLastOrder)
	assert.Equal(t, "binh@example.com", byLast[0].Email)
	assert.Equal(t, "an@example.com", byLast[1].Email)
	assert.Equal(t, "cuc@example.com", byLast[2].Email)
}

func itemsOrder(total float64, items ...shopmodels.OrderItem) shopmodels.ShopOrder {
	return shopmodels.ShopOrder{
		CustomerEmail: "khach@example.com",
		Total:         total,
		Items:         items,
	}
}

func TestFoldTopSellers_TopFiveByQuantity(t *testing.T) {
	// 6 sản phẩm, chỉ 5 bán chạy nhất được giữ
	var orders []shopmodels.ShopOrder
	names := []string{"Hồng", "Cúc", "Lan", "Tulip", "Ly", "Sen"}
	for i, name := range names {
		orders = append(orders, itemsOrder(0, shopmodels.OrderItem{
			ProductName: name,
			Quantity:    10 - i,
			Price:       50000,
		}))
	}

	result := FoldTopSellers(orders)
	assert.Len(t, result, TopSellersCount)
	assert.Equal(t, "Hồng", result[0].ProductName)
	assert.Equal(t, 10, result[0].TotalSold)
	assert.Equal(t, "Ly", result[4].ProductName)
	// "Sen" (bán ít nhất) bị cắt
	for _, sales := range result {
		assert.NotEqual(t, "Sen", sales.ProductName)
	}
}

func TestFoldTopSellers_AggregatesAcrossOrders(t *testing.T) {
	orders := []shopmodels.ShopOrder{
		itemsOrder(0, shopmodels.OrderItem{ProductName: "Hồng", Quantity: 2, Price: 50000}),
		itemsOrder(0, shopmodels.OrderItem{ProductName: "Hồng", Quantity: 3, Price: 50000}),
	}

	result := FoldTopSellers(orders)
	assert.Len(t, result, 1)
	assert.Equal(t, 5, result[0].TotalSold)
	assert.Equal(t, float64(250000), result[0].Revenue)
}

func TestFoldTopSellers_RevenueFallbackToOrderTotal(t *testing.T) {
	// Dòng hàng không có đơn giá (dữ liệu cũ): revenue lấy Total của đơn
	orders := []shopmodels.ShopOrder{
		itemsOrder(120000, shopmodels.OrderItem{ProductName: "Hồng", Quantity: 2, Price: 0}),
	}

	result := FoldTopSellers(orders)
	assert.Len(t, result, 1)
	assert.Equal(t, float64(120000), result[0].Revenue)
}

func TestFoldTopSellers_TieBreakByEncounterOrder(t *testing.T) {
	orders := []shopmodels.ShopOrder{
		itemsOrder(0,
			shopmodels.OrderItem{ProductName: "Cúc", Quantity: 3, Price: 10000},
			shopmodels.OrderItem{ProductName: "Lan", Quantity: 3, Price: 10000},
		),
	}

	result := FoldTopSellers(orders)
	assert.Equal(t, "Cúc", result[0].ProductName)
	assert.Equal(t, "Lan", result[1].ProductName)
}

func TestFoldHistogram_BucketsByHour(t *testing.T) {
	day := time.Date(2026, 3, 15, 0, 0, 0, 0, time.Local)
	dayStart := day.UnixMilli()

	at := func(hour, minute int) int64 {
		return time.Date(2026, 3, 15, hour, minute, 0, 0, time.Local).UnixMilli()
	}

	orders := []shopmodels.ShopOrder{
		{Total: 100000, OrderedAt: at(9, 15)},
		{Total: 200000, OrderedAt: at(9, 45)},
		{Total: 50000, OrderedAt: at(23, 59)},
		// Ngoài ngày: không được tính
		{Total: 999999, OrderedAt: time.Date(2026, 3, 14, 23, 59, 0, 0, time.Local).UnixMilli()},
		{Total: 999999, OrderedAt: time.Date(2026, 3, 16, 0, 0, 0, 0, time.Local).UnixMilli()},
	}

	buckets := FoldHistogram(orders, dayStart)
	assert.Len(t, buckets, 24)

	assert.Equal(t, float64(300000), buckets[9].Sales)
	assert.Equal(t, 2, buckets[9].OrderCount)
	assert.Equal(t, float64(50000), buckets[23].Sales)
	assert.Equal(t, 1, buckets[23].OrderCount)

	var total float64
	for _, b := range buckets {
		total += b.Sales
	}
	assert.Equal(t, float64(350000), total, "đơn ngoài ngày không được tính vào bucket nào")
}

func TestFoldHistogram_EmptyInputStillReturns24Buckets(t *testing.T) {
	buckets := FoldHistogram(nil, 0)
	assert.Len(t, buckets, 24)
	for hour, b := range buckets {
		assert.Equal(t, hour, b.Hour)
		assert.Zero(t, b.OrderCount)
	}
}
