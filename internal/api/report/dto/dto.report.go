package reportdto

import (
	reportmodels "flora_commerce/internal/api/report/models"
)

// CustomerRollupResponse là kết quả GET rollup khách hàng
type CustomerRollupResponse struct {
	Customers []reportmodels.CustomerRollup `json:"customers"`
	SortBy    string                        `json:"sortBy"`
}

// TopSellersResponse là kết quả GET sản phẩm bán chạy
type TopSellersResponse struct {
	TopSellers []reportmodels.ProductSales `json:"topSellers"` // Theo TotalSold giảm dần, tối đa 5
}

// HistogramResponse là kết quả GET histogram doanh số theo giờ của một ngày
type HistogramResponse struct {
	Date    string                         `json:"date"` // Ngày đang lọc, dạng "02/01/2006"
	Buckets []reportmodels.HistogramBucket `json:"buckets"`
}
