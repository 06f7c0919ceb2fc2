// Package models - định nghĩa các view tổng hợp suy ra từ tập đơn hàng:
// rollup khách hàng, sản phẩm bán chạy, và histogram doanh số theo giờ.
package models

// Các chế độ sắp xếp rollup khách hàng
const (
	CustomerSortByName        = "name"        // Theo tên (mặc định)
	CustomerSortByTotalOrders = "totalOrders" // Tổng số đơn giảm dần
	CustomerSortByLastOrder   = "lastOrder"   // Đơn gần nhất giảm dần
)

// CustomerRollup gom thông tin một khách hàng từ toàn bộ đơn của họ, key theo email
type CustomerRollup struct {
	Email       string `json:"email"`
	Name        string `json:"name"`
	Phone       string `json:"phone,omitempty"`
	UserId      string `json:"userId,omitempty"` // Lấy từ đơn đầu tiên gặp của email này
	TotalOrders int    `json:"totalOrders"`
	LastOrderAt int64  `json:"lastOrderAt"` // Unix ms của đơn gần nhất
	LastOrder   string `json:"lastOrder"`   // Ngày đơn gần nhất dạng hiển thị
}

// ProductSales là doanh số tích lũy của một sản phẩm, key theo tên sản phẩm
type ProductSales struct {
	ProductName string  `json:"productName"`
	TotalSold   int     `json:"totalSold"`
	Revenue     float64 `json:"revenue"`
}

// HistogramBucket là một bucket giờ trong histogram doanh số 24 bucket
type HistogramBucket struct {
	Hour       int     `json:"hour"` // 0..23
	Sales      float64 `json:"sales"`
	OrderCount int     `json:"orderCount"`
}

// TopSellersCacheDoc là document cố định trong collection dashboard_cache
// nhận danh sách tên sản phẩm bán chạy cho phần khác của hệ thống dùng.
type TopSellersCacheDoc struct {
	Key          string   `json:"key" bson:"key"`
	ProductNames []string `json:"productNames" bson:"productNames"`
	UpdatedAt    int64    `json:"updatedAt" bson:"updatedAt"`
}

// TopSellersCacheKey là giá trị key của document cache duy nhất
const TopSellersCacheKey = "top_sellers"
