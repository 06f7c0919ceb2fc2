package reportsvc

import (
	reportmodels "flora_commerce/internal/api/report/models"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/utility"
)

// FoldHistogram fold tập đơn của một ngày thành histogram 24 bucket theo giờ.
// dayStart là mốc đầu ngày (Unix ms, giờ địa phương); chỉ đơn có OrderedAt
// rơi trong [dayStart, dayStart+24h) được tính. Luôn trả về đủ 24 bucket
// kể cả khi không có đơn nào.
func FoldHistogram(orders []shopmodels.ShopOrder, dayStart int64) []reportmodels.HistogramBucket {
	const dayMillis = 24 * 60 * 60 * 1000

	buckets := make([]reportmodels.HistogramBucket, 24)
	for hour := range buckets {
		buckets[hour].Hour = hour
	}

	for _, order := range orders {
		if order.OrderedAt < dayStart || order.OrderedAt >= dayStart+dayMillis {
			continue
		}
		hour := utility.HourOfDay(order.OrderedAt)
		buckets[hour].Sales += order.Total
		buckets[hour].OrderCount++
	}

	return buckets
}
