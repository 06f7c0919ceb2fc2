// Package reportsvc tính các view tổng hợp bằng cách fold lại toàn bộ tập đơn
// hàng mỗi lần — không cập nhật tăng dần. Đổi độ hiệu quả lấy tính đúng:
// không phải suy luận riêng cho delta update/delete, mỗi lần fold là một
// kết quả tươi thay thế nguyên trạng thái cũ.
package reportsvc

import (
	"sort"
	"strings"

	reportmodels "flora_commerce/internal/api/report/models"
	shopmodels "flora_commerce/internal/api/shop/models"
	"flora_commerce/internal/utility"
)

// FoldCustomers fold toàn bộ tập đơn thành rollup khách hàng, key theo email.
// orders phải theo thứ tự thời gian đơn giảm dần — thứ tự gặp quyết định
// UserId được giữ (đơn đầu tiên gặp) và cách phá hòa khi sắp xếp.
func FoldCustomers(orders []shopmodels.ShopOrder, sortMode string) []reportmodels.CustomerRollup {
	byEmail := make(map[string]*reportmodels.CustomerRollup)
	encounter := make([]string, 0)

	for _, order := range orders {
		if order.CustomerEmail == "" {
			continue
		}
		rollup, ok := byEmail[order.CustomerEmail]
		if !ok {
			rollup = &reportmodels.CustomerRollup{
				Email:  order.CustomerEmail,
				Name:   order.CustomerName,
				Phone:  order.CustomerPhone,
				UserId: order.CustomerUserId,
			}
			byEmail[order.CustomerEmail] = rollup
			encounter = append(encounter, order.CustomerEmail)
		}
		rollup.TotalOrders++
		if order.OrderedAt > rollup.LastOrderAt {
			rollup.LastOrderAt = order.OrderedAt
			rollup.LastOrder = utility.FormatUnixMilli(order.OrderedAt)
		}
	}

	result := make([]reportmodels.CustomerRollup, 0, len(encounter))
	for _, email := range encounter {
		result = append(result, *byEmail[email])
	}

	// sort.SliceStable giữ thứ tự gặp khi hòa
	switch sortMode {
	case reportmodels.CustomerSortByTotalOrders:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].TotalOrders > result[j].TotalOrders
		})
	case reportmodels.CustomerSortByLastOrder:
		sort.SliceStable(result, func(i, j int) bool {
			return result[i].LastOrderAt > result[j].LastOrderAt
		})
	default:
		sort.SliceStable(result, func(i, j int) bool {
			return strings.ToLower(result[i].Name) < strings.ToLower(result[j].Name)
		})
	}

	return result
}
