package models

// Các trạng thái đơn hàng — theo vòng đời: Pending → Processing →
// Out for Delivery → Delivered, hoặc Cancelled ở bất kỳ bước nào.
const (
	OrderStatusPending        = "Pending"
	OrderStatusProcessing     = "Processing"
	OrderStatusOutForDelivery = "Out for Delivery"
	OrderStatusDelivered      = "Delivered"
	OrderStatusCancelled      = "Cancelled"
)

// IsValidOrderStatus kiểm tra status có phải một trạng thái đơn hợp lệ
func IsValidOrderStatus(status string) bool {
	switch status {
	case OrderStatusPending, OrderStatusProcessing, OrderStatusOutForDelivery,
		OrderStatusDelivered, OrderStatusCancelled:
		return true
	}
	return false
}
