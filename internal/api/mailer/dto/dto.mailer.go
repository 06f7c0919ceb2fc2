package mailerdto

// SendOrderEmailInput là body của POST /send-order-email.
// Tất cả các trường đều bắt buộc — thiếu trường nào trả về 400.
type SendOrderEmailInput struct {
	CustomerEmail string `json:"customerEmail" validate:"required,email"`
	CustomerName  string `json:"customerName" validate:"required"`
	OrderId       string `json:"orderId" validate:"required"`
	Status        string `json:"status" validate:"required,order_status"`
	ProductName   string `json:"productName" validate:"required"`
}
