// Package mailersvc gửi email cập nhật trạng thái đơn hàng qua SMTP
// và ghi trạng thái mới ngược vào record đơn.
package mailersvc

import (
	"context"
	"fmt"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"gopkg.in/gomail.v2"

	mailerdto "flora_commerce/internal/api/mailer/dto"
	shopsvc "flora_commerce/internal/api/shop/service"
	"flora_commerce/config"
)

// OrderMailer gửi email trạng thái đơn và cập nhật record đơn sau khi gửi
type OrderMailer struct {
	cfg          *config.Configuration
	orderService *shopsvc.OrderService
}

// NewOrderMailer tạo instance mới của OrderMailer
func NewOrderMailer(cfg *config.Configuration) (*OrderMailer, error) {
	orderService, err := shopsvc.NewOrderService()
	if err != nil {
		return nil, fmt.Errorf("failed to create order service: %v", err)
	}
	return &OrderMailer{cfg: cfg, orderService: orderService}, nil
}

// SendStatusEmail gửi email báo trạng thái mới của đơn cho khách.
// Trả về chuỗi info ngắn mô tả kết quả gửi.
func (m *OrderMailer) SendStatusEmail(input *mailerdto.SendOrderEmailInput) (string, error) {
	msg := gomail.NewMessage()
	msg.SetHeader("From", fmt.Sprintf("%s <%s>", m.cfg.SMTP_FromName, m.cfg.SMTP_FromEmail))
	msg.SetHeader("To", input.CustomerEmail)
	msg.SetHeader("Subject", fmt.Sprintf("Cập nhật đơn hàng %s — %s", input.OrderId, input.Status))
	msg.SetBody("text/html", m.buildBody(input))

	dialer := gomail.NewDialer(m.cfg.SMTP_Host, m.cfg.SMTP_Port, m.cfg.SMTP_Username, m.cfg.SMTP_Password)
	if err := dialer.DialAndSend(msg); err != nil {
		return "", fmt.Errorf("send status email: %w", err)
	}

	return fmt.Sprintf("Đã gửi email tới %s", input.CustomerEmail), nil
}

// buildBody dựng nội dung HTML của email trạng thái
func (m *OrderMailer) buildBody(input *mailerdto.SendOrderEmailInput) string {
	return fmt.Sprintf(
		"<p>Chào %s,</p>"+
			"<p>Đơn hàng <b>%s</b> (%s) của bạn vừa chuyển sang trạng thái: <b>%s</b>.</p>"+
			"<p>Cảm ơn bạn đã mua hàng tại %s!</p>",
		input.CustomerName, input.OrderId, input.ProductName, input.Status, m.cfg.SMTP_FromName,
	)
}

// WriteStatusBack ghi trạng thái mới vào record đơn hàng. Stream đơn hàng
// sẽ quan sát thay đổi này như một delta update về sau.
func (m *OrderMailer) WriteStatusBack(ctx context.Context, orderId string, status string) error {
	objID, err := primitive.ObjectIDFromHex(orderId)
	if err != nil {
		return fmt.Errorf("invalid order id %q: %w", orderId, err)
	}
	return m.orderService.UpdateStatus(ctx, objID, status)
}
