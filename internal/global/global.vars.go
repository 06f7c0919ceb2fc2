package global

import (
	"github.com/go-playground/validator/v10"
	"github.com/go-redis/redis/v8"
	"go.mongodb.org/mongo-driver/mongo"

	"flora_commerce/config"
	"flora_commerce/internal/registry"
)

// CollectionNames chứa tên các collection trong MongoDB
type CollectionNames struct {
	ShopOrders     string // Tên collection cho đơn hàng
	ShopProducts   string // Tên collection cho sản phẩm (hoa, bó hoa, phụ kiện)
	ShopChats      string // Tên collection cho hội thoại chăm sóc khách hàng
	ShopFeedback   string // Tên collection cho đánh giá/phản hồi của khách
	DashboardCache string // Tên collection cho cache document của dashboard (top sellers)
}

// Các biến toàn cục
var Validate *validator.Validate            // Validator dùng chung để xác thực dữ liệu
var MongoDB_Session *mongo.Client           // Phiên kết nối tới MongoDB
var Redis_Session *redis.Client             // Phiên kết nối tới Redis
var ServerConfig *config.Configuration      // Cấu hình của server
var ColNames CollectionNames                // Tên các collection

// Các Registry
var RegistryCollections = registry.NewRegistry[*mongo.Collection]() // Registry chứa các collections
var RegistryDatabase = registry.NewRegistry[*mongo.Database]()      // Registry chứa các databases
