package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/caarlos0/env"
	"github.com/joho/godotenv"
)

// Configuration chứa thông tin tĩnh cần thiết để chạy ứng dụng.
// Bao gồm thông tin kết nối MongoDB, Redis, SMTP và cấu hình server.
type Configuration struct {
	Address               string `env:"ADDRESS" envDefault:"8080"`                 // Cổng server
	JwtSecret             string `env:"JWT_SECRET,required"`                       // Bí mật ký JWT session
	MongoDB_ConnectionURI string `env:"MONGODB_CONNECTION_URI,required"`           // URL kết nối MongoDB
	MongoDB_DBName        string `env:"MONGODB_DBNAME,required"`                   // Tên database chính
	CORS_Origins          string `env:"CORS_ORIGINS" envDefault:"*"`               // Các origins được phép (phân cách bởi dấu phẩy, * = tất cả)
	CORS_AllowCredentials bool   `env:"CORS_ALLOW_CREDENTIALS" envDefault:"false"` // Cho phép gửi credentials
	RateLimit_Max         int    `env:"RATE_LIMIT_MAX" envDefault:"100"`           // Số request tối đa trong window (0 = disable)
	RateLimit_Window      int    `env:"RATE_LIMIT_WINDOW" envDefault:"60"`         // Thời gian window (giây)
	RateLimit_Enabled     bool   `env:"RATE_LIMIT_ENABLED" envDefault:"true"`      // Bật/tắt rate limiting

	// Redis — lưu notification feed của từng session
	Redis_Address  string `env:"REDIS_ADDRESS" envDefault:"localhost:6379"` // Địa chỉ Redis
	Redis_Password string `env:"REDIS_PASSWORD"`                            // Mật khẩu Redis (optional)
	Redis_DB       int    `env:"REDIS_DB" envDefault:"0"`                   // Số database Redis

	// SMTP — gửi email cập nhật trạng thái đơn hàng
	SMTP_Host      string `env:"SMTP_HOST"`                                     // SMTP host
	SMTP_Port      int    `env:"SMTP_PORT" envDefault:"587"`                    // SMTP port
	SMTP_Username  string `env:"SMTP_USERNAME"`                                 // SMTP username
	SMTP_Password  string `env:"SMTP_PASSWORD"`                                 // SMTP password
	SMTP_FromName  string `env:"SMTP_FROM_NAME" envDefault:"Flora Commerce"`    // Tên người gửi
	SMTP_FromEmail string `env:"SMTP_FROM_EMAIL" envDefault:"shop@flora.local"` // Email người gửi

	// Notification feed
	NotifyFeedCap int `env:"NOTIFY_FEED_CAP" envDefault:"20"` // Số notification tối đa giữ lại trong feed

	// TLS/HTTPS
	EnableTLS   bool   `env:"ENABLE_TLS" envDefault:"false"` // Bật HTTPS
	TLSCertFile string `env:"TLS_CERT_FILE"`                 // Đường dẫn file certificate
	TLSKeyFile  string `env:"TLS_KEY_FILE"`                  // Đường dẫn file private key
}

// getEnvPath trả về đường dẫn đến file env dựa trên môi trường.
// Tìm thư mục config/env bằng cách đi lên từ thư mục hiện tại.
func getEnvPath() string {
	// Mặc định sử dụng môi trường development
	envName := os.Getenv("GO_ENV")
	if envName == "" {
		envName = "development"
	}

	currentDir, err := os.Getwd()
	if err != nil {
		// Sử dụng fmt.Printf vì logger có thể chưa được init ở đây
		fmt.Printf("Không thể lấy được thư mục hiện tại: %v\n", err)
		return ""
	}

	for {
		envDir := filepath.Join(currentDir, "config", "env")
		if _, err := os.Stat(envDir); err == nil {
			return filepath.Join(envDir, fmt.Sprintf("%s.env", envName))
		}

		parentDir := filepath.Dir(currentDir)
		if parentDir == currentDir {
			return ""
		}
		currentDir = parentDir
	}
}

// NewConfig đọc dữ liệu cấu hình từ file env theo GO_ENV rồi parse vào struct.
// Trả về nil nếu không tìm thấy hoặc không parse được file env.
func NewConfig() *Configuration {
	envPath := getEnvPath()
	if envPath == "" {
		fmt.Printf("Không tìm thấy thư mục config/env\n")
		return nil
	}

	if err := godotenv.Load(envPath); err != nil {
		fmt.Printf("Không thể load file env tại %s: %v\n", envPath, err)
		return nil
	}

	cfg := Configuration{}
	if err := env.Parse(&cfg); err != nil {
		fmt.Printf("Lỗi khi parse config: %+v\n", err)
		return nil
	}

	return &cfg
}
