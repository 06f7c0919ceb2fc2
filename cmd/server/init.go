package main

import (
	"github.com/sirupsen/logrus"

	"flora_commerce/config"
	"flora_commerce/internal/database"
	"flora_commerce/internal/global"
)

// InitGlobal khởi tạo các biến toàn cục
func InitGlobal() {
	initColNames()         // Khởi tạo tên các collection trong database
	initValidator()        // Khởi tạo validator
	initConfig()           // Khởi tạo cấu hình server
	initDatabase_MongoDB() // Khởi tạo kết nối MongoDB
	initDatabase_Redis()   // Khởi tạo kết nối Redis (KV store cho feed notification)
}

// initColNames khởi tạo tên các collection trong database
func initColNames() {
	global.ColNames.ShopOrders = "shop_orders"
	global.ColNames.ShopProducts = "shop_products"
	global.ColNames.ShopChats = "shop_chats"
	global.ColNames.ShopFeedback = "shop_feedback"
	global.ColNames.DashboardCache = "dashboard_cache"

	logrus.Info("Initialized collection names")
}

// initValidator khởi tạo validator và đăng ký các custom validator
// (no_xss, order_status, exists, printable)
func initValidator() {
	global.InitValidator()
	logrus.Info("Initialized validator")
}

// initConfig khởi tạo cấu hình server
func initConfig() {
	global.ServerConfig = config.NewConfig()
	if global.ServerConfig == nil {
		logrus.Fatalf("Failed to initialize config: config is nil")
	}
	logrus.Info("Initialized server config")
}

// initDatabase_MongoDB khởi tạo kết nối MongoDB
func initDatabase_MongoDB() {
	var err error
	global.MongoDB_Session, err = database.GetInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get database instance: %v", err)
	}
	logrus.Info("Connected to MongoDB")
}

// initDatabase_Redis khởi tạo kết nối Redis
func initDatabase_Redis() {
	var err error
	global.Redis_Session, err = database.GetRedisInstance(global.ServerConfig)
	if err != nil {
		logrus.Fatalf("Failed to get redis instance: %v", err)
	}
	logrus.Info("Connected to Redis")
}
