package main

import (
	"fmt"
	"log"

	"github.com/smsvault/smsvault/internal/api"
	"github.com/smsvault/smsvault/internal/config"
	"github.com/smsvault/smsvault/internal/db"
)

const (
	// Version 项目版本
	Version = "0.1.0"
	// AppName 应用名称
	AppName = "SmsVault"
)

func main() {
	log.Printf("=== %s v%s ===\n", AppName, Version)
	log.Println("短信转发收集与验证码提取服务")

	// 加载配置
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("❌ 加载配置失败: %v", err)
	}

	// 初始化数据库
	database, err := db.InitDatabase(&cfg.Database)
	if err != nil {
		log.Fatalf("❌ 初始化数据库失败: %v", err)
	}
	defer func() {
		if err := db.CloseDatabase(database); err != nil {
			log.Printf("⚠️ 关闭数据库失败: %v", err)
		}
	}()

	// 数据库迁移
	if cfg.Database.AutoMigrate {
		if err := db.AutoMigrate(database); err != nil {
			log.Fatalf("❌ 数据库迁移失败: %v", err)
		}
	}

	if cfg.Admin.AdminToken == "" {
		log.Println("⚠️ 未设置 ADMIN_TOKEN，令牌管理与清空接口不可用")
	}

	// 启动 HTTP 服务
	router := api.SetupRouter(database, cfg)
	addr := fmt.Sprintf(":%d", cfg.Server.Port)
	log.Printf("🚀 服务启动: http://localhost%s", addr)

	if err := router.Run(addr); err != nil {
		log.Fatalf("❌ 服务启动失败: %v", err)
	}
}
