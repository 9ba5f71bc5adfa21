package main

import (
	"log"

	"github.com/gin-gonic/gin"

	"github.com/sdpjss/community-registry-backend/config"
	"github.com/sdpjss/community-registry-backend/database"
	"github.com/sdpjss/community-registry-backend/internal/auditlog"
	"github.com/sdpjss/community-registry-backend/internal/auth"
	"github.com/sdpjss/community-registry-backend/internal/board"
	"github.com/sdpjss/community-registry-backend/internal/category"
	"github.com/sdpjss/community-registry-backend/internal/courier"
	"github.com/sdpjss/community-registry-backend/internal/donation"
	"github.com/sdpjss/community-registry-backend/internal/khandan"
	"github.com/sdpjss/community-registry-backend/internal/notice"
	"github.com/sdpjss/community-registry-backend/internal/notification"
	"github.com/sdpjss/community-registry-backend/internal/team"
	"github.com/sdpjss/community-registry-backend/routes"
	"github.com/sdpjss/community-registry-backend/utils"
)

// @title Community Registry API
// @version 1.0
// @description Member registry, donation receipts and community boards for SDPJSS.
// @BasePath /api/v1
func main() {
	cfg := config.Load()
	db := database.Connect(cfg)

	if err := utils.InitRedis(); err != nil {
		log.Fatalf("❌ Redis init failed: %v", err)
	}

	utils.InitializeKafka()

	log.Println("🔄 Running database migrations...")
	if err := db.AutoMigrate(
		&khandan.Khandan{},
		&auth.User{},
		&category.Category{},
		&courier.ChargeRule{},
		&donation.Order{},
		&donation.OrderItem{},
		&auditlog.AuditLog{},
		&notice.Notice{},
		&board.JobOpening{},
		&board.StaffRequirement{},
		&board.Advertisement{},
		&team.Member{},
	); err != nil {
		log.Fatalf("❌ Migration failed: %v", err)
	}
	log.Println("✅ Migrations complete")

	notification.Start()

	r := gin.Default()
	routes.Setup(r, cfg)

	log.Printf("🚀 Server listening on :%s", cfg.Port)
	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatalf("❌ Server failed: %v", err)
	}
}
