/*
 * @module service/init
 * @description 服务初始化模块，负责数据库连接、迁移与各业务服务的装配
 * @architecture 分层架构 - 服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 应用启动时执行初始化流程
 * @rules 确保所有依赖服务正常启动后才提供API服务
 * @dependencies gorm.io/gorm, gorm.io/driver/sqlite, gorm.io/driver/postgres
 * @refs service/database, service/display, service/situation, service/importer
 */

package service

import (
	"fmt"
	"log"
	"os"
	"strconv"

	"gorm.io/driver/postgres"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/cleanup"
	"github.com/xifan2333/police-alert/service/database"
	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/geocoding"
	"github.com/xifan2333/police-alert/service/importer"
	"github.com/xifan2333/police-alert/service/records"
	"github.com/xifan2333/police-alert/service/situation"
)

var (
	DB                      *gorm.DB
	GlobalRuleService       *display.Service
	GlobalGeocodingService  *geocoding.Service
	GlobalSituationService  *situation.Service
	GlobalRiskService       *records.RiskService
	GlobalDisputeService    *records.DisputeService
	GlobalAlertService      *records.AlertService
	GlobalCallService       *records.CallService
	GlobalImportPipeline    *importer.Pipeline
	GlobalLogCleanupService *cleanup.LogCleanupService
)

func init() {
	initDatabase()
	runMigrations()
	initServices()
}

// initDatabase 初始化数据库连接
// 默认使用本地SQLite，DB_DRIVER=postgres 时切换到PostgreSQL
func initDatabase() {
	var err error

	switch getEnvWithDefault("DB_DRIVER", "sqlite") {
	case "postgres":
		var dsn string
		if databaseURL := os.Getenv("DATABASE_URL"); databaseURL != "" {
			dsn = databaseURL
		} else {
			host := getEnvWithDefault("DB_HOST", "localhost")
			port := getEnvWithDefault("DB_PORT", "5432")
			user := getEnvWithDefault("DB_USER", "postgres")
			password := getEnvWithDefault("DB_PASSWORD", "postgres")
			dbname := getEnvWithDefault("DB_NAME", "police_alert")
			sslmode := getEnvWithDefault("DB_SSLMODE", "disable")

			dsn = fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s TimeZone=Asia/Shanghai",
				host, port, user, password, dbname, sslmode)
		}
		DB, err = gorm.Open(postgres.Open(dsn), &gorm.Config{})
	default:
		path := getEnvWithDefault("SQLITE_PATH", "police_alert.db")
		DB, err = gorm.Open(sqlite.Open(path), &gorm.Config{})
	}

	if err != nil {
		log.Fatalf("数据库连接失败: %v", err)
	}

	log.Println("数据库连接成功")
}

// getEnvWithDefault 获取环境变量，如果不存在则返回默认值
func getEnvWithDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// runMigrations 运行数据库迁移
func runMigrations() {
	if err := database.AutoMigrate(DB); err != nil {
		log.Fatalf("数据库迁移失败: %v", err)
	}

	if err := database.InitializeData(DB); err != nil {
		log.Fatalf("基础数据初始化失败: %v", err)
	}
}

// initServices 初始化服务
func initServices() {
	GlobalRuleService = display.NewService(DB)

	// 未配置密钥时仅查本地缓存，不发起远程坐标查询
	var remote geocoding.Geocoder
	if key := os.Getenv("TIANDITU_KEY"); key != "" {
		remote = geocoding.NewTiandituClient(key)
	}
	GlobalGeocodingService = geocoding.NewService(DB, remote)

	GlobalSituationService = situation.NewService(DB, GlobalRuleService, GlobalGeocodingService)
	GlobalRiskService = records.NewRiskService(DB, GlobalRuleService)
	GlobalDisputeService = records.NewDisputeService(DB, GlobalRuleService)
	GlobalAlertService = records.NewAlertService(DB)
	GlobalCallService = records.NewCallService(DB)
	GlobalImportPipeline = importer.NewPipeline(DB)

	retentionDays, _ := strconv.Atoi(getEnvWithDefault("IMPORT_LOG_RETENTION_DAYS", "90"))
	GlobalLogCleanupService = cleanup.NewLogCleanupService(DB, retentionDays)
	if err := GlobalLogCleanupService.Start(); err != nil {
		log.Printf("日志清理任务启动失败: %v", err)
	}
}
