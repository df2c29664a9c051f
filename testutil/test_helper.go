/*
 * @module testutil/test_helper
 * @description 测试工具和辅助函数
 * @architecture 测试基础设施 - 提供测试通用工具和数据工厂
 * @documentReference ai_docs/test_plan.md
 * @stateFlow 测试环境初始化 -> 测试数据创建 -> 测试执行 -> 清理资源
 * @rules 提供可重用的测试工具，确保测试环境的一致性
 * @dependencies gorm, sqlite, time
 * @refs service/models
 */

package testutil

import (
	"fmt"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/xifan2333/police-alert/service/models"
)

// TestDB 测试数据库配置
type TestDB struct {
	DB *gorm.DB
}

// NewTestDB 创建测试数据库
func NewTestDB() *TestDB {
	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		panic(fmt.Sprintf("failed to connect test database: %v", err))
	}

	// 自动迁移所有模型
	err = db.AutoMigrate(
		&models.DisplayRule{},
		&models.RiskSupervision{},
		&models.DisputeManagement{},
		&models.PoliceAlert{},
		&models.CallRecord{},
		&models.GeocodingCache{},
		&models.ImportLog{},
	)
	if err != nil {
		panic(fmt.Sprintf("failed to migrate test database: %v", err))
	}

	return &TestDB{DB: db}
}

// CleanDB 清理数据库
func (tdb *TestDB) CleanDB() {
	tables := []string{
		"display_rules",
		"risk_supervisions",
		"dispute_managements",
		"t_police_alert",
		"t_call_record",
		"t_geocoding_cache",
		"import_logs",
	}

	for _, table := range tables {
		tdb.DB.Exec(fmt.Sprintf("DELETE FROM %s", table))
	}
}

// Close 关闭数据库连接
func (tdb *TestDB) Close() {
	if db, err := tdb.DB.DB(); err == nil {
		db.Close()
	}
}

// TestDataFactory 测试数据工厂
type TestDataFactory struct {
	DB *gorm.DB
}

// NewTestDataFactory 创建测试数据工厂
func NewTestDataFactory(db *gorm.DB) *TestDataFactory {
	return &TestDataFactory{DB: db}
}

// DisplayRuleOption 显示规则选项函数类型
type DisplayRuleOption func(*models.DisplayRule)

// CreateDisplayRule 创建测试显示规则
func (f *TestDataFactory) CreateDisplayRule(opts ...DisplayRuleOption) *models.DisplayRule {
	rule := &models.DisplayRule{
		PageCode: "risk_supervision",
		RuleType: models.RuleTypeColor,
		RuleName: "测试规则",
		Config: models.RuleConfig{
			Field: "days_remaining",
			Conditions: []models.RuleCondition{
				{Operator: models.OpLessOrEqual, Value: 3, FontColor: StrPtr("#f5222d")},
			},
		},
		Priority:  0,
		IsEnabled: true,
	}

	for _, opt := range opts {
		opt(rule)
	}

	if err := f.DB.Create(rule).Error; err != nil {
		panic(fmt.Sprintf("failed to create test display rule: %v", err))
	}
	return rule
}

// PoliceAlertOption 警情计数选项函数类型
type PoliceAlertOption func(*models.PoliceAlert)

// CreatePoliceAlert 创建测试警情计数
func (f *TestDataFactory) CreatePoliceAlert(opts ...PoliceAlertOption) *models.PoliceAlert {
	alert := &models.PoliceAlert{
		AlertDate: Date(2025, 6, 1),
		AlertType: "偷盗",
		Location:  "某某小区",
		Count:     1,
	}

	for _, opt := range opts {
		opt(alert)
	}

	if err := f.DB.Create(alert).Error; err != nil {
		panic(fmt.Sprintf("failed to create test police alert: %v", err))
	}
	return alert
}

// StrPtr 字符串指针辅助
func StrPtr(s string) *string {
	return &s
}

// Date 构造本地时区零点日期
func Date(year int, month time.Month, day int) time.Time {
	return time.Date(year, month, day, 0, 0, 0, 0, time.Local)
}
