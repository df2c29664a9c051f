/*
 * @module service/database/migrate
 * @description 数据库迁移模块，负责创建表结构并初始化默认显示规则
 * @architecture 数据访问层 - 迁移管理
 * @documentReference ai_docs/model.md
 * @stateFlow 应用启动时执行数据库迁移
 * @rules 确保数据库结构与模型定义保持一致；默认规则仅在规则表为空时写入
 * @dependencies gorm.io/gorm
 * @refs service/models
 */

package database

import (
	"log"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
)

// AutoMigrate 自动迁移数据库表结构
func AutoMigrate(db *gorm.DB) error {
	log.Println("开始数据库迁移...")

	// 业务记录相关表
	err := db.AutoMigrate(
		&models.RiskSupervision{},
		&models.DisputeManagement{},
		&models.PoliceAlert{},
		&models.CallRecord{},
	)
	if err != nil {
		return err
	}

	// 显示规则与辅助表
	err = db.AutoMigrate(
		&models.DisplayRule{},
		&models.GeocodingCache{},
		&models.ImportLog{},
	)
	if err != nil {
		return err
	}

	log.Println("数据库迁移完成")
	return nil
}

// InitializeData 初始化基础数据
// 规则表为空时写入默认显示规则，已有数据则跳过
func InitializeData(db *gorm.DB) error {
	var count int64
	if err := db.Model(&models.DisplayRule{}).Count(&count).Error; err != nil {
		return err
	}
	if count > 0 {
		log.Println("显示规则已存在，跳过初始化")
		return nil
	}

	rules := defaultDisplayRules()
	for i := range rules {
		if err := db.Create(&rules[i]).Error; err != nil {
			return err
		}
	}

	log.Printf("默认显示规则初始化完成，共 %d 条", len(rules))
	return nil
}

func strPtr(s string) *string {
	return &s
}

// defaultDisplayRules 各页面的出厂默认规则
func defaultDisplayRules() []models.DisplayRule {
	red := "#f5222d"
	yellow := "#faad14"
	green := "#52c41a"

	return []models.DisplayRule{
		{
			PageCode: "risk_supervision",
			RuleType: models.RuleTypeColor,
			RuleName: "整改期限颜色规则",
			Config: models.RuleConfig{
				Field: "days_remaining",
				Conditions: []models.RuleCondition{
					{Operator: models.OpLessOrEqual, Value: 3, FontColor: &red},
					{Operator: models.OpLessOrEqual, Value: 7, FontColor: &yellow},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "剩余天数：≤3天红色，≤7天黄色",
		},
		{
			PageCode: "dispute_management",
			RuleType: models.RuleTypeColor,
			RuleName: "风险等级颜色规则",
			Config: models.RuleConfig{
				Field: "risk_level",
				Conditions: []models.RuleCondition{
					{Operator: models.OpEq, Value: "高", FontColor: &red},
					{Operator: models.OpEq, Value: "中", FontColor: &yellow},
					{Operator: models.OpEq, Value: "低", FontColor: &green},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "风险等级：高-红色，中-黄色，低-绿色",
		},
		{
			PageCode:  "situation",
			TableCode: strPtr("policeClassification"),
			RuleType:  models.RuleTypeColor,
			RuleName:  "警情数量高亮",
			Config: models.RuleConfig{
				Field: "count",
				Conditions: []models.RuleCondition{
					{Operator: models.OpGreaterOrEqual, Value: 50, FontColor: &red},
					{Operator: models.OpGreaterOrEqual, Value: 30, FontColor: &yellow},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "警情数量：≥50红色，≥30黄色",
		},
		{
			PageCode:  "situation",
			TableCode: strPtr("theftTraditional"),
			RuleType:  models.RuleTypeColor,
			RuleName:  "偷盗数量高亮",
			Config: models.RuleConfig{
				Field: "count",
				Conditions: []models.RuleCondition{
					{Operator: models.OpGreaterOrEqual, Value: 10, FontColor: &red},
					{Operator: models.OpGreaterOrEqual, Value: 5, FontColor: &yellow},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "偷盗数量：≥10红色，≥5黄色",
		},
		{
			PageCode:  "situation",
			TableCode: strPtr("telecomFraud"),
			RuleType:  models.RuleTypeColor,
			RuleName:  "诈骗数量高亮",
			Config: models.RuleConfig{
				Field: "count",
				Conditions: []models.RuleCondition{
					{Operator: models.OpGreaterOrEqual, Value: 8, FontColor: &red},
					{Operator: models.OpGreaterOrEqual, Value: 4, FontColor: &yellow},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "诈骗数量：≥8红色，≥4黄色",
		},
		{
			PageCode:  "situation",
			TableCode: strPtr("repeatAlarms"),
			RuleType:  models.RuleTypeColor,
			RuleName:  "重复报警次数高亮",
			Config: models.RuleConfig{
				Field: "count",
				Conditions: []models.RuleCondition{
					{Operator: models.OpGreaterOrEqual, Value: 5, FontColor: &red},
					{Operator: models.OpGreaterOrEqual, Value: 3, FontColor: &yellow},
				},
			},
			Priority:    1,
			IsEnabled:   true,
			Description: "报警次数：≥5红色，≥3黄色",
		},
	}
}
