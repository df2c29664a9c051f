/*
 * @module service/models/display_rule
 * @description 显示规则模型定义，规则条件以结构化类型存储，入库前校验
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 规则创建 -> 按页面/表格查询 -> 前端渲染应用
 * @rules 规则配置不再以不透明字符串存储，持久化边界完成结构校验
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/display
 */

package models

import (
	"database/sql/driver"
	"encoding/json"
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// RuleTypeColor 颜色规则，当前唯一支持的规则类型
const RuleTypeColor = "color"

// 条件操作符
const (
	OpLessOrEqual    = "<="
	OpGreaterOrEqual = ">="
	OpEqual          = "=="
	OpEq             = "eq" // == 的同义词
	OpIn             = "in"
)

// RuleCondition 单个规则条件
// Value 为标量阈值，Values 仅在 operator 为 in 时使用
type RuleCondition struct {
	Operator   string        `json:"operator"`
	Value      interface{}   `json:"value,omitempty"`
	Values     []interface{} `json:"values,omitempty"`
	FontColor  *string       `json:"font_color,omitempty"`
	Background *string       `json:"background_color,omitempty"`
	StyleToken *string       `json:"style_token,omitempty"`
}

// RuleConfig 规则配置：目标字段 + 按顺序求值的条件列表
type RuleConfig struct {
	Field      string          `json:"field"`
	Conditions []RuleCondition `json:"conditions"`
}

// Scan 实现 Scanner 接口
// 历史数据中存在无法解析的配置，按"无样式"降级处理而不是报错
func (c *RuleConfig) Scan(value interface{}) error {
	if value == nil {
		*c = RuleConfig{}
		return nil
	}

	var bytes []byte
	switch v := value.(type) {
	case []byte:
		bytes = v
	case string:
		bytes = []byte(v)
	default:
		*c = RuleConfig{}
		return nil
	}

	if err := json.Unmarshal(bytes, c); err != nil {
		*c = RuleConfig{}
	}
	return nil
}

// Value 实现 Valuer 接口
func (c RuleConfig) Value() (driver.Value, error) {
	return json.Marshal(c)
}

// Style 规则求值结果，全部为空表示未命中任何规则
type Style struct {
	FontColor  *string `json:"font_color"`
	StyleToken *string `json:"style_token"`
}

// IsZero 是否为空样式
func (s Style) IsZero() bool {
	return s.FontColor == nil && s.StyleToken == nil
}

// DisplayRule 显示规则模型
type DisplayRule struct {
	ID          string     `gorm:"type:uuid;primary_key" json:"id"`
	PageCode    string     `gorm:"not null;size:50;index" json:"page_code"`
	TableCode   *string    `gorm:"size:50" json:"table_code"`
	RuleType    string     `gorm:"not null;size:50;default:'color'" json:"rule_type"`
	RuleName    string     `gorm:"not null;size:100" json:"rule_name"`
	Config      RuleConfig `gorm:"column:rule_config;type:jsonb" json:"rule_config"`
	Priority    int        `gorm:"not null;default:0;index" json:"priority"`
	IsEnabled   bool       `gorm:"not null;default:true" json:"is_enabled"`
	Description string     `json:"description"`
	CreatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt   time.Time  `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// BeforeCreate 创建前钩子
func (r *DisplayRule) BeforeCreate(tx *gorm.DB) error {
	if r.ID == "" {
		r.ID = uuid.New().String()
	}
	if r.RuleType == "" {
		r.RuleType = RuleTypeColor
	}
	return nil
}
