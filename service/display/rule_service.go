/*
 * @module service/display/rule_service
 * @description 显示规则存取服务，提供规则CRUD与按页面/表格范围的有序查询
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 管理端维护规则 -> 列表/统计请求逐次读取 -> 引擎求值
 * @rules 查询结果按 priority 升序、id 升序排序；规则配置在持久化边界完成结构校验；不做缓存
 * @dependencies gorm.io/gorm
 * @refs service/display/rule_engine.go
 */

package display

import (
	"errors"
	"fmt"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
)

// ErrRuleNotFound 规则不存在
var ErrRuleNotFound = errors.New("规则不存在")

// Service 显示规则服务
type Service struct {
	db *gorm.DB
}

// NewService 创建显示规则服务实例
func NewService(db *gorm.DB) *Service {
	return &Service{db: db}
}

// GetRulesByPage 获取指定页面的启用规则
// tableCode 非空时进一步按表格范围过滤，结果按优先级升序（同优先级按创建顺序）
func (s *Service) GetRulesByPage(pageCode string, tableCode *string) ([]models.DisplayRule, error) {
	query := s.db.Where("page_code = ? AND is_enabled = ?", pageCode, true)
	if tableCode != nil {
		query = query.Where("table_code = ?", *tableCode)
	}

	var rules []models.DisplayRule
	if err := query.Order("priority ASC, created_at ASC, id ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("查询显示规则失败: %w", err)
	}
	return rules, nil
}

// ListRules 获取所有规则（管理端）
func (s *Service) ListRules() ([]models.DisplayRule, error) {
	var rules []models.DisplayRule
	if err := s.db.Order("page_code ASC, priority ASC").Find(&rules).Error; err != nil {
		return nil, fmt.Errorf("查询规则列表失败: %w", err)
	}
	return rules, nil
}

// GetRuleByID 按ID获取规则
func (s *Service) GetRuleByID(id string) (*models.DisplayRule, error) {
	var rule models.DisplayRule
	if err := s.db.First(&rule, "id = ?", id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRuleNotFound
		}
		return nil, err
	}
	return &rule, nil
}

// CreateRule 创建规则
func (s *Service) CreateRule(rule *models.DisplayRule) error {
	if err := ValidateConfig(rule.Config); err != nil {
		return err
	}
	return s.db.Create(rule).Error
}

// UpdateRule 更新规则，updates 中缺失的字段保持不变
func (s *Service) UpdateRule(id string, updates map[string]interface{}) error {
	if cfg, ok := updates["rule_config"]; ok {
		parsed, ok := cfg.(models.RuleConfig)
		if !ok {
			return errors.New("规则配置格式错误")
		}
		if err := ValidateConfig(parsed); err != nil {
			return err
		}
	}

	result := s.db.Model(&models.DisplayRule{}).Where("id = ?", id).Updates(updates)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// DeleteRule 删除规则
func (s *Service) DeleteRule(id string) error {
	result := s.db.Delete(&models.DisplayRule{}, "id = ?", id)
	if result.Error != nil {
		return result.Error
	}
	if result.RowsAffected == 0 {
		return ErrRuleNotFound
	}
	return nil
}

// ValidateConfig 持久化边界的规则配置结构校验
func ValidateConfig(cfg models.RuleConfig) error {
	if cfg.Field == "" {
		return errors.New("规则配置缺少目标字段")
	}
	if len(cfg.Conditions) == 0 {
		return errors.New("规则配置至少需要一个条件")
	}
	for i, cond := range cfg.Conditions {
		switch cond.Operator {
		case models.OpLessOrEqual, models.OpGreaterOrEqual, models.OpEqual, models.OpEq:
			if cond.Value == nil {
				return fmt.Errorf("条件 %d 缺少阈值", i+1)
			}
		case models.OpIn:
			if len(cond.Values) == 0 {
				return fmt.Errorf("条件 %d 的 in 操作缺少候选值列表", i+1)
			}
		default:
			return fmt.Errorf("条件 %d 包含不支持的操作符 %q", i+1, cond.Operator)
		}
	}
	return nil
}
