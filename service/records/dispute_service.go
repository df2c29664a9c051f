/*
 * @module service/records/dispute_service
 * @description 矛盾纠纷闭环管理列表服务，支持进度/等级/民警筛选并附带行内样式
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 条件查询 -> 风险等级排序 -> 规则求值 -> 返回
 * @rules 默认只看待化解/待关注；排序为风险等级（高>中>低）再事发时间降序
 * @dependencies gorm.io/gorm
 * @refs service/display
 */

package records

import (
	"fmt"
	"sort"
	"time"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/models"
)

// DisputePageCode 矛盾纠纷页面编码
const DisputePageCode = "dispute_management"

// 风险等级排序权重
var riskLevelOrder = map[string]int{"高": 1, "中": 2, "低": 3}

// DisputeService 矛盾纠纷闭环管理服务
type DisputeService struct {
	db    *gorm.DB
	rules *display.Service
}

// NewDisputeService 创建矛盾纠纷服务实例
func NewDisputeService(db *gorm.DB, rules *display.Service) *DisputeService {
	return &DisputeService{db: db, rules: rules}
}

// DisputeItem 纠纷列表项，Style 为规则求值结果
type DisputeItem struct {
	ID        uint         `json:"id"`
	EventName string       `json:"event_name"`
	EventType string       `json:"event_type"`
	Content   string       `json:"content"`
	EventTime time.Time    `json:"event_time"`
	RiskLevel string       `json:"risk_level"`
	Officer   string       `json:"officer_name"`
	Status    string       `json:"status"`
	Style     models.Style `json:"style"`
}

// Field 实现 display.FieldGetter 接口
func (d DisputeItem) Field(name string) (interface{}, bool) {
	switch name {
	case "risk_level":
		return d.RiskLevel, true
	case "status":
		return d.Status, true
	case "event_type":
		return d.EventType, true
	case "officer_name":
		return d.Officer, true
	}
	return nil, false
}

// DisputeFilter 列表筛选条件
type DisputeFilter struct {
	Status    string
	RiskLevel string
	Officer   string
}

// List 分页获取纠纷列表
func (s *DisputeService) List(page, size int, filter DisputeFilter, includeRules bool) ([]DisputeItem, int64, []models.DisplayRule, error) {
	query := s.db.Model(&models.DisputeManagement{})

	// 未指定进度时默认只看待化解/待关注
	if filter.Status == "" {
		query = query.Where("status IN ?", []string{"待化解", "待关注"})
	} else {
		query = query.Where("status = ?", filter.Status)
	}
	if filter.RiskLevel != "" {
		query = query.Where("risk_level = ?", filter.RiskLevel)
	}
	if filter.Officer != "" {
		query = query.Where("officer_name = ?", filter.Officer)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("纠纷记录计数失败: %w", err)
	}

	var records []models.DisputeManagement
	err := query.Offset((page - 1) * size).Limit(size).Find(&records).Error
	if err != nil {
		return nil, 0, nil, fmt.Errorf("纠纷记录查询失败: %w", err)
	}

	// 风险等级排序在应用层完成，等级相同时按事发时间降序
	sort.SliceStable(records, func(i, j int) bool {
		oi, ok := riskLevelOrder[records[i].RiskLevel]
		if !ok {
			oi = 99
		}
		oj, ok := riskLevelOrder[records[j].RiskLevel]
		if !ok {
			oj = 99
		}
		if oi != oj {
			return oi < oj
		}
		return records[i].EventTime.After(records[j].EventTime)
	})

	var rules []models.DisplayRule
	if includeRules {
		rules, err = s.rules.GetRulesByPage(DisputePageCode, nil)
		if err != nil {
			return nil, 0, nil, err
		}
	}

	items := make([]DisputeItem, 0, len(records))
	for _, rec := range records {
		item := DisputeItem{
			ID:        rec.ID,
			EventName: rec.EventName,
			EventType: rec.EventType,
			Content:   rec.Content,
			EventTime: rec.EventTime,
			RiskLevel: rec.RiskLevel,
			Officer:   rec.Officer,
			Status:    rec.Status,
		}
		item.Style = display.Evaluate(item, rules)
		items = append(items, item)
	}

	return items, total, rules, nil
}

// OfficerOptions 去重的责任民警列表
func (s *DisputeService) OfficerOptions() ([]string, error) {
	var officers []string
	err := s.db.Model(&models.DisputeManagement{}).
		Distinct("officer_name").
		Order("officer_name ASC").
		Pluck("officer_name", &officers).Error
	if err != nil {
		return nil, fmt.Errorf("民警列表查询失败: %w", err)
	}
	return officers, nil
}
