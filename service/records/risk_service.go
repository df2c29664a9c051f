/*
 * @module service/records/risk_service
 * @description 执法问题风险盯办列表服务，计算整改剩余天数并附带页面显示规则
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 分页查询 -> 计算剩余天数 -> 规则随响应返回
 * @rules 列表按整改期限升序、案发时间降序；样式由前端按规则渲染，服务端只给纯数据
 * @dependencies gorm.io/gorm
 * @refs service/display
 */

package records

import (
	"fmt"
	"math"
	"time"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/models"
)

// RiskPageCode 执法问题盯办页面编码
const RiskPageCode = "risk_supervision"

// RiskService 执法问题风险盯办服务
type RiskService struct {
	db    *gorm.DB
	rules *display.Service
	now   func() time.Time
}

// NewRiskService 创建执法问题风险盯办服务实例
func NewRiskService(db *gorm.DB, rules *display.Service) *RiskService {
	return &RiskService{db: db, rules: rules, now: time.Now}
}

// SetNow 注入时间源，仅测试使用
func (s *RiskService) SetNow(now func() time.Time) {
	s.now = now
}

// RiskItem 盯办列表项
type RiskItem struct {
	ID            uint      `json:"id"`
	CaseNumber    string    `json:"case_number"`
	CaseName      string    `json:"case_name"`
	CaseTime      time.Time `json:"case_time"`
	CaseType      string    `json:"case_type"`
	RiskIssues    []string  `json:"risk_issues"`
	Deadline      time.Time `json:"deadline"`
	Officer       string    `json:"officer_name"`
	DaysRemaining int       `json:"days_remaining"`
}

// Field 实现 display.FieldGetter 接口
func (r RiskItem) Field(name string) (interface{}, bool) {
	switch name {
	case "days_remaining":
		return r.DaysRemaining, true
	case "case_type":
		return r.CaseType, true
	case "case_number":
		return r.CaseNumber, true
	case "officer_name":
		return r.Officer, true
	}
	return nil, false
}

// List 分页获取盯办列表
func (s *RiskService) List(page, size int, includeRules bool) ([]RiskItem, int64, []models.DisplayRule, error) {
	var total int64
	if err := s.db.Model(&models.RiskSupervision{}).Count(&total).Error; err != nil {
		return nil, 0, nil, fmt.Errorf("盯办记录计数失败: %w", err)
	}

	var records []models.RiskSupervision
	err := s.db.Order("deadline ASC, case_time DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&records).Error
	if err != nil {
		return nil, 0, nil, fmt.Errorf("盯办记录查询失败: %w", err)
	}

	now := s.now()
	items := make([]RiskItem, 0, len(records))
	for _, rec := range records {
		items = append(items, RiskItem{
			ID:            rec.ID,
			CaseNumber:    rec.CaseNumber,
			CaseName:      rec.CaseName,
			CaseTime:      rec.CaseTime,
			CaseType:      rec.CaseType,
			RiskIssues:    rec.RiskIssues,
			Deadline:      rec.Deadline,
			Officer:       rec.Officer,
			DaysRemaining: daysRemaining(rec.Deadline, now),
		})
	}

	var rules []models.DisplayRule
	if includeRules {
		rules, err = s.rules.GetRulesByPage(RiskPageCode, nil)
		if err != nil {
			return nil, 0, nil, err
		}
	}

	return items, total, rules, nil
}

// daysRemaining 剩余天数向上取整，负数表示已超期
func daysRemaining(deadline, now time.Time) int {
	return int(math.Ceil(deadline.Sub(now).Hours() / 24))
}
