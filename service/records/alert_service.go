/*
 * @module service/records/alert_service
 * @description 警情计数查询服务，提供计数列表、窗口统计与地点分布
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 筛选分页 -> 滚动窗口聚合 -> 返回
 * @rules 统计均基于 sum(count)，窗口为固定长度滚动窗口
 * @dependencies gorm.io/gorm
 * @refs service/situation
 */

package records

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/service/situation"
)

// AlertService 警情计数查询服务
type AlertService struct {
	db  *gorm.DB
	now func() time.Time
}

// NewAlertService 创建警情计数查询服务实例
func NewAlertService(db *gorm.DB) *AlertService {
	return &AlertService{db: db, now: time.Now}
}

// SetNow 注入时间源，仅测试使用
func (s *AlertService) SetNow(now func() time.Time) {
	s.now = now
}

// AlertFilter 警情列表筛选条件
type AlertFilter struct {
	AlertType string
	StartDate *time.Time
	EndDate   *time.Time
	Location  string
}

// List 分页获取警情计数列表，按日期降序
func (s *AlertService) List(page, size int, filter AlertFilter) ([]models.PoliceAlert, int64, error) {
	query := s.db.Model(&models.PoliceAlert{})
	if filter.AlertType != "" {
		query = query.Where("alert_type = ?", filter.AlertType)
	}
	if filter.StartDate != nil {
		query = query.Where("alert_date >= ?", *filter.StartDate)
	}
	if filter.EndDate != nil {
		query = query.Where("alert_date <= ?", *filter.EndDate)
	}
	if filter.Location != "" {
		query = query.Where("location = ?", filter.Location)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("警情计数列表计数失败: %w", err)
	}

	var items []models.PoliceAlert
	err := query.Order("alert_date DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("警情计数列表查询失败: %w", err)
	}

	return items, total, nil
}

// TypeCount 按类型统计结果
type TypeCount struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
}

// Statistics 当前滚动窗口内按警情类型统计
func (s *AlertService) Statistics(g situation.Granularity) (map[string]interface{}, error) {
	windows := situation.Windows(g, s.now())

	var stats []TypeCount
	err := s.db.Model(&models.PoliceAlert{}).
		Select("alert_type AS name, SUM(count) AS count").
		Where("alert_date >= ? AND alert_date <= ?", windows.Current.Start, windows.Current.End).
		Group("alert_type").
		Scan(&stats).Error
	if err != nil {
		return nil, fmt.Errorf("警情类型统计失败: %w", err)
	}

	return map[string]interface{}{
		"time_range": string(g),
		"start_time": windows.Current.Start,
		"end_time":   windows.Current.End,
		"statistics": stats,
	}, nil
}

// LocationDistribution 指定类型当前窗口的地点分布，按计数降序
func (s *AlertService) LocationDistribution(alertType string, g situation.Granularity) ([]TypeCount, error) {
	windows := situation.Windows(g, s.now())

	var rows []TypeCount
	err := s.db.Model(&models.PoliceAlert{}).
		Select("location AS name, SUM(count) AS count").
		Where("alert_type = ?", alertType).
		Where("alert_date >= ? AND alert_date <= ?", windows.Current.Start, windows.Current.End).
		Group("location").
		Order("SUM(count) DESC").
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("警情地点分布查询失败: %w", err)
	}
	return rows, nil
}
