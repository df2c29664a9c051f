/*
 * @module service/records/call_service
 * @description 重复报警计数查询服务
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 分页查询 -> 返回
 * @rules 列表按报警日期降序
 * @dependencies gorm.io/gorm
 * @refs service/situation
 */

package records

import (
	"fmt"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
)

// CallService 重复报警计数查询服务
type CallService struct {
	db *gorm.DB
}

// NewCallService 创建重复报警计数查询服务实例
func NewCallService(db *gorm.DB) *CallService {
	return &CallService{db: db}
}

// List 分页获取报警计数列表
func (s *CallService) List(page, size int, address string) ([]models.CallRecord, int64, error) {
	query := s.db.Model(&models.CallRecord{})
	if address != "" {
		query = query.Where("call_address = ?", address)
	}

	var total int64
	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("报警计数列表计数失败: %w", err)
	}

	var items []models.CallRecord
	err := query.Order("call_date DESC").
		Offset((page - 1) * size).
		Limit(size).
		Find(&items).Error
	if err != nil {
		return nil, 0, fmt.Errorf("报警计数列表查询失败: %w", err)
	}

	return items, total, nil
}
