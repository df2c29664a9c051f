/*
 * @module service/importer/reconciler
 * @description 聚合计数合并器，按复合自然键将导入增量累加到持久化计数
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 校验增量 -> 键冲突累加/首次插入 -> 返回
 * @rules 合并是累加而非幂等：同一文件重复导入会使受影响计数翻倍，这是既有行为，
 *        调用方重试上传前需要自行判断；单键合并由数据库 ON CONFLICT 保证原子
 * @dependencies gorm.io/gorm
 * @refs service/importer/pipeline.go
 */

package importer

import (
	"errors"
	"time"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xifan2333/police-alert/service/models"
)

// ErrNonPositiveDelta 增量必须为正数
var ErrNonPositiveDelta = errors.New("计数增量必须大于0")

// Reconciler 聚合计数合并器
type Reconciler struct{}

// NewReconciler 创建聚合计数合并器实例
func NewReconciler() *Reconciler {
	return &Reconciler{}
}

// MergeAlert 合并一条警情计数增量
// 键 (alert_date, alert_type, location) 已存在时 count 累加，否则新建
func (r *Reconciler) MergeAlert(tx *gorm.DB, date time.Time, alertType, location string, delta int) error {
	if delta <= 0 {
		return ErrNonPositiveDelta
	}

	counter := models.PoliceAlert{
		AlertDate: date,
		AlertType: alertType,
		Location:  location,
		Count:     delta,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "alert_date"},
			{Name: "alert_type"},
			{Name: "location"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + ?", delta),
		}),
	}).Create(&counter).Error
}

// MergeCall 合并一条重复报警计数增量
// 键 (call_date, call_address) 已存在时 count 累加，否则新建
func (r *Reconciler) MergeCall(tx *gorm.DB, date time.Time, address string, delta int) error {
	if delta <= 0 {
		return ErrNonPositiveDelta
	}

	counter := models.CallRecord{
		CallDate:    date,
		CallAddress: address,
		Count:       delta,
	}
	return tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{
			{Name: "call_date"},
			{Name: "call_address"},
		},
		DoUpdates: clause.Assignments(map[string]interface{}{
			"count": gorm.Expr("count + ?", delta),
		}),
	}).Create(&counter).Error
}
