/*
 * @module service/models/records
 * @description 业务记录模型定义，包括执法问题盯办、矛盾纠纷、警情/报警日聚合计数
 * @architecture 分层架构 - 数据模型层
 * @documentReference ai_docs/model.md
 * @stateFlow Excel导入 -> 实体覆盖/计数累加 -> 列表与统计查询
 * @rules 计数表以复合自然键唯一，count 非负且只增不减
 * @dependencies gorm.io/gorm, github.com/google/uuid
 * @refs service/importer
 */

package models

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// 警情类型（计数表的规范类别）
var AlertTypes = []string{"偷盗", "诈骗", "涉黄", "涉赌", "纠纷", "人身伤害"}

// 矛盾纠纷风险等级
var RiskLevels = []string{"高", "中", "低"}

// 矛盾纠纷处置进度
var DisputeStatuses = []string{"待化解", "待关注", "调解中", "已调解"}

// RiskSupervision 执法问题风险盯办记录
// 以案件编号为业务主键，重复导入整行覆盖
type RiskSupervision struct {
	ID         uint             `gorm:"primaryKey;autoIncrement" json:"id"`
	CaseNumber string           `gorm:"uniqueIndex;not null;size:50" json:"case_number"`
	CaseName   string           `gorm:"not null;size:200" json:"case_name"`
	CaseTime   time.Time        `gorm:"not null" json:"case_time"`
	CaseType   string           `gorm:"not null;size:10" json:"case_type"`
	RiskIssues JSONBStringArray `gorm:"type:text;not null" json:"risk_issues"`
	Deadline   time.Time        `gorm:"not null;index" json:"deadline"`
	Officer    string           `gorm:"column:officer_name;not null;size:50" json:"officer_name"`
	CreatedAt  time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt  time.Time        `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// DisputeManagement 矛盾纠纷闭环管理记录
// 以事件名称为业务主键（该表无编号列），重复导入整行覆盖
type DisputeManagement struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	EventName string    `gorm:"uniqueIndex;not null;size:200" json:"event_name"`
	EventType string    `gorm:"not null;size:100" json:"event_type"`
	Content   string    `gorm:"not null;size:150" json:"content"`
	EventTime time.Time `gorm:"not null;index" json:"event_time"`
	RiskLevel string    `gorm:"not null;size:10;index" json:"risk_level"`
	Officer   string    `gorm:"column:officer_name;not null;size:50" json:"officer_name"`
	Status    string    `gorm:"not null;size:10;index" json:"status"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
	UpdatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"updated_at"`
}

// PoliceAlert 警情日聚合计数
// 复合自然键 (alert_date, alert_type, location) 唯一，导入冲突时 count 累加
type PoliceAlert struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	AlertDate time.Time `gorm:"type:date;not null;uniqueIndex:uq_police_alert_date_type_location;index" json:"alert_date"`
	AlertType string    `gorm:"not null;size:50;uniqueIndex:uq_police_alert_date_type_location;index" json:"alert_type"`
	Location  string    `gorm:"not null;size:100;uniqueIndex:uq_police_alert_date_type_location;index" json:"location"`
	Count     int       `gorm:"not null;default:1" json:"count"`
}

// TableName 指定表名
func (PoliceAlert) TableName() string {
	return "t_police_alert"
}

// CallRecord 重复报警日聚合计数
// 复合自然键 (call_date, call_address) 唯一，导入冲突时 count 累加
type CallRecord struct {
	ID          uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	CallDate    time.Time `gorm:"type:date;not null;uniqueIndex:uq_call_record_date_address;index" json:"call_date"`
	CallAddress string    `gorm:"not null;size:200;uniqueIndex:uq_call_record_date_address;index" json:"call_address"`
	Count       int       `gorm:"not null;default:1" json:"count"`
}

// TableName 指定表名
func (CallRecord) TableName() string {
	return "t_call_record"
}

// GeocodingCache 地理编码缓存
// 地图标注查询先查缓存，未命中时才调用远程坐标服务
type GeocodingCache struct {
	ID        uint      `gorm:"primaryKey;autoIncrement" json:"id"`
	Address   string    `gorm:"uniqueIndex;not null;size:500" json:"address"`
	Longitude float64   `gorm:"not null" json:"longitude"`
	Latitude  float64   `gorm:"not null" json:"latitude"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP" json:"created_at"`
}

// TableName 指定表名
func (GeocodingCache) TableName() string {
	return "t_geocoding_cache"
}

// ImportLog 导入日志
// 记录每次导入的各表成功/跳过行数，由清理任务按保留期限删除
type ImportLog struct {
	ID        string    `gorm:"type:uuid;primary_key" json:"id"`
	FileName  string    `gorm:"not null;size:200" json:"file_name"`
	Status    string    `gorm:"not null;size:20" json:"status"` // committed/aborted
	Detail    JSONB     `gorm:"type:jsonb" json:"detail"`
	ErrorMsg  string    `json:"error_msg,omitempty"`
	CreatedAt time.Time `gorm:"not null;default:CURRENT_TIMESTAMP;index" json:"created_at"`
}

// BeforeCreate 创建前钩子
func (l *ImportLog) BeforeCreate(tx *gorm.DB) error {
	if l.ID == "" {
		l.ID = uuid.New().String()
	}
	return nil
}
