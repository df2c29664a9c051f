/*
 * @module service/cleanup/log_cleanup_service
 * @description 日志清理服务，负责定期清理过期的导入日志
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 定时触发 -> 计算保留期限 -> 执行清理 -> 记录结果
 * @rules 确保日志清理不影响系统正常运行
 * @dependencies gorm.io/gorm, github.com/robfig/cron/v3
 * @refs service/importer
 */

package cleanup

import (
	"context"
	"log/slog"
	"time"

	"github.com/robfig/cron/v3"
	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/models"
)

// DefaultImportLogRetentionDays 导入日志默认保留天数
const DefaultImportLogRetentionDays = 90

// 每天凌晨3点执行清理
const cleanupSchedule = "0 0 3 * * *"

// LogCleanupService 日志清理服务
type LogCleanupService struct {
	db            *gorm.DB
	retentionDays int
	cron          *cron.Cron
	ctx           context.Context
	cancel        context.CancelFunc
	started       bool
}

// NewLogCleanupService 创建日志清理服务实例
func NewLogCleanupService(db *gorm.DB, retentionDays int) *LogCleanupService {
	if retentionDays <= 0 {
		retentionDays = DefaultImportLogRetentionDays
	}
	ctx, cancel := context.WithCancel(context.Background())

	return &LogCleanupService{
		db:            db,
		retentionDays: retentionDays,
		cron:          cron.New(cron.WithSeconds()),
		ctx:           ctx,
		cancel:        cancel,
	}
}

// Start 启动定时清理任务
func (s *LogCleanupService) Start() error {
	if s.started {
		return nil
	}

	_, err := s.cron.AddFunc(cleanupSchedule, func() {
		if _, err := s.CleanupImportLogs(s.ctx); err != nil {
			slog.Error("清理导入日志失败", "error", err)
		}
	})
	if err != nil {
		return err
	}

	s.cron.Start()
	s.started = true
	slog.Info("日志清理任务已启动", "schedule", cleanupSchedule, "retention_days", s.retentionDays)
	return nil
}

// Stop 停止定时清理任务
func (s *LogCleanupService) Stop() {
	if !s.started {
		return
	}
	s.cron.Stop()
	s.cancel()
	s.started = false
}

// CleanupImportLogs 清理超过保留期限的导入日志，返回删除条数
func (s *LogCleanupService) CleanupImportLogs(ctx context.Context) (int64, error) {
	cutoff := time.Now().AddDate(0, 0, -s.retentionDays)

	result := s.db.WithContext(ctx).
		Where("created_at < ?", cutoff).
		Delete(&models.ImportLog{})
	if result.Error != nil {
		return 0, result.Error
	}

	slog.Info("清理导入日志完成", "deleted_count", result.RowsAffected, "retention_days", s.retentionDays)
	return result.RowsAffected, nil
}
