/*
 * @module service/cleanup/log_cleanup_service_test
 * @description 日志清理服务单元测试
 * @architecture 测试层 - 单元测试
 */

package cleanup

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/testutil"
)

// TestCleanupImportLogs 测试按保留期限清理导入日志
func TestCleanupImportLogs(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	seed := func(name string, createdAt time.Time) {
		log := models.ImportLog{
			FileName: name,
			Status:   "committed",
			Detail:   models.JSONB{},
		}
		require.NoError(t, tdb.DB.Create(&log).Error)
		// CreatedAt 由默认值填充，手工回拨到目标时间
		require.NoError(t, tdb.DB.Model(&log).Update("created_at", createdAt).Error)
	}

	now := time.Now()
	seed("过期.xlsx", now.AddDate(0, 0, -100))
	seed("临界.xlsx", now.AddDate(0, 0, -80))
	seed("新鲜.xlsx", now)

	svc := NewLogCleanupService(tdb.DB, 90)
	deleted, err := svc.CleanupImportLogs(context.Background())
	require.NoError(t, err)
	assert.EqualValues(t, 1, deleted)

	var remaining []models.ImportLog
	require.NoError(t, tdb.DB.Find(&remaining).Error)
	require.Len(t, remaining, 2)
	for _, log := range remaining {
		assert.NotEqual(t, "过期.xlsx", log.FileName)
	}
}

// TestRetentionDefault 测试非法保留天数回落默认值
func TestRetentionDefault(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewLogCleanupService(tdb.DB, 0)
	assert.Equal(t, DefaultImportLogRetentionDays, svc.retentionDays)

	svc = NewLogCleanupService(tdb.DB, -5)
	assert.Equal(t, DefaultImportLogRetentionDays, svc.retentionDays)
}

// TestStartStop 测试定时任务幂等启停
func TestStartStop(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewLogCleanupService(tdb.DB, 90)
	require.NoError(t, svc.Start())
	require.NoError(t, svc.Start(), "重复启动应为空操作")

	svc.Stop()
	svc.Stop()
}
