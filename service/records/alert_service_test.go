/*
 * @module service/records/alert_service_test
 * @description 警情计数查询服务单元测试
 * @architecture 测试层 - 单元测试
 */

package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/service/situation"
	"github.com/xifan2333/police-alert/testutil"
)

var alertTestNow = time.Date(2025, 6, 30, 0, 0, 0, 0, time.Local)

// setupAlertService 初始化内存数据库与警情查询服务
func setupAlertService(t *testing.T) (*testutil.TestDB, *AlertService) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewAlertService(tdb.DB)
	svc.SetNow(func() time.Time { return alertTestNow })
	return tdb, svc
}

func seedAlertCount(t *testing.T, tdb *testutil.TestDB, date time.Time, alertType, location string, count int) {
	t.Helper()
	require.NoError(t, tdb.DB.Create(&models.PoliceAlert{
		AlertDate: date,
		AlertType: alertType,
		Location:  location,
		Count:     count,
	}).Error)
}

// TestAlertList 测试警情计数列表筛选与排序
func TestAlertList(t *testing.T) {
	tdb, svc := setupAlertService(t)

	seedAlertCount(t, tdb, testutil.Date(2025, 6, 1), "偷盗", "幸福小区", 3)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 5), "偷盗", "平安路", 2)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 3), "诈骗", "幸福小区", 1)

	// 无筛选按日期降序
	items, total, err := svc.List(1, 10, AlertFilter{})
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, 5, items[0].AlertDate.Day())

	// 类型筛选
	items, total, err = svc.List(1, 10, AlertFilter{AlertType: "偷盗"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)

	// 日期范围筛选
	start := testutil.Date(2025, 6, 2)
	end := testutil.Date(2025, 6, 4)
	items, total, err = svc.List(1, 10, AlertFilter{StartDate: &start, EndDate: &end})
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	assert.Equal(t, "诈骗", items[0].AlertType)

	// 地点筛选
	_, total, err = svc.List(1, 10, AlertFilter{Location: "幸福小区"})
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
}

// TestAlertStatistics 测试当前窗口类型统计
func TestAlertStatistics(t *testing.T) {
	tdb, svc := setupAlertService(t)

	// 月窗口 [05-31, 06-30]
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 10), "偷盗", "幸福小区", 3)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 20), "偷盗", "平安路", 2)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 15), "诈骗", "幸福小区", 4)
	// 窗口之外
	seedAlertCount(t, tdb, testutil.Date(2025, 4, 1), "偷盗", "老街", 9)

	data, err := svc.Statistics(situation.GranularityMonth)
	require.NoError(t, err)
	assert.Equal(t, "month", data["time_range"])

	stats, ok := data["statistics"].([]TypeCount)
	require.True(t, ok)
	byName := make(map[string]int, len(stats))
	for _, s := range stats {
		byName[s.Name] = s.Count
	}
	assert.Equal(t, 5, byName["偷盗"])
	assert.Equal(t, 4, byName["诈骗"])
}

// TestAlertLocationDistribution 测试地点分布降序
func TestAlertLocationDistribution(t *testing.T) {
	tdb, svc := setupAlertService(t)

	seedAlertCount(t, tdb, testutil.Date(2025, 6, 10), "偷盗", "幸福小区", 2)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 12), "偷盗", "平安路", 5)
	seedAlertCount(t, tdb, testutil.Date(2025, 6, 13), "诈骗", "幸福小区", 9)

	rows, err := svc.LocationDistribution("偷盗", situation.GranularityMonth)
	require.NoError(t, err)
	require.Len(t, rows, 2)
	assert.Equal(t, TypeCount{Name: "平安路", Count: 5}, rows[0])
	assert.Equal(t, TypeCount{Name: "幸福小区", Count: 2}, rows[1])
}

// TestCallList 测试报警计数列表
func TestCallList(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	svc := NewCallService(tdb.DB)

	seed := func(date time.Time, address string, count int) {
		require.NoError(t, tdb.DB.Create(&models.CallRecord{
			CallDate:    date,
			CallAddress: address,
			Count:       count,
		}).Error)
	}
	seed(testutil.Date(2025, 6, 1), "租赁纠纷户", 2)
	seed(testutil.Date(2025, 6, 5), "噪音扰民户", 1)
	seed(testutil.Date(2025, 6, 3), "租赁纠纷户", 1)

	items, total, err := svc.List(1, 10, "")
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 3)
	assert.Equal(t, 5, items[0].CallDate.Day(), "按日期降序")

	items, total, err = svc.List(1, 10, "租赁纠纷户")
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	for _, item := range items {
		assert.Equal(t, "租赁纠纷户", item.CallAddress)
	}
}
