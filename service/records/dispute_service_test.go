/*
 * @module service/records/dispute_service_test
 * @description 矛盾纠纷列表服务单元测试
 * @architecture 测试层 - 单元测试
 */

package records

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/testutil"
)

// setupDisputeService 初始化内存数据库与纠纷服务
func setupDisputeService(t *testing.T) (*testutil.TestDB, *DisputeService) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	return tdb, NewDisputeService(tdb.DB, display.NewService(tdb.DB))
}

func seedDispute(t *testing.T, tdb *testutil.TestDB, name, riskLevel, officer, status string, eventTime time.Time) {
	t.Helper()
	require.NoError(t, tdb.DB.Create(&models.DisputeManagement{
		EventName: name,
		EventType: "邻里纠纷",
		Content:   "测试内容",
		EventTime: eventTime,
		RiskLevel: riskLevel,
		Officer:   officer,
		Status:    status,
	}).Error)
}

// TestDisputeListDefaultFilter 测试默认只看待化解/待关注
func TestDisputeListDefaultFilter(t *testing.T) {
	tdb, svc := setupDisputeService(t)

	seedDispute(t, tdb, "事件A", "高", "张三", "待化解", testutil.Date(2025, 6, 1))
	seedDispute(t, tdb, "事件B", "中", "李四", "待关注", testutil.Date(2025, 6, 2))
	seedDispute(t, tdb, "事件C", "低", "张三", "已化解", testutil.Date(2025, 6, 3))

	items, total, _, err := svc.List(1, 10, DisputeFilter{}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 2, total)
	require.Len(t, items, 2)
	for _, item := range items {
		assert.NotEqual(t, "已化解", item.Status)
	}

	// 指定进度后覆盖默认过滤
	items, total, _, err = svc.List(1, 10, DisputeFilter{Status: "已化解"}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "事件C", items[0].EventName)
}

// TestDisputeListSort 测试风险等级优先、同级按时间降序
func TestDisputeListSort(t *testing.T) {
	tdb, svc := setupDisputeService(t)

	seedDispute(t, tdb, "低风险", "低", "张三", "待化解", testutil.Date(2025, 6, 5))
	seedDispute(t, tdb, "高风险早", "高", "张三", "待化解", testutil.Date(2025, 6, 1))
	seedDispute(t, tdb, "高风险晚", "高", "张三", "待化解", testutil.Date(2025, 6, 3))
	seedDispute(t, tdb, "中风险", "中", "张三", "待化解", testutil.Date(2025, 6, 4))

	items, _, _, err := svc.List(1, 10, DisputeFilter{}, false)
	require.NoError(t, err)
	require.Len(t, items, 4)

	assert.Equal(t, "高风险晚", items[0].EventName)
	assert.Equal(t, "高风险早", items[1].EventName)
	assert.Equal(t, "中风险", items[2].EventName)
	assert.Equal(t, "低风险", items[3].EventName)
}

// TestDisputeListFilters 测试等级与民警筛选
func TestDisputeListFilters(t *testing.T) {
	tdb, svc := setupDisputeService(t)

	seedDispute(t, tdb, "事件A", "高", "张三", "待化解", testutil.Date(2025, 6, 1))
	seedDispute(t, tdb, "事件B", "高", "李四", "待化解", testutil.Date(2025, 6, 2))
	seedDispute(t, tdb, "事件C", "低", "张三", "待关注", testutil.Date(2025, 6, 3))

	items, total, _, err := svc.List(1, 10, DisputeFilter{RiskLevel: "高", Officer: "张三"}, false)
	require.NoError(t, err)
	assert.EqualValues(t, 1, total)
	require.Len(t, items, 1)
	assert.Equal(t, "事件A", items[0].EventName)
}

// TestDisputeListStyles 测试行内样式求值
func TestDisputeListStyles(t *testing.T) {
	tdb, svc := setupDisputeService(t)

	seedDispute(t, tdb, "高风险事件", "高", "张三", "待化解", testutil.Date(2025, 6, 1))
	seedDispute(t, tdb, "低风险事件", "低", "张三", "待化解", testutil.Date(2025, 6, 2))

	require.NoError(t, tdb.DB.Create(&models.DisplayRule{
		PageCode:  DisputePageCode,
		RuleType:  models.RuleTypeColor,
		RuleName:  "高风险标红",
		IsEnabled: true,
		Config: models.RuleConfig{
			Field: "risk_level",
			Conditions: []models.RuleCondition{
				{Operator: models.OpEq, Value: "高", FontColor: testutil.StrPtr("#f5222d")},
			},
		},
	}).Error)

	items, _, rules, err := svc.List(1, 10, DisputeFilter{}, true)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	require.Len(t, items, 2)

	require.NotNil(t, items[0].Style.FontColor)
	assert.Equal(t, "#f5222d", *items[0].Style.FontColor)
	assert.True(t, items[1].Style.IsZero())
}

// TestOfficerOptions 测试责任民警去重列表
func TestOfficerOptions(t *testing.T) {
	tdb, svc := setupDisputeService(t)

	seedDispute(t, tdb, "事件A", "高", "张三", "待化解", testutil.Date(2025, 6, 1))
	seedDispute(t, tdb, "事件B", "中", "张三", "待关注", testutil.Date(2025, 6, 2))
	seedDispute(t, tdb, "事件C", "低", "李四", "已化解", testutil.Date(2025, 6, 3))

	officers, err := svc.OfficerOptions()
	require.NoError(t, err)
	assert.Equal(t, []string{"张三", "李四"}, officers)
}
