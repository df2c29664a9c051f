/*
 * @module service/records/risk_service_test
 * @description 执法问题盯办列表服务单元测试
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

var riskTestNow = time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)

// setupRiskService 初始化内存数据库与盯办服务
func setupRiskService(t *testing.T) (*testutil.TestDB, *RiskService) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)

	svc := NewRiskService(tdb.DB, display.NewService(tdb.DB))
	svc.SetNow(func() time.Time { return riskTestNow })
	return tdb, svc
}

func seedRisk(t *testing.T, tdb *testutil.TestDB, caseNumber string, deadline time.Time) {
	t.Helper()
	require.NoError(t, tdb.DB.Create(&models.RiskSupervision{
		CaseNumber: caseNumber,
		CaseName:   "测试案件" + caseNumber,
		CaseTime:   testutil.Date(2025, 6, 1),
		CaseType:   "刑事",
		RiskIssues: models.JSONBStringArray{"取证不全"},
		Deadline:   deadline,
		Officer:    "张三",
	}).Error)
}

// TestRiskList 测试盯办列表排序与剩余天数
func TestRiskList(t *testing.T) {
	tdb, svc := setupRiskService(t)

	seedRisk(t, tdb, "A003", testutil.Date(2025, 6, 20))
	seedRisk(t, tdb, "A001", testutil.Date(2025, 6, 12))
	seedRisk(t, tdb, "A002", testutil.Date(2025, 6, 5))

	items, total, rules, err := svc.List(1, 10, false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	assert.Nil(t, rules)
	require.Len(t, items, 3)

	// 整改期限升序
	assert.Equal(t, "A002", items[0].CaseNumber)
	assert.Equal(t, "A001", items[1].CaseNumber)
	assert.Equal(t, "A003", items[2].CaseNumber)

	// 剩余天数向上取整，已超期为负
	assert.Equal(t, -5, items[0].DaysRemaining)
	assert.Equal(t, 2, items[1].DaysRemaining)
	assert.Equal(t, 10, items[2].DaysRemaining)
	assert.Equal(t, []string{"取证不全"}, items[0].RiskIssues)
}

// TestRiskListPaging 测试盯办列表分页
func TestRiskListPaging(t *testing.T) {
	tdb, svc := setupRiskService(t)

	seedRisk(t, tdb, "A001", testutil.Date(2025, 6, 11))
	seedRisk(t, tdb, "A002", testutil.Date(2025, 6, 12))
	seedRisk(t, tdb, "A003", testutil.Date(2025, 6, 13))

	items, total, _, err := svc.List(2, 2, false)
	require.NoError(t, err)
	assert.EqualValues(t, 3, total)
	require.Len(t, items, 1)
	assert.Equal(t, "A003", items[0].CaseNumber)
}

// TestRiskListIncludesRules 测试列表附带页面规则
func TestRiskListIncludesRules(t *testing.T) {
	tdb, svc := setupRiskService(t)

	seedRisk(t, tdb, "A001", testutil.Date(2025, 6, 12))
	require.NoError(t, tdb.DB.Create(&models.DisplayRule{
		PageCode:  RiskPageCode,
		RuleType:  models.RuleTypeColor,
		RuleName:  "期限临近",
		IsEnabled: true,
		Config: models.RuleConfig{
			Field: "days_remaining",
			Conditions: []models.RuleCondition{
				{Operator: models.OpLessOrEqual, Value: 3, FontColor: testutil.StrPtr("#f5222d")},
			},
		},
	}).Error)

	items, _, rules, err := svc.List(1, 10, true)
	require.NoError(t, err)
	require.Len(t, rules, 1)
	assert.Equal(t, "期限临近", rules[0].RuleName)

	// 剩余2天的记录应能被该规则命中
	style := display.Evaluate(items[0], rules)
	require.NotNil(t, style.FontColor)
	assert.Equal(t, "#f5222d", *style.FontColor)
}

// TestDaysRemaining 测试剩余天数取整语义
func TestDaysRemaining(t *testing.T) {
	now := time.Date(2025, 6, 10, 8, 0, 0, 0, time.Local)

	// 不足一天按一天计
	assert.Equal(t, 1, daysRemaining(now.Add(2*time.Hour), now))
	assert.Equal(t, 0, daysRemaining(now, now))
	assert.Equal(t, -1, daysRemaining(now.Add(-30*time.Hour), now))
	assert.Equal(t, 3, daysRemaining(now.Add(72*time.Hour), now))
}
