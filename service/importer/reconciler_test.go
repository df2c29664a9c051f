/*
 * @module service/importer/reconciler_test
 * @description 聚合计数合并器单元测试
 * @architecture 测试层 - 单元测试
 */

package importer

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/xifan2333/police-alert/service/models"
	"github.com/xifan2333/police-alert/testutil"
)

// TestMergeAlert 测试警情计数键冲突累加
func TestMergeAlert(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	r := NewReconciler()

	date := testutil.Date(2025, 6, 1)
	require.NoError(t, r.MergeAlert(tdb.DB, date, "偷盗", "幸福小区", 3))
	require.NoError(t, r.MergeAlert(tdb.DB, date, "偷盗", "幸福小区", 2))
	// 键任一分量不同都落在独立计数桶
	require.NoError(t, r.MergeAlert(tdb.DB, date, "诈骗", "幸福小区", 1))
	require.NoError(t, r.MergeAlert(tdb.DB, testutil.Date(2025, 6, 2), "偷盗", "幸福小区", 1))

	var merged models.PoliceAlert
	require.NoError(t, tdb.DB.Where(
		"alert_date = ? AND alert_type = ? AND location = ?", date, "偷盗", "幸福小区",
	).First(&merged).Error)
	assert.Equal(t, 5, merged.Count)

	var rows int64
	require.NoError(t, tdb.DB.Model(&models.PoliceAlert{}).Count(&rows).Error)
	assert.EqualValues(t, 3, rows)
}

// TestMergeCall 测试报警计数键冲突累加
func TestMergeCall(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	r := NewReconciler()

	date := testutil.Date(2025, 6, 1)
	require.NoError(t, r.MergeCall(tdb.DB, date, "租赁纠纷户", 2))
	require.NoError(t, r.MergeCall(tdb.DB, date, "租赁纠纷户", 2))

	var merged models.CallRecord
	require.NoError(t, tdb.DB.First(&merged).Error)
	assert.Equal(t, 4, merged.Count)
}

// TestMergeRejectsNonPositiveDelta 测试非正增量被拒绝
func TestMergeRejectsNonPositiveDelta(t *testing.T) {
	tdb := testutil.NewTestDB()
	t.Cleanup(tdb.Close)
	r := NewReconciler()

	date := testutil.Date(2025, 6, 1)
	assert.ErrorIs(t, r.MergeAlert(tdb.DB, date, "偷盗", "幸福小区", 0), ErrNonPositiveDelta)
	assert.ErrorIs(t, r.MergeAlert(tdb.DB, date, "偷盗", "幸福小区", -1), ErrNonPositiveDelta)
	assert.ErrorIs(t, r.MergeCall(tdb.DB, date, "租赁纠纷户", 0), ErrNonPositiveDelta)

	var rows int64
	require.NoError(t, tdb.DB.Model(&models.PoliceAlert{}).Count(&rows).Error)
	assert.Zero(t, rows)
}
