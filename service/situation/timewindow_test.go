/*
 * @module service/situation/timewindow_test
 * @description 滚动时间窗口与同环比计算单元测试
 * @architecture 测试层 - 单元测试
 */

package situation

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

// TestParseGranularity 测试时间维度解析
func TestParseGranularity(t *testing.T) {
	assert.Equal(t, GranularityWeek, ParseGranularity("week"))
	assert.Equal(t, GranularityMonth, ParseGranularity("month"))
	assert.Equal(t, GranularityYear, ParseGranularity("year"))

	// 无效值回落到月维度
	assert.Equal(t, GranularityMonth, ParseGranularity(""))
	assert.Equal(t, GranularityMonth, ParseGranularity("quarter"))
}

// TestWindows 测试三窗口计算
func TestWindows(t *testing.T) {
	now := time.Date(2025, 6, 15, 12, 0, 0, 0, time.Local)

	w := Windows(GranularityWeek, now)

	assert.Equal(t, now, w.Current.End)
	assert.Equal(t, now.AddDate(0, 0, -7), w.Current.Start)

	// 环比窗口与当前窗口等长且无缝衔接
	assert.Equal(t, w.Current.Start, w.Previous.End)
	assert.Equal(t, 7*24*time.Hour, w.Previous.End.Sub(w.Previous.Start))

	// 同比窗口锚定365天前，长度与当前窗口一致
	assert.Equal(t, now.AddDate(0, 0, -365), w.YearOverYear.Start)
	assert.Equal(t, 7*24*time.Hour, w.YearOverYear.End.Sub(w.YearOverYear.Start))
}

// TestWindowsLengths 测试各维度窗口长度
func TestWindowsLengths(t *testing.T) {
	now := time.Date(2025, 6, 15, 0, 0, 0, 0, time.Local)

	cases := []struct {
		g    Granularity
		days int
	}{
		{GranularityWeek, 7},
		{GranularityMonth, 30},
		{GranularityYear, 365},
	}

	for _, tc := range cases {
		w := Windows(tc.g, now)
		assert.Equal(t, time.Duration(tc.days)*24*time.Hour, w.Current.End.Sub(w.Current.Start), string(tc.g))
	}
}

// TestRatio 测试同环比格式化
func TestRatio(t *testing.T) {
	assert.Equal(t, "+100.0%", Ratio(100, 50))
	assert.Equal(t, "-50.0%", Ratio(50, 100))
	assert.Equal(t, "0.0%", Ratio(50, 50))
	assert.Equal(t, "+33.3%", Ratio(4, 3))

	// 基准为零不做除法
	assert.Equal(t, "0%", Ratio(0, 0))
	assert.Equal(t, "N/A", Ratio(10, 0))
}

// TestRatioWithPolicy 测试基准为零时的策略差异
func TestRatioWithPolicy(t *testing.T) {
	assert.Equal(t, "N/A", RatioWithPolicy(10, 0, RatioPolicyNA))
	assert.Equal(t, "+100%", RatioWithPolicy(10, 0, RatioPolicyPlus100))

	// 双零两种策略一致
	assert.Equal(t, "0%", RatioWithPolicy(0, 0, RatioPolicyNA))
	assert.Equal(t, "0%", RatioWithPolicy(0, 0, RatioPolicyPlus100))

	// 基准非零时策略不影响结果
	assert.Equal(t, "-25.0%", RatioWithPolicy(75, 100, RatioPolicyPlus100))
}
