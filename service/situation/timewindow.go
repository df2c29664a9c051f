/*
 * @module service/situation/timewindow
 * @description 滚动时间窗口计算与同环比格式化
 * @architecture 分层架构 - 业务服务层（纯计算，无副作用）
 * @documentReference ai_docs/requirements.md
 * @stateFlow 统计请求 -> 以当前时刻为锚点计算三个窗口 -> 聚合查询 -> 比值格式化
 * @rules 统一采用固定长度滚动窗口（周7天/月30天/年365天），不与日历对齐；
 *        环比窗口紧邻当前窗口且不重叠；同比窗口锚定365天前并保持等长
 * @dependencies 无
 * @refs service/situation/service.go
 */

package situation

import (
	"fmt"
	"time"
)

// Granularity 统计时间维度
type Granularity string

const (
	GranularityWeek  Granularity = "week"
	GranularityMonth Granularity = "month"
	GranularityYear  Granularity = "year"
)

// ParseGranularity 解析时间维度，无效值回落到月维度
func ParseGranularity(s string) Granularity {
	switch Granularity(s) {
	case GranularityWeek, GranularityMonth, GranularityYear:
		return Granularity(s)
	default:
		return GranularityMonth
	}
}

// Length 维度对应的窗口长度
func (g Granularity) Length() time.Duration {
	switch g {
	case GranularityWeek:
		return 7 * 24 * time.Hour
	case GranularityYear:
		return 365 * 24 * time.Hour
	default:
		return 30 * 24 * time.Hour
	}
}

// TimeWindow 时间窗口，Start 闭区间，End 按查询语义区分开闭
type TimeWindow struct {
	Start time.Time `json:"start"`
	End   time.Time `json:"end"`
}

// ComparisonWindows 当前/环比/同比三个等长窗口
type ComparisonWindows struct {
	Current      TimeWindow `json:"current"`
	Previous     TimeWindow `json:"previous"`
	YearOverYear TimeWindow `json:"year_over_year"`
}

// Windows 以 now 为锚点计算三个窗口
// current = [now-L, now]；previous = [now-2L, now-L)，与当前窗口无缝衔接；
// year_over_year 起点为 now-365d，长度与当前窗口一致
func Windows(g Granularity, now time.Time) ComparisonWindows {
	length := g.Length()

	current := TimeWindow{Start: now.Add(-length), End: now}
	previous := TimeWindow{Start: now.Add(-2 * length), End: current.Start}
	yoyStart := now.Add(-365 * 24 * time.Hour)
	yoy := TimeWindow{Start: yoyStart, End: yoyStart.Add(length)}

	return ComparisonWindows{
		Current:      current,
		Previous:     previous,
		YearOverYear: yoy,
	}
}

// RatioPolicy 基准为零时的输出策略
type RatioPolicy string

const (
	// RatioPolicyNA 基准为零且当前值非零时输出 "N/A"（默认）
	RatioPolicyNA RatioPolicy = "na"
	// RatioPolicyPlus100 同场景输出 "+100%"，兼容旧前端
	RatioPolicyPlus100 RatioPolicy = "plus100"
)

// Ratio 按默认策略计算同环比百分比字符串
func Ratio(current, baseline int) string {
	return RatioWithPolicy(current, baseline, RatioPolicyNA)
}

// RatioWithPolicy 计算同环比
// 基准为零时不做除法：双零输出 "0%"，否则按策略输出哨兵值；
// 其余情况保留一位小数，正值带 "+" 前缀
func RatioWithPolicy(current, baseline int, policy RatioPolicy) string {
	if baseline == 0 {
		if current == 0 {
			return "0%"
		}
		if policy == RatioPolicyPlus100 {
			return "+100%"
		}
		return "N/A"
	}

	change := float64(current-baseline) / float64(baseline) * 100
	if change > 0 {
		return fmt.Sprintf("+%.1f%%", change)
	}
	return fmt.Sprintf("%.1f%%", change)
}
