/*
 * @module service/display/rule_engine
 * @description 显示规则求值引擎，按优先级与条件顺序首次命中即返回样式
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 规则加载 -> 逐条求值 -> 首次命中返回
 * @rules 纯函数，不修改入参；字段缺失跳过整条规则；类型不可比较视为不命中
 * @dependencies github.com/spf13/cast
 * @refs service/display/rule_service.go
 */

package display

import (
	"github.com/spf13/cast"

	"github.com/xifan2333/police-alert/service/models"
)

// FieldGetter 记录字段访问能力
// 求值引擎只依赖该窄接口，不接受无类型的原始 map
type FieldGetter interface {
	Field(name string) (interface{}, bool)
}

// FieldMap 临时行数据的 FieldGetter 适配器
type FieldMap map[string]interface{}

// Field 实现 FieldGetter 接口
func (m FieldMap) Field(name string) (interface{}, bool) {
	v, ok := m[name]
	return v, ok
}

// Evaluate 对单条记录求值显示规则
// 规则按传入顺序（优先级升序）遍历，每条规则的条件按列表顺序求值，
// 首个命中的条件立即返回其样式，后续规则与条件不再检查。
// 未命中任何条件时返回空样式，这是合法的"无标注"结果而非错误。
func Evaluate(rec FieldGetter, rules []models.DisplayRule) models.Style {
	for _, rule := range rules {
		if !rule.IsEnabled || rule.RuleType != models.RuleTypeColor {
			continue
		}

		cfg := rule.Config
		// 无法解析的历史配置在 Scan 阶段已降级为空配置，这里直接跳过
		if cfg.Field == "" || len(cfg.Conditions) == 0 {
			continue
		}

		fieldValue, ok := rec.Field(cfg.Field)
		if !ok || fieldValue == nil {
			continue
		}

		for _, cond := range cfg.Conditions {
			if conditionMatches(fieldValue, cond) {
				return models.Style{
					FontColor:  cond.FontColor,
					StyleToken: cond.StyleToken,
				}
			}
		}
	}

	return models.Style{}
}

// conditionMatches 单条件求值
// <=/>= 要求两侧均可转为数值，转换失败视为不命中而不是错误
func conditionMatches(fieldValue interface{}, cond models.RuleCondition) bool {
	switch cond.Operator {
	case models.OpLessOrEqual:
		fv, tv, ok := numericPair(fieldValue, cond.Value)
		return ok && fv <= tv
	case models.OpGreaterOrEqual:
		fv, tv, ok := numericPair(fieldValue, cond.Value)
		return ok && fv >= tv
	case models.OpEqual, models.OpEq:
		return valueEquals(fieldValue, cond.Value)
	case models.OpIn:
		for _, candidate := range cond.Values {
			if valueEquals(fieldValue, candidate) {
				return true
			}
		}
		return false
	}
	return false
}

// numericPair 将字段值与阈值同时转为 float64
func numericPair(a, b interface{}) (float64, float64, bool) {
	fa, errA := cast.ToFloat64E(a)
	fb, errB := cast.ToFloat64E(b)
	if errA != nil || errB != nil {
		return 0, 0, false
	}
	return fa, fb, true
}

// valueEquals 精确值相等
// JSON 反序列化后数值统一为 float64，两侧均可转数值时按数值比较，否则按字符串比较
func valueEquals(a, b interface{}) bool {
	if fa, fb, ok := numericPair(a, b); ok {
		return fa == fb
	}
	return cast.ToString(a) == cast.ToString(b)
}
