/*
 * @module service/situation/situation_service
 * @description 警情态势服务，提供分类同环比、地点分布、重复报警与地图标注数据
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 读取聚合计数 -> 窗口求和 -> 比值计算 -> 显示规则附带返回
 * @rules 统计基于 sum(count) 而非行数；规则随响应返回，由前端统一渲染
 * @dependencies gorm.io/gorm
 * @refs service/display, service/geocoding
 */

package situation

import (
	"fmt"
	"time"

	"gorm.io/gorm"

	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/geocoding"
	"github.com/xifan2333/police-alert/service/models"
)

// PageCode 态势页面编码
const PageCode = "situation"

// 态势页面各表格编码，用于按表格范围取显示规则
var situationTableCodes = []string{
	"policeClassification",
	"theftTraditional",
	"telecomFraud",
	"viceCases",
	"disputeCases",
	"fightCases",
	"gamblingCases",
	"repeatAlarms",
}

// 各类警情地点分布表与警情类型的对应关系
var distributionTables = map[string]string{
	"theftTraditional": "偷盗",
	"telecomFraud":     "诈骗",
	"viceCases":        "涉黄",
	"disputeCases":     "纠纷",
	"fightCases":       "人身伤害",
	"gamblingCases":    "涉赌",
}

// Service 警情态势服务
type Service struct {
	db    *gorm.DB
	rules *display.Service
	geo   *geocoding.Service
	now   func() time.Time
}

// NewService 创建警情态势服务实例
func NewService(db *gorm.DB, rules *display.Service, geo *geocoding.Service) *Service {
	return &Service{
		db:    db,
		rules: rules,
		geo:   geo,
		now:   time.Now,
	}
}

// SetNow 注入时间源，仅测试使用
func (s *Service) SetNow(now func() time.Time) {
	s.now = now
}

// ClassificationRow 警情分类同环比行
type ClassificationRow struct {
	Name  string `json:"name"`
	Count int    `json:"count"`
	YoY   string `json:"yoy"`
	MoM   string `json:"mom"`
}

// Field 实现 display.FieldGetter 接口
func (r ClassificationRow) Field(name string) (interface{}, bool) {
	switch name {
	case "name":
		return r.Name, true
	case "count":
		return r.Count, true
	case "yoy":
		return r.YoY, true
	case "mom":
		return r.MoM, true
	}
	return nil, false
}

// RowStyle 行级样式标注
type RowStyle struct {
	RowIndex   int     `json:"row_index"`
	FontColor  *string `json:"font_color"`
	StyleToken *string `json:"style_token"`
}

// LocationRow 地点分布行
type LocationRow struct {
	Location string `json:"location"`
	Count    int    `json:"count"`
}

// RepeatAlarmRow 重复报警行
type RepeatAlarmRow struct {
	Address  string `json:"address"`
	Count    int    `json:"count"`
	LastDate string `json:"last_date"`
}

// MapMarker 地图标注点
type MapMarker struct {
	Location  string  `json:"location"`
	AlertType string  `json:"alertType"`
	Count     int     `json:"count"`
	Lng       float64 `json:"lng"`
	Lat       float64 `json:"lat"`
}

// sumAlerts 窗口内指定类型警情计数求和，alertType 为空表示全部类型
// 当前窗口终点取闭区间，环比/同比窗口终点取开区间，与窗口定义保持一致
func (s *Service) sumAlerts(alertType string, w TimeWindow, inclusiveEnd bool) (int, error) {
	query := s.db.Model(&models.PoliceAlert{}).Where("alert_date >= ?", w.Start)
	if inclusiveEnd {
		query = query.Where("alert_date <= ?", w.End)
	} else {
		query = query.Where("alert_date < ?", w.End)
	}
	if alertType != "" {
		query = query.Where("alert_type = ?", alertType)
	}

	var total *int
	if err := query.Select("SUM(count)").Scan(&total).Error; err != nil {
		return 0, fmt.Errorf("警情计数求和失败: %w", err)
	}
	if total == nil {
		return 0, nil
	}
	return *total, nil
}

// Classification 警情分类同环比分析
// 六类警情逐一统计，末行追加"有效警情"汇总；applyRules 为真时返回行级样式
func (s *Service) Classification(g Granularity, applyRules bool) ([]ClassificationRow, []RowStyle, error) {
	windows := Windows(g, s.now())

	rows := make([]ClassificationRow, 0, len(models.AlertTypes)+1)
	totalCurrent := 0
	for _, alertType := range models.AlertTypes {
		current, err := s.sumAlerts(alertType, windows.Current, true)
		if err != nil {
			return nil, nil, err
		}
		prev, err := s.sumAlerts(alertType, windows.Previous, false)
		if err != nil {
			return nil, nil, err
		}
		yoy, err := s.sumAlerts(alertType, windows.YearOverYear, false)
		if err != nil {
			return nil, nil, err
		}

		totalCurrent += current
		rows = append(rows, ClassificationRow{
			Name:  alertType,
			Count: current,
			YoY:   Ratio(current, yoy),
			MoM:   Ratio(current, prev),
		})
	}

	totalPrev, err := s.sumAlerts("", windows.Previous, false)
	if err != nil {
		return nil, nil, err
	}
	totalYoY, err := s.sumAlerts("", windows.YearOverYear, false)
	if err != nil {
		return nil, nil, err
	}
	rows = append(rows, ClassificationRow{
		Name:  "有效警情",
		Count: totalCurrent,
		YoY:   Ratio(totalCurrent, totalYoY),
		MoM:   Ratio(totalCurrent, totalPrev),
	})

	var styles []RowStyle
	if applyRules {
		tableCode := "policeClassification"
		rules, err := s.rules.GetRulesByPage(PageCode, &tableCode)
		if err != nil {
			return nil, nil, err
		}
		for i, row := range rows {
			style := display.Evaluate(row, rules)
			if !style.IsZero() {
				styles = append(styles, RowStyle{
					RowIndex:   i,
					FontColor:  style.FontColor,
					StyleToken: style.StyleToken,
				})
			}
		}
	}

	return rows, styles, nil
}

// LocationDistribution 指定警情类型当前窗口内的地点分布 Top N
func (s *Service) LocationDistribution(alertType string, g Granularity, limit int) ([]LocationRow, error) {
	windows := Windows(g, s.now())

	var rows []LocationRow
	err := s.db.Model(&models.PoliceAlert{}).
		Select("location, SUM(count) AS count").
		Where("alert_type = ?", alertType).
		Where("alert_date >= ? AND alert_date <= ?", windows.Current.Start, windows.Current.End).
		Group("location").
		Order("SUM(count) DESC").
		Limit(limit).
		Scan(&rows).Error
	if err != nil {
		return nil, fmt.Errorf("地点分布查询失败: %w", err)
	}
	return rows, nil
}

// RepeatAlarms 重复报警统计，按地点汇总，累计至少2次才算重复
func (s *Service) RepeatAlarms(limit int) ([]RepeatAlarmRow, error) {
	// MAX(call_date) 在 sqlite 下以原始文本返回，按字符串接收后截取日期部分，
	// postgres 路径由 database/sql 转成 RFC3339 文本，前10位同样是日期
	var raw []struct {
		CallAddress string
		TotalCount  int
		LastDate    string
	}
	err := s.db.Model(&models.CallRecord{}).
		Select("call_address, SUM(count) AS total_count, MAX(call_date) AS last_date").
		Group("call_address").
		Having("SUM(count) >= ?", 2).
		Order("SUM(count) DESC").
		Limit(limit).
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("重复报警统计失败: %w", err)
	}

	rows := make([]RepeatAlarmRow, 0, len(raw))
	for _, r := range raw {
		lastDate := r.LastDate
		if len(lastDate) > 10 {
			lastDate = lastDate[:10]
		}
		rows = append(rows, RepeatAlarmRow{
			Address:  r.CallAddress,
			Count:    r.TotalCount,
			LastDate: lastDate,
		})
	}
	return rows, nil
}

// MapData 当前窗口内指定类型的地图标注，仅返回能解析出坐标的地点
func (s *Service) MapData(alertTypes []string, g Granularity) ([]MapMarker, error) {
	windows := Windows(g, s.now())

	var raw []struct {
		Location  string
		AlertType string
		Count     int
	}
	err := s.db.Model(&models.PoliceAlert{}).
		Select("location, alert_type, SUM(count) AS count").
		Where("alert_type IN ?", alertTypes).
		Where("alert_date >= ? AND alert_date <= ?", windows.Current.Start, windows.Current.End).
		Group("location, alert_type").
		Scan(&raw).Error
	if err != nil {
		return nil, fmt.Errorf("地图数据查询失败: %w", err)
	}

	markers := make([]MapMarker, 0, len(raw))
	for _, r := range raw {
		lng, lat, ok := s.geo.Coordinates(r.Location)
		if !ok {
			continue
		}
		markers = append(markers, MapMarker{
			Location:  r.Location,
			AlertType: r.AlertType,
			Count:     r.Count,
			Lng:       lng,
			Lat:       lat,
		})
	}
	return markers, nil
}

// SituationData 态势页面全量数据
// 各表格为纯数据，显示规则按表格编码独立返回，由前端统一渲染
func (s *Service) SituationData(g Granularity, alertTypes []string) (map[string]interface{}, error) {
	classification, _, err := s.Classification(g, false)
	if err != nil {
		return nil, err
	}

	data := map[string]interface{}{
		"policeClassification": classification,
	}

	for tableCode, alertType := range distributionTables {
		rows, err := s.LocationDistribution(alertType, g, 5)
		if err != nil {
			return nil, err
		}
		data[tableCode] = rows
	}

	repeatAlarms, err := s.RepeatAlarms(5)
	if err != nil {
		return nil, err
	}
	data["repeatAlarms"] = repeatAlarms

	if len(alertTypes) == 0 {
		alertTypes = []string{"偷盗", "诈骗"}
	}
	mapData, err := s.MapData(alertTypes, g)
	if err != nil {
		return nil, err
	}
	data["mapData"] = mapData

	displayRules := make(map[string][]models.DisplayRule, len(situationTableCodes))
	for _, tableCode := range situationTableCodes {
		code := tableCode
		rules, err := s.rules.GetRulesByPage(PageCode, &code)
		if err != nil {
			return nil, err
		}
		displayRules[tableCode] = rules
	}
	data["displayRules"] = displayRules

	return data, nil
}
