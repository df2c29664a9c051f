/*
 * @module service/importer/pipeline
 * @description Excel导入调度管道：识别工作表、按列模式校验行、实体覆盖或计数累加
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow Pending -> Validating(逐表) -> Merging(逐行) -> Committed | Aborted
 * @rules 表头按文本精确匹配，缺少必需列时整次导入失败；缺必填字段的行静默跳过且
 *        不计入成功数；除跳过路径外的任何异常回滚整个事务，不留部分提交
 * @dependencies github.com/xuri/excelize/v2, gorm.io/gorm, github.com/spf13/cast
 * @refs service/importer/reconciler.go, service/importer/template.go
 */

package importer

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cast"
	"github.com/xuri/excelize/v2"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"

	"github.com/xifan2333/police-alert/service/models"
)

// 可识别的工作表名称，与导出模板保持兼容
const (
	SheetRisk    = "执法问题盯办"
	SheetDispute = "矛盾纠纷管理"
	SheetAlert   = "警情态势追踪"
	SheetCall    = "重复报警记录"
)

// 导入终态
const (
	StatusCommitted = "committed"
	StatusAborted   = "aborted"
)

// 各工作表的必需列
var sheetRequiredHeaders = map[string][]string{
	SheetRisk:    {"案件编号", "案件名称", "案发时间", "案件类型", "风险问题", "整改期限", "责任民警"},
	SheetDispute: {"事件名称", "事件类型", "事件内容", "事发时间", "风险等级", "责任民警", "处置进度"},
	SheetAlert:   {"日期", "警情父类", "地点", "次数"},
	SheetCall:    {"日期", "报警地点", "次数"},
}

// 模板中的警情父类标签到规范类别的映射，规范类别自身也可直接使用
var categoryAliases = map[string]string{
	"传统侵财": "偷盗",
	"新型侵财": "诈骗",
	"涉黄类":  "涉黄",
	"涉赌类":  "涉赌",
	"纠纷类":  "纠纷",
	"偷盗":   "偷盗",
	"诈骗":   "诈骗",
	"涉黄":   "涉黄",
	"涉赌":   "涉赌",
	"纠纷":   "纠纷",
	"人身伤害": "人身伤害",
}

var importRows = prometheus.NewCounterVec(
	prometheus.CounterOpts{
		Name: "police_alert_import_rows_total",
		Help: "导入行数统计，按工作表与处理结果区分",
	},
	[]string{"sheet", "result"},
)

func init() {
	prometheus.MustRegister(importRows)
}

// SkippedRow 被跳过行的诊断信息（非破坏性增强，不影响既有行为）
type SkippedRow struct {
	Sheet  string `json:"sheet"`
	Row    int    `json:"row"`
	Reason string `json:"reason"`
}

// Result 导入结果：各表成功行数与跳过诊断
type Result struct {
	Imported map[string]int `json:"imported"`
	Skipped  []SkippedRow   `json:"skipped"`
}

// Pipeline Excel导入调度管道
type Pipeline struct {
	db         *gorm.DB
	reconciler *Reconciler
}

// NewPipeline 创建导入管道实例
func NewPipeline(db *gorm.DB) *Pipeline {
	return &Pipeline{db: db, reconciler: NewReconciler()}
}

// Import 导入一个工作簿
// 整次导入是一个事务单元：除"跳过无效行"路径外的任何失败回滚全部已合并内容
func (p *Pipeline) Import(r io.Reader, fileName string) (*Result, error) {
	f, err := excelize.OpenReader(r)
	if err != nil {
		return nil, fmt.Errorf("打开Excel文件失败: %w", err)
	}
	defer f.Close()

	var present []string
	for _, name := range []string{SheetRisk, SheetDispute, SheetAlert, SheetCall} {
		if idx, _ := f.GetSheetIndex(name); idx != -1 {
			present = append(present, name)
		}
	}
	if len(present) == 0 {
		return nil, errors.New("文件中没有可识别的工作表")
	}

	result := &Result{Imported: make(map[string]int)}
	txErr := p.db.Transaction(func(tx *gorm.DB) error {
		for _, sheet := range present {
			if err := p.importSheet(tx, f, sheet, result); err != nil {
				return err
			}
		}
		return nil
	})

	p.writeLog(fileName, result, txErr)
	if txErr != nil {
		return nil, txErr
	}

	for sheet, n := range result.Imported {
		importRows.WithLabelValues(sheet, "imported").Add(float64(n))
	}
	for _, skip := range result.Skipped {
		importRows.WithLabelValues(skip.Sheet, "skipped").Inc()
	}
	return result, nil
}

// importSheet 校验单个工作表并逐行合并
func (p *Pipeline) importSheet(tx *gorm.DB, f *excelize.File, sheet string, result *Result) error {
	rows, err := f.GetRows(sheet)
	if err != nil {
		return fmt.Errorf("读取工作表 %s 失败: %w", sheet, err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("工作表 %s 缺少表头", sheet)
	}

	headerIdx := make(map[string]int, len(rows[0]))
	for i, h := range rows[0] {
		headerIdx[strings.TrimSpace(h)] = i
	}
	for _, required := range sheetRequiredHeaders[sheet] {
		if _, ok := headerIdx[required]; !ok {
			return fmt.Errorf("工作表 %s 缺少必需列 %q", sheet, required)
		}
	}

	for i, row := range rows[1:] {
		rowNum := i + 2
		cell := func(header string) string {
			idx := headerIdx[header]
			if idx >= len(row) {
				return ""
			}
			return strings.TrimSpace(row[idx])
		}

		var rowErr error
		switch sheet {
		case SheetRisk:
			rowErr = p.importRiskRow(tx, cell, sheet, rowNum, result)
		case SheetDispute:
			rowErr = p.importDisputeRow(tx, cell, sheet, rowNum, result)
		case SheetAlert:
			rowErr = p.importAlertRow(tx, cell, sheet, rowNum, result)
		case SheetCall:
			rowErr = p.importCallRow(tx, cell, sheet, rowNum, result)
		}
		if rowErr != nil {
			return rowErr
		}
	}
	return nil
}

type cellFunc func(header string) string

// skip 记录一条跳过诊断
func (p *Pipeline) skip(result *Result, sheet string, row int, reason string) {
	result.Skipped = append(result.Skipped, SkippedRow{Sheet: sheet, Row: row, Reason: reason})
}

// importRiskRow 执法问题盯办行：按案件编号整行覆盖
func (p *Pipeline) importRiskRow(tx *gorm.DB, cell cellFunc, sheet string, rowNum int, result *Result) error {
	caseNumber := cell("案件编号")
	caseName := cell("案件名称")
	caseType := cell("案件类型")
	officer := cell("责任民警")
	if caseNumber == "" || caseName == "" || caseType == "" || officer == "" ||
		cell("案发时间") == "" || cell("整改期限") == "" || cell("风险问题") == "" {
		p.skip(result, sheet, rowNum, "缺少必填字段")
		return nil
	}

	caseTime, err := parseDateTime(cell("案发时间"))
	if err != nil {
		p.skip(result, sheet, rowNum, "案发时间格式错误")
		return nil
	}
	deadline, err := parseDateTime(cell("整改期限"))
	if err != nil {
		p.skip(result, sheet, rowNum, "整改期限格式错误")
		return nil
	}

	rec := models.RiskSupervision{
		CaseNumber: caseNumber,
		CaseName:   caseName,
		CaseTime:   caseTime,
		CaseType:   caseType,
		RiskIssues: splitRiskIssues(cell("风险问题")),
		Deadline:   deadline,
		Officer:    officer,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "case_number"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"case_name", "case_time", "case_type", "risk_issues",
			"deadline", "officer_name", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("写入盯办记录失败(第%d行): %w", rowNum, err)
	}

	result.Imported[sheet]++
	return nil
}

// importDisputeRow 矛盾纠纷行：按事件名称整行覆盖
func (p *Pipeline) importDisputeRow(tx *gorm.DB, cell cellFunc, sheet string, rowNum int, result *Result) error {
	eventName := cell("事件名称")
	eventType := cell("事件类型")
	content := cell("事件内容")
	riskLevel := cell("风险等级")
	officer := cell("责任民警")
	status := cell("处置进度")
	if eventName == "" || eventType == "" || content == "" || riskLevel == "" ||
		officer == "" || status == "" || cell("事发时间") == "" {
		p.skip(result, sheet, rowNum, "缺少必填字段")
		return nil
	}

	if !contains(models.RiskLevels, riskLevel) {
		p.skip(result, sheet, rowNum, "风险等级必须为 高/中/低")
		return nil
	}
	if utf8.RuneCountInString(content) > 150 {
		p.skip(result, sheet, rowNum, "事件内容超过150字")
		return nil
	}

	eventTime, err := parseDateTime(cell("事发时间"))
	if err != nil {
		p.skip(result, sheet, rowNum, "事发时间格式错误")
		return nil
	}

	rec := models.DisputeManagement{
		EventName: eventName,
		EventType: eventType,
		Content:   content,
		EventTime: eventTime,
		RiskLevel: riskLevel,
		Officer:   officer,
		Status:    status,
	}
	err = tx.Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "event_name"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"event_type", "content", "event_time", "risk_level",
			"officer_name", "status", "updated_at",
		}),
	}).Create(&rec).Error
	if err != nil {
		return fmt.Errorf("写入纠纷记录失败(第%d行): %w", rowNum, err)
	}

	result.Imported[sheet]++
	return nil
}

// importAlertRow 警情计数行：按 (日期, 类别, 地点) 累加
func (p *Pipeline) importAlertRow(tx *gorm.DB, cell cellFunc, sheet string, rowNum int, result *Result) error {
	dateStr := cell("日期")
	category := cell("警情父类")
	location := cell("地点")
	countStr := cell("次数")
	if dateStr == "" || category == "" || location == "" || countStr == "" {
		p.skip(result, sheet, rowNum, "缺少必填字段")
		return nil
	}

	canonical, ok := categoryAliases[category]
	if !ok {
		p.skip(result, sheet, rowNum, fmt.Sprintf("未知警情类别 %q", category))
		return nil
	}

	date, err := parseDate(dateStr)
	if err != nil {
		p.skip(result, sheet, rowNum, "日期格式错误")
		return nil
	}
	count, err := cast.ToIntE(countStr)
	if err != nil {
		p.skip(result, sheet, rowNum, "次数格式错误")
		return nil
	}
	if count <= 0 {
		p.skip(result, sheet, rowNum, "次数必须大于0")
		return nil
	}

	if err := p.reconciler.MergeAlert(tx, date, canonical, location, count); err != nil {
		return fmt.Errorf("合并警情计数失败(第%d行): %w", rowNum, err)
	}

	result.Imported[sheet]++
	return nil
}

// importCallRow 重复报警计数行：按 (日期, 地点) 累加
func (p *Pipeline) importCallRow(tx *gorm.DB, cell cellFunc, sheet string, rowNum int, result *Result) error {
	dateStr := cell("日期")
	address := cell("报警地点")
	countStr := cell("次数")
	if dateStr == "" || address == "" || countStr == "" {
		p.skip(result, sheet, rowNum, "缺少必填字段")
		return nil
	}

	date, err := parseDate(dateStr)
	if err != nil {
		p.skip(result, sheet, rowNum, "日期格式错误")
		return nil
	}
	count, err := cast.ToIntE(countStr)
	if err != nil {
		p.skip(result, sheet, rowNum, "次数格式错误")
		return nil
	}
	if count <= 0 {
		p.skip(result, sheet, rowNum, "次数必须大于0")
		return nil
	}

	if err := p.reconciler.MergeCall(tx, date, address, count); err != nil {
		return fmt.Errorf("合并报警计数失败(第%d行): %w", rowNum, err)
	}

	result.Imported[sheet]++
	return nil
}

// writeLog 记录导入日志，日志写入失败不影响导入结果
func (p *Pipeline) writeLog(fileName string, result *Result, txErr error) {
	detail := models.JSONB{"skipped": len(result.Skipped)}
	for sheet, n := range result.Imported {
		detail[sheet] = n
	}

	log := models.ImportLog{
		FileName: fileName,
		Status:   StatusCommitted,
		Detail:   detail,
	}
	if txErr != nil {
		log.Status = StatusAborted
		log.ErrorMsg = txErr.Error()
	}

	if err := p.db.Create(&log).Error; err != nil {
		slog.Error("写入导入日志失败", "file", fileName, "error", err)
	}
}

// 可接受的日期时间格式（GetRows 返回单元格的显示文本）
var dateTimeLayouts = []string{
	"2006-01-02 15:04:05",
	"2006-01-02 15:04",
	"2006-01-02",
	"2006/01/02 15:04:05",
	"2006/01/02 15:04",
	"2006/01/02",
	"2006/1/2",
	"01-02-06",
}

// parseDateTime 解析日期时间文本，数值形式按Excel序列日期处理
func parseDateTime(s string) (time.Time, error) {
	for _, layout := range dateTimeLayouts {
		if t, err := time.ParseInLocation(layout, s, time.Local); err == nil {
			return t, nil
		}
	}
	if serial, err := cast.ToFloat64E(s); err == nil && serial > 59 {
		return excelize.ExcelDateToTime(serial, false)
	}
	return time.Time{}, fmt.Errorf("无法解析的时间 %q", s)
}

// parseDate 解析日期文本并截断到当天零点，作为计数桶键
func parseDate(s string) (time.Time, error) {
	t, err := parseDateTime(s)
	if err != nil {
		return time.Time{}, err
	}
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.Local), nil
}

// splitRiskIssues 风险问题列按中英文逗号、顿号拆分
func splitRiskIssues(s string) []string {
	parts := strings.FieldsFunc(s, func(r rune) bool {
		return r == ',' || r == '，' || r == '、'
	})
	issues := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			issues = append(issues, trimmed)
		}
	}
	return issues
}

func contains(list []string, v string) bool {
	for _, item := range list {
		if item == v {
			return true
		}
	}
	return false
}
