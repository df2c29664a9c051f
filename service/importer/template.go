/*
 * @module service/importer/template
 * @description 导入模板生成：四个工作表的表头、示例行与枚举列下拉约束
 * @architecture 分层架构 - 业务服务层
 * @documentReference ai_docs/requirements.md
 * @stateFlow 管理端下载模板 -> 线下填写 -> 上传导入
 * @rules 表头文本是与导入解析的兼容约定，修改表头会导致对应工作表被导入侧拒绝
 * @dependencies github.com/xuri/excelize/v2
 * @refs service/importer/pipeline.go
 */

package importer

import (
	"fmt"

	"github.com/xuri/excelize/v2"
)

// TemplateFileName 模板下载文件名
const TemplateFileName = "基层警情数据_导入模板.xlsx"

type templateSheet struct {
	name      string
	headers   []interface{}
	example   []interface{}
	dropdowns map[string][]string // 列范围 -> 候选值
}

var templateSheets = []templateSheet{
	{
		name:    SheetRisk,
		headers: []interface{}{"序号", "案件编号", "案件名称", "案发时间", "案件类型", "风险问题", "整改期限", "责任民警"},
		example: []interface{}{
			1, "A330903202601000001", "示例案件", "2026-01-20 10:00", "刑事",
			"案件笔录未关联,执法音视频未上传", "2026-01-30 18:00", "张警官",
		},
		dropdowns: map[string][]string{
			"E2:E500": {"刑事", "行政", "治安"},
		},
	},
	{
		name:    SheetDispute,
		headers: []interface{}{"序号", "事件名称", "事件类型", "事件内容", "事发时间", "风险等级", "责任民警", "处置进度"},
		example: []interface{}{
			1, "东港社区邻里纠纷", "邻里矛盾", "居民张某与李某因楼上漏水问题产生纠纷", "2026-01-20 10:00",
			"高", "赵警官", "待化解",
		},
		dropdowns: map[string][]string{
			"C2:C500": {"邻里矛盾", "家庭矛盾", "劳资纠纷", "物业纠纷", "其他"},
			"F2:F500": {"高", "中", "低"},
			"H2:H500": {"待化解", "待关注", "调解中", "已调解"},
		},
	},
	{
		name:    SheetAlert,
		headers: []interface{}{"序号", "日期", "警情父类", "警情子类", "地点", "次数"},
		example: []interface{}{1, "2026-01-20", "传统侵财", "偷盗类", "东港小区", 2},
		dropdowns: map[string][]string{
			"C2:C500": {"传统侵财", "新型侵财", "涉黄类", "涉赌类", "纠纷类", "人身伤害"},
		},
	},
	{
		name:    SheetCall,
		headers: []interface{}{"序号", "日期", "报警地点", "次数"},
		example: []interface{}{1, "2026-01-20", "东港小区3号楼", 3},
	},
}

// BuildTemplate 生成导入模板工作簿
func BuildTemplate() (*excelize.File, error) {
	f := excelize.NewFile()

	for _, sheet := range templateSheets {
		if _, err := f.NewSheet(sheet.name); err != nil {
			return nil, fmt.Errorf("创建工作表 %s 失败: %w", sheet.name, err)
		}
		if err := f.SetSheetRow(sheet.name, "A1", &sheet.headers); err != nil {
			return nil, fmt.Errorf("写入表头失败: %w", err)
		}
		if err := f.SetSheetRow(sheet.name, "A2", &sheet.example); err != nil {
			return nil, fmt.Errorf("写入示例行失败: %w", err)
		}

		for sqref, options := range sheet.dropdowns {
			dv := excelize.NewDataValidation(true)
			dv.Sqref = sqref
			if err := dv.SetDropList(options); err != nil {
				return nil, fmt.Errorf("设置下拉候选失败: %w", err)
			}
			if err := f.AddDataValidation(sheet.name, dv); err != nil {
				return nil, fmt.Errorf("添加下拉约束失败: %w", err)
			}
		}
	}

	// 删除excelize的默认工作表
	if err := f.DeleteSheet("Sheet1"); err != nil {
		return nil, fmt.Errorf("删除默认工作表失败: %w", err)
	}

	return f, nil
}
