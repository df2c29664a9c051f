/*
 * @module api/controllers/admin_controller
 * @description 管理端控制器，提供显示规则维护、数据导入与模板下载接口
 * @architecture RESTful API架构
 * @documentReference ai_docs/requirements.md
 * @stateFlow HTTP请求 -> 控制器 -> 规则服务/导入流水线 -> 数据库
 * @rules 规则请求体经结构校验后才进入服务层，导入在单事务内完成
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render, github.com/go-playground/validator/v10
 * @refs service/display, service/importer
 */

package controllers

import (
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/render"
	"github.com/go-playground/validator/v10"

	"github.com/xifan2333/police-alert/service"
	"github.com/xifan2333/police-alert/service/display"
	"github.com/xifan2333/police-alert/service/importer"
	"github.com/xifan2333/police-alert/service/models"
)

// maxImportSize 导入文件大小上限
const maxImportSize = 20 << 20

// AdminController 管理端控制器
type AdminController struct {
	validate *validator.Validate
}

// NewAdminController 创建管理端控制器实例
func NewAdminController() *AdminController {
	return &AdminController{
		validate: validator.New(),
	}
}

// RuleRequest 规则创建/更新请求
type RuleRequest struct {
	PageCode    string            `json:"page_code" validate:"required,max=50"`
	TableCode   *string           `json:"table_code" validate:"omitempty,max=50"`
	RuleType    string            `json:"rule_type" validate:"omitempty,oneof=color"`
	RuleName    string            `json:"rule_name" validate:"required,max=100"`
	Config      models.RuleConfig `json:"rule_config" validate:"required"`
	Priority    int               `json:"priority"`
	IsEnabled   *bool             `json:"is_enabled"`
	Description string            `json:"description"`
}

// ListRules 获取规则列表
// @Summary 获取显示规则列表
// @Description 获取全部显示规则，含停用规则，按页面与优先级排序
// @Tags 规则管理
// @Produce json
// @Success 200 {object} APIResponse{data=[]models.DisplayRule}
// @Router /api/admin/rules [get]
func (c *AdminController) ListRules(w http.ResponseWriter, r *http.Request) {
	rules, err := service.GlobalRuleService.ListRules()
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取规则列表失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   rules,
	})
}

// GetRule 获取单个规则
// @Summary 获取单个显示规则
// @Tags 规则管理
// @Produce json
// @Param id path string true "规则ID"
// @Success 200 {object} APIResponse{data=models.DisplayRule}
// @Router /api/admin/rules/{id} [get]
func (c *AdminController) GetRule(w http.ResponseWriter, r *http.Request) {
	rule, err := service.GlobalRuleService.GetRuleByID(chi.URLParam(r, "id"))
	if err != nil {
		if errors.Is(err, display.ErrRuleNotFound) {
			render.JSON(w, r, &APIResponse{
				Status: http.StatusNotFound,
				Msg:    "规则不存在",
			})
			return
		}
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取规则失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   rule,
	})
}

// CreateRule 创建规则
// @Summary 创建显示规则
// @Description 创建新的条件样式规则，规则配置在入库前完成结构校验
// @Tags 规则管理
// @Accept json
// @Produce json
// @Param request body RuleRequest true "规则内容"
// @Success 200 {object} APIResponse{data=models.DisplayRule}
// @Router /api/admin/rules [post]
func (c *AdminController) CreateRule(w http.ResponseWriter, r *http.Request) {
	var req RuleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数错误: " + err.Error(),
		})
		return
	}
	if err := c.validate.Struct(&req); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数校验失败: " + err.Error(),
		})
		return
	}

	rule := &models.DisplayRule{
		PageCode:    req.PageCode,
		TableCode:   req.TableCode,
		RuleType:    req.RuleType,
		RuleName:    req.RuleName,
		Config:      req.Config,
		Priority:    req.Priority,
		IsEnabled:   true,
		Description: req.Description,
	}
	if req.IsEnabled != nil {
		rule.IsEnabled = *req.IsEnabled
	}

	if err := service.GlobalRuleService.CreateRule(rule); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "创建规则失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "创建成功",
		Data:   rule,
	})
}

// UpdateRule 更新规则
// @Summary 更新显示规则
// @Tags 规则管理
// @Accept json
// @Produce json
// @Param id path string true "规则ID"
// @Param request body RuleRequest true "规则内容"
// @Success 200 {object} APIResponse{data=models.DisplayRule}
// @Router /api/admin/rules/{id} [put]
func (c *AdminController) UpdateRule(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")

	var req RuleRequest
	if err := render.DecodeJSON(r.Body, &req); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数错误: " + err.Error(),
		})
		return
	}
	if err := c.validate.Struct(&req); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "请求参数校验失败: " + err.Error(),
		})
		return
	}

	updates := map[string]interface{}{
		"page_code":   req.PageCode,
		"table_code":  req.TableCode,
		"rule_name":   req.RuleName,
		"rule_config": req.Config,
		"priority":    req.Priority,
		"description": req.Description,
	}
	if req.RuleType != "" {
		updates["rule_type"] = req.RuleType
	}
	if req.IsEnabled != nil {
		updates["is_enabled"] = *req.IsEnabled
	}

	if err := service.GlobalRuleService.UpdateRule(id, updates); err != nil {
		if errors.Is(err, display.ErrRuleNotFound) {
			render.JSON(w, r, &APIResponse{
				Status: http.StatusNotFound,
				Msg:    "规则不存在",
			})
			return
		}
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "更新规则失败: " + err.Error(),
		})
		return
	}

	rule, err := service.GlobalRuleService.GetRuleByID(id)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取更新后规则失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "更新成功",
		Data:   rule,
	})
}

// DeleteRule 删除规则
// @Summary 删除显示规则
// @Tags 规则管理
// @Produce json
// @Param id path string true "规则ID"
// @Success 200 {object} APIResponse
// @Router /api/admin/rules/{id} [delete]
func (c *AdminController) DeleteRule(w http.ResponseWriter, r *http.Request) {
	if err := service.GlobalRuleService.DeleteRule(chi.URLParam(r, "id")); err != nil {
		if errors.Is(err, display.ErrRuleNotFound) {
			render.JSON(w, r, &APIResponse{
				Status: http.StatusNotFound,
				Msg:    "规则不存在",
			})
			return
		}
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "删除规则失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "删除成功",
	})
}

// ImportData 导入数据
// @Summary 导入Excel数据
// @Description 上传xlsx文件，解析四个数据页签并在单事务内入库，返回逐页导入与跳过明细
// @Tags 数据导入
// @Accept multipart/form-data
// @Produce json
// @Param file formData file true "xlsx文件"
// @Success 200 {object} APIResponse{data=importer.Result}
// @Router /api/admin/import [post]
func (c *AdminController) ImportData(w http.ResponseWriter, r *http.Request) {
	if err := r.ParseMultipartForm(maxImportSize); err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "解析上传内容失败: " + err.Error(),
		})
		return
	}

	file, header, err := r.FormFile("file")
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "缺少上传文件: " + err.Error(),
		})
		return
	}
	defer file.Close()

	result, err := service.GlobalImportPipeline.Import(file, header.Filename)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "导入失败: " + err.Error(),
			Data:   result,
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "导入成功",
		Data:   result,
	})
}

// DownloadTemplate 下载导入模板
// @Summary 下载导入模板
// @Description 生成含四个数据页签、表头、示例行与下拉校验的xlsx模板
// @Tags 数据导入
// @Produce application/octet-stream
// @Success 200 {file} binary
// @Router /api/admin/template [get]
func (c *AdminController) DownloadTemplate(w http.ResponseWriter, r *http.Request) {
	f, err := importer.BuildTemplate()
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "生成模板失败: " + err.Error(),
		})
		return
	}
	defer f.Close()

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition",
		fmt.Sprintf(`attachment; filename*=UTF-8''%s`, url.PathEscape(importer.TemplateFileName)))

	if err := f.Write(w); err != nil {
		// 响应头已发出，无法再改写状态码
		slog.Error("写出模板文件失败", "error", err)
	}
}
