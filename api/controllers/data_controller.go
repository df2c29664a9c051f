/*
 * @module api/controllers/data_controller
 * @description 业务数据查询控制器，提供盯办、纠纷、警情、话单与态势数据的HTTP接口
 * @architecture RESTful API架构
 * @documentReference ai_docs/requirements.md
 * @stateFlow HTTP请求 -> 控制器 -> 业务服务 -> 数据库
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/render, github.com/spf13/cast
 * @refs service/records, service/situation
 */

package controllers

import (
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/render"
	"github.com/spf13/cast"

	"github.com/xifan2333/police-alert/service"
	"github.com/xifan2333/police-alert/service/records"
	"github.com/xifan2333/police-alert/service/situation"
)

// DataController 业务数据控制器
type DataController struct {
}

// NewDataController 创建业务数据控制器实例
func NewDataController() *DataController {
	return &DataController{}
}

// pageParams 解析分页参数，越界时回退默认值
func pageParams(r *http.Request) (int, int) {
	page := cast.ToInt(r.URL.Query().Get("page"))
	if page < 1 {
		page = 1
	}
	size := cast.ToInt(r.URL.Query().Get("size"))
	if size < 1 || size > 200 {
		size = 20
	}
	return page, size
}

// includeRules 是否在响应中携带条件样式规则
func includeRules(r *http.Request) bool {
	return r.URL.Query().Get("include_rules") != "false"
}

// GetRiskSupervision 获取执法问题盯办列表
// @Summary 获取执法问题盯办列表
// @Description 分页获取盯办记录，按办理期限升序排列，附带剩余天数与样式规则
// @Tags 业务数据
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Param include_rules query bool false "是否返回样式规则" default(true)
// @Success 200 {object} PaginatedResponse{data=map[string]interface{}}
// @Router /api/data/risk-supervision [get]
func (c *DataController) GetRiskSupervision(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	items, total, rules, err := service.GlobalRiskService.List(page, size, includeRules(r))
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取盯办列表失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data: map[string]interface{}{
			"items":         items,
			"display_rules": rules,
		},
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetDisputeManagement 获取矛盾纠纷列表
// @Summary 获取矛盾纠纷列表
// @Description 分页获取纠纷记录，默认只返回待化解与待关注状态，按风险等级与时间排序
// @Tags 业务数据
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Param status query string false "处置进度"
// @Param risk_level query string false "风险等级" Enums(高,中,低)
// @Param officer query string false "责任民警"
// @Success 200 {object} PaginatedResponse{data=map[string]interface{}}
// @Router /api/data/dispute-management [get]
func (c *DataController) GetDisputeManagement(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	filter := records.DisputeFilter{
		Status:    r.URL.Query().Get("status"),
		RiskLevel: r.URL.Query().Get("risk_level"),
		Officer:   r.URL.Query().Get("officer"),
	}

	items, total, rules, err := service.GlobalDisputeService.List(page, size, filter, includeRules(r))
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取纠纷列表失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data: map[string]interface{}{
			"items":         items,
			"display_rules": rules,
		},
		Total: total,
		Page:  page,
		Size:  size,
	})
}

// GetDisputeOfficers 获取纠纷责任民警选项
// @Summary 获取纠纷责任民警选项
// @Description 获取纠纷记录中出现过的责任民警去重列表，用于筛选下拉框
// @Tags 业务数据
// @Produce json
// @Success 200 {object} APIResponse{data=[]string}
// @Router /api/data/dispute-management/officers [get]
func (c *DataController) GetDisputeOfficers(w http.ResponseWriter, r *http.Request) {
	officers, err := service.GlobalDisputeService.OfficerOptions()
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取民警选项失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   officers,
	})
}

// GetPoliceAlerts 获取警情计数列表
// @Summary 获取警情计数列表
// @Description 分页获取按日期、类型、位置聚合的警情计数，按日期降序排列
// @Tags 业务数据
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Param alert_type query string false "警情类型"
// @Param start_date query string false "开始日期" format(date)
// @Param end_date query string false "结束日期" format(date)
// @Param location query string false "案发地址"
// @Success 200 {object} PaginatedResponse{data=[]models.PoliceAlert}
// @Router /api/data/police-alerts [get]
func (c *DataController) GetPoliceAlerts(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)
	filter := records.AlertFilter{
		AlertType: r.URL.Query().Get("alert_type"),
		Location:  r.URL.Query().Get("location"),
	}
	if v := r.URL.Query().Get("start_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			render.JSON(w, r, &APIResponse{
				Status: http.StatusBadRequest,
				Msg:    "开始日期格式错误，应为 YYYY-MM-DD",
			})
			return
		}
		filter.StartDate = &t
	}
	if v := r.URL.Query().Get("end_date"); v != "" {
		t, err := time.ParseInLocation("2006-01-02", v, time.Local)
		if err != nil {
			render.JSON(w, r, &APIResponse{
				Status: http.StatusBadRequest,
				Msg:    "结束日期格式错误，应为 YYYY-MM-DD",
			})
			return
		}
		filter.EndDate = &t
	}

	items, total, err := service.GlobalAlertService.List(page, size, filter)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取警情列表失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   items,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetPoliceAlertStatistics 获取警情分类统计
// @Summary 获取警情分类统计
// @Description 按所选时间粒度统计当前窗口内各警情类型的数量合计
// @Tags 业务数据
// @Produce json
// @Param granularity query string false "时间粒度" Enums(week,month,year) default(month)
// @Success 200 {object} APIResponse{data=map[string]interface{}}
// @Router /api/data/police-alerts/statistics [get]
func (c *DataController) GetPoliceAlertStatistics(w http.ResponseWriter, r *http.Request) {
	g := situation.ParseGranularity(r.URL.Query().Get("granularity"))

	stats, err := service.GlobalAlertService.Statistics(g)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取警情统计失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   stats,
	})
}

// GetAlertLocationDistribution 获取警情地点分布
// @Summary 获取警情地点分布
// @Description 统计当前窗口内指定类型警情的高发地点排名
// @Tags 业务数据
// @Produce json
// @Param alert_type query string true "警情类型"
// @Param granularity query string false "时间粒度" Enums(week,month,year) default(month)
// @Success 200 {object} APIResponse{data=[]records.TypeCount}
// @Router /api/data/police-alerts/location-distribution [get]
func (c *DataController) GetAlertLocationDistribution(w http.ResponseWriter, r *http.Request) {
	alertType := r.URL.Query().Get("alert_type")
	if alertType == "" {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusBadRequest,
			Msg:    "警情类型不能为空",
		})
		return
	}
	g := situation.ParseGranularity(r.URL.Query().Get("granularity"))

	rows, err := service.GlobalAlertService.LocationDistribution(alertType, g)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取地点分布失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   rows,
	})
}

// GetCallRecords 获取重复报警话单列表
// @Summary 获取重复报警话单列表
// @Description 分页获取按日期与地址聚合的报警话单计数，按日期降序排列
// @Tags 业务数据
// @Produce json
// @Param page query int false "页码" default(1)
// @Param size query int false "每页数量" default(20)
// @Param address query string false "报警地址"
// @Success 200 {object} PaginatedResponse{data=[]models.CallRecord}
// @Router /api/data/call-records [get]
func (c *DataController) GetCallRecords(w http.ResponseWriter, r *http.Request) {
	page, size := pageParams(r)

	items, total, err := service.GlobalCallService.List(page, size, r.URL.Query().Get("address"))
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取话单列表失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &PaginatedResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   items,
		Total:  total,
		Page:   page,
		Size:   size,
	})
}

// GetSituation 获取警情态势数据
// @Summary 获取警情态势数据
// @Description 一次返回分类统计、同环比、地点分布、重复报警与地图标注数据
// @Tags 业务数据
// @Produce json
// @Param granularity query string false "时间粒度" Enums(week,month,year) default(month)
// @Param alert_types query string false "地图标注警情类型，逗号分隔"
// @Success 200 {object} APIResponse{data=map[string]interface{}}
// @Router /api/data/situation [get]
func (c *DataController) GetSituation(w http.ResponseWriter, r *http.Request) {
	g := situation.ParseGranularity(r.URL.Query().Get("granularity"))

	var alertTypes []string
	if v := r.URL.Query().Get("alert_types"); v != "" {
		for _, t := range strings.Split(v, ",") {
			if t = strings.TrimSpace(t); t != "" {
				alertTypes = append(alertTypes, t)
			}
		}
	}

	data, err := service.GlobalSituationService.SituationData(g, alertTypes)
	if err != nil {
		render.JSON(w, r, &APIResponse{
			Status: http.StatusInternalServerError,
			Msg:    "获取态势数据失败: " + err.Error(),
		})
		return
	}

	render.JSON(w, r, &APIResponse{
		Status: http.StatusOK,
		Msg:    "获取成功",
		Data:   data,
	})
}
