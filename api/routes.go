/*
 * @module api/routes
 * @description API路由配置模块，负责初始化和配置所有HTTP路由
 * @architecture RESTful API架构
 * @documentReference ai_docs/requirements.md
 * @stateFlow 无状态HTTP请求处理
 * @rules 遵循RESTful API设计规范，统一错误处理和响应格式
 * @dependencies github.com/go-chi/chi/v5, github.com/go-chi/cors, github.com/go-chi/render
 * @refs api/controllers
 */

package api

import (
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/go-chi/render"

	"github.com/xifan2333/police-alert/api/controllers"
)

// InitRoute 初始化所有API路由
func InitRoute(r *chi.Mux) {
	// 基础中间件
	r.Use(middleware.Logger)
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(render.SetContentType(render.ContentTypeJSON))

	// CORS配置
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type", "X-CSRF-Token"},
		ExposedHeaders:   []string{"Link", "Content-Disposition"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	// 健康检查
	healthController := controllers.NewHealthController()
	r.Get("/health", healthController.Health)
	r.Get("/ready", healthController.Ready)

	// 业务数据查询
	r.Route("/api/data", func(r chi.Router) {
		dataController := controllers.NewDataController()

		// 执法问题盯办
		r.Get("/risk-supervision", dataController.GetRiskSupervision)

		// 矛盾纠纷管理
		r.Get("/dispute-management", dataController.GetDisputeManagement)
		r.Get("/dispute-management/officers", dataController.GetDisputeOfficers)

		// 警情计数
		r.Get("/police-alerts", dataController.GetPoliceAlerts)
		r.Get("/police-alerts/statistics", dataController.GetPoliceAlertStatistics)
		r.Get("/police-alerts/location-distribution", dataController.GetAlertLocationDistribution)

		// 重复报警话单
		r.Get("/call-records", dataController.GetCallRecords)

		// 警情态势
		r.Get("/situation", dataController.GetSituation)
	})

	// 管理端
	r.Route("/api/admin", func(r chi.Router) {
		adminController := controllers.NewAdminController()

		// 显示规则维护
		r.Route("/rules", func(r chi.Router) {
			r.Get("/", adminController.ListRules)
			r.Post("/", adminController.CreateRule)
			r.Get("/{id}", adminController.GetRule)
			r.Put("/{id}", adminController.UpdateRule)
			r.Delete("/{id}", adminController.DeleteRule)
		})

		// 数据导入与模板
		r.Post("/import", adminController.ImportData)
		r.Get("/template", adminController.DownloadTemplate)
	})
}
