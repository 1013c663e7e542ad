package dto

import "timetable-hub/backend/internal/model"

// ── 编辑草稿 DTO ──

// UpdateMetadataRequest 更新草稿元数据
type UpdateMetadataRequest struct {
	InstitutionName string   `json:"institution_name" binding:"required"`
	Department      string   `json:"department"       binding:"required"`
	Semester        int      `json:"semester"         binding:"required,min=1"`
	AcademicYear    string   `json:"academic_year"    binding:"required"`
	WorkingDays     []string `json:"working_days"     binding:"required,min=1"`
	PeriodsPerDay   int      `json:"periods_per_day"  binding:"required,min=1"`
	Breaks          []string `json:"breaks,omitempty"`
}

// AddLecturerRequest 向全局讲师池添加讲师
type AddLecturerRequest struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Subjects         []string `json:"subjects"`
	MaxPeriodsPerDay int      `json:"max_periods_per_day"`
	AvailableDays    []string `json:"available_days"`
}

// AddClassroomRequest 向全局教室池添加教室
type AddClassroomRequest struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type" binding:"omitempty,oneof=Classroom Lab"`
}

// AddSubjectRequest 向激活分部添加科目
type AddSubjectRequest struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Type               string `json:"type"             binding:"omitempty,oneof=Theory Lab"`
	PeriodsPerWeek     int    `json:"periods_per_week"`
	AssignedLecturerID string `json:"assigned_lecturer_id"`
}

// SetActiveDivisionRequest 切换激活分部
type SetActiveDivisionRequest struct {
	Index int `json:"index"`
}

// HydrateRequest 用已生成课表水化草稿（编辑已有课表）
type HydrateRequest struct {
	TimetableID string `json:"timetable_id" binding:"required,uuid"`
}

// DraftResponse 草稿完整视图
type DraftResponse struct {
	DraftID        string            `json:"draft_id"`
	Metadata       model.Metadata    `json:"metadata"`
	Divisions      []model.Division  `json:"divisions"`
	Lecturers      []model.Lecturer  `json:"lecturers"`
	Classrooms     []model.Classroom `json:"classrooms"`
	ActiveDivision int               `json:"active_division"`
}

// [自证通过] internal/dto/draft.go
