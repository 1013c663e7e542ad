package handler

import (
	"errors"
	"strconv"

	"github.com/gin-gonic/gin"

	"timetable-hub/backend/internal/dto"
	"timetable-hub/backend/internal/model"
	"timetable-hub/backend/internal/schedule"
	"timetable-hub/backend/internal/service"
	"timetable-hub/backend/pkg/response"
)

// DraftHandler 编辑草稿 HTTP 处理器
//
// 所有操作按当前用户隔离；状态机拒绝的变更映射为 409，
// 越界下标映射为 400。
type DraftHandler struct {
	draftSvc service.DraftService
}

// NewDraftHandler 创建 DraftHandler
func NewDraftHandler(draftSvc service.DraftService) *DraftHandler {
	return &DraftHandler{draftSvc: draftSvc}
}

// Create 创建空草稿（播种默认分部 "A"）
// POST /draft
func (h *DraftHandler) Create(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.draftSvc.Create(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	response.Created(c, draftView(d))
}

// Hydrate 用已生成课表水化新草稿
// POST /draft/hydrate
func (h *DraftHandler) Hydrate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.HydrateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.Hydrate(c.Request.Context(), userID, &req)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.Created(c, draftView(d))
}

// Get 获取草稿
// GET /draft/:id
func (h *DraftHandler) Get(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.draftSvc.Get(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// List 当前用户的草稿列表
// GET /draft
func (h *DraftHandler) List(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	ds, err := h.draftSvc.List(c.Request.Context(), userID)
	if err != nil {
		response.InternalError(c)
		return
	}

	views := make([]*dto.DraftResponse, 0, len(ds))
	for i := range ds {
		views = append(views, draftView(&ds[i]))
	}
	response.OK(c, views)
}

// Delete 删除草稿
// DELETE /draft/:id
func (h *DraftHandler) Delete(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	if err := h.draftSvc.Delete(c.Request.Context(), userID, c.Param("id")); err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, gin.H{"deleted": true})
}

// UpdateMetadata 更新草稿元数据
// PUT /draft/:id/metadata
func (h *DraftHandler) UpdateMetadata(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateMetadataRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.UpdateMetadata(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// AddLecturer 向全局讲师池添加讲师
// POST /draft/:id/lecturers
func (h *DraftHandler) AddLecturer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddLecturerRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.AddLecturer(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// RemoveLecturer 从全局讲师池移除讲师
// DELETE /draft/:id/lecturers/:lecturerId
func (h *DraftHandler) RemoveLecturer(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.draftSvc.RemoveLecturer(c.Request.Context(), userID, c.Param("id"), c.Param("lecturerId"))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// AddClassroom 向全局教室池添加教室
// POST /draft/:id/classrooms
func (h *DraftHandler) AddClassroom(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddClassroomRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.AddClassroom(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// RemoveClassroom 从全局教室池移除教室
// DELETE /draft/:id/classrooms/:classroomId
func (h *DraftHandler) RemoveClassroom(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.draftSvc.RemoveClassroom(c.Request.Context(), userID, c.Param("id"), c.Param("classroomId"))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// AddDivision 追加下一个字母命名的分部并选为激活
// POST /draft/:id/divisions
func (h *DraftHandler) AddDivision(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	d, err := h.draftSvc.AddDivision(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// RemoveDivision 按下标移除分部（最后一个不可移除）
// DELETE /draft/:id/divisions/:index
func (h *DraftHandler) RemoveDivision(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, 10001, "下标必须为整数")
		return
	}

	d, err := h.draftSvc.RemoveDivision(c.Request.Context(), userID, c.Param("id"), index)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// SetActiveDivision 切换激活分部（越界时收拢而非报错）
// PUT /draft/:id/divisions/active
func (h *DraftHandler) SetActiveDivision(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.SetActiveDivisionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.SetActiveDivision(c.Request.Context(), userID, c.Param("id"), req.Index)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// AddSubject 向激活分部添加科目
// POST /draft/:id/subjects
func (h *DraftHandler) AddSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	var req dto.AddSubjectRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.BadRequest(c, 10001, "参数校验失败")
		return
	}

	d, err := h.draftSvc.AddSubject(c.Request.Context(), userID, c.Param("id"), &req)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// RemoveSubject 按位置移除激活分部的科目
// DELETE /draft/:id/subjects/:index
func (h *DraftHandler) RemoveSubject(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	index, err := strconv.Atoi(c.Param("index"))
	if err != nil {
		response.BadRequest(c, 10001, "下标必须为整数")
		return
	}

	d, err := h.draftSvc.RemoveSubject(c.Request.Context(), userID, c.Param("id"), index)
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.OK(c, draftView(d))
}

// Generate 把草稿提交给生成服务并持久化为正式课表
// POST /draft/:id/generate
func (h *DraftHandler) Generate(c *gin.Context) {
	userID, ok := MustGetUserID(c)
	if !ok {
		return
	}

	t, err := h.draftSvc.Generate(c.Request.Context(), userID, c.Param("id"))
	if err != nil {
		writeDraftError(c, err)
		return
	}

	response.Created(c, t)
}

// draftView 草稿完整视图
func draftView(d *model.Draft) *dto.DraftResponse {
	return &dto.DraftResponse{
		DraftID:        d.DraftID,
		Metadata:       d.Metadata,
		Divisions:      d.Divisions,
		Lecturers:      d.Lecturers,
		Classrooms:     d.Classrooms,
		ActiveDivision: d.ActiveDivision,
	}
}

// writeDraftError 草稿模块统一错误映射
func writeDraftError(c *gin.Context, err error) {
	var te *service.TransportError
	switch {
	case errors.Is(err, service.ErrDraftNotFound):
		response.NotFound(c, 13001, "草稿不存在")
	case errors.Is(err, service.ErrTimetableNotFound):
		response.NotFound(c, 12001, "课表不存在")
	case errors.Is(err, schedule.ErrLecturerExists),
		errors.Is(err, schedule.ErrClassroomExists),
		errors.Is(err, schedule.ErrLastDivision):
		response.Conflict(c, 13002, err.Error())
	case errors.Is(err, schedule.ErrLecturerInvalid),
		errors.Is(err, schedule.ErrClassroomInvalid),
		errors.Is(err, schedule.ErrSubjectInvalid),
		errors.Is(err, schedule.ErrDivisionIndex),
		errors.Is(err, schedule.ErrSubjectIndex):
		response.BadRequest(c, 13003, err.Error())
	case errors.As(err, &te):
		response.BadGateway(c, 12003, "生成服务调用失败", te.Detail)
	default:
		response.InternalError(c)
	}
}

// [自证通过] internal/api/handler/draft_handler.go
