package controller

import (
	"strconv"

	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProgressController struct {
	ProgressService *service.ProgressService
}

func NewProgressController(progressService *service.ProgressService) *ProgressController {
	return &ProgressController{ProgressService: progressService}
}

// ProgressUpdateRequest 部分更新，nil 字段不生效
type ProgressUpdateRequest struct {
	ToggleActivity *string `json:"toggleActivity,omitempty"`
	Notes          *string `json:"notes,omitempty"`
	AddMinutes     *int    `json:"addMinutes,omitempty"`
	Redo           *bool   `json:"redo,omitempty"`
}

type QuizSubmitRequest struct {
	Answers []int `json:"answers" binding:"required"`
}

// @Summary 全部学习进度
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/progress [get]
func (c *ProgressController) GetProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	records, err := c.ProgressService.GetProgress(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, records)
}

// @Summary 课时进度
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Param day path int true "天"
// @Param hour path int true "小时"
// @Success 200 {object} util.Response
// @Router /api/progress/{phase}/{day}/{hour} [get]
func (c *ProgressController) GetRecord(ctx *gin.Context) {
	claims, phase, day, hour, ok := c.lessonParams(ctx)
	if !ok {
		return
	}
	record, err := c.ProgressService.GetRecord(ctx.Request.Context(), claims.UserID, phase, day, hour)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 更新课时进度
// @Description 勾选活动、写笔记、累加时长、标记重做，可组合提交
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Param day path int true "天"
// @Param hour path int true "小时"
// @Param request body ProgressUpdateRequest true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/progress/{phase}/{day}/{hour} [put]
func (c *ProgressController) UpdateRecord(ctx *gin.Context) {
	claims, phase, day, hour, ok := c.lessonParams(ctx)
	if !ok {
		return
	}

	var req ProgressUpdateRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	rctx := ctx.Request.Context()

	if req.Redo != nil && *req.Redo {
		if _, err := c.ProgressService.MarkForRedo(rctx, claims.UserID, phase, day, hour); err != nil {
			util.FromError(ctx, err)
			return
		}
	}
	if req.ToggleActivity != nil {
		if _, err := c.ProgressService.ToggleActivity(rctx, claims.UserID, phase, day, hour, *req.ToggleActivity); err != nil {
			util.FromError(ctx, err)
			return
		}
	}
	if req.Notes != nil {
		if _, err := c.ProgressService.SetNotes(rctx, claims.UserID, phase, day, hour, *req.Notes); err != nil {
			util.FromError(ctx, err)
			return
		}
	}
	if req.AddMinutes != nil {
		if _, err := c.ProgressService.AddTimeSpent(rctx, claims.UserID, phase, day, hour, *req.AddMinutes); err != nil {
			util.FromError(ctx, err)
			return
		}
	}

	record, err := c.ProgressService.GetRecord(rctx, claims.UserID, phase, day, hour)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, record)
}

// @Summary 提交课时测验
// @Tags 进度
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Param day path int true "天"
// @Param hour path int true "小时"
// @Param request body QuizSubmitRequest true "答案下标列表"
// @Success 200 {object} util.Response
// @Router /api/progress/{phase}/{day}/{hour}/quiz [post]
func (c *ProgressController) SubmitQuiz(ctx *gin.Context) {
	claims, phase, day, hour, ok := c.lessonParams(ctx)
	if !ok {
		return
	}

	var req QuizSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ProgressService.SubmitQuiz(ctx.Request.Context(), claims.UserID, phase, day, hour, req.Answers)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 阶段完成度
// @Tags 进度
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Success 200 {object} util.Response
// @Router /api/progress/{phase} [get]
func (c *ProgressController) GetPhaseProgress(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	progress, err := c.ProgressService.GetPhaseProgress(ctx.Request.Context(), claims.UserID, ctx.Param("phase"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, progress)
}

func (c *ProgressController) lessonParams(ctx *gin.Context) (*util.Claims, string, int, int, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, "", 0, 0, false
	}
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day 必须为整数")
		return nil, "", 0, 0, false
	}
	hour, err := strconv.Atoi(ctx.Param("hour"))
	if err != nil {
		util.BadRequest(ctx, "hour 必须为整数")
		return nil, "", 0, 0, false
	}
	return claims, ctx.Param("phase"), day, hour, true
}
