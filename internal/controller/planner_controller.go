package controller

import (
	"strconv"

	"pwnpath_backend/internal/model"
	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type PlannerController struct {
	PlannerService *service.PlannerService
}

func NewPlannerController(plannerService *service.PlannerService) *PlannerController {
	return &PlannerController{PlannerService: plannerService}
}

type SessionRequest struct {
	StartTime   string `json:"startTime" binding:"required"`
	EndTime     string `json:"endTime" binding:"required"`
	Activity    string `json:"activity" binding:"required"`
	Description string `json:"description" binding:"required"`
	ResourceURL string `json:"resourceUrl"`
	Notes       string `json:"notes"`
}

type TotalHoursRequest struct {
	TotalHours float64 `json:"totalHours"`
}

type planResponse struct {
	*model.DailyPlan
	PlannedHours   float64 `json:"plannedHours"`
	CompletedHours float64 `json:"completedHours"`
}

func planPayload(plan *model.DailyPlan) planResponse {
	return planResponse{
		DailyPlan:      plan,
		PlannedHours:   service.PlannedHours(plan),
		CompletedHours: service.CompletedHours(plan),
	}
}

// @Summary 当日学习计划
// @Description 任意日期都返回计划，未创建的返回空会话列表
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/daily-plan/{date} [get]
func (c *PlannerController) GetDailyPlan(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	plan, err := c.PlannerService.GetDailyPlan(claims.UserID, ctx.Param("date"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, planPayload(plan))
}

// @Summary 添加学习会话
// @Tags 计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Param request body SessionRequest true "会话内容"
// @Success 201 {object} util.Response
// @Router /api/daily-plan/{date}/sessions [post]
func (c *PlannerController) AddSession(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req SessionRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.PlannerService.AddSession(claims.UserID, ctx.Param("date"), model.StudySession{
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		Activity:    req.Activity,
		Description: req.Description,
		ResourceURL: req.ResourceURL,
		Notes:       req.Notes,
	})
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, planPayload(plan))
}

// @Summary 更新学习会话
// @Description 按位置部分更新，缺省字段不变
// @Tags 计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Param index path int true "会话位置"
// @Param request body service.SessionPatch true "更新内容"
// @Success 200 {object} util.Response
// @Router /api/daily-plan/{date}/sessions/{index} [put]
func (c *PlannerController) UpdateSession(ctx *gin.Context) {
	claims, index, ok := c.sessionParams(ctx)
	if !ok {
		return
	}

	var patch service.SessionPatch
	if err := ctx.ShouldBindJSON(&patch); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.PlannerService.UpdateSession(claims.UserID, ctx.Param("date"), index, patch)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, planPayload(plan))
}

// @Summary 删除学习会话
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Param index path int true "会话位置"
// @Success 200 {object} util.Response
// @Router /api/daily-plan/{date}/sessions/{index} [delete]
func (c *PlannerController) DeleteSession(ctx *gin.Context) {
	claims, index, ok := c.sessionParams(ctx)
	if !ok {
		return
	}
	plan, err := c.PlannerService.DeleteSession(claims.UserID, ctx.Param("date"), index)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, planPayload(plan))
}

// @Summary 切换会话完成状态
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Param index path int true "会话位置"
// @Success 200 {object} util.Response
// @Router /api/daily-plan/{date}/sessions/{index}/toggle [post]
func (c *PlannerController) ToggleSession(ctx *gin.Context) {
	claims, index, ok := c.sessionParams(ctx)
	if !ok {
		return
	}
	plan, err := c.PlannerService.ToggleSession(claims.UserID, ctx.Param("date"), index)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, planPayload(plan))
}

// @Summary 设置当日目标小时数
// @Tags 计划
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param date path string true "日期 YYYY-MM-DD"
// @Param request body TotalHoursRequest true "目标小时数"
// @Success 200 {object} util.Response
// @Router /api/daily-plan/{date}/total-hours [put]
func (c *PlannerController) SetTotalHours(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}

	var req TotalHoursRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	plan, err := c.PlannerService.SetTotalHours(claims.UserID, ctx.Param("date"), req.TotalHours)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, planPayload(plan))
}

// @Summary 日期区间内的计划
// @Tags 计划
// @Produce json
// @Security BearerAuth
// @Param from query string true "起始日期 YYYY-MM-DD"
// @Param to query string true "结束日期 YYYY-MM-DD"
// @Success 200 {object} util.Response
// @Router /api/daily-plan [get]
func (c *PlannerController) GetPlansBetween(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	plans, err := c.PlannerService.GetPlansBetween(claims.UserID, ctx.Query("from"), ctx.Query("to"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, plans)
}

func (c *PlannerController) sessionParams(ctx *gin.Context) (*util.Claims, int, bool) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return nil, 0, false
	}
	index, err := strconv.Atoi(ctx.Param("index"))
	if err != nil {
		util.BadRequest(ctx, "index 必须为整数")
		return nil, 0, false
	}
	return claims, index, true
}
