package controller

import (
	"strconv"

	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type CurriculumController struct {
	CurriculumService *service.CurriculumService
	ProgressService   *service.ProgressService
}

func NewCurriculumController(curriculumService *service.CurriculumService, progressService *service.ProgressService) *CurriculumController {
	return &CurriculumController{
		CurriculumService: curriculumService,
		ProgressService:   progressService,
	}
}

// @Summary 课程目录
// @Description 全部阶段及课时，按阶段顺序排列
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/curriculum [get]
func (c *CurriculumController) ListPhases(ctx *gin.Context) {
	phases, err := c.CurriculumService.ListPhases(ctx.Request.Context())
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, phases)
}

// @Summary 阶段详情
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Success 200 {object} util.Response
// @Router /api/curriculum/{phase} [get]
func (c *CurriculumController) GetPhase(ctx *gin.Context) {
	phase, err := c.CurriculumService.GetPhase(ctx.Request.Context(), ctx.Param("phase"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, phase)
}

// @Summary 阶段解锁状态
// @Description 各阶段的完成度与解锁状态，第一阶段始终解锁
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/curriculum/states [get]
func (c *CurriculumController) PhaseStates(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	states, err := c.ProgressService.PhaseStates(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, states)
}

// @Summary 课时详情
// @Tags 课程
// @Produce json
// @Security BearerAuth
// @Param phase path string true "阶段标识"
// @Param day path int true "天"
// @Param hour path int true "小时"
// @Success 200 {object} util.Response
// @Router /api/curriculum/{phase}/{day}/{hour} [get]
func (c *CurriculumController) GetLesson(ctx *gin.Context) {
	day, err := strconv.Atoi(ctx.Param("day"))
	if err != nil {
		util.BadRequest(ctx, "day 必须为整数")
		return
	}
	hour, err := strconv.Atoi(ctx.Param("hour"))
	if err != nil {
		util.BadRequest(ctx, "hour 必须为整数")
		return
	}

	lesson, err := c.CurriculumService.GetLesson(ctx.Request.Context(), ctx.Param("phase"), day, hour)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, lesson)
}
