package controller

import (
	"strconv"

	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AnalyticsController struct {
	AnalyticsService *service.AnalyticsService
}

func NewAnalyticsController(analyticsService *service.AnalyticsService) *AnalyticsController {
	return &AnalyticsController{AnalyticsService: analyticsService}
}

// @Summary 学习分析概览
// @Description 累计时长、课时完成度、本周时长、连续天数等
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analytics/overview [get]
func (c *AnalyticsController) GetOverview(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	overview, err := c.AnalyticsService.Overview(ctx.Request.Context(), claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, overview)
}

// @Summary 学习时长序列
// @Description 以今天为终点的逐日序列，长度等于 period
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Param period query int false "天数，7/30/90" default(30)
// @Success 200 {object} util.Response
// @Router /api/analytics/progress-chart [get]
func (c *AnalyticsController) GetProgressChart(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	period, err := strconv.Atoi(ctx.DefaultQuery("period", "30"))
	if err != nil {
		util.BadRequest(ctx, "period 必须为整数")
		return
	}
	points, err := c.AnalyticsService.ProgressSeries(claims.UserID, period)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, points)
}

// @Summary 连续学习天数
// @Tags 分析
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/analytics/streak [get]
func (c *AnalyticsController) GetStreak(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	streak, err := c.AnalyticsService.Streak(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, streak)
}
