package controller

import (
	"strconv"

	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ChallengeController struct {
	ChallengeService *service.ChallengeService
}

func NewChallengeController(challengeService *service.ChallengeService) *ChallengeController {
	return &ChallengeController{ChallengeService: challengeService}
}

type FlagSubmitRequest struct {
	Flag string `json:"flag" binding:"required"`
}

// @Summary 题目列表
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param category query string false "题目分类"
// @Success 200 {object} util.Response
// @Router /api/challenges [get]
func (c *ChallengeController) List(ctx *gin.Context) {
	challenges, err := c.ChallengeService.List(ctx.Query("category"))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, challenges)
}

// @Summary 题目详情
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目 ID"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id} [get]
func (c *ChallengeController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "id 必须为整数")
		return
	}
	challenge, err := c.ChallengeService.Get(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, challenge)
}

// @Summary 提交 flag
// @Tags 题目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "题目 ID"
// @Param request body FlagSubmitRequest true "flag"
// @Success 200 {object} util.Response
// @Router /api/challenges/{id}/submit [post]
func (c *ChallengeController) SubmitFlag(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "id 必须为整数")
		return
	}

	var req FlagSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	result, err := c.ChallengeService.SubmitFlag(claims.UserID, uint(id), req.Flag)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, result)
}

// @Summary 题目统计
// @Tags 题目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/challenges/stats [get]
func (c *ChallengeController) Stats(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	stats, err := c.ChallengeService.Stats(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, stats)
}
