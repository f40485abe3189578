package controller

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"

	"pwnpath_backend/internal/service"
	"pwnpath_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ProjectController struct {
	ProjectService *service.ProjectService
}

func NewProjectController(projectService *service.ProjectService) *ProjectController {
	return &ProjectController{ProjectService: projectService}
}

type ProjectSubmitRequest struct {
	RepoURL string `json:"repoUrl" binding:"required"`
	WriteUp string `json:"writeUp"`
}

// @Summary 项目列表
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/projects [get]
func (c *ProjectController) List(ctx *gin.Context) {
	projects, err := c.ProjectService.List()
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, projects)
}

// @Summary 项目详情
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目 ID"
// @Success 200 {object} util.Response
// @Router /api/projects/{id} [get]
func (c *ProjectController) Get(ctx *gin.Context) {
	id, err := strconv.ParseUint(ctx.Param("id"), 10, 64)
	if err != nil {
		util.BadRequest(ctx, "id 必须为整数")
		return
	}
	project, err := c.ProjectService.Get(uint(id))
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, project)
}

// @Summary 提交项目
// @Tags 项目
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目 ID"
// @Param request body ProjectSubmitRequest true "提交内容"
// @Success 201 {object} util.Response
// @Router /api/projects/{id}/submit [post]
func (c *ProjectController) Submit(ctx *gin.Context) {
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

	var req ProjectSubmitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.ProjectService.Submit(claims.UserID, uint(id), req.RepoURL, req.WriteUp)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Created(ctx, sub)
}

// @Summary 上传演示视频
// @Description 视频先落临时目录，探测时长后转存对象存储
// @Tags 项目
// @Accept multipart/form-data
// @Produce json
// @Security BearerAuth
// @Param id path int true "项目 ID"
// @Param video formData file true "演示视频"
// @Success 200 {object} util.Response
// @Router /api/projects/{id}/demo-video [post]
func (c *ProjectController) UploadDemoVideo(ctx *gin.Context) {
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

	file, err := ctx.FormFile("video")
	if err != nil {
		util.BadRequest(ctx, "缺少视频文件")
		return
	}

	subs, err := c.ProjectService.Submissions(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	var target *int
	for i := range subs {
		if subs[i].ProjectID == uint(id) {
			target = &i
			break
		}
	}
	if target == nil {
		util.BadRequest(ctx, "请先提交项目再上传演示视频")
		return
	}

	tmpPath := filepath.Join(os.TempDir(), fmt.Sprintf("demo_%d_%d%s", claims.UserID, id, filepath.Ext(file.Filename)))
	if err := ctx.SaveUploadedFile(file, tmpPath); err != nil {
		util.LogInternalError(ctx, err)
		return
	}
	defer os.Remove(tmpPath)

	sub := &subs[*target]
	if err := c.ProjectService.AttachDemoVideo(ctx.Request.Context(), sub, tmpPath); err != nil {
		util.BadRequest(ctx, "视频处理失败")
		return
	}
	util.Success(ctx, sub)
}

// @Summary 我的项目提交
// @Tags 项目
// @Produce json
// @Security BearerAuth
// @Success 200 {object} util.Response
// @Router /api/projects/submissions [get]
func (c *ProjectController) Submissions(ctx *gin.Context) {
	claims := util.GetUserFromContext(ctx)
	if claims == nil {
		util.Unauthorized(ctx)
		return
	}
	subs, err := c.ProjectService.Submissions(claims.UserID)
	if err != nil {
		util.FromError(ctx, err)
		return
	}
	util.Success(ctx, subs)
}
