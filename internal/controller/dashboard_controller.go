package controller

import (
	"heatcurve_backend/internal/service"
	"heatcurve_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type DashboardController struct {
	DashboardService *service.DashboardService
}

func NewDashboardController(dashboardService *service.DashboardService) *DashboardController {
	return &DashboardController{DashboardService: dashboardService}
}

// @Summary 仪表盘：按年级/班级分组的全部提交
// @Description 读取失败时返回空分组加警告，不中断页面
// @Tags 仪表盘
// @Produce json
// @Success 200 {object} util.Response
// @Router /submissions [get]
func (c *DashboardController) List(ctx *gin.Context) {
	groups, err := c.DashboardService.Grouped(ctx.Request.Context())

	resp := gin.H{"groups": groups}
	if err != nil {
		// 读取失败是可恢复状态：空态展示 + 警告文案
		resp["warning"] = err.Error()
	}
	util.Success(ctx, resp)
}

// @Summary 单个学生的提交详情
// @Tags 仪表盘
// @Produce json
// @Param studentId path string true "学号"
// @Success 200 {object} util.Response
// @Failure 404 {object} util.Response
// @Router /submissions/{studentId} [get]
func (c *DashboardController) Detail(ctx *gin.Context) {
	studentID := ctx.Param("studentId")

	view, err := c.DashboardService.FindStudent(ctx.Request.Context(), studentID)
	if err != nil {
		util.Success(ctx, gin.H{"submission": nil, "warning": err.Error()})
		return
	}
	if view == nil {
		util.NotFound(ctx)
		return
	}

	util.Success(ctx, gin.H{"submission": view})
}
