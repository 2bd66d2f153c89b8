package controller

import (
	"net/http"

	"heatcurve_backend/internal/model"
	"heatcurve_backend/internal/service"
	"heatcurve_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type ExportController struct {
	DashboardService *service.DashboardService
	ExportService    *service.ExportService
}

func NewExportController(dashboardService *service.DashboardService, exportService *service.ExportService) *ExportController {
	return &ExportController{
		DashboardService: dashboardService,
		ExportService:    exportService,
	}
}

// @Summary 导出学生数据为 CSV
// @Description UTF-8 带 BOM，文件名 <activity_id>_<student_id>.csv
// @Tags 导出
// @Produce text/csv
// @Param studentId path string true "学号"
// @Success 200 {file} file
// @Failure 404 {object} util.Response
// @Router /submissions/{studentId}/export [get]
func (c *ExportController) ExportCSV(ctx *gin.Context) {
	view, err := c.findView(ctx)
	if view == nil || err != nil {
		return
	}

	data, err := c.ExportService.BuildCSV(view)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := c.ExportService.CSVFilename(view.StudentID)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "text/csv; charset=utf-8", data)
}

// @Summary 导出学生数据为 XLSX
// @Tags 导出
// @Produce application/vnd.openxmlformats-officedocument.spreadsheetml.sheet
// @Param studentId path string true "学号"
// @Success 200 {file} file
// @Failure 404 {object} util.Response
// @Router /submissions/{studentId}/export.xlsx [get]
func (c *ExportController) ExportXLSX(ctx *gin.Context) {
	view, err := c.findView(ctx)
	if view == nil || err != nil {
		return
	}

	data, err := c.ExportService.BuildXLSX(view)
	if err != nil {
		util.LogInternalError(ctx, err)
		return
	}

	filename := c.ExportService.XLSXFilename(view.StudentID)
	ctx.Header("Content-Disposition", `attachment; filename="`+filename+`"`)
	ctx.Data(http.StatusOK, "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet", data)
}

// findView 定位学生提交；未找到或读取失败时已写出响应并返回 nil/err
func (c *ExportController) findView(ctx *gin.Context) (*model.SubmissionView, error) {
	studentID := ctx.Param("studentId")

	v, err := c.DashboardService.FindStudent(ctx.Request.Context(), studentID)
	if err != nil {
		util.Error(ctx, http.StatusServiceUnavailable, err.Error())
		return nil, err
	}
	if v == nil {
		util.NotFound(ctx)
		return nil, nil
	}
	return v, nil
}
