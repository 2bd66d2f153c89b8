package controller

import (
	"errors"
	"net/http"

	"heatcurve_backend/internal/service"
	"heatcurve_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type SubmissionController struct {
	SubmissionService *service.SubmissionService
}

func NewSubmissionController(submissionService *service.SubmissionService) *SubmissionController {
	return &SubmissionController{SubmissionService: submissionService}
}

type submitRequest struct {
	StudentID string                  `json:"studentId"`
	Rows      []service.SubmissionRow `json:"rows"`
}

// @Summary 学生提交时间/温度表
// @Description 校验通过后按 (活动, 学号) 覆盖保存；重复提交刷新提交时间
// @Tags 提交
// @Accept json
// @Produce json
// @Param body body submitRequest true "学号与表格行"
// @Success 201 {object} util.Response
// @Failure 400 {object} util.Response
// @Failure 422 {object} util.Response
// @Failure 503 {object} util.Response
// @Router /submissions [post]
func (c *SubmissionController) Submit(ctx *gin.Context) {
	var req submitRequest
	if err := ctx.ShouldBindJSON(&req); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	sub, err := c.SubmissionService.Submit(ctx.Request.Context(), req.StudentID, req.Rows)
	if err != nil {
		switch {
		case errors.Is(err, util.ErrInvalidStudentID),
			errors.Is(err, util.ErrIncompleteTable),
			errors.Is(err, util.ErrOutOfRange):
			util.BadRequest(ctx, err.Error())
		case errors.Is(err, util.ErrUnknownStudent):
			util.Error(ctx, http.StatusUnprocessableEntity, err.Error())
		case errors.Is(err, util.ErrDatabaseOffline):
			util.ServiceUnavailable(ctx, err.Error())
		default:
			// 写入失败：提交已丢失，提示学生重试（不自动重试）
			util.Error(ctx, http.StatusInternalServerError, "保存失败，请重新提交："+err.Error())
		}
		return
	}

	util.Created(ctx, gin.H{
		"activityId":  sub.ActivityID,
		"studentId":   sub.StudentID,
		"receipt":     sub.Receipt,
		"submittedAt": sub.SubmittedAt,
	})
}
