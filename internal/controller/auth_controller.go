package controller

import (
	"errors"
	"net/http"

	"heatcurve_backend/internal/service"
	"heatcurve_backend/internal/util"

	"github.com/gin-gonic/gin"
)

type AuthController struct {
	AuthService *service.AuthService
}

func NewAuthController(authService *service.AuthService) *AuthController {
	return &AuthController{AuthService: authService}
}

// @Summary 教师登录
// @Description 凭访问码换取教师令牌
// @Tags 认证
// @Accept json
// @Produce json
// @Param body body object true "{accessCode}"
// @Success 200 {object} util.Response
// @Router /auth/teacher-login [post]
func (c *AuthController) TeacherLogin(ctx *gin.Context) {
	var body struct {
		AccessCode string `json:"accessCode" binding:"required"`
	}
	if err := ctx.ShouldBindJSON(&body); err != nil {
		util.BadRequest(ctx, err.Error())
		return
	}

	token, err := c.AuthService.TeacherLogin(body.AccessCode)
	if err != nil {
		if errors.Is(err, util.ErrLoginDisabled) {
			util.Error(ctx, http.StatusForbidden, err.Error())
			return
		}
		util.Unauthorized(ctx)
		return
	}

	util.Success(ctx, gin.H{"token": token})
}
