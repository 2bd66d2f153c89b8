package service

import (
	"heatcurve_backend/internal/config"
	"heatcurve_backend/internal/util"

	"golang.org/x/crypto/bcrypt"
)

// AuthService 教师入口：凭访问码换取 JWT。
// 学生提交不需要登录，与原始课堂流程一致。
type AuthService struct {
	Config *config.Config
}

func NewAuthService(cfg *config.Config) *AuthService {
	return &AuthService{Config: cfg}
}

// TeacherLogin 校验访问码并签发教师令牌。
// 未配置访问码哈希时教师接口整体关闭。
func (s *AuthService) TeacherLogin(accessCode string) (string, error) {
	hash := s.Config.Teacher.AccessCodeHash
	if hash == "" {
		return "", util.ErrLoginDisabled
	}

	if err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(accessCode)); err != nil {
		return "", util.ErrAccessCodeWrong
	}

	return util.GenerateJWT(util.RoleTeacher, s.Config.JWT.Secret, s.Config.JWT.ExpireTime)
}
