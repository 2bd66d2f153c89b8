package repository

import (
	"heatcurve_backend/internal/model"
	"heatcurve_backend/pkg/database"
)

// StudentRepository 名册查询。students 表由外部流程维护，本系统只读。
type StudentRepository struct {
	Handle *database.Handle
}

func NewStudentRepository(h *database.Handle) *StudentRepository {
	return &StudentRepository{Handle: h}
}

// Exists 判断学号是否登记在名册中
func (r *StudentRepository) Exists(id string) (bool, error) {
	var count int64
	err := r.Handle.DB().Model(&model.Student{}).Where("id = ?", id).Count(&count).Error
	if err != nil {
		return false, err
	}
	return count > 0, nil
}

func (r *StudentRepository) FindByID(id string) (*model.Student, error) {
	var student model.Student
	err := r.Handle.DB().Where("id = ?", id).First(&student).Error
	if err != nil {
		return nil, err
	}
	return &student, nil
}
