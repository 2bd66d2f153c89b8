package repository

import (
	"heatcurve_backend/internal/model"
	"heatcurve_backend/pkg/database"

	"gorm.io/gorm/clause"
)

type SubmissionRepository struct {
	Handle *database.Handle
}

func NewSubmissionRepository(h *database.Handle) *SubmissionRepository {
	return &SubmissionRepository{Handle: h}
}

// Upsert 以 (activity_id, student_id) 为键写入提交：
// 不存在则插入，已存在则覆盖载荷并刷新提交时间与回执。不保留历史版本。
func (r *SubmissionRepository) Upsert(sub *model.Submission) error {
	return r.Handle.DB().Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "activity_id"}, {Name: "student_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"data_json", "submitted_at", "receipt",
		}),
	}).Create(sub).Error
}

// ListByActivity 按活动取出全部提交并与名册 JOIN，按学号升序。
// data_json 在这里不解码，由服务层负责。
func (r *SubmissionRepository) ListByActivity(activityID string) ([]model.SubmissionRecord, error) {
	var records []model.SubmissionRecord
	err := r.Handle.DB().
		Table("submissions").
		Select("submissions.student_id, students.name, students.grade, students.class, submissions.submitted_at, submissions.receipt, submissions.data_json").
		Joins("JOIN students ON students.id = submissions.student_id").
		Where("submissions.activity_id = ?", activityID).
		Order("submissions.student_id ASC").
		Scan(&records).Error
	if err != nil {
		return nil, err
	}
	return records, nil
}
