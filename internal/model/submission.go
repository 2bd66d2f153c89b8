package model

import "time"

// Point 一条测量记录：时间（分）与温度（°C）。
// JSON 字段名即存储载荷的字段名，读写两侧必须完全一致。
type Point struct {
	Time        int     `json:"time"`
	Temperature float64 `json:"temperature"`
}

// Submission 一名学生在一次活动中的完整提交。
// (activity_id, student_id) 为唯一键；重复提交原地覆盖，不保留历史。
// swagger:model Submission
type Submission struct {
	ActivityID  string    `gorm:"primaryKey;size:64;column:activity_id" json:"activityId"`
	StudentID   string    `gorm:"primaryKey;size:5;column:student_id" json:"studentId"`
	DataJSON    string    `gorm:"type:json;not null;column:data_json" json:"-"`
	Receipt     string    `gorm:"size:36;not null" json:"receipt"`
	SubmittedAt time.Time `gorm:"not null" json:"submittedAt"`
}

func (Submission) TableName() string {
	return "submissions"
}

// SubmissionRecord 提交与名册 JOIN 后的原始行，data_json 尚未解码
type SubmissionRecord struct {
	StudentID   string    `gorm:"column:student_id"`
	Name        string    `gorm:"column:name"`
	Grade       int       `gorm:"column:grade"`
	Class       int       `gorm:"column:class"`
	SubmittedAt time.Time `gorm:"column:submitted_at"`
	Receipt     string    `gorm:"column:receipt"`
	DataJSON    string    `gorm:"column:data_json"`
}

// SubmissionView 解码后的提交视图，供仪表盘与学生详情使用
type SubmissionView struct {
	StudentID   string    `json:"studentId"`
	Name        string    `json:"name"`
	Grade       int       `json:"grade"`
	Class       int       `json:"class"`
	SubmittedAt time.Time `json:"submittedAt"`
	Receipt     string    `json:"receipt"`
	Points      []Point   `json:"points"`
}
