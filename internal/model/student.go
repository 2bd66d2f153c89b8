package model

// Student 学生名册，由外部名册流程维护，本系统只读。
// 学号为5位数字，编码了年级、班级和座号（如 10130 = 1年级01班30号）。
// swagger:model Student
type Student struct {
	ID    string `gorm:"primaryKey;size:5" json:"id"`
	Name  string `gorm:"size:64;not null" json:"name"`
	Grade int    `gorm:"not null" json:"grade"`
	Class int    `gorm:"not null" json:"class"`
}

func (Student) TableName() string {
	return "students"
}
