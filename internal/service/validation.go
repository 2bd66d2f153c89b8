package service

import (
	"regexp"
	"sort"

	"heatcurve_backend/internal/model"
	"heatcurve_backend/internal/util"
)

// 时间与温度的录入范围，与前端表格的列约束保持一致
const (
	MinTimeMinutes = 0
	MaxTimeMinutes = 60
	MinTemperature = -20.0
	MaxTemperature = 150.0
)

var studentIDPattern = regexp.MustCompile(`^\d{5}$`)

// SubmissionRow 学生表格的一行。指针字段用于区分"填了 0"和"没填"：
// 请求里缺失或为 null 的单元格会落成 nil。
type SubmissionRow struct {
	Time        *int     `json:"time"`
	Temperature *float64 `json:"temperature"`
}

// ValidateSubmission 按固定顺序校验，一旦失败立即返回：
// 学号格式 → 空单元格 → 时间范围 → 温度范围。
// 通过后返回按时间升序稳定排序的点列，该输出就是持久化的输入。
func ValidateSubmission(studentID string, rows []SubmissionRow) ([]model.Point, error) {
	if !studentIDPattern.MatchString(studentID) {
		return nil, util.ErrInvalidStudentID
	}

	if len(rows) == 0 {
		return nil, util.ErrIncompleteTable
	}
	for _, row := range rows {
		if row.Time == nil || row.Temperature == nil {
			return nil, util.ErrIncompleteTable
		}
	}

	for _, row := range rows {
		if *row.Time < MinTimeMinutes || *row.Time > MaxTimeMinutes {
			return nil, util.ErrOutOfRange
		}
	}
	for _, row := range rows {
		if *row.Temperature < MinTemperature || *row.Temperature > MaxTemperature {
			return nil, util.ErrOutOfRange
		}
	}

	points := make([]model.Point, len(rows))
	for i, row := range rows {
		points[i] = model.Point{Time: *row.Time, Temperature: *row.Temperature}
	}

	// 稳定排序：相同时间的点保持输入顺序。重复时间原样通过，不去重。
	sort.SliceStable(points, func(i, j int) bool {
		return points[i].Time < points[j].Time
	})

	return points, nil
}
