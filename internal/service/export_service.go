package service

import (
	"bytes"
	"encoding/csv"
	"fmt"
	"strconv"

	"heatcurve_backend/internal/model"

	"github.com/xuri/excelize/v2"
)

// utf8BOM 开头写入 BOM，Excel 打开 CSV 时才能正确识别 UTF-8
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ExportService 把单个学生的提交导出为可下载文件
type ExportService struct {
	ActivityID string
}

func NewExportService(activityID string) *ExportService {
	return &ExportService{ActivityID: activityID}
}

// CSVFilename 导出文件名固定为 <activity_id>_<student_id>.csv
func (s *ExportService) CSVFilename(studentID string) string {
	return fmt.Sprintf("%s_%s.csv", s.ActivityID, studentID)
}

func (s *ExportService) XLSXFilename(studentID string) string {
	return fmt.Sprintf("%s_%s.xlsx", s.ActivityID, studentID)
}

// BuildCSV 生成带 BOM 的 UTF-8 CSV，两列：time, temperature
func (s *ExportService) BuildCSV(view *model.SubmissionView) ([]byte, error) {
	var buf bytes.Buffer
	buf.Write(utf8BOM)

	w := csv.NewWriter(&buf)
	if err := w.Write([]string{"time", "temperature"}); err != nil {
		return nil, err
	}
	for _, p := range view.Points {
		record := []string{
			strconv.Itoa(p.Time),
			strconv.FormatFloat(p.Temperature, 'f', -1, 64),
		}
		if err := w.Write(record); err != nil {
			return nil, err
		}
	}
	w.Flush()
	if err := w.Error(); err != nil {
		return nil, err
	}

	return buf.Bytes(), nil
}

// BuildXLSX 生成表格版导出，列布局与 CSV 一致
func (s *ExportService) BuildXLSX(view *model.SubmissionView) ([]byte, error) {
	f := excelize.NewFile()
	defer f.Close()

	sheet := f.GetSheetName(0)
	if err := f.SetCellValue(sheet, "A1", "time"); err != nil {
		return nil, err
	}
	if err := f.SetCellValue(sheet, "B1", "temperature"); err != nil {
		return nil, err
	}

	for i, p := range view.Points {
		row := i + 2
		if err := f.SetCellValue(sheet, fmt.Sprintf("A%d", row), p.Time); err != nil {
			return nil, err
		}
		if err := f.SetCellValue(sheet, fmt.Sprintf("B%d", row), p.Temperature); err != nil {
			return nil, err
		}
	}

	buf, err := f.WriteToBuffer()
	if err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}
