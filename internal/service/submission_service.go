package service

import (
	"bytes"
	"context"
	"encoding/json"
	"strings"
	"time"

	"heatcurve_backend/internal/model"
	"heatcurve_backend/internal/util"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/logger"
	"heatcurve_backend/pkg/monitoring"

	"github.com/google/uuid"
	"go.uber.org/zap"
)

// StudentLookup 名册查询，由 repository.StudentRepository 实现
type StudentLookup interface {
	Exists(id string) (bool, error)
}

// SubmissionStore 提交写入，由 repository.SubmissionRepository 实现
type SubmissionStore interface {
	Upsert(sub *model.Submission) error
}

type SubmissionService struct {
	Students    StudentLookup
	Submissions SubmissionStore
	Status      *StatusService
	Cache       cache.Cache
	ActivityID  string
}

func NewSubmissionService(students StudentLookup, submissions SubmissionStore, status *StatusService, c cache.Cache, activityID string) *SubmissionService {
	return &SubmissionService{
		Students:    students,
		Submissions: submissions,
		Status:      status,
		Cache:       c,
		ActivityID:  activityID,
	}
}

// EncodePoints 将校验通过的点列编码为存储载荷。
// 非 ASCII 字符按字面量写入，不做 HTML 转义，读写两侧字段名必须一致。
func EncodePoints(points []model.Point) (string, error) {
	var buf bytes.Buffer
	enc := json.NewEncoder(&buf)
	enc.SetEscapeHTML(false)
	if err := enc.Encode(points); err != nil {
		return "", err
	}
	return strings.TrimRight(buf.String(), "\n"), nil
}

// DecodePoints 从存储载荷还原点列
func DecodePoints(payload string) ([]model.Point, error) {
	var points []model.Point
	if err := json.Unmarshal([]byte(payload), &points); err != nil {
		return nil, err
	}
	return points, nil
}

// Submit 学生提交入口：校验 → 离线闸门 → 名册核对 → 覆盖写入 → 缓存失效。
// 返回回执号。任何失败都不会自动重试，由学生重新提交。
func (s *SubmissionService) Submit(ctx context.Context, studentID string, rows []SubmissionRow) (*model.Submission, error) {
	points, err := ValidateSubmission(studentID, rows)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, err
	}

	// OFFLINE 时不发起任何网络调用，明确拒绝而不是静默丢弃
	if !s.Status.Current().Online {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrDatabaseOffline
	}

	known, err := s.Students.Exists(studentID)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("failed").Inc()
		return nil, err
	}
	if !known {
		monitoring.SubmissionCounter.WithLabelValues("rejected").Inc()
		return nil, util.ErrUnknownStudent
	}

	payload, err := EncodePoints(points)
	if err != nil {
		monitoring.SubmissionCounter.WithLabelValues("failed").Inc()
		return nil, err
	}

	sub := &model.Submission{
		ActivityID:  s.ActivityID,
		StudentID:   studentID,
		DataJSON:    payload,
		Receipt:     uuid.New().String(),
		SubmittedAt: time.Now(),
	}

	if err := s.Submissions.Upsert(sub); err != nil {
		monitoring.SubmissionCounter.WithLabelValues("failed").Inc()
		logger.Log.Error("submission upsert failed",
			zap.String("studentId", studentID), zap.Error(err))
		return nil, err
	}

	// 写入成功后失效读缓存，后续读取必须看到新数据
	s.Cache.Del(ctx, submissionsCacheKey(s.ActivityID))

	monitoring.SubmissionCounter.WithLabelValues("accepted").Inc()
	logger.Log.Info("submission stored",
		zap.String("activityId", s.ActivityID),
		zap.String("studentId", studentID),
		zap.Int("points", len(points)))
	return sub, nil
}

func submissionsCacheKey(activityID string) string {
	return "heatcurve:submissions:" + activityID
}
