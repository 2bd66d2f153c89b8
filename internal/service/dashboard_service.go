package service

import (
	"context"
	"encoding/json"
	"sort"
	"time"

	"heatcurve_backend/internal/model"
	"heatcurve_backend/pkg/cache"
	"heatcurve_backend/pkg/logger"

	"go.uber.org/zap"
)

// SubmissionLister 提交读取，由 repository.SubmissionRepository 实现
type SubmissionLister interface {
	ListByActivity(activityID string) ([]model.SubmissionRecord, error)
}

// ClassGroup 仪表盘分组：同年级同班的学生提交
type ClassGroup struct {
	Grade       int                    `json:"grade"`
	Class       int                    `json:"class"`
	Submissions []model.SubmissionView `json:"submissions"`
}

type DashboardService struct {
	Submissions SubmissionLister
	Status      *StatusService
	Cache       cache.Cache
	ActivityID  string
	CacheTTL    time.Duration
}

func NewDashboardService(submissions SubmissionLister, status *StatusService, c cache.Cache, activityID string, ttl time.Duration) *DashboardService {
	return &DashboardService{
		Submissions: submissions,
		Status:      status,
		Cache:       c,
		ActivityID:  activityID,
		CacheTTL:    ttl,
	}
}

// LoadAll 取出当前活动的全部提交（含名册信息，按学号升序）。
// OFFLINE 时返回空列表且无错误；查询或解码失败返回空列表加可展示的错误，
// 调用方据此渲染空态而不是崩溃。结果短暂缓存以承受多名教师同时刷看。
func (s *DashboardService) LoadAll(ctx context.Context) ([]model.SubmissionView, error) {
	if !s.Status.Current().Online {
		return []model.SubmissionView{}, nil
	}

	key := submissionsCacheKey(s.ActivityID)
	if cached, ok := s.Cache.Get(ctx, key); ok {
		var views []model.SubmissionView
		if err := json.Unmarshal([]byte(cached), &views); err == nil {
			return views, nil
		}
		// 缓存内容损坏时丢弃并回源
		s.Cache.Del(ctx, key)
	}

	records, err := s.Submissions.ListByActivity(s.ActivityID)
	if err != nil {
		logger.Log.Warn("submission load failed", zap.Error(err))
		return []model.SubmissionView{}, err
	}

	views := make([]model.SubmissionView, 0, len(records))
	for _, rec := range records {
		points, err := DecodePoints(rec.DataJSON)
		if err != nil {
			logger.Log.Warn("submission payload decode failed",
				zap.String("studentId", rec.StudentID), zap.Error(err))
			return []model.SubmissionView{}, err
		}
		views = append(views, model.SubmissionView{
			StudentID:   rec.StudentID,
			Name:        rec.Name,
			Grade:       rec.Grade,
			Class:       rec.Class,
			SubmittedAt: rec.SubmittedAt,
			Receipt:     rec.Receipt,
			Points:      points,
		})
	}

	if data, err := json.Marshal(views); err == nil {
		s.Cache.Set(ctx, key, string(data), s.CacheTTL)
	}

	return views, nil
}

// Grouped 按年级、班级分组，组内按学号升序（SQL 已保证）
func (s *DashboardService) Grouped(ctx context.Context) ([]ClassGroup, error) {
	views, err := s.LoadAll(ctx)
	if err != nil {
		return []ClassGroup{}, err
	}

	type gradeClass struct{ grade, class int }
	index := make(map[gradeClass]int)
	groups := make([]ClassGroup, 0)

	for _, v := range views {
		key := gradeClass{v.Grade, v.Class}
		i, ok := index[key]
		if !ok {
			i = len(groups)
			index[key] = i
			groups = append(groups, ClassGroup{Grade: v.Grade, Class: v.Class})
		}
		groups[i].Submissions = append(groups[i].Submissions, v)
	}

	sort.Slice(groups, func(i, j int) bool {
		if groups[i].Grade != groups[j].Grade {
			return groups[i].Grade < groups[j].Grade
		}
		return groups[i].Class < groups[j].Class
	})

	return groups, nil
}

// FindStudent 学生详情视图；未提交时返回 nil
func (s *DashboardService) FindStudent(ctx context.Context, studentID string) (*model.SubmissionView, error) {
	views, err := s.LoadAll(ctx)
	if err != nil {
		return nil, err
	}
	for i := range views {
		if views[i].StudentID == studentID {
			return &views[i], nil
		}
	}
	return nil, nil
}
