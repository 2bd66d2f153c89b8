package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"heatcurve_backend/internal/model"
	"heatcurve_backend/pkg/cache"
)

type fakeLister struct {
	records []model.SubmissionRecord
	err     error
	calls   int
}

func (f *fakeLister) ListByActivity(activityID string) ([]model.SubmissionRecord, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.records, nil
}

func record(id, name string, grade, class int, payload string) model.SubmissionRecord {
	return model.SubmissionRecord{
		StudentID:   id,
		Name:        name,
		Grade:       grade,
		Class:       class,
		SubmittedAt: time.Date(2025, 9, 1, 10, 0, 0, 0, time.UTC),
		Receipt:     "r-" + id,
		DataJSON:    payload,
	}
}

func newTestDashboardService(lister *fakeLister, online bool, c cache.Cache) *DashboardService {
	return &DashboardService{
		Submissions: lister,
		Status:      statusWith(online, "not configured"),
		Cache:       c,
		ActivityID:  testActivity,
		CacheTTL:    5 * time.Second,
	}
}

func TestLoadAllDecodesPayloads(t *testing.T) {
	lister := &fakeLister{records: []model.SubmissionRecord{
		record("10130", "김하늘", 1, 1, `[{"time":0,"temperature":20},{"time":1,"temperature":18.5}]`),
	}}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	views, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("expected success, got %v", err)
	}
	if len(views) != 1 {
		t.Fatalf("expected 1 view, got %d", len(views))
	}
	v := views[0]
	if v.Name != "김하늘" || v.Grade != 1 || v.Class != 1 {
		t.Fatalf("roster fields lost: %+v", v)
	}
	if len(v.Points) != 2 || v.Points[1] != (model.Point{Time: 1, Temperature: 18.5}) {
		t.Fatalf("payload decode mismatch: %+v", v.Points)
	}
}

func TestLoadAllServesFromCacheWithinTTL(t *testing.T) {
	lister := &fakeLister{records: []model.SubmissionRecord{
		record("10130", "김하늘", 1, 1, `[{"time":0,"temperature":20}]`),
	}}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	ctx := context.Background()
	if _, err := svc.LoadAll(ctx); err != nil {
		t.Fatalf("first load: %v", err)
	}
	if _, err := svc.LoadAll(ctx); err != nil {
		t.Fatalf("second load: %v", err)
	}

	if lister.calls != 1 {
		t.Fatalf("second read within TTL must hit the cache, repository called %d times", lister.calls)
	}
}

func TestLoadAllOfflineReturnsEmptyWithoutError(t *testing.T) {
	lister := &fakeLister{}
	svc := newTestDashboardService(lister, false, cache.NewMemoryCache())

	views, err := svc.LoadAll(context.Background())
	if err != nil {
		t.Fatalf("offline load must not error, got %v", err)
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list, got %d", len(views))
	}
	if lister.calls != 0 {
		t.Fatal("offline load must not reach the repository")
	}
}

func TestLoadAllQueryFailureReturnsEmptyPlusError(t *testing.T) {
	lister := &fakeLister{err: errors.New("table gone")}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	views, err := svc.LoadAll(context.Background())
	if err == nil {
		t.Fatal("expected a displayable error")
	}
	if views == nil || len(views) != 0 {
		t.Fatalf("expected empty (non-nil) list, got %v", views)
	}
}

func TestLoadAllMalformedPayloadReturnsEmptyPlusError(t *testing.T) {
	lister := &fakeLister{records: []model.SubmissionRecord{
		record("10130", "김하늘", 1, 1, `{not json`),
	}}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	views, err := svc.LoadAll(context.Background())
	if err == nil {
		t.Fatal("expected a decode error")
	}
	if len(views) != 0 {
		t.Fatalf("expected empty list, got %d views", len(views))
	}
}

func TestGroupedOrdersByGradeThenClass(t *testing.T) {
	lister := &fakeLister{records: []model.SubmissionRecord{
		record("10101", "a", 1, 1, `[{"time":0,"temperature":20}]`),
		record("10201", "b", 1, 2, `[{"time":0,"temperature":20}]`),
		record("20101", "c", 2, 1, `[{"time":0,"temperature":20}]`),
		record("10102", "d", 1, 1, `[{"time":0,"temperature":20}]`),
	}}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	groups, err := svc.Grouped(context.Background())
	if err != nil {
		t.Fatalf("grouped: %v", err)
	}

	if len(groups) != 3 {
		t.Fatalf("expected 3 groups, got %d", len(groups))
	}
	if groups[0].Grade != 1 || groups[0].Class != 1 || len(groups[0].Submissions) != 2 {
		t.Fatalf("unexpected first group: %+v", groups[0])
	}
	if groups[1].Grade != 1 || groups[1].Class != 2 {
		t.Fatalf("unexpected second group: %+v", groups[1])
	}
	if groups[2].Grade != 2 || groups[2].Class != 1 {
		t.Fatalf("unexpected third group: %+v", groups[2])
	}
	// 组内顺序沿用仓库层的学号升序
	if groups[0].Submissions[0].StudentID != "10101" || groups[0].Submissions[1].StudentID != "10102" {
		t.Fatalf("in-group order must follow student id: %+v", groups[0].Submissions)
	}
}

func TestFindStudent(t *testing.T) {
	lister := &fakeLister{records: []model.SubmissionRecord{
		record("10130", "김하늘", 1, 1, `[{"time":0,"temperature":20}]`),
	}}
	svc := newTestDashboardService(lister, true, cache.NewMemoryCache())

	view, err := svc.FindStudent(context.Background(), "10130")
	if err != nil || view == nil {
		t.Fatalf("expected hit, got view=%v err=%v", view, err)
	}

	missing, err := svc.FindStudent(context.Background(), "99999")
	if err != nil {
		t.Fatalf("miss must not error: %v", err)
	}
	if missing != nil {
		t.Fatal("expected nil for a student without a submission")
	}
}
