package services

import (
	"errors"
	"testing"
	"time"

	"hrlink-http-service/internal/domain/models"
)

func seedCategory(t *testing.T, svc InterfaceCalendarService, name string) *models.EventCategory {
	t.Helper()
	category := &models.EventCategory{Name: name, Color: "#3788d8"}
	if err := svc.CreateCategory(category); err != nil {
		t.Fatalf("创建分类失败: %v", err)
	}
	return category
}

func TestDeleteCategoryInUse(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, testConfig())
	category := seedCategory(t, svc, "公司假日")

	start := time.Date(2026, 10, 1, 0, 0, 0, 0, time.UTC)
	if _, err := svc.CreateEvent(&EventInput{
		Title:      "国庆节",
		CategoryID: category.ID,
		StartAt:    start,
		EndAt:      start.Add(24 * time.Hour),
		AllDay:     true,
	}, nil); err != nil {
		t.Fatalf("创建事件失败: %v", err)
	}

	if err := svc.DeleteCategory(category.ID); !errors.Is(err, ErrCategoryInUse) {
		t.Fatalf("被引用的分类删除应返回 ErrCategoryInUse，实际 %v", err)
	}

	// 分类仍然存在
	categories, err := svc.GetCategories()
	if err != nil {
		t.Fatalf("获取分类失败: %v", err)
	}
	if len(categories) != 1 {
		t.Errorf("分类不应被删除，实际剩余 %d 个", len(categories))
	}
}

func TestDeleteUnusedCategory(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, testConfig())
	category := seedCategory(t, svc, "培训")

	if err := svc.DeleteCategory(category.ID); err != nil {
		t.Fatalf("未被引用的分类应可删除: %v", err)
	}

	categories, err := svc.GetCategories()
	if err != nil {
		t.Fatalf("获取分类失败: %v", err)
	}
	if len(categories) != 0 {
		t.Errorf("分类应已删除，实际剩余 %d 个", len(categories))
	}
}

func TestCreateEventValidation(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, testConfig())
	category := seedCategory(t, svc, "会议")

	start := time.Date(2026, 9, 10, 14, 0, 0, 0, time.UTC)

	// 结束时间早于开始时间
	if _, err := svc.CreateEvent(&EventInput{
		Title:      "季度复盘",
		CategoryID: category.ID,
		StartAt:    start,
		EndAt:      start.Add(-time.Hour),
	}, nil); err == nil {
		t.Error("结束时间早于开始时间应被拒绝")
	}

	// 分类不存在
	if _, err := svc.CreateEvent(&EventInput{
		Title:      "季度复盘",
		CategoryID: 9999,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
	}, nil); err == nil {
		t.Error("引用不存在的分类应被拒绝")
	}
}

func TestGetEventsFiltersByRange(t *testing.T) {
	db := newTestDB(t)
	svc := NewCalendarService(db, testConfig())
	category := seedCategory(t, svc, "会议")

	mk := func(title string, start time.Time, d time.Duration) {
		t.Helper()
		if _, err := svc.CreateEvent(&EventInput{
			Title:      title,
			CategoryID: category.ID,
			StartAt:    start,
			EndAt:      start.Add(d),
		}, nil); err != nil {
			t.Fatalf("创建事件 %s 失败: %v", title, err)
		}
	}

	mk("九月例会", time.Date(2026, 9, 7, 10, 0, 0, 0, time.UTC), time.Hour)
	mk("十月例会", time.Date(2026, 10, 5, 10, 0, 0, 0, time.UTC), time.Hour)
	// 跨越窗口边界的事件也应命中
	mk("跨月活动", time.Date(2026, 9, 30, 20, 0, 0, 0, time.UTC), 12*time.Hour)

	from := time.Date(2026, 9, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 9, 30, 23, 59, 59, 0, time.UTC)
	events, err := svc.GetEvents(&from, &to, 0)
	if err != nil {
		t.Fatalf("查询事件失败: %v", err)
	}
	if len(events) != 2 {
		titles := make([]string, 0, len(events))
		for _, e := range events {
			titles = append(titles, e.Title)
		}
		t.Errorf("九月窗口应命中 2 个事件，实际 %v", titles)
	}
}
