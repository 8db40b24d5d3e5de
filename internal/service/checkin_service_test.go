package service

import (
	"errors"
	"fmt"
	"testing"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"

	"github.com/guoguo/blog-backend/internal/db"
)

func setupCheckinServiceTestDB(t *testing.T) *gorm.DB {
	t.Helper()
	dsn := fmt.Sprintf("file:checkin-service-%d?mode=memory&cache=shared", time.Now().UnixNano())
	gdb, err := gorm.Open(sqlite.Open(dsn), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to open test database: %v", err)
	}
	if err := db.Migrate(gdb); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}
	return gdb
}

func TestCheckinService_FirstCheckin(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	result, err := svc.Checkin(user.ID, CheckinInput{}, "127.0.0.1")
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if result.ContinuousDays != 1 {
		t.Fatalf("first checkin streak should be 1, got %d", result.ContinuousDays)
	}
	if result.BasePoints != 10 || result.ExtraPoints != 0 || result.TotalPoints != 10 {
		t.Fatalf("unexpected points %d/%d/%d", result.BasePoints, result.ExtraPoints, result.TotalPoints)
	}
	if result.RewardType != "NORMAL" {
		t.Fatalf("expected NORMAL reward, got %s", result.RewardType)
	}
	if !result.Status.TodayChecked || result.Status.TotalCheckinDays != 1 {
		t.Fatalf("unexpected status %+v", result.Status)
	}
}

func TestCheckinService_DuplicateCheckinRejected(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	if _, err := svc.Checkin(user.ID, CheckinInput{}, ""); err != nil {
		t.Fatalf("first checkin: %v", err)
	}
	if _, err := svc.Checkin(user.ID, CheckinInput{}, ""); !errors.Is(err, ErrAlreadyCheckedIn) {
		t.Fatalf("expected ErrAlreadyCheckedIn, got %v", err)
	}
}

func TestCheckinService_StreakBonusOnThirdDay(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	now := time.Now().In(svc.loc)
	yesterday := svc.dayStart(now).AddDate(0, 0, -1)
	stats := db.UserCheckinStats{
		UserID:            user.ID,
		CurrentStreak:     2,
		LongestStreak:     2,
		TotalCheckinDays:  2,
		TotalPointsEarned: 20,
		LastCheckinDate:   &yesterday,
	}
	if err := gdb.Create(&stats).Error; err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	result, err := svc.Checkin(user.ID, CheckinInput{}, "")
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if result.ContinuousDays != 3 {
		t.Fatalf("expected streak 3, got %d", result.ContinuousDays)
	}
	if result.ExtraPoints != 5 || result.RewardType != "CONTINUOUS" {
		t.Fatalf("expected day-3 bonus, got %d/%s", result.ExtraPoints, result.RewardType)
	}
	if result.Status.TotalPointsEarned != 35 {
		t.Fatalf("expected accumulated points 35, got %d", result.Status.TotalPointsEarned)
	}
}

func TestCheckinService_GapResetsStreak(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	now := time.Now().In(svc.loc)
	lastWeek := svc.dayStart(now).AddDate(0, 0, -7)
	stats := db.UserCheckinStats{
		UserID:          user.ID,
		CurrentStreak:   6,
		LongestStreak:   6,
		LastCheckinDate: &lastWeek,
	}
	if err := gdb.Create(&stats).Error; err != nil {
		t.Fatalf("seed stats: %v", err)
	}

	result, err := svc.Checkin(user.ID, CheckinInput{}, "")
	if err != nil {
		t.Fatalf("checkin: %v", err)
	}
	if result.ContinuousDays != 1 {
		t.Fatalf("broken streak should reset to 1, got %d", result.ContinuousDays)
	}
	if result.Status.LongestStreak != 6 {
		t.Fatalf("longest streak should survive the reset, got %d", result.Status.LongestStreak)
	}
}

func TestCheckinService_StatusForNewUser(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	status, err := svc.Status(user.ID)
	if err != nil {
		t.Fatalf("status: %v", err)
	}
	if status.TodayChecked || status.CurrentStreak != 0 || status.TotalCheckinDays != 0 {
		t.Fatalf("expected empty status, got %+v", status)
	}
}

func TestCheckinService_CalendarListsMonthDays(t *testing.T) {
	gdb := setupCheckinServiceTestDB(t)
	svc := NewCheckinService(gdb)
	user := createTestUser(t, gdb, "walker")

	if _, err := svc.Checkin(user.ID, CheckinInput{}, ""); err != nil {
		t.Fatalf("checkin: %v", err)
	}

	now := time.Now().In(svc.loc)
	calendar, err := svc.Calendar(user.ID, now.Format("2006-01"))
	if err != nil {
		t.Fatalf("calendar: %v", err)
	}
	if calendar.MonthDays != 1 || len(calendar.CheckinDays) != 1 {
		t.Fatalf("expected one checkin day, got %+v", calendar)
	}
	if calendar.CheckinDays[0] != now.Day() {
		t.Fatalf("expected day %d, got %d", now.Day(), calendar.CheckinDays[0])
	}
	if calendar.MonthPoints != 10 {
		t.Fatalf("expected 10 points this month, got %d", calendar.MonthPoints)
	}

	if _, err := svc.Calendar(user.ID, "2026/01"); !errors.Is(err, ErrInvalidYearMonth) {
		t.Fatalf("expected ErrInvalidYearMonth, got %v", err)
	}
}
