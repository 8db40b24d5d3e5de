package service

import (
	"errors"
	"time"

	"gorm.io/gorm"

	"github.com/guoguo/blog-backend/internal/db"
)

var (
	ErrAlreadyCheckedIn = errors.New("already checked in today")
	ErrInvalidYearMonth = errors.New("yearMonth must be formatted as YYYY-MM")
)

// 签到积分规则：基础 10 分，连续 3/7/30 天额外加成。
const checkinBasePoints = 10

// CheckinService 维护每日签到与连续签到统计。
type CheckinService struct {
	db  *gorm.DB
	loc *time.Location
}

// NewCheckinService creates a CheckinService instance.
// 签到按东八区自然日结算。
func NewCheckinService(gdb *gorm.DB) *CheckinService {
	loc, err := time.LoadLocation("Asia/Shanghai")
	if err != nil {
		loc = time.FixedZone("CST", 8*60*60)
	}
	return &CheckinService{db: gdb, loc: loc}
}

// CheckinStatus 用户的签到累计视图。
type CheckinStatus struct {
	TodayChecked       bool       `json:"todayChecked"`
	CurrentStreak      int        `json:"currentStreak"`
	LongestStreak      int        `json:"longestStreak"`
	TotalCheckinDays   int        `json:"totalCheckinDays"`
	TotalPointsEarned  int        `json:"totalPointsEarned"`
	CurrentMonthDays   int        `json:"currentMonthDays"`
	CurrentMonthPoints int        `json:"currentMonthPoints"`
	LastCheckinDate    *time.Time `json:"lastCheckinDate"`
}

// CheckinResult 一次签到的结算结果。
type CheckinResult struct {
	CheckinDate    time.Time     `json:"checkinDate"`
	BasePoints     int           `json:"basePoints"`
	ExtraPoints    int           `json:"extraPoints"`
	TotalPoints    int           `json:"totalPoints"`
	RewardType     string        `json:"rewardType"`
	ContinuousDays int           `json:"continuousDays"`
	Status         CheckinStatus `json:"status"`
}

// CheckinCalendar 某个月的签到日历。
type CheckinCalendar struct {
	Year          int   `json:"year"`
	Month         int   `json:"month"`
	CheckinDays   []int `json:"checkinDays"`
	MonthDays     int   `json:"monthDays"`
	MonthPoints   int   `json:"monthPoints"`
	CurrentStreak int   `json:"currentStreak"`
}

// CheckinInput 签到上报的可选附加信息。
type CheckinInput struct {
	Method     string `json:"method"`
	DeviceInfo string `json:"deviceInfo"`
}

// Checkin 执行当日签到，重复签到返回 ErrAlreadyCheckedIn。
func (s *CheckinService) Checkin(userID uint, input CheckinInput, ipAddress string) (*CheckinResult, error) {
	var user db.User
	if err := s.db.First(&user, userID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	now := time.Now().In(s.loc)
	today := s.dayStart(now)

	var existing db.CheckinRecord
	err := s.db.Where("user_id = ? AND checkin_date = ?", userID, today).First(&existing).Error
	if err == nil {
		return nil, ErrAlreadyCheckedIn
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	stats, err := s.loadOrCreateStats(userID)
	if err != nil {
		return nil, err
	}

	continuousDays, err := s.resolveContinuousDays(stats, today)
	if err != nil {
		return nil, err
	}
	base, extra, rewardType := checkinReward(continuousDays)
	total := base + extra

	method := input.Method
	if method == "" {
		method = "WEB"
	}

	record := db.CheckinRecord{
		UserID:         userID,
		CheckinDate:    today,
		CheckinTime:    now,
		BasePoints:     base,
		ExtraPoints:    extra,
		TotalPoints:    total,
		ContinuousDays: continuousDays,
		RewardType:     rewardType,
		CheckinMethod:  method,
		DeviceInfo:     input.DeviceInfo,
		IPAddress:      ipAddress,
	}

	if err := s.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(&record).Error; err != nil {
			return err
		}
		applyCheckinStats(stats, today, now, continuousDays, total)
		return tx.Save(stats).Error
	}); err != nil {
		return nil, err
	}

	return &CheckinResult{
		CheckinDate:    today,
		BasePoints:     base,
		ExtraPoints:    extra,
		TotalPoints:    total,
		RewardType:     rewardType,
		ContinuousDays: continuousDays,
		Status:         buildCheckinStatus(stats, true),
	}, nil
}

// Status 返回签到累计视图。
func (s *CheckinService) Status(userID uint) (*CheckinStatus, error) {
	today := s.dayStart(time.Now().In(s.loc))

	var count int64
	if err := s.db.Model(&db.CheckinRecord{}).
		Where("user_id = ? AND checkin_date = ?", userID, today).
		Count(&count).Error; err != nil {
		return nil, err
	}
	todayChecked := count > 0

	var stats db.UserCheckinStats
	err := s.db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return &CheckinStatus{TodayChecked: todayChecked}, nil
	}
	if err != nil {
		return nil, err
	}

	status := buildCheckinStatus(&stats, todayChecked)
	return &status, nil
}

// Calendar 返回某个月的签到日历，yearMonth 为空时取当前月。
func (s *CheckinService) Calendar(userID uint, yearMonth string) (*CheckinCalendar, error) {
	year, month, err := s.parseYearMonth(yearMonth)
	if err != nil {
		return nil, err
	}

	start := time.Date(year, month, 1, 0, 0, 0, 0, s.loc)
	end := start.AddDate(0, 1, 0)

	var records []db.CheckinRecord
	if err := s.db.Where("user_id = ? AND checkin_date >= ? AND checkin_date < ?", userID, start, end).
		Order("checkin_date asc").
		Find(&records).Error; err != nil {
		return nil, err
	}

	days := make([]int, 0, len(records))
	points := 0
	for _, record := range records {
		days = append(days, record.CheckinDate.In(s.loc).Day())
		points += record.TotalPoints
	}

	currentStreak := 0
	var stats db.UserCheckinStats
	if err := s.db.Where("user_id = ?", userID).First(&stats).Error; err == nil {
		currentStreak = stats.CurrentStreak
	} else if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, err
	}

	return &CheckinCalendar{
		Year:          year,
		Month:         int(month),
		CheckinDays:   days,
		MonthDays:     len(days),
		MonthPoints:   points,
		CurrentStreak: currentStreak,
	}, nil
}

func (s *CheckinService) dayStart(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, s.loc)
}

func (s *CheckinService) loadOrCreateStats(userID uint) (*db.UserCheckinStats, error) {
	var stats db.UserCheckinStats
	err := s.db.Where("user_id = ?", userID).First(&stats).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		stats = db.UserCheckinStats{UserID: userID}
		if err := s.db.Create(&stats).Error; err != nil {
			return nil, err
		}
		return &stats, nil
	}
	if err != nil {
		return nil, err
	}
	return &stats, nil
}

func (s *CheckinService) resolveContinuousDays(stats *db.UserCheckinStats, today time.Time) (int, error) {
	if stats.LastCheckinDate == nil {
		return 1, nil
	}
	last := s.dayStart(stats.LastCheckinDate.In(s.loc))
	switch {
	case last.Equal(today):
		return 0, ErrAlreadyCheckedIn
	case last.AddDate(0, 0, 1).Equal(today):
		return stats.CurrentStreak + 1, nil
	default:
		return 1, nil
	}
}

func (s *CheckinService) parseYearMonth(yearMonth string) (int, time.Month, error) {
	if yearMonth == "" {
		now := time.Now().In(s.loc)
		return now.Year(), now.Month(), nil
	}
	parsed, err := time.ParseInLocation("2006-01", yearMonth, s.loc)
	if err != nil {
		return 0, 0, ErrInvalidYearMonth
	}
	return parsed.Year(), parsed.Month(), nil
}

func checkinReward(continuousDays int) (base, extra int, rewardType string) {
	base = checkinBasePoints
	rewardType = "NORMAL"
	switch continuousDays {
	case 3:
		extra = 5
		rewardType = "CONTINUOUS"
	case 7:
		extra = 20
		rewardType = "MILESTONE"
	case 30:
		extra = 100
		rewardType = "MILESTONE"
	}
	return base, extra, rewardType
}

func applyCheckinStats(stats *db.UserCheckinStats, today, now time.Time, continuousDays, totalPoints int) {
	previousLast := stats.LastCheckinDate
	stats.LastCheckinDate = &today
	stats.LastCheckinTime = &now
	stats.CurrentStreak = continuousDays
	if continuousDays > stats.LongestStreak {
		stats.LongestStreak = continuousDays
	}
	stats.TotalCheckinDays++
	stats.TotalPointsEarned += totalPoints

	sameMonth := previousLast != nil &&
		previousLast.Year() == today.Year() &&
		previousLast.Month() == today.Month()
	if !sameMonth {
		stats.CurrentMonthDays = 0
		stats.CurrentMonthPoints = 0
	}
	stats.CurrentMonthDays++
	stats.CurrentMonthPoints += totalPoints

	if continuousDays == 7 {
		stats.Milestone7Days++
	}
	if continuousDays == 30 {
		stats.Milestone30Days++
	}
}

func buildCheckinStatus(stats *db.UserCheckinStats, todayChecked bool) CheckinStatus {
	return CheckinStatus{
		TodayChecked:       todayChecked,
		CurrentStreak:      stats.CurrentStreak,
		LongestStreak:      stats.LongestStreak,
		TotalCheckinDays:   stats.TotalCheckinDays,
		TotalPointsEarned:  stats.TotalPointsEarned,
		CurrentMonthDays:   stats.CurrentMonthDays,
		CurrentMonthPoints: stats.CurrentMonthPoints,
		LastCheckinDate:    stats.LastCheckinDate,
	}
}
