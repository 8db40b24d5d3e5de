package db

import "time"

// CheckinRecord 每日签到流水，(user, checkin_date) 唯一。
type CheckinRecord struct {
	ID             uint      `gorm:"primaryKey"`
	UserID         uint      `gorm:"uniqueIndex:uk_checkin_user_date;index;not null"`
	CheckinDate    time.Time `gorm:"uniqueIndex:uk_checkin_user_date;type:date;not null"`
	CheckinTime    time.Time
	BasePoints     int    `gorm:"default:0"`
	ExtraPoints    int    `gorm:"default:0"`
	TotalPoints    int    `gorm:"default:0"`
	ContinuousDays int    `gorm:"default:0"`
	RewardType     string `gorm:"size:20"`
	CheckinMethod  string `gorm:"size:20"`
	DeviceInfo     string `gorm:"size:200"`
	IPAddress      string `gorm:"size:50"`
	CreatedAt      time.Time
}

// TableName 指定自定义表名。
func (CheckinRecord) TableName() string {
	return "checkin_records"
}

// UserCheckinStats 签到累计统计，每个用户一行。
type UserCheckinStats struct {
	ID                 uint `gorm:"primaryKey"`
	UserID             uint `gorm:"uniqueIndex;not null"`
	TotalCheckinDays   int  `gorm:"default:0"`
	TotalPointsEarned  int  `gorm:"default:0"`
	CurrentStreak      int  `gorm:"default:0"`
	LongestStreak      int  `gorm:"default:0"`
	CurrentMonthDays   int  `gorm:"default:0"`
	CurrentMonthPoints int  `gorm:"default:0"`
	Milestone7Days     int  `gorm:"default:0"`
	Milestone30Days    int  `gorm:"default:0"`
	LastCheckinDate    *time.Time
	LastCheckinTime    *time.Time
	CreatedAt          time.Time
	UpdatedAt          time.Time
}

// TableName 指定自定义表名。
func (UserCheckinStats) TableName() string {
	return "user_checkin_stats"
}
