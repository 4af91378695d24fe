package model

// UserTimezone stores a user's UTC offset in whole hours.
type UserTimezone struct {
	UserID      int64 `gorm:"primaryKey;column:user_id"`
	OffsetHours int   `gorm:"column:offset_hours;not null"`
}

func (UserTimezone) TableName() string { return "user_timezone" }
