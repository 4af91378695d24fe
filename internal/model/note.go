package model

// Note is a free-form text note keyed by (user, name).
type Note struct {
	UserID int64  `gorm:"primaryKey;column:user_id"`
	Name   string `gorm:"primaryKey;column:note_name"`
	Text   string `gorm:"not null"`
}

func (Note) TableName() string { return "notes" }
