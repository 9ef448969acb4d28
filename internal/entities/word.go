package entities

import "time"

// Word is a single vocabulary entry. ID is zero until the store assigns one
// on first insert and never changes afterwards.
type Word struct {
	ID          uint   `gorm:"primaryKey;autoIncrement" json:"id"`
	Term        string `gorm:"column:term;not null" json:"term"`
	Description string `gorm:"column:description;not null" json:"description"`
	Timestamp   int64  `gorm:"column:timestamp;not null" json:"timestamp"` // unix milliseconds
	Color       int32  `gorm:"column:color;not null" json:"color"`         // ARGB
}

func (Word) TableName() string {
	return "words"
}

// IsNew reports whether the word has not been persisted yet.
func (w Word) IsNew() bool {
	return w.ID == 0
}

// Time returns the word's timestamp as a time.Time.
func (w Word) Time() time.Time {
	return time.UnixMilli(w.Timestamp)
}

// NowMillis returns the current wall-clock time in unix milliseconds.
func NowMillis() int64 {
	return time.Now().UnixMilli()
}
