package model

import "time"

// Entry is one key-value pair in the SQL-backed stores.
type Entry struct {
	Name       string    `gorm:"column:name;primaryKey" json:"name"`
	Value      string    `gorm:"column:value" json:"value"`
	UpdateDate time.Time `gorm:"column:update_date" json:"update_date"`
}

func (m *Entry) TableName() string {
	return "storage_entries"
}
