package models

import (
	"time"
)

type Item struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Content   string    `json:"content" gorm:"type:text;not null"`
	Checked   bool      `json:"checked" gorm:"type:boolean;not null;default:false"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null;index"`
	UpdatedAt time.Time `json:"updatedAt" gorm:"type:timestamp with time zone;not null"`
}

type Tag struct {
	ID        int64     `json:"id" gorm:"primaryKey;autoIncrement"`
	Name      string    `json:"name" gorm:"type:text;not null;uniqueIndex:tag_name"`
	Color     *string   `json:"color" gorm:"type:text"`
	CreatedAt time.Time `json:"createdAt" gorm:"type:timestamp with time zone;not null"`
}
