package models

import "time"

// VacationSetting is a single-row table; the storefront blocks checkout while
// it is active.
type VacationSetting struct {
	ID        uint   `gorm:"primaryKey" json:"id"`
	IsActive  bool   `json:"is_active"`
	StartDate string `json:"start_date,omitempty" gorm:"default:null"`
	EndDate   string `json:"end_date,omitempty" gorm:"default:null"`
	MessageHe string `json:"message_he"`
	MessageEn string `json:"message_en"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
