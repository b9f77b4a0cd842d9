package models

import "time"

type ContactMessage struct {
	ID            uint   `gorm:"primaryKey" json:"id"`
	CustomerName  string `json:"customer_name" validate:"required"`
	CustomerPhone string `json:"customer_phone" validate:"required"`
	CustomerEmail string `json:"customer_email,omitempty" gorm:"default:null"`
	PreferredDate string `json:"preferred_date,omitempty" gorm:"default:null"`
	PreferredTime string `json:"preferred_time,omitempty" gorm:"default:null"`
	Message       string `json:"message" validate:"required"`
	Status        string `json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
