package models

import "time"

type City struct {
	ID      uint     `gorm:"primaryKey" json:"id"`
	NameHe  string   `json:"name_he" validate:"required"`
	NameEn  string   `json:"name_en"`
	Streets []Street `gorm:"foreignKey:CityID" json:"streets,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type Street struct {
	ID     uint   `gorm:"primaryKey" json:"id"`
	CityID uint   `gorm:"index" json:"city_id"`
	NameHe string `json:"name_he" validate:"required"`
	NameEn string `json:"name_en"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
