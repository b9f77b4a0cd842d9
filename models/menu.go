package models

import (
	"time"

	"gorm.io/datatypes"
)

type MenuItemTag struct {
	TextHe   string `json:"text_he"`
	TextEn   string `json:"text_en"`
	Color    string `json:"color"`
	Position string `json:"position,omitempty"`
}

type MenuItem struct {
	ID            uint    `gorm:"primaryKey" json:"id"`
	NameHe        string  `json:"name_he" validate:"required"`
	NameEn        string  `json:"name_en" validate:"required"`
	DescriptionHe string  `json:"description_he"`
	DescriptionEn string  `json:"description_en"`
	Price         float64 `json:"price" validate:"required"`
	Category      string  `json:"category"`
	IsVegetarian  bool    `json:"is_vegetarian"`
	IsVegan       bool    `json:"is_vegan"`
	SpiceLevel    int     `json:"spice_level,omitempty"`
	ImageURL      string  `json:"image_url,omitempty" gorm:"default:null"`
	PortionSize   string  `json:"portion_size,omitempty" gorm:"default:null"`
	Allergens     string  `json:"allergens,omitempty" gorm:"default:null"`
	Available     bool    `json:"available" gorm:"default:true"`
	SortOrder     int     `json:"sort_order"`

	Tags   datatypes.JSONType[[]MenuItemTag] `json:"tags,omitempty"`
	AddOns []AddOn                           `gorm:"foreignKey:MenuItemID" json:"addOns,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type AddOn struct {
	ID         uint    `gorm:"primaryKey" json:"id"`
	MenuItemID *uint   `json:"menu_item_id,omitempty"`
	NameHe     string  `json:"name_he" validate:"required"`
	NameEn     string  `json:"name_en" validate:"required"`
	Price      float64 `json:"price"`
	Available  bool    `json:"available" gorm:"default:true"`
	SortOrder  int     `json:"sort_order"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
