package models

import "time"

const (
	ReviewStatusPending  = "pending"
	ReviewStatusApproved = "approved"
)

type Recommendation struct {
	ID           uint    `gorm:"primaryKey" json:"id"`
	CustomerName string  `json:"customer_name" validate:"required"`
	Email        string  `json:"email,omitempty" gorm:"default:null"`
	Phone        string  `json:"phone,omitempty" gorm:"default:null"`
	Rating       int     `json:"rating" validate:"required,min=1,max=5"`
	Comment      string  `json:"comment"`
	CommentEn    string  `json:"comment_en,omitempty" gorm:"default:null"`
	Status       string  `json:"status"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}
