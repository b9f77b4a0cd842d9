package models

import "time"

type Coupon struct {
	ID              uint       `gorm:"primaryKey" json:"id"`
	Code            string     `gorm:"uniqueIndex" json:"code" validate:"required"`
	DiscountPercent float64    `json:"discount_percent"`
	DiscountAmount  float64    `json:"discount_amount"`
	Active          bool       `json:"active" gorm:"default:true"`
	ExpiresAt       *time.Time `json:"expires_at,omitempty"`
	UsageLimit      int        `json:"usage_limit"`
	UsedCount       int        `json:"used_count"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

// Expired reports whether the coupon has an expiry in the past.
func (c *Coupon) Expired(now time.Time) bool {
	return c.ExpiresAt != nil && now.After(*c.ExpiresAt)
}

// Exhausted reports whether the usage cap has been reached.
func (c *Coupon) Exhausted() bool {
	return c.UsageLimit > 0 && c.UsedCount >= c.UsageLimit
}

// Discount computes the discount for the given subtotal.
func (c *Coupon) Discount(subtotal float64) float64 {
	if c.DiscountPercent > 0 {
		return subtotal * c.DiscountPercent / 100
	}
	return c.DiscountAmount
}
