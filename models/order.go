package models

import (
	"time"

	"gorm.io/datatypes"
)

const (
	PaymentMethodCash   = "cash"
	PaymentMethodBit    = "bit"
	PaymentMethodPayBox = "paybox"
	PaymentMethodGrow   = "grow"

	PaymentStatusPending = "pending"
	PaymentStatusPaid    = "paid"
)

type Order struct {
	ID          uint   `gorm:"primaryKey" json:"id"`
	OrderNumber string `gorm:"uniqueIndex" json:"order_number"`

	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"email,omitempty" gorm:"default:null"`
	Phone        string `json:"phone" validate:"required"`

	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	Apartment   string `json:"apartment,omitempty" gorm:"default:null"`
	Floor       string `json:"floor,omitempty" gorm:"default:null"`
	Address     string `json:"address"`

	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
	Notes        string `json:"notes,omitempty" gorm:"default:null"`

	// Denormalized snapshot of the cart at checkout time.
	Items      datatypes.JSONType[[]OrderItem] `json:"items"`
	TotalPrice float64                         `json:"total_price"`

	PaymentMethod     string `json:"payment_method"`
	Status            string `json:"status"`
	PaymentStatus     string `gorm:"index" json:"payment_status"`
	TransactionID     string `json:"transaction_id,omitempty" gorm:"default:null"`
	GrowTransactionID string `json:"grow_transaction_id,omitempty" gorm:"default:null"`
	RawWebhookData    datatypes.JSON `json:"raw_webhook_data,omitempty"`

	CreatedAt time.Time `gorm:"autoCreateTime" json:"created_at"`
	UpdatedAt time.Time `gorm:"autoUpdateTime" json:"updated_at"`
}

type OrderItem struct {
	Name     string         `json:"name"`
	Quantity int            `json:"quantity"`
	Price    float64        `json:"price"`
	AddOns   []OrderItemAdd `json:"addOns,omitempty"`
}

type OrderItemAdd struct {
	Name  string  `json:"name"`
	Price float64 `json:"price"`
}

// LineTotal includes the selected add-ons for every unit.
func (i OrderItem) LineTotal() float64 {
	unit := i.Price
	for _, a := range i.AddOns {
		unit += a.Price
	}
	return unit * float64(i.Quantity)
}
