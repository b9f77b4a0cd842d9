// Package cart holds the storefront cart: line items with selected add-ons,
// coupon state, and the subtotal/shipping math. Every mutation is written
// through to a Store so the cart survives reloads.
package cart

import (
	"fmt"
	"reflect"
	"sync"
	"time"

	"lulukitchen/models"
)

type Line struct {
	MenuItem       models.MenuItem `json:"menuItem"`
	SelectedAddOns []models.AddOn  `json:"selectedAddOns"`
	Quantity       int             `json:"quantity"`
}

// CouponLookup resolves an active coupon by code. Returning (nil, nil) means
// the code is unknown or inactive.
type CouponLookup func(code string) (*models.Coupon, error)

type CouponResult struct {
	Success  bool    `json:"success"`
	Discount float64 `json:"discount"`
	Message  string  `json:"message"`
}

type Cart struct {
	mu    sync.Mutex
	store Store
	lines []Line

	appliedCoupon  string
	couponDiscount float64

	deliveryFee           float64
	freeShippingThreshold float64
}

// New loads the persisted cart from store. A missing or corrupt cart file
// loads as an empty cart.
func New(store Store, deliveryFee, freeShippingThreshold float64) *Cart {
	c := &Cart{
		store:                 store,
		deliveryFee:           deliveryFee,
		freeShippingThreshold: freeShippingThreshold,
	}
	if store != nil {
		c.lines = store.Load()
	}
	return c
}

// AddToCart merges into an existing line when the item and the selected
// add-on set match exactly, otherwise appends a new line.
func (c *Cart) AddToCart(item models.MenuItem, addOns []models.AddOn, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	for i := range c.lines {
		if c.lines[i].MenuItem.ID == item.ID && reflect.DeepEqual(c.lines[i].SelectedAddOns, addOns) {
			c.lines[i].Quantity += quantity
			c.persist()
			return
		}
	}

	c.lines = append(c.lines, Line{MenuItem: item, SelectedAddOns: addOns, Quantity: quantity})
	c.persist()
}

// UpdateQuantity sets the quantity for every line of the item; zero or less
// removes it.
func (c *Cart) UpdateQuantity(itemID uint, quantity int) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if quantity <= 0 {
		c.removeLocked(itemID)
		return
	}
	for i := range c.lines {
		if c.lines[i].MenuItem.ID == itemID {
			c.lines[i].Quantity = quantity
		}
	}
	c.persist()
}

func (c *Cart) RemoveFromCart(itemID uint) {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.removeLocked(itemID)
}

func (c *Cart) removeLocked(itemID uint) {
	kept := c.lines[:0]
	for _, line := range c.lines {
		if line.MenuItem.ID != itemID {
			kept = append(kept, line)
		}
	}
	c.lines = kept
	c.persist()
}

// Clear empties the cart and drops the applied coupon.
func (c *Cart) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.lines = nil
	c.appliedCoupon = ""
	c.couponDiscount = 0
	c.persist()
}

func (c *Cart) Lines() []Line {
	c.mu.Lock()
	defer c.mu.Unlock()
	lines := make([]Line, len(c.lines))
	copy(lines, c.lines)
	return lines
}

func (c *Cart) subtotalLocked() float64 {
	var total float64
	for _, line := range c.lines {
		unit := line.MenuItem.Price
		for _, addOn := range line.SelectedAddOns {
			unit += addOn.Price
		}
		total += unit * float64(line.Quantity)
	}
	return total
}

// TotalPrice is the subtotal minus the applied coupon discount, never below
// zero.
func (c *Cart) TotalPrice() float64 {
	c.mu.Lock()
	defer c.mu.Unlock()
	total := c.subtotalLocked() - c.couponDiscount
	if total < 0 {
		return 0
	}
	return total
}

func (c *Cart) TotalItems() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	var count int
	for _, line := range c.lines {
		count += line.Quantity
	}
	return count
}

// ShippingCost is the flat delivery fee, waived once the discounted subtotal
// reaches the free-shipping threshold.
func (c *Cart) ShippingCost() float64 {
	if c.TotalPrice() >= c.freeShippingThreshold {
		return 0
	}
	return c.deliveryFee
}

// ApplyCoupon looks the code up once and caches the discount until the cart
// is cleared. A cart session applies at most one coupon.
func (c *Cart) ApplyCoupon(code string, lookup CouponLookup) CouponResult {
	c.mu.Lock()
	defer c.mu.Unlock()

	if c.appliedCoupon != "" {
		return CouponResult{Success: false, Discount: 0, Message: "קופון כבר הופעל בהזמנה זו"}
	}

	coupon, err := lookup(code)
	if err != nil || coupon == nil {
		return CouponResult{Success: false, Discount: 0, Message: "קוד קופון לא תקין"}
	}
	if coupon.Expired(time.Now()) {
		return CouponResult{Success: false, Discount: 0, Message: "הקופון פג תוקף"}
	}
	if coupon.Exhausted() {
		return CouponResult{Success: false, Discount: 0, Message: "הקופון הגיע למכסת השימוש"}
	}

	discount := coupon.Discount(c.subtotalLocked())
	c.appliedCoupon = coupon.Code
	c.couponDiscount = discount

	return CouponResult{
		Success:  true,
		Discount: discount,
		Message:  fmt.Sprintf("הקופון הופעל! חסכת ₪%.2f", discount),
	}
}

func (c *Cart) AppliedCoupon() (string, float64) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.appliedCoupon, c.couponDiscount
}

func (c *Cart) persist() {
	if c.store != nil {
		c.store.Save(c.lines)
	}
}
