package cart

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"lulukitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func chickenItem() models.MenuItem {
	return models.MenuItem{ID: 1, NameHe: "עוף מוקפץ", NameEn: "Stir-fried chicken", Price: 50}
}

func riceAddOn() models.AddOn {
	return models.AddOn{ID: 10, NameHe: "אורז", NameEn: "Rice", Price: 5}
}

func TestTotalPriceWithAddOns(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), []models.AddOn{riceAddOn()}, 2)

	assert.Equal(t, 110.0, c.TotalPrice())
	assert.Equal(t, 40.0, c.ShippingCost())
}

func TestPercentCouponScenario(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), []models.AddOn{riceAddOn()}, 2)

	lookup := func(code string) (*models.Coupon, error) {
		return &models.Coupon{Code: "SAVE10", DiscountPercent: 10, Active: true}, nil
	}

	result := c.ApplyCoupon("SAVE10", lookup)
	require.True(t, result.Success)
	assert.Equal(t, 11.0, result.Discount)
	assert.Equal(t, 99.0, c.TotalPrice())
	assert.Equal(t, 40.0, c.ShippingCost())
}

func TestFreeShippingAtThreshold(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(models.MenuItem{ID: 2, NameHe: "מגש", Price: 800}, nil, 1)

	// Exactly at the threshold must already be free.
	assert.Equal(t, 0.0, c.ShippingCost())

	c.UpdateQuantity(2, 1)
	c.ApplyCoupon("OFF", func(string) (*models.Coupon, error) {
		return &models.Coupon{Code: "OFF", DiscountAmount: 1, Active: true}, nil
	})
	// Discounted subtotal dropped below the threshold.
	assert.Equal(t, 799.0, c.TotalPrice())
	assert.Equal(t, 40.0, c.ShippingCost())
}

func TestExpiredCouponDoesNotMutate(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 1)

	expired := time.Now().Add(-time.Hour)
	result := c.ApplyCoupon("OLD", func(string) (*models.Coupon, error) {
		return &models.Coupon{Code: "OLD", DiscountPercent: 50, Active: true, ExpiresAt: &expired}, nil
	})

	assert.False(t, result.Success)
	assert.Equal(t, 0.0, result.Discount)
	assert.Equal(t, "הקופון פג תוקף", result.Message)

	code, discount := c.AppliedCoupon()
	assert.Empty(t, code)
	assert.Equal(t, 0.0, discount)
	assert.Equal(t, 50.0, c.TotalPrice())
}

func TestExhaustedCouponRejected(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 1)

	result := c.ApplyCoupon("MAXED", func(string) (*models.Coupon, error) {
		return &models.Coupon{Code: "MAXED", DiscountPercent: 10, Active: true, UsageLimit: 5, UsedCount: 5}, nil
	})

	assert.False(t, result.Success)
	assert.Equal(t, "הקופון הגיע למכסת השימוש", result.Message)
}

func TestUnknownCouponRejected(t *testing.T) {
	c := New(nil, 40, 800)
	result := c.ApplyCoupon("NOPE", func(string) (*models.Coupon, error) { return nil, nil })
	assert.False(t, result.Success)
	assert.Equal(t, "קוד קופון לא תקין", result.Message)
}

func TestCouponAppliedOncePerSession(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 2)

	lookup := func(string) (*models.Coupon, error) {
		return &models.Coupon{Code: "SAVE10", DiscountPercent: 10, Active: true}, nil
	}
	require.True(t, c.ApplyCoupon("SAVE10", lookup).Success)
	assert.False(t, c.ApplyCoupon("SAVE10", lookup).Success)

	// Clearing the cart drops the coupon and allows a fresh one.
	c.Clear()
	c.AddToCart(chickenItem(), nil, 1)
	assert.True(t, c.ApplyCoupon("SAVE10", lookup).Success)
}

func TestDiscountFloorsAtZero(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 1)

	c.ApplyCoupon("BIG", func(string) (*models.Coupon, error) {
		return &models.Coupon{Code: "BIG", DiscountAmount: 500, Active: true}, nil
	})
	assert.Equal(t, 0.0, c.TotalPrice())
}

func TestAddToCartMergesMatchingLines(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), []models.AddOn{riceAddOn()}, 1)
	c.AddToCart(chickenItem(), []models.AddOn{riceAddOn()}, 2)

	lines := c.Lines()
	require.Len(t, lines, 1)
	assert.Equal(t, 3, lines[0].Quantity)

	// A different add-on set must get its own line.
	c.AddToCart(chickenItem(), nil, 1)
	assert.Len(t, c.Lines(), 2)
}

func TestUpdateQuantityRemovesAtZero(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 2)

	c.UpdateQuantity(1, 5)
	require.Len(t, c.Lines(), 1)
	assert.Equal(t, 5, c.Lines()[0].Quantity)

	c.UpdateQuantity(1, 0)
	assert.Empty(t, c.Lines())
}

func TestTotalItems(t *testing.T) {
	c := New(nil, 40, 800)
	c.AddToCart(chickenItem(), nil, 2)
	c.AddToCart(models.MenuItem{ID: 3, NameHe: "נודלס", Price: 42}, nil, 1)
	assert.Equal(t, 3, c.TotalItems())
}

func TestFileStorePersistence(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	store := &FileStore{Path: path}

	c := New(store, 40, 800)
	c.AddToCart(chickenItem(), []models.AddOn{riceAddOn()}, 2)

	reloaded := New(store, 40, 800)
	require.Len(t, reloaded.Lines(), 1)
	assert.Equal(t, 110.0, reloaded.TotalPrice())
}

func TestCorruptStoreLoadsEmptyCart(t *testing.T) {
	path := filepath.Join(t.TempDir(), "cart.json")
	require.NoError(t, os.WriteFile(path, []byte("{not json"), 0644))

	c := New(&FileStore{Path: path}, 40, 800)
	assert.Empty(t, c.Lines())
	assert.Equal(t, 0.0, c.TotalPrice())
}
