package routes

import (
	"strings"
	"time"

	"lulukitchen/models"

	"github.com/gofiber/fiber/v2"
	"gorm.io/gorm"
)

func normalizeCouponCode(code string) string {
	return strings.ToUpper(strings.TrimSpace(code))
}

// GetMenu - GET /api/menu
func (h *Handler) getMenu(c *fiber.Ctx) error {
	var items []models.MenuItem

	query := h.DB.Preload("AddOns", "available = ?", true).Order("sort_order")
	if c.Query("all") != "true" {
		query = query.Where("available = ?", true)
	}
	if category := c.Query("category"); category != "" {
		query = query.Where("category = ?", category)
	}

	if err := query.Find(&items).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get menu items",
		})
	}

	return c.JSON(items)
}

// GetMenuItem - GET /api/menu/:id
func (h *Handler) getMenuItem(c *fiber.Ctx) error {
	id := c.Params("id")
	var item models.MenuItem

	if err := h.DB.Preload("AddOns", "available = ?", true).First(&item, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Menu item not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get menu item",
		})
	}

	return c.JSON(item)
}

// GetAddOns - GET /api/addons
func (h *Handler) getAddOns(c *fiber.Ctx) error {
	var addOns []models.AddOn

	query := h.DB.Order("sort_order")
	if c.Query("all") != "true" {
		query = query.Where("available = ?", true)
	}

	if err := query.Find(&addOns).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get add-ons",
		})
	}

	return c.JSON(addOns)
}

type applyCouponRequest struct {
	Code     string  `json:"code" validate:"required"`
	Subtotal float64 `json:"subtotal"`
}

// ApplyCoupon - POST /api/coupons/apply
// Single lookup backing the cart's coupon application: rejects unknown,
// inactive, expired and exhausted codes, otherwise returns the discount.
func (h *Handler) applyCoupon(c *fiber.Ctx) error {
	var req applyCouponRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Coupon code is required",
		})
	}

	coupon, err := h.lookupCoupon(req.Code)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to check coupon",
		})
	}
	if coupon == nil {
		return c.JSON(fiber.Map{"success": false, "discount": 0, "message": "קוד קופון לא תקין"})
	}
	if coupon.Expired(time.Now()) {
		return c.JSON(fiber.Map{"success": false, "discount": 0, "message": "הקופון פג תוקף"})
	}
	if coupon.Exhausted() {
		return c.JSON(fiber.Map{"success": false, "discount": 0, "message": "הקופון הגיע למכסת השימוש"})
	}

	return c.JSON(fiber.Map{
		"success":  true,
		"discount": coupon.Discount(req.Subtotal),
		"code":     coupon.Code,
	})
}

// lookupCoupon resolves an active coupon by its upper-cased code, nil when
// unknown. Matches the cart.CouponLookup contract.
func (h *Handler) lookupCoupon(code string) (*models.Coupon, error) {
	var coupon models.Coupon
	err := h.DB.Where("code = ? AND active = ?", normalizeCouponCode(code), true).First(&coupon).Error
	if err == gorm.ErrRecordNotFound {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &coupon, nil
}

// GetVacation - GET /api/vacation
func (h *Handler) getVacation(c *fiber.Ctx) error {
	var setting models.VacationSetting
	if err := h.DB.First(&setting).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.JSON(models.VacationSetting{IsActive: false})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get vacation settings",
		})
	}
	return c.JSON(setting)
}

// GetCities - GET /api/cities
func (h *Handler) getCities(c *fiber.Ctx) error {
	var cities []models.City
	if err := h.DB.Order("name_he").Find(&cities).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get cities",
		})
	}
	return c.JSON(cities)
}

// GetCityStreets - GET /api/cities/:id/streets
func (h *Handler) getCityStreets(c *fiber.Ctx) error {
	id := c.Params("id")

	var city models.City
	if err := h.DB.First(&city, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "City not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find city",
		})
	}

	var streets []models.Street
	if err := h.DB.Where("city_id = ?", city.ID).Order("name_he").Find(&streets).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get streets",
		})
	}
	return c.JSON(streets)
}
