package routes

import (
	"strings"
	"time"

	"lulukitchen/models"
	"lulukitchen/payment"
	"lulukitchen/validation"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type CreateOrderRequest struct {
	CustomerName string `json:"customer_name" validate:"required"`
	Email        string `json:"customer_email"`
	Phone        string `json:"customer_phone" validate:"required"`

	City        string `json:"city"`
	Street      string `json:"street"`
	HouseNumber string `json:"house_number"`
	Apartment   string `json:"apartment"`
	Floor       string `json:"floor"`

	DeliveryDate string `json:"delivery_date"`
	DeliveryTime string `json:"delivery_time"`
	Notes        string `json:"notes"`

	Items         []models.OrderItem `json:"items" validate:"required,min=1,dive"`
	Total         float64            `json:"total" validate:"required"`
	PaymentMethod string             `json:"payment_method" validate:"required,oneof=cash bit paybox grow"`
}

// fieldErrors collects the per-field validation failures so the storefront
// can show them inline.
func (h *Handler) validateOrderRequest(req *CreateOrderRequest) map[string]string {
	errs := make(map[string]string)

	if !validation.IsValidFullName(req.CustomerName) {
		errs["customer_name"] = "שם לא תקין"
	}
	if req.Email != "" && !validation.IsValidEmail(req.Email) {
		errs["customer_email"] = "כתובת אימייל לא תקינה"
	}
	if !validation.IsValidPhone(req.Phone) {
		errs["customer_phone"] = "מספר טלפון לא תקין"
	}
	if req.City == "" {
		errs["city"] = "יש לבחור עיר"
	}
	if req.Street == "" {
		errs["street"] = "יש לבחור רחוב"
	}
	if req.HouseNumber == "" {
		errs["house_number"] = "יש להזין מספר בית"
	}
	if !validation.IsValidDeliveryDate(req.DeliveryDate, time.Now()) {
		errs["delivery_date"] = "תאריך המשלוח חייב להיות ממחר והלאה, לא בשבת"
	}
	if !validation.IsValidDeliveryTime(req.DeliveryTime, req.DeliveryDate) {
		errs["delivery_time"] = "שעת המשלוח מחוץ לשעות הפעילות"
	}
	return errs
}

// vacationActive short-circuits checkout while the vacation banner is on.
func (h *Handler) vacationActive() (*models.VacationSetting, bool) {
	var setting models.VacationSetting
	if err := h.DB.First(&setting).Error; err != nil {
		return nil, false
	}
	return &setting, setting.IsActive
}

func buildOrder(req *CreateOrderRequest) *models.Order {
	addressParts := []string{req.Street, req.HouseNumber}
	if req.Apartment != "" {
		addressParts = append(addressParts, "דירה "+req.Apartment)
	}
	if req.Floor != "" {
		addressParts = append(addressParts, "קומה "+req.Floor)
	}

	return &models.Order{
		OrderNumber:   uuid.New().String()[:8],
		CustomerName:  req.CustomerName,
		Email:         req.Email,
		Phone:         validation.FormatPhone(req.Phone),
		City:          req.City,
		Street:        req.Street,
		HouseNumber:   req.HouseNumber,
		Apartment:     req.Apartment,
		Floor:         req.Floor,
		Address:       strings.Join(addressParts, ", "),
		DeliveryDate:  req.DeliveryDate,
		DeliveryTime:  req.DeliveryTime,
		Notes:         req.Notes,
		Items:         datatypes.NewJSONType(req.Items),
		TotalPrice:    req.Total,
		PaymentMethod: req.PaymentMethod,
		Status:        "pending",
		PaymentStatus: models.PaymentStatusPending,
	}
}

// CreateOrder - POST /api/orders
// Cash orders are persisted and notified right away. Card/Bit/Grow orders are
// persisted as pending and answered with the provider payment link; the
// matching webhook completes them.
func (h *Handler) createOrder(c *fiber.Ctx) error {
	req := new(CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := validate.Struct(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}
	if errs := h.validateOrderRequest(req); len(errs) > 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":  "Validation failed",
			"fields": errs,
		})
	}

	if setting, active := h.vacationActive(); active {
		return c.Status(fiber.StatusForbidden).JSON(fiber.Map{
			"error":      "Ordering is closed during vacation",
			"message_he": setting.MessageHe,
			"message_en": setting.MessageEn,
		})
	}

	order := buildOrder(req)
	if err := h.DB.Create(order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to create order",
		})
	}

	h.Log.Info("order created",
		zap.Uint("order_id", order.ID),
		zap.String("order_number", order.OrderNumber),
		zap.String("payment_method", order.PaymentMethod),
		zap.Float64("total", order.TotalPrice))

	if order.PaymentMethod == models.PaymentMethodCash {
		whatsappURL := h.notifyNewOrder(order)
		resp := fiber.Map{
			"success":  true,
			"message":  "ההזמנה נשלחה בהצלחה!",
			"order_id": order.ID,
			"orderId":  order.OrderNumber,
		}
		if whatsappURL != "" {
			resp["whatsappUrl"] = whatsappURL
		}
		return c.Status(fiber.StatusCreated).JSON(resp)
	}

	mobile := payment.IsMobileUserAgent(c.Get("User-Agent"))
	link := payment.LinkFor(h.Cfg, order.PaymentMethod, order.ID, order.TotalPrice, mobile)

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"success":        true,
		"order_id":       order.ID,
		"orderId":        order.OrderNumber,
		"payment_status": order.PaymentStatus,
		"payment_url":    link,
	})
}

// notifyNewOrder runs the fan-out for a freshly created order and returns a
// wa.me fallback link when the WhatsApp dispatch failed. Failures only log.
func (h *Handler) notifyNewOrder(order *models.Order) string {
	h.Notifier.SendOrderEmails(order)
	h.Notifier.ForwardToAppsScript(order)

	if err := h.Notifier.SendWhatsApp(order); err != nil {
		h.Log.Warn("whatsapp dispatch failed, returning fallback link",
			zap.Uint("order_id", order.ID), zap.Error(err))
		return h.Notifier.WhatsAppFallbackLink(order)
	}
	return ""
}

// GetAllOrders - GET /api/orders
func (h *Handler) getAllOrders(c *fiber.Ctx) error {
	var orders []models.Order

	query := h.DB.Order("created_at desc")
	if status := c.Query("payment_status"); status != "" {
		query = query.Where("payment_status = ?", status)
	}

	if err := query.Find(&orders).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get orders",
		})
	}
	return c.JSON(orders)
}

// GetOrder - GET /api/orders/:id
func (h *Handler) getOrder(c *fiber.Ctx) error {
	id := c.Params("id")
	var order models.Order

	if err := h.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to get order",
		})
	}
	return c.JSON(order)
}

// UpdateOrder - PUT /api/orders/:id
func (h *Handler) updateOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var existing models.Order
	if err := h.DB.First(&existing, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order",
		})
	}

	update := new(models.Order)
	if err := c.BodyParser(update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if err := h.DB.Model(&existing).Updates(update).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}

	h.broadcastOrder(&existing)

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order updated successfully",
		"data":    existing,
	})
}

// DeleteOrder - DELETE /api/orders/:id
func (h *Handler) deleteOrder(c *fiber.Ctx) error {
	id := c.Params("id")

	var order models.Order
	if err := h.DB.First(&order, id).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to find order",
		})
	}

	if err := h.DB.Delete(&order).Error; err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to delete order",
		})
	}

	return c.JSON(fiber.Map{
		"success": true,
		"message": "Order deleted successfully",
	})
}
