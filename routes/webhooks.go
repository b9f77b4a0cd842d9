package routes

import (
	"encoding/json"
	"errors"
	"time"

	"lulukitchen/models"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

var errOrderNotFound = errors.New("order not found")

// markOrderPaid performs the pending->paid transition as one conditional
// update so two near-simultaneous webhook deliveries cannot both apply side
// effects: zero rows affected means another delivery already won.
func (h *Handler) markOrderPaid(orderID string, method, transactionID string, raw []byte) (*models.Order, bool, error) {
	var order models.Order
	if err := h.DB.First(&order, "id = ?", orderID).Error; err != nil {
		if err == gorm.ErrRecordNotFound {
			return nil, false, errOrderNotFound
		}
		return nil, false, err
	}

	updates := map[string]any{
		"payment_status": models.PaymentStatusPaid,
		"payment_method": method,
		"updated_at":     time.Now(),
	}
	if transactionID != "" {
		if method == models.PaymentMethodGrow {
			updates["grow_transaction_id"] = transactionID
		} else {
			updates["transaction_id"] = transactionID
		}
	}
	if len(raw) > 0 {
		updates["raw_webhook_data"] = datatypes.JSON(raw)
	}

	result := h.DB.Model(&models.Order{}).
		Where("id = ? AND payment_status <> ?", order.ID, models.PaymentStatusPaid).
		Updates(updates)
	if result.Error != nil {
		return nil, false, result.Error
	}
	if result.RowsAffected == 0 {
		// Duplicate delivery; the first one already ran the fan-out.
		return &order, true, nil
	}

	if err := h.DB.First(&order, order.ID).Error; err != nil {
		return nil, false, err
	}
	return &order, false, nil
}

// paidWebhookResponse finishes a successful webhook: fan-out, realtime push,
// and the provider-facing JSON body.
func (h *Handler) paidWebhookResponse(c *fiber.Ctx, order *models.Order) error {
	h.Log.Info("order marked paid",
		zap.Uint("order_id", order.ID),
		zap.String("payment_method", order.PaymentMethod))

	h.Notifier.SendPaymentConfirmation(order)
	h.broadcastOrder(order)

	return c.JSON(fiber.Map{
		"success":        true,
		"order_id":       order.ID,
		"payment_status": order.PaymentStatus,
	})
}

// BitWebhook - POST /functions/bit-webhook?order_id=<id>
func (h *Handler) bitWebhook(c *fiber.Ctx) error {
	orderID := c.Query("order_id")
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing order_id",
		})
	}

	raw := c.Body()
	h.Log.Info("bit webhook received", zap.String("order_id", orderID))

	order, alreadyPaid, err := h.markOrderPaid(orderID, models.PaymentMethodBit, "", raw)
	if err != nil {
		if err == errOrderNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}
	if alreadyPaid {
		h.Log.Info("order already paid, ignoring duplicate webhook", zap.Uint("order_id", order.ID))
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order already paid",
		})
	}

	return h.paidWebhookResponse(c, order)
}

// growData is the nested transaction block of the modern Grow envelope.
type growData struct {
	TransactionID    string `json:"transactionId"`
	TransactionToken string `json:"transactionToken"`
	StatusCode       string `json:"statusCode"`
	Status           string `json:"status"`
}

// growEnvelope carries every field the provider is known to send; which
// variant applies is decided by parse, never guessed per field.
type growEnvelope struct {
	// nested variant
	Data   *growData `json:"data"`
	Status string    `json:"status"`

	// flat variant
	WebhookKey      string `json:"webhookKey"`
	TransactionCode string `json:"transactionCode"`
	PaymentType     string `json:"paymentType"`
	PaymentDate     string `json:"paymentDate"`

	// generic variant
	OrderID       string `json:"order_id"`
	TransactionID string `json:"transaction_id"`
}

type growResult struct {
	paid          bool
	transactionID string
	webhookKey    string
	orderID       string
}

var errUnknownGrowShape = errors.New("unrecognized grow payload shape")

// parseGrowPayload resolves the provider's three documented envelope
// variants. Anything that matches none of them is a hard validation error.
func parseGrowPayload(body []byte) (growResult, error) {
	var env growEnvelope
	if err := json.Unmarshal(body, &env); err != nil {
		return growResult{}, err
	}

	switch {
	case env.Data != nil && env.Status != "":
		tx := env.Data.TransactionID
		if tx == "" {
			tx = env.Data.TransactionToken
		}
		return growResult{
			paid:          env.Data.StatusCode == "2" || env.Data.Status == "שולם",
			transactionID: tx,
			webhookKey:    env.WebhookKey,
		}, nil

	case env.WebhookKey != "":
		return growResult{
			paid:          env.PaymentDate != "",
			transactionID: env.TransactionCode,
			webhookKey:    env.WebhookKey,
		}, nil

	case env.OrderID != "" || env.Status != "" || env.TransactionID != "":
		return growResult{
			paid:          env.Status == "completed" || env.Status == "success" || env.Status == "paid",
			transactionID: firstNonEmpty(env.TransactionID, env.TransactionCode),
			orderID:       env.OrderID,
		}, nil
	}

	return growResult{}, errUnknownGrowShape
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}

// GrowWebhook - POST /functions/grow-webhook?order_id=<id>
func (h *Handler) growWebhook(c *fiber.Ctx) error {
	raw := c.Body()
	h.Log.Info("grow webhook received")

	result, err := parseGrowPayload(raw)
	if err != nil {
		h.Log.Warn("invalid grow payload", zap.Error(err))
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid webhook payload",
		})
	}

	if result.webhookKey != "" && h.Cfg.GrowWebhookKey != "" && result.webhookKey != h.Cfg.GrowWebhookKey {
		h.Log.Warn("invalid grow webhook key")
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid webhook key",
		})
	}

	orderID := result.orderID
	if orderID == "" {
		orderID = c.Query("order_id")
	}
	if orderID == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Missing order_id",
		})
	}

	if !result.paid {
		// Not a payment confirmation; keep the payload for audit and leave
		// the order pending.
		var order models.Order
		if err := h.DB.First(&order, "id = ?", orderID).Error; err != nil {
			if err == gorm.ErrRecordNotFound {
				return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
					"error": "Order not found",
				})
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to find order",
			})
		}
		updates := map[string]any{
			"raw_webhook_data": datatypes.JSON(raw),
			"updated_at":       time.Now(),
		}
		if result.transactionID != "" {
			updates["grow_transaction_id"] = result.transactionID
		}
		if err := h.DB.Model(&order).Updates(updates).Error; err != nil {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Failed to update order",
			})
		}
		return c.JSON(fiber.Map{
			"success":        true,
			"order_id":       order.ID,
			"payment_status": order.PaymentStatus,
		})
	}

	order, alreadyPaid, err := h.markOrderPaid(orderID, models.PaymentMethodGrow, result.transactionID, raw)
	if err != nil {
		if err == errOrderNotFound {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
				"error": "Order not found",
			})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Failed to update order",
		})
	}
	if alreadyPaid {
		h.Log.Info("order already paid, ignoring duplicate webhook", zap.Uint("order_id", order.ID))
		return c.JSON(fiber.Map{
			"success": true,
			"message": "Order already paid",
		})
	}

	return h.paidWebhookResponse(c, order)
}

// ProcessOrder - POST /functions/process-order
// The combined create-and-notify flow: persists the order and runs the full
// fan-out (emails, WhatsApp) in one request. Used by the storefront for cash
// checkouts and as the primary submit path.
func (h *Handler) processOrder(c *fiber.Ctx) error {
	req := new(CreateOrderRequest)
	if err := c.BodyParser(req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Failed to parse request body",
		})
	}

	if req.CustomerName == "" || req.Phone == "" || len(req.Items) == 0 {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"success": false,
			"error":   "Missing required fields",
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
		h.Log.Error("order processing failed", zap.Error(err))
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"success": false,
			"error":   "Failed to save order",
		})
	}

	h.Log.Info("processing order",
		zap.Uint("order_id", order.ID),
		zap.String("customer", order.CustomerName))

	whatsappURL := h.notifyNewOrder(order)

	resp := fiber.Map{
		"success": true,
		"message": "ההזמנה נשלחה בהצלחה!",
		"orderId": order.OrderNumber,
	}
	if whatsappURL != "" {
		resp["whatsappUrl"] = whatsappURL
	}
	return c.JSON(resp)
}
