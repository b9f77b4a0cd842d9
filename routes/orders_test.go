package routes_test

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"lulukitchen/models"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"
)

func validOrderPayload(paymentMethod string) map[string]any {
	return map[string]any{
		"customer_name":  "דנה כהן",
		"customer_email": "dana@example.com",
		"customer_phone": "0501234567",
		"city":           "תל אביב",
		"street":         "הרצל",
		"house_number":   "10",
		"apartment":      "4",
		"floor":          "2",
		"delivery_date":  nextDeliveryDate(),
		"delivery_time":  "18:00",
		"items": []map[string]any{
			{"name": "עוף מוקפץ", "quantity": 2, "price": 50,
				"addOns": []map[string]any{{"name": "אורז", "price": 5}}},
		},
		"total":          110,
		"payment_method": paymentMethod,
	}
}

func TestCreateOrderCash(t *testing.T) {
	app, database, notifier := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/orders", validOrderPayload("cash"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.NotContains(t, body, "whatsappUrl")

	var order models.Order
	require.NoError(t, database.First(&order).Error)
	assert.Equal(t, "+972501234567", order.Phone)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)
	assert.Contains(t, order.Address, "דירה 4")
	assert.Contains(t, order.Address, "קומה 2")
	assert.Len(t, order.OrderNumber, 8)

	orderEmails, _, whatsApp := notifier.counts()
	assert.Equal(t, 1, orderEmails)
	assert.Equal(t, 1, whatsApp)
}

func TestCreateOrderWhatsAppFallbackLink(t *testing.T) {
	app, _, notifier := newTestApp(t)
	notifier.whatsAppErr = fmt.Errorf("vonage unreachable")

	resp, body := doJSON(t, app, "POST", "/api/orders", validOrderPayload("cash"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Contains(t, body["whatsappUrl"], "api.whatsapp.com")
}

func TestCreateOrderBitReturnsPaymentLink(t *testing.T) {
	app, database, notifier := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/orders", validOrderPayload("bit"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)
	assert.Equal(t, "pending", body["payment_status"])
	// Desktop default gets the web fallback, not the app deep link.
	assert.True(t, strings.HasPrefix(body["payment_url"].(string), "https://web.bit.co.il/pay"))

	var order models.Order
	require.NoError(t, database.First(&order).Error)
	assert.Equal(t, models.PaymentStatusPending, order.PaymentStatus)

	// Online payments notify on webhook confirmation, not on creation.
	orderEmails, confirms, _ := notifier.counts()
	assert.Zero(t, orderEmails)
	assert.Zero(t, confirms)
}

func TestCreateOrderBitMobileDeepLink(t *testing.T) {
	app, _, _ := newTestApp(t)

	payload := validOrderPayload("bit")
	data, err := jsonMarshal(payload)
	require.NoError(t, err)

	req := httptest.NewRequest("POST", "/api/orders", strings.NewReader(data))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("User-Agent", "Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusCreated, resp.StatusCode)

	body := decodeBody(t, resp)
	assert.True(t, strings.HasPrefix(body["payment_url"].(string), "bit://pay"))
}

func TestCreateOrderGrowLinkCarriesCallback(t *testing.T) {
	app, database, _ := newTestApp(t)

	resp, body := doJSON(t, app, "POST", "/api/orders", validOrderPayload("grow"))

	require.Equal(t, http.StatusCreated, resp.StatusCode)

	var order models.Order
	require.NoError(t, database.First(&order).Error)
	link := body["payment_url"].(string)
	assert.Contains(t, link, fmt.Sprintf("order_id=%d", order.ID))
	assert.Contains(t, link, "notification_url=")
}

func TestCreateOrderValidationErrors(t *testing.T) {
	app, database, _ := newTestApp(t)

	payload := validOrderPayload("cash")
	payload["customer_phone"] = "123"
	payload["delivery_date"] = "2026-09-05" // Saturday

	resp, body := doJSON(t, app, "POST", "/api/orders", payload)

	require.Equal(t, http.StatusBadRequest, resp.StatusCode)
	fields, ok := body["fields"].(map[string]any)
	require.True(t, ok)
	assert.Contains(t, fields, "customer_phone")
	assert.Contains(t, fields, "delivery_date")

	var count int64
	require.NoError(t, database.Model(&models.Order{}).Count(&count).Error)
	assert.Zero(t, count)
}

func TestCreateOrderRejectsUnknownPaymentMethod(t *testing.T) {
	app, _, _ := newTestApp(t)

	resp, _ := doJSON(t, app, "POST", "/api/orders", validOrderPayload("bitcoin"))
	assert.Equal(t, http.StatusBadRequest, resp.StatusCode)
}

func TestCreateOrderBlockedDuringVacation(t *testing.T) {
	app, database, notifier := newTestApp(t)
	require.NoError(t, database.Create(&models.VacationSetting{
		IsActive:  true,
		MessageHe: "אנחנו בחופשה, נחזור בקרוב",
		MessageEn: "We are on vacation, back soon",
	}).Error)

	resp, body := doJSON(t, app, "POST", "/api/orders", validOrderPayload("cash"))

	require.Equal(t, http.StatusForbidden, resp.StatusCode)
	assert.Equal(t, "אנחנו בחופשה, נחזור בקרוב", body["message_he"])

	orderEmails, _, _ := notifier.counts()
	assert.Zero(t, orderEmails)
}

func TestGetAllOrdersFilterByPaymentStatus(t *testing.T) {
	app, database, _ := newTestApp(t)
	seedOrder(t, database, models.PaymentMethodCash)
	paid := seedOrder(t, database, models.PaymentMethodBit)
	require.NoError(t, database.Model(paid).Update("payment_status", models.PaymentStatusPaid).Error)

	req := httptest.NewRequest("GET", "/api/orders?payment_status=paid", nil)
	resp, err := app.Test(req, -1)
	require.NoError(t, err)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	orders := decodeList(t, resp)
	require.Len(t, orders, 1)
	assert.Equal(t, "paid", orders[0]["payment_status"])
}

func TestGetOrderNotFound(t *testing.T) {
	app, _, _ := newTestApp(t)
	resp, _ := doJSON(t, app, "GET", "/api/orders/999", nil)
	assert.Equal(t, http.StatusNotFound, resp.StatusCode)
}

func TestUpdateOrderStatus(t *testing.T) {
	app, database, _ := newTestApp(t)
	order := seedOrder(t, database, models.PaymentMethodCash)

	resp, body := doJSON(t, app, "PUT", fmt.Sprintf("/api/orders/%d", order.ID),
		map[string]any{"status": "delivered"})

	require.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, true, body["success"])
	assert.Equal(t, "delivered", reloadOrder(t, database, order.ID).Status)
}

func TestDeleteOrder(t *testing.T) {
	app, database, _ := newTestApp(t)
	order := seedOrder(t, database, models.PaymentMethodCash)

	resp, _ := doJSON(t, app, "DELETE", fmt.Sprintf("/api/orders/%d", order.ID), nil)
	require.Equal(t, http.StatusOK, resp.StatusCode)

	err := database.First(&models.Order{}, order.ID).Error
	assert.ErrorIs(t, err, gorm.ErrRecordNotFound)
}
