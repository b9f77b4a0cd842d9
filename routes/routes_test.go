package routes_test

import (
	"bytes"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"lulukitchen/config"
	"lulukitchen/db"
	"lulukitchen/models"
	"lulukitchen/routes"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"gorm.io/datatypes"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
)

// fakeNotifier counts dispatches so tests can assert the fan-out ran exactly
// once per event.
type fakeNotifier struct {
	mu              sync.Mutex
	orderEmails     int
	paymentConfirms int
	whatsAppCalls   int
	contactEmails   int
	appsScriptCalls int
	whatsAppErr     error
}

func (f *fakeNotifier) SendOrderEmails(*models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orderEmails++
}

func (f *fakeNotifier) SendPaymentConfirmation(*models.Order) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.paymentConfirms++
}

func (f *fakeNotifier) SendWhatsApp(*models.Order) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.whatsAppCalls++
	return f.whatsAppErr
}

func (f *fakeNotifier) WhatsAppFallbackLink(*models.Order) string {
	return "https://api.whatsapp.com/send?phone=972525201978"
}

func (f *fakeNotifier) SendContactEmail(*models.ContactMessage) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.contactEmails++
}

func (f *fakeNotifier) ForwardToAppsScript(any) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.appsScriptCalls++
}

func (f *fakeNotifier) counts() (orderEmails, paymentConfirms, whatsApp int) {
	f.mu.Lock()
	defer f.mu.Unlock()
	return f.orderEmails, f.paymentConfirms, f.whatsAppCalls
}

func testConfig() *config.Config {
	return &config.Config{
		BitPhone:       "0501234567",
		PayBoxURL:      "https://payboxapp.page.link/lulu",
		GrowLink:       "https://pay.grow.link/lulu",
		GrowWebhookKey: "sekret",
		PublicBaseURL:  "https://lulu.kitchen",
	}
}

func newTestApp(t *testing.T) (*fiber.App, *gorm.DB, *fakeNotifier) {
	t.Helper()

	database, err := gorm.Open(sqlite.Open(filepath.Join(t.TempDir(), "test.db")), &gorm.Config{})
	require.NoError(t, err)
	require.NoError(t, db.Migrate(database))

	notifier := &fakeNotifier{}
	h := routes.NewHandler(database, testConfig(), zap.NewNop(), notifier, nil)

	app := fiber.New()
	routes.SetupRoutes(app, h)
	return app, database, notifier
}

func seedOrder(t *testing.T, database *gorm.DB, paymentMethod string) *models.Order {
	t.Helper()

	order := &models.Order{
		OrderNumber:  "ord-" + paymentMethod + "-" + time.Now().Format("150405.000000000"),
		CustomerName: "דנה כהן",
		Email:        "dana@example.com",
		Phone:        "+972501234567",
		City:         "תל אביב",
		Street:       "הרצל",
		HouseNumber:  "10",
		Address:      "הרצל, 10",
		DeliveryDate: "2026-09-07",
		DeliveryTime: "18:00",
		Items: datatypes.NewJSONType([]models.OrderItem{
			{Name: "עוף מוקפץ", Quantity: 2, Price: 50, AddOns: []models.OrderItemAdd{{Name: "אורז", Price: 5}}},
		}),
		TotalPrice:    110,
		PaymentMethod: paymentMethod,
		Status:        "pending",
		PaymentStatus: models.PaymentStatusPending,
	}
	require.NoError(t, database.Create(order).Error)
	return order
}

func doJSON(t *testing.T, app *fiber.App, method, path string, body any) (*http.Response, map[string]any) {
	t.Helper()

	var reader io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		require.NoError(t, err)
		reader = bytes.NewReader(data)
	}

	req := httptest.NewRequest(method, path, reader)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		json.Unmarshal(data, &parsed)
	}
	return resp, parsed
}

func doRaw(t *testing.T, app *fiber.App, method, path, body string) (*http.Response, map[string]any) {
	t.Helper()

	req := httptest.NewRequest(method, path, bytes.NewReader([]byte(body)))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req, -1)
	require.NoError(t, err)

	var parsed map[string]any
	data, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	if len(data) > 0 {
		json.Unmarshal(data, &parsed)
	}
	return resp, parsed
}

func jsonMarshal(v any) (string, error) {
	data, err := json.Marshal(v)
	return string(data), err
}

func decodeBody(t *testing.T, resp *http.Response) map[string]any {
	t.Helper()
	var parsed map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

func decodeList(t *testing.T, resp *http.Response) []map[string]any {
	t.Helper()
	var parsed []map[string]any
	require.NoError(t, json.NewDecoder(resp.Body).Decode(&parsed))
	return parsed
}

// nextDeliveryDate returns the nearest valid delivery date: tomorrow or
// later, skipping Fridays and Saturdays so an evening slot is always open.
func nextDeliveryDate() string {
	d := time.Now().AddDate(0, 0, 1)
	for d.Weekday() == time.Friday || d.Weekday() == time.Saturday {
		d = d.AddDate(0, 0, 1)
	}
	return d.Format("2006-01-02")
}

func reloadOrder(t *testing.T, database *gorm.DB, id uint) *models.Order {
	t.Helper()
	var order models.Order
	require.NoError(t, database.First(&order, id).Error)
	return &order
}
