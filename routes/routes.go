package routes

import (
	"lulukitchen/config"
	"lulukitchen/models"
	"lulukitchen/realtime"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/adaptor"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

var validate = validator.New()

// OrderNotifier is the notification fan-out consumed by the order and
// webhook handlers. Dispatch failures never fail the request that triggered
// them.
type OrderNotifier interface {
	SendOrderEmails(order *models.Order)
	SendPaymentConfirmation(order *models.Order)
	SendWhatsApp(order *models.Order) error
	WhatsAppFallbackLink(order *models.Order) string
	SendContactEmail(msg *models.ContactMessage)
	ForwardToAppsScript(payload any)
}

type Handler struct {
	DB       *gorm.DB
	Cfg      *config.Config
	Log      *zap.Logger
	Notifier OrderNotifier
	Hub      *realtime.Hub
}

func NewHandler(db *gorm.DB, cfg *config.Config, log *zap.Logger, notifier OrderNotifier, hub *realtime.Hub) *Handler {
	return &Handler{DB: db, Cfg: cfg, Log: log, Notifier: notifier, Hub: hub}
}

func SetupRoutes(app *fiber.App, h *Handler) {
	// Realtime order-status channel
	if h.Hub != nil {
		app.Get("/ws/orders", adaptor.HTTPHandlerFunc(h.Hub.Handler))
	}

	// Image upload route
	app.Post("/upload", h.uploadImage)

	// Payment provider webhooks
	functions := app.Group("/functions")
	functions.Post("/bit-webhook", h.bitWebhook)
	functions.Post("/grow-webhook", h.growWebhook)
	functions.Post("/process-order", h.processOrder)

	api := app.Group("/api")

	api.Post("/admin/login", h.adminLogin)

	// Catalog routes
	menu := api.Group("/menu")
	menu.Get("/", h.getMenu)
	menu.Get("/:id", h.getMenuItem)

	addons := api.Group("/addons")
	addons.Get("/", h.getAddOns)
	addons.Post("/", h.createAddOn)
	addons.Put("/:id", h.updateAddOn)
	addons.Delete("/:id", h.deleteAddOn)

	// Coupon check backing the cart
	api.Post("/coupons/apply", h.applyCoupon)

	// Vacation banner
	api.Get("/vacation", h.getVacation)
	api.Put("/vacation", h.updateVacation)

	// Delivery-area lookups
	cities := api.Group("/cities")
	cities.Get("/", h.getCities)
	cities.Get("/:id/streets", h.getCityStreets)

	// Review routes
	reviews := api.Group("/reviews")
	reviews.Get("/", h.getApprovedReviews)
	reviews.Post("/", h.createReview)
	reviews.Get("/all", h.getAllReviews)
	reviews.Put("/:id", h.updateReview)
	reviews.Delete("/:id", h.deleteReview)

	api.Post("/contact", h.createContactMessage)

	// Order routes
	orders := api.Group("/orders")
	orders.Post("/", h.createOrder)
	orders.Get("/", h.getAllOrders)
	orders.Get("/:id", h.getOrder)
	orders.Put("/:id", h.updateOrder)
	orders.Delete("/:id", h.deleteOrder)
}

// broadcastOrder pushes the update to realtime subscribers when a hub is
// attached.
func (h *Handler) broadcastOrder(order *models.Order) {
	if h.Hub != nil {
		h.Hub.BroadcastOrder(order)
	}
}
