package config

import (
	"github.com/kelseyhightower/envconfig"
)

// Config is loaded once at startup and passed to every component that needs
// it. Do not read environment variables anywhere else.
type Config struct {
	Port       string `envconfig:"PORT" default:"3000"`
	DBPath     string `envconfig:"DB_PATH" default:"database.db"`
	UploadsDir string `envconfig:"UPLOADS_DIR" default:"uploads"`

	RestaurantName  string `envconfig:"RESTAURANT_NAME" default:"Lulu Kitchen"`
	RestaurantPhone string `envconfig:"RESTAURANT_PHONE" default:"052-520-1978"`

	DeliveryFee           float64 `envconfig:"DELIVERY_FEE" default:"40"`
	FreeShippingThreshold float64 `envconfig:"FREE_SHIPPING_THRESHOLD" default:"800"`

	BitPhone      string `envconfig:"BIT_PHONE" default:"0507244482"`
	BitURL        string `envconfig:"BIT_URL" default:"https://www.bitpay.co.il/app/me"`
	PayBoxURL     string `envconfig:"PAYBOX_URL" default:"https://payboxapp.page.link/lulu"`
	GrowLink      string `envconfig:"GROW_LINK" default:"https://pay.grow.link/ca1e9aa48a6c038af81a0b4e7d025628-Mjg2MjI1OA"`
	GrowWebhookKey string `envconfig:"GROW_WEBHOOK_KEY" default:""`
	PublicBaseURL string `envconfig:"PUBLIC_BASE_URL" default:"http://localhost:3000"`

	SMTPHost string `envconfig:"SMTP_HOST" default:""`
	SMTPPort int    `envconfig:"SMTP_PORT" default:"465"`
	SMTPUser string `envconfig:"SMTP_USER" default:""`
	SMTPPass string `envconfig:"SMTP_PASS" default:""`

	OwnerEmail1 string `envconfig:"OWNER_EMAIL_1" default:"lulu@lulu-k.com"`
	OwnerEmail2 string `envconfig:"OWNER_EMAIL_2" default:"lulu.kitchen.il@gmail.com"`

	VonageAPIKey    string `envconfig:"VONAGE_API_KEY" default:""`
	VonageAPISecret string `envconfig:"VONAGE_API_SECRET" default:""`
	VonageFrom      string `envconfig:"VONAGE_FROM" default:"14157386102"`
	WhatsAppPhone   string `envconfig:"WHATSAPP_PHONE" default:"972525201978"`

	AppsScriptURL string `envconfig:"APPS_SCRIPT_URL" default:""`
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}
