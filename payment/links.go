// Package payment builds the deterministic payment links for the providers
// the storefront supports. None of them are signed; the webhook is the
// authoritative confirmation channel.
package payment

import (
	"fmt"
	"math"
	"net/url"
	"regexp"

	"lulukitchen/config"
)

// BitLink builds the Bit app deep link. Bit expects the amount in agorot.
func BitLink(cfg *config.Config, amount float64) string {
	agorot := int(math.Round(amount * 100))
	return fmt.Sprintf("bit://pay?phone=%s&amount=%d", cfg.BitPhone, agorot)
}

// BitWebFallbackLink is the browser fallback for desktops without the Bit
// app. The web flow takes whole shekels.
func BitWebFallbackLink(cfg *config.Config, amount float64) string {
	shekels := int(math.Round(amount))
	return fmt.Sprintf("https://web.bit.co.il/pay?phone=%s&amount=%d", cfg.BitPhone, shekels)
}

// PayBoxLink returns the static PayBox page, with the amount prefilled when
// known.
func PayBoxLink(cfg *config.Config, amount float64) string {
	if amount > 0 {
		return fmt.Sprintf("%s?amount=%g", cfg.PayBoxURL, amount)
	}
	return cfg.PayBoxURL
}

// GrowLink builds the hosted Grow payment page URL carrying the order id and
// the webhook callback so the provider can notify us.
func GrowLink(cfg *config.Config, orderID uint, amount float64) string {
	callback := fmt.Sprintf("%s/functions/grow-webhook?order_id=%d", cfg.PublicBaseURL, orderID)
	return fmt.Sprintf("%s?amount=%.2f&order_id=%d&notification_url=%s",
		cfg.GrowLink, amount, orderID, url.QueryEscape(callback))
}

var mobileUA = regexp.MustCompile(`(?i)Android|webOS|iPhone|iPad|iPod|BlackBerry|IEMobile|Opera Mini`)

// IsMobileUserAgent decides between the deep link (mobile) and the QR/button
// flow (desktop).
func IsMobileUserAgent(ua string) bool {
	return mobileUA.MatchString(ua)
}

// LinkFor picks the provider link for the order's payment method. Cash has no
// link.
func LinkFor(cfg *config.Config, method string, orderID uint, amount float64, mobile bool) string {
	switch method {
	case "bit":
		if mobile {
			return BitLink(cfg, amount)
		}
		return BitWebFallbackLink(cfg, amount)
	case "paybox":
		return PayBoxLink(cfg, amount)
	case "grow":
		return GrowLink(cfg, orderID, amount)
	}
	return ""
}
