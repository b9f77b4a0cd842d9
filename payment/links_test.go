package payment

import (
	"testing"

	"lulukitchen/config"

	"github.com/stretchr/testify/assert"
)

func testConfig() *config.Config {
	return &config.Config{
		BitPhone:      "0501234567",
		PayBoxURL:     "https://payboxapp.page.link/lulu",
		GrowLink:      "https://pay.grow.link/lulu",
		PublicBaseURL: "https://lulu.kitchen",
	}
}

func TestBitLinkAmountInAgorot(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "bit://pay?phone=0501234567&amount=11000", BitLink(cfg, 110))
	// Fractional shekels round to the nearest agora.
	assert.Equal(t, "bit://pay?phone=0501234567&amount=9950", BitLink(cfg, 99.499))
}

func TestBitWebFallbackLinkInShekels(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "https://web.bit.co.il/pay?phone=0501234567&amount=110", BitWebFallbackLink(cfg, 110))
	assert.Equal(t, "https://web.bit.co.il/pay?phone=0501234567&amount=99", BitWebFallbackLink(cfg, 99.4))
}

func TestPayBoxLink(t *testing.T) {
	cfg := testConfig()
	assert.Equal(t, "https://payboxapp.page.link/lulu?amount=110", PayBoxLink(cfg, 110))
	assert.Equal(t, "https://payboxapp.page.link/lulu", PayBoxLink(cfg, 0))
}

func TestGrowLinkCarriesOrderAndCallback(t *testing.T) {
	cfg := testConfig()
	link := GrowLink(cfg, 42, 99.5)

	assert.Contains(t, link, "https://pay.grow.link/lulu?amount=99.50&order_id=42")
	// The callback URL must be query-escaped so Grow stores it whole.
	assert.Contains(t, link, "notification_url=https%3A%2F%2Flulu.kitchen%2Ffunctions%2Fgrow-webhook%3Forder_id%3D42")
}

func TestIsMobileUserAgent(t *testing.T) {
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (iPhone; CPU iPhone OS 17_0 like Mac OS X)"))
	assert.True(t, IsMobileUserAgent("Mozilla/5.0 (Linux; Android 14; Pixel 8)"))
	assert.False(t, IsMobileUserAgent("Mozilla/5.0 (Windows NT 10.0; Win64; x64)"))
	assert.False(t, IsMobileUserAgent(""))
}

func TestLinkFor(t *testing.T) {
	cfg := testConfig()

	assert.Equal(t, BitLink(cfg, 50), LinkFor(cfg, "bit", 1, 50, true))
	assert.Equal(t, BitWebFallbackLink(cfg, 50), LinkFor(cfg, "bit", 1, 50, false))
	assert.Equal(t, PayBoxLink(cfg, 50), LinkFor(cfg, "paybox", 1, 50, false))
	assert.Equal(t, GrowLink(cfg, 1, 50), LinkFor(cfg, "grow", 1, 50, false))
	assert.Empty(t, LinkFor(cfg, "cash", 1, 50, false))
}
