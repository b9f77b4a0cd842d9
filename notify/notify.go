// Package notify fans out order notifications: HTML emails to the customer
// and the restaurant owners, a WhatsApp attempt through the Vonage API, and a
// forward to the owners' Apps-Script sheet. Every failure here is logged and
// swallowed; a lost notification never rolls back an order or a payment.
package notify

import (
	"bytes"
	"encoding/base64"
	"encoding/json"
	"fmt"
	"html/template"
	"net/http"
	"net/url"
	"strings"
	"time"

	"lulukitchen/config"
	"lulukitchen/models"

	"go.uber.org/zap"
	"gopkg.in/gomail.v2"
)

const vonageMessagesURL = "https://messages-sandbox.nexmo.com/v1/messages"

// MailSender is satisfied by *gomail.Dialer; tests substitute a recorder.
type MailSender interface {
	DialAndSend(m ...*gomail.Message) error
}

type Notifier struct {
	cfg    *config.Config
	log    *zap.Logger
	mailer MailSender
	client *http.Client

	vonageURL string
}

func New(cfg *config.Config, log *zap.Logger) *Notifier {
	var mailer MailSender
	if cfg.SMTPHost != "" {
		mailer = gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPass)
	}
	return &Notifier{
		cfg:       cfg,
		log:       log,
		mailer:    mailer,
		client:    &http.Client{Timeout: 10 * time.Second},
		vonageURL: vonageMessagesURL,
	}
}

// NewWithMailer is the test constructor.
func NewWithMailer(cfg *config.Config, log *zap.Logger, mailer MailSender, client *http.Client, vonageURL string) *Notifier {
	return &Notifier{cfg: cfg, log: log, mailer: mailer, client: client, vonageURL: vonageURL}
}

func (n *Notifier) sendEmail(to, subject, html string) error {
	if n.mailer == nil {
		n.log.Warn("SMTP not configured, skipping email", zap.String("to", to))
		return nil
	}
	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(n.cfg.SMTPUser, n.cfg.RestaurantName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/html", html)
	return n.mailer.DialAndSend(m)
}

// SendOrderEmails sends the new-order mails: a thank-you to the customer when
// an address was given and the order alert to both owner addresses.
func (n *Notifier) SendOrderEmails(order *models.Order) {
	if order.Email != "" {
		html, err := renderEmail(customerOrderTemplate, order)
		if err != nil {
			n.log.Error("failed to render customer email", zap.Error(err))
		} else if err := n.sendEmail(order.Email, fmt.Sprintf("הזמנה מס' %s - לולו המטבח הסיני", order.OrderNumber), html); err != nil {
			n.log.Error("failed to send customer email", zap.Uint("order_id", order.ID), zap.Error(err))
		}
	}

	html, err := renderEmail(adminOrderTemplate, order)
	if err != nil {
		n.log.Error("failed to render admin email", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("🍜 הזמנה חדשה - %s", order.CustomerName)
	for _, to := range []string{n.cfg.OwnerEmail1, n.cfg.OwnerEmail2} {
		if err := n.sendEmail(to, subject, html); err != nil {
			n.log.Error("failed to send owner email", zap.String("to", to), zap.Uint("order_id", order.ID), zap.Error(err))
		}
	}
}

// SendPaymentConfirmation sends the post-payment mails: the payment alert to
// both owners and the thank-you to the customer.
func (n *Notifier) SendPaymentConfirmation(order *models.Order) {
	adminHTML, err := renderEmail(paymentConfirmedTemplate, order)
	if err != nil {
		n.log.Error("failed to render payment email", zap.Error(err))
		return
	}
	subject := fmt.Sprintf("💰 התקבל תשלום חדש! הזמנה #%d", order.ID)
	for _, to := range []string{n.cfg.OwnerEmail1, n.cfg.OwnerEmail2} {
		if err := n.sendEmail(to, subject, adminHTML); err != nil {
			n.log.Error("failed to send owner email", zap.String("to", to), zap.Uint("order_id", order.ID), zap.Error(err))
		}
	}

	if order.Email != "" {
		html, err := renderEmail(paymentThanksTemplate, order)
		if err != nil {
			n.log.Error("failed to render customer email", zap.Error(err))
			return
		}
		if err := n.sendEmail(order.Email, "הזמנתך התקבלה – לולו המטבח הסיני", html); err != nil {
			n.log.Error("failed to send customer email", zap.Uint("order_id", order.ID), zap.Error(err))
		}
	}
}

// SendContactEmail forwards a contact-form message to both owner addresses.
func (n *Notifier) SendContactEmail(msg *models.ContactMessage) {
	html := fmt.Sprintf(
		`<html dir="rtl" lang="he"><body style="font-family:Arial,sans-serif">`+
			`<h2>✉️ פנייה חדשה מהאתר</h2>`+
			`<p><strong>שם:</strong> %s</p><p><strong>טלפון:</strong> %s</p>`+
			`<p><strong>אימייל:</strong> %s</p><p><strong>הודעה:</strong></p><p>%s</p>`+
			`</body></html>`,
		template.HTMLEscapeString(msg.CustomerName),
		template.HTMLEscapeString(msg.CustomerPhone),
		template.HTMLEscapeString(msg.CustomerEmail),
		template.HTMLEscapeString(msg.Message))

	subject := fmt.Sprintf("✉️ פנייה חדשה - %s", msg.CustomerName)
	for _, to := range []string{n.cfg.OwnerEmail1, n.cfg.OwnerEmail2} {
		if err := n.sendEmail(to, subject, html); err != nil {
			n.log.Error("failed to send contact email", zap.String("to", to), zap.Error(err))
		}
	}
}

func whatsAppText(order *models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "🍜 הזמנה חדשה - %s\n", order.CustomerName)
	fmt.Fprintf(&b, "📞 %s\n", order.Phone)
	if order.DeliveryDate != "" {
		fmt.Fprintf(&b, "📅 תאריך: %s\n", order.DeliveryDate)
	}
	if order.DeliveryTime != "" {
		fmt.Fprintf(&b, "🕐 שעה: %s\n", order.DeliveryTime)
	}
	fmt.Fprintf(&b, "💰 סה\"כ: ₪%.2f\n", order.TotalPrice)
	fmt.Fprintf(&b, "💳 תשלום: %s\n\n🥡 פריטים:\n", order.PaymentMethod)
	for _, item := range order.Items.Data() {
		fmt.Fprintf(&b, "• %s x%d\n", item.Name, item.Quantity)
		if len(item.AddOns) > 0 {
			names := make([]string, len(item.AddOns))
			for i, a := range item.AddOns {
				names[i] = a.Name
			}
			fmt.Fprintf(&b, "  תוספות: %s\n", strings.Join(names, ", "))
		}
	}
	if order.Notes != "" {
		fmt.Fprintf(&b, "\n📝 הערות: %s\n", order.Notes)
	}
	return strings.TrimSpace(b.String())
}

// SendWhatsApp pushes the order alert to the restaurant's WhatsApp through
// Vonage. Returns an error so the caller can fall back to a wa.me link.
func (n *Notifier) SendWhatsApp(order *models.Order) error {
	if n.cfg.VonageAPIKey == "" || n.cfg.VonageAPISecret == "" {
		return fmt.Errorf("vonage credentials not configured")
	}

	body, err := json.Marshal(map[string]string{
		"message_type": "text",
		"text":         whatsAppText(order),
		"to":           n.cfg.WhatsAppPhone,
		"from":         n.cfg.VonageFrom,
		"channel":      "whatsapp",
	})
	if err != nil {
		return err
	}

	req, err := http.NewRequest(http.MethodPost, n.vonageURL, bytes.NewReader(body))
	if err != nil {
		return err
	}
	auth := base64.StdEncoding.EncodeToString([]byte(n.cfg.VonageAPIKey + ":" + n.cfg.VonageAPISecret))
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Basic "+auth)

	resp, err := n.client.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()
	if resp.StatusCode >= 300 {
		return fmt.Errorf("vonage returned %d", resp.StatusCode)
	}
	return nil
}

// WhatsAppFallbackLink builds a prefilled wa.me style link the customer can
// open manually when the API dispatch failed.
func (n *Notifier) WhatsAppFallbackLink(order *models.Order) string {
	return fmt.Sprintf("https://api.whatsapp.com/send?phone=%s&text=%s",
		n.cfg.WhatsAppPhone, url.QueryEscape(whatsAppText(order)))
}

// ForwardToAppsScript mirrors the submission to the owners' spreadsheet
// endpoint, retrying once after a flat one-second delay.
func (n *Notifier) ForwardToAppsScript(payload any) {
	if n.cfg.AppsScriptURL == "" {
		return
	}
	body, err := json.Marshal(payload)
	if err != nil {
		n.log.Error("failed to marshal apps-script payload", zap.Error(err))
		return
	}

	const retries = 2
	for attempt := 1; attempt <= retries; attempt++ {
		resp, err := n.client.Post(n.cfg.AppsScriptURL, "application/json", bytes.NewReader(body))
		if err == nil {
			resp.Body.Close()
			if resp.StatusCode < 300 {
				return
			}
			err = fmt.Errorf("apps script returned %d", resp.StatusCode)
		}
		n.log.Warn("apps-script forward failed",
			zap.Int("attempt", attempt), zap.Error(err))
		if attempt < retries {
			time.Sleep(time.Second)
		}
	}
}
