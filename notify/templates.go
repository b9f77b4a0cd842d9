package notify

import (
	"bytes"
	"html/template"
	"strings"

	"lulukitchen/models"
)

type emailData struct {
	Order       *models.Order
	Items       []models.OrderItem
	FullAddress string
	MethodLabel string
}

func fullAddress(o *models.Order) string {
	parts := []string{}
	if o.Street != "" {
		parts = append(parts, o.Street)
	}
	if o.HouseNumber != "" {
		parts = append(parts, o.HouseNumber)
	}
	if o.Apartment != "" {
		parts = append(parts, "דירה "+o.Apartment)
	}
	if o.Floor != "" {
		parts = append(parts, "קומה "+o.Floor)
	}
	return strings.Join(parts, ", ")
}

func methodLabel(method string) string {
	switch method {
	case models.PaymentMethodBit:
		return "Bit"
	case models.PaymentMethodGrow:
		return "Grow Payment"
	case models.PaymentMethodPayBox:
		return "PayBox"
	case models.PaymentMethodCash:
		return "מזומן"
	}
	return method
}

const itemsTableTmpl = `
<table style="width:100%;border-collapse:collapse;margin:20px 0;border:1px solid #ddd">
  <thead>
    <tr style="background:#f8f9fa">
      <th style="padding:10px;text-align:right">פריט</th>
      <th style="padding:10px;text-align:center">כמות</th>
      <th style="padding:10px;text-align:left">מחיר</th>
    </tr>
  </thead>
  <tbody>
  {{range .Items}}
    <tr>
      <td style="padding:8px;border-bottom:1px solid #eee">{{.Name}}
        {{if .AddOns}}<br><small style="color:#666">תוספות: {{range $i, $a := .AddOns}}{{if $i}}, {{end}}{{$a.Name}} (+₪{{printf "%.0f" $a.Price}}){{end}}</small>{{end}}
      </td>
      <td style="padding:8px;text-align:center;border-bottom:1px solid #eee">{{.Quantity}}</td>
      <td style="padding:8px;text-align:left;border-bottom:1px solid #eee">₪{{printf "%.2f" .LineTotal}}</td>
    </tr>
  {{end}}
  </tbody>
</table>`

const customerOrderTmpl = `<!DOCTYPE html>
<html dir="rtl" lang="he">
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;color:#333;max-width:600px;margin:0 auto;padding:20px">
  <div style="background:linear-gradient(135deg,#c41e3a 0%,#8b1528 100%);color:white;padding:30px;text-align:center;border-radius:10px 10px 0 0">
    <h1 style="margin:0">🍜 לולו - המטבח הסיני</h1>
    <p style="margin:10px 0 0 0">תודה על ההזמנה!</p>
  </div>
  <div style="background:white;padding:30px;border:1px solid #ddd;border-top:none">
    <h2 style="color:#c41e3a">שלום {{.Order.CustomerName}},</h2>
    <p>קיבלנו את הזמנתך ואנחנו מכינים אותה במיוחד בשבילך! 🥢</p>
    {{if .Order.OrderNumber}}<p><strong>📋 מספר הזמנה:</strong> {{.Order.OrderNumber}}</p>{{end}}
    {{template "items" .}}
    <p style="font-size:18px;font-weight:bold;color:#c41e3a">סה"כ לתשלום: ₪{{printf "%.2f" .Order.TotalPrice}}</p>
    {{if .Order.DeliveryDate}}<p><strong>📅 תאריך משלוח:</strong> {{.Order.DeliveryDate}}</p>{{end}}
    {{if .Order.DeliveryTime}}<p><strong>🕐 זמן אספקה:</strong> {{.Order.DeliveryTime}}</p>{{end}}
    {{if .FullAddress}}<p><strong>📍 כתובת למשלוח:</strong> {{.Order.City}}, {{.FullAddress}}</p>{{end}}
    <p><strong>💳 אמצעי תשלום:</strong> {{.MethodLabel}}</p>
    {{if .Order.Notes}}<p><strong>📝 הערות:</strong> {{.Order.Notes}}</p>{{end}}
  </div>
</body>
</html>`

const adminOrderTmpl = `<!DOCTYPE html>
<html dir="rtl" lang="he">
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;color:#333;max-width:700px;margin:0 auto;padding:20px">
  <div style="background:#c41e3a;color:white;padding:20px;text-align:center;border-radius:8px 8px 0 0">
    <h1 style="margin:0">🍜 הזמנה חדשה!</h1>
  </div>
  <div style="background:white;padding:30px;border:2px solid #c41e3a;border-top:none">
    <ul style="list-style:none;padding:0">
      <li style="padding:8px 0;border-bottom:1px solid #eee"><strong>שם:</strong> {{.Order.CustomerName}}</li>
      <li style="padding:8px 0;border-bottom:1px solid #eee"><strong>טלפון:</strong> <a href="tel:{{.Order.Phone}}">{{.Order.Phone}}</a></li>
      {{if .Order.Email}}<li style="padding:8px 0;border-bottom:1px solid #eee"><strong>אימייל:</strong> {{.Order.Email}}</li>{{end}}
      {{if .Order.DeliveryDate}}<li style="padding:8px 0;border-bottom:1px solid #eee"><strong>תאריך:</strong> {{.Order.DeliveryDate}}</li>{{end}}
      {{if .Order.DeliveryTime}}<li style="padding:8px 0;border-bottom:1px solid #eee"><strong>זמן אספקה:</strong> {{.Order.DeliveryTime}}</li>{{end}}
      {{if .FullAddress}}<li style="padding:8px 0;border-bottom:1px solid #eee"><strong>כתובת:</strong> {{.Order.City}}, {{.FullAddress}}</li>{{end}}
      <li style="padding:8px 0"><strong>תשלום:</strong> {{.MethodLabel}}</li>
    </ul>
    {{template "items" .}}
    <p style="font-size:18px;font-weight:bold;color:#c41e3a">סה"כ: ₪{{printf "%.2f" .Order.TotalPrice}}</p>
    {{if .Order.Notes}}<div style="padding:15px;background:#fff3cd;border-radius:5px"><strong>📝 הערות לקוח:</strong><br>{{.Order.Notes}}</div>{{end}}
  </div>
</body>
</html>`

const paymentConfirmedTmpl = `<!DOCTYPE html>
<html dir="rtl" lang="he">
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;color:#333;max-width:700px;margin:0 auto;padding:20px">
  <div style="background:linear-gradient(135deg,#28a745 0%,#1e7e34 100%);color:white;padding:30px;text-align:center;border-radius:10px 10px 0 0">
    <h1 style="margin:0">💰 התקבל תשלום חדש!</h1>
    <h2 style="margin:10px 0 0 0">הזמנה #{{.Order.ID}}</h2>
  </div>
  <div style="background:white;padding:30px;border:1px solid #ddd;border-top:none">
    <div style="background:#fff3cd;border:1px solid #ffc107;padding:15px;border-radius:5px">
      <strong>✅ התשלום אושר</strong><br>
      {{if .Order.TransactionID}}קוד עסקה: {{.Order.TransactionID}}<br>{{end}}
      {{if .Order.GrowTransactionID}}קוד עסקה: {{.Order.GrowTransactionID}}<br>{{end}}
      אמצעי תשלום: {{.MethodLabel}}
    </div>
    <p><strong>👤 שם:</strong> {{.Order.CustomerName}} | <strong>טלפון:</strong> {{.Order.Phone}}</p>
    {{if .FullAddress}}<p><strong>📍 כתובת למשלוח:</strong> {{.Order.City}}, {{.FullAddress}}</p>{{end}}
    {{template "items" .}}
    <p style="font-size:20px;font-weight:bold;color:#28a745">סה"כ: ₪{{printf "%.2f" .Order.TotalPrice}}</p>
    {{if .Order.Notes}}<p><strong>📝 הערות מהלקוח:</strong> {{.Order.Notes}}</p>{{end}}
  </div>
</body>
</html>`

const paymentThanksTmpl = `<!DOCTYPE html>
<html dir="rtl" lang="he">
<head><meta charset="UTF-8"></head>
<body style="font-family:Arial,sans-serif;color:#333;max-width:600px;margin:0 auto;padding:20px">
  <div style="background:linear-gradient(135deg,#c41e3a 0%,#8b1428 100%);color:white;padding:30px;text-align:center;border-radius:10px 10px 0 0">
    <h1 style="margin:0">🍜 לולו המטבח הסיני</h1>
    <h2 style="margin:10px 0 0 0">תודה על ההזמנה!</h2>
  </div>
  <div style="background:white;padding:30px;border:1px solid #ddd;border-top:none">
    <p style="font-size:18px"><strong>שלום {{.Order.CustomerName}},</strong></p>
    <p>תשלומך התקבל בהצלחה! ההזמנה שלך בדרך אליך.</p>
    {{if .Order.DeliveryDate}}<p><strong>⏰ זמן משלוח משוער:</strong> 📅 {{.Order.DeliveryDate}} {{if .Order.DeliveryTime}}🕐 {{.Order.DeliveryTime}}{{end}}</p>{{end}}
    {{if .FullAddress}}<p><strong>📍 כתובת למשלוח:</strong> {{.Order.City}}, {{.FullAddress}}</p>{{end}}
    {{template "items" .}}
    <p style="font-size:20px;font-weight:bold;color:#c41e3a">סה"כ: ₪{{printf "%.2f" .Order.TotalPrice}}</p>
    {{if .Order.Notes}}<p><strong>📝 הערות:</strong> {{.Order.Notes}}</p>{{end}}
    <p style="margin-top:30px">אם יש לך שאלות, אנחנו כאן בשבילך! בתאבון! 🥢</p>
  </div>
</body>
</html>`

var (
	customerOrderTemplate    = mustEmailTemplate("customer_order", customerOrderTmpl)
	adminOrderTemplate       = mustEmailTemplate("admin_order", adminOrderTmpl)
	paymentConfirmedTemplate = mustEmailTemplate("payment_confirmed", paymentConfirmedTmpl)
	paymentThanksTemplate    = mustEmailTemplate("payment_thanks", paymentThanksTmpl)
)

func mustEmailTemplate(name, body string) *template.Template {
	t := template.Must(template.New(name).Parse(body))
	template.Must(t.New("items").Parse(itemsTableTmpl))
	return t
}

func renderEmail(t *template.Template, order *models.Order) (string, error) {
	data := emailData{
		Order:       order,
		Items:       order.Items.Data(),
		FullAddress: fullAddress(order),
		MethodLabel: methodLabel(order.PaymentMethod),
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
