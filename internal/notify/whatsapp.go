// Package notify builds customer hand-off messages. Nothing is sent from here;
// staff open the generated link themselves.
package notify

import (
	"net/url"
	"strings"

	"printbazar/m/domain"
)

const DefaultTemplate = "Namaste from Print Bazar,\n" +
	"Your order #{{id}} is ready. ✅\n\n" +
	"Please confirm whether you will be coming tomorrow or not.\n\n" +
	"💰 Total Bill: ₹{{total}}\n\n" +
	"📍 Collection Address:\n" +
	"Bus route board jha bus routes likhe hote hai and driver bethte hai uske just pass pani ki tanki hai vha.\n\n" +
	"Thank you,\n" +
	"Print Bazar"

type WhatsApp struct {
	CountryCode string
	Template    string
}

func NewWhatsApp(countryCode string) WhatsApp {
	if countryCode == "" {
		countryCode = "91"
	}
	return WhatsApp{CountryCode: countryCode, Template: DefaultTemplate}
}

type Handoff struct {
	Message string `json:"message"`
	Link    string `json:"link"`
}

// Message fills the template with the short order id and the grouped total.
func (w WhatsApp) Message(o domain.Order) string {
	tpl := w.Template
	if tpl == "" {
		tpl = DefaultTemplate
	}
	r := strings.NewReplacer("{{id}}", o.ShortID(), "{{total}}", FormatAmount(o.Total))
	return r.Replace(tpl)
}

// Link is the wa.me deep link with the message pre-filled.
func (w WhatsApp) Link(o domain.Order) string {
	return "https://wa.me/" + w.CountryCode + digits(o.CustomerPhone) + "?text=" + escape(w.Message(o))
}

func (w WhatsApp) Handoff(o domain.Order) Handoff {
	return Handoff{Message: w.Message(o), Link: w.Link(o)}
}

func escape(s string) string {
	return strings.ReplaceAll(url.QueryEscape(s), "+", "%20")
}

func digits(phone string) string {
	var b strings.Builder
	for _, r := range phone {
		if r >= '0' && r <= '9' {
			b.WriteRune(r)
		}
	}
	return b.String()
}
