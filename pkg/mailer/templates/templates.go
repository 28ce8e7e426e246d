package templates

import (
	"bytes"
	"fmt"
	htmltpl "html/template"
	texttpl "text/template"
)

// Render produces subject, text and html bodies for a named template.
// Unknown templates return an error so the worker can dead-letter the job.
func Render(name string, data map[string]any) (subject, text, html string, err error) {
	def, ok := registry[name]
	if !ok {
		return "", "", "", fmt.Errorf("unknown email template %q", name)
	}
	subject = def.subject
	if text, err = renderText(def.text, data); err != nil {
		return "", "", "", err
	}
	if html, err = renderHTML(def.html, data); err != nil {
		return "", "", "", err
	}
	return subject, text, html, nil
}

type definition struct {
	subject string
	text    string
	html    string
}

var registry = map[string]definition{
	"welcome": {
		subject: "Welcome to the shop",
		text:    "Hi {{.Name}},\n\nYour account is ready. Happy shopping!\n",
		html:    `<p>Hi {{.Name}},</p><p>Your account is ready. Happy shopping!</p>`,
	},
	"reset_code": {
		subject: "Your password reset code (valid for 10 minutes)",
		text:    "Hi {{.Name}},\n\nYour password reset code is {{.Code}}.\nIt expires in {{.ExpiresIn}}.\n",
		html:    `<p>Hi {{.Name}},</p><p>Your password reset code is <strong>{{.Code}}</strong>.</p><p>It expires in {{.ExpiresIn}}.</p>`,
	},
	"order_confirmation": {
		subject: "We received your order",
		text:    "Hi {{.Name}},\n\nOrder {{.OrderID}} was created for a total of {{.Total}} {{.Currency}}.\nPayment method: {{.PaymentMethod}}.\n",
		html:    `<p>Hi {{.Name}},</p><p>Order <strong>{{.OrderID}}</strong> was created for a total of {{.Total}} {{.Currency}}.</p><p>Payment method: {{.PaymentMethod}}.</p>`,
	},
}

func renderText(src string, data map[string]any) (string, error) {
	t, err := texttpl.New("text").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}

func renderHTML(src string, data map[string]any) (string, error) {
	t, err := htmltpl.New("html").Parse(src)
	if err != nil {
		return "", err
	}
	var buf bytes.Buffer
	if err := t.Execute(&buf, data); err != nil {
		return "", err
	}
	return buf.String(), nil
}
