package notifier

import (
	"bytes"
	"fmt"
	"text/template"

	"github.com/flossiendabambi/alx-project-nexus/internal/domain"
)

var confirmationTmpl = template.Must(template.New("order_confirmation").Parse(
	`Hi,

Thank you for your order #{{.ID}} placed at {{.PlacedAt.Format "2006-01-02 15:04"}}.

Items:
{{range .Items}}  - {{.ProductName}} x{{.Quantity}} @ {{.UnitPrice}}
{{end}}
Status: {{.Status}}

We will let you know once it ships.
`))

// renderConfirmation builds the templated confirmation email for an order.
func renderConfirmation(order *domain.Order) (Email, error) {
	var body bytes.Buffer
	if err := confirmationTmpl.Execute(&body, order); err != nil {
		return Email{}, fmt.Errorf("render confirmation template: %w", err)
	}

	return Email{
		To:      order.OwnerEmail,
		Subject: fmt.Sprintf("Order Confirmation - #%s", order.ID),
		Body:    body.String(),
	}, nil
}
