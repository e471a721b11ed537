// Package notify sends transactional email about orders.
package notify

import (
	"context"
	"fmt"
	"html"
	"log"
	"strings"
	"time"

	"github.com/keighl/postmark"

	"storefront/internal/models"
)

type Notifier interface {
	OrderPlaced(ctx context.Context, to string, order models.Order) error
}

// New returns a Postmark notifier when a token is configured and a no-op
// notifier otherwise.
func New(token, sender string) Notifier {
	if strings.TrimSpace(token) == "" || strings.TrimSpace(sender) == "" {
		log.Println("[NOTIFY] [INFO] postmark not configured, order emails disabled")
		return Nop{}
	}
	return &Postmark{client: postmark.NewClient(token, ""), sender: sender}
}

type Nop struct{}

func (Nop) OrderPlaced(context.Context, string, models.Order) error { return nil }

type Postmark struct {
	client *postmark.Client
	sender string
}

func (p *Postmark) OrderPlaced(_ context.Context, to string, order models.Order) error {
	_, err := p.client.SendEmail(postmark.Email{
		From:     p.sender,
		To:       to,
		Subject:  "Order Confirmation",
		HtmlBody: OrderConfirmationHTML(order),
		TextBody: OrderConfirmationText(order),
	})
	if err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

func OrderConfirmationHTML(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "<strong>Dear %s,</strong><br><br>", html.EscapeString(order.Address.FirstName))
	fmt.Fprintf(&b, "Thank you for your purchase! Your order (ID: %s) has been placed successfully.<br><br>", order.ID.Hex())
	b.WriteString("<ul>")
	for _, item := range order.Items {
		fmt.Fprintf(&b, "<li>%s (%s) &times; %d: $%.2f</li>",
			html.EscapeString(item.Name), html.EscapeString(item.Size), item.Quantity, item.Price)
	}
	b.WriteString("</ul>")
	fmt.Fprintf(&b, "Total Amount: <strong>$%.2f</strong><br>Payment Method: <strong>%s</strong><br>",
		order.Amount, strings.ToUpper(order.PaymentMethod))
	fmt.Fprintf(&b, "Placed on %s", time.UnixMilli(order.Date).UTC().Format("January 2, 2006"))
	return b.String()
}

func OrderConfirmationText(order models.Order) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s placed.\n", order.ID.Hex())
	for _, item := range order.Items {
		fmt.Fprintf(&b, "- %s (%s) x %d: $%.2f\n", item.Name, item.Size, item.Quantity, item.Price)
	}
	fmt.Fprintf(&b, "Total: $%.2f (%s)\n", order.Amount, strings.ToUpper(order.PaymentMethod))
	return b.String()
}
