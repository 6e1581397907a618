package app

import (
	"fmt"
	"strings"

	"github.com/al1ce23/shitshop/internal/order/domain"
)

// Shop carries the storefront settings that appear in notifications.
type Shop struct {
	Name       string
	Currency   string
	OrderEmail string
}

const notProvided = "Not provided"

func OwnerMessage(shop Shop, o domain.Order) Message {
	var b strings.Builder
	b.WriteString("New Order Received!\n\n")
	b.WriteString("Customer Information:\n---------------------\n")
	fmt.Fprintf(&b, "Name: %s\n", o.CustomerName)
	fmt.Fprintf(&b, "Email: %s\n", o.CustomerEmail)
	fmt.Fprintf(&b, "Phone: %s\n", orDefault(o.CustomerPhone))
	fmt.Fprintf(&b, "Address: %s\n\n", orDefault(o.CustomerAddress))
	b.WriteString("Order Items:\n------------\n")
	b.WriteString(itemLines(shop.Currency, o.Items))
	fmt.Fprintf(&b, "\n\nTotal: %s %s\n\n", o.Total.StringFixed(2), shop.Currency)
	b.WriteString("---\n")
	fmt.Fprintf(&b, "Order reference: %s\n", o.ID)
	fmt.Fprintf(&b, "Order received at: %s", o.ReceivedAt.Format("2006-01-02 15:04:05 MST"))

	return Message{
		To:      shop.OrderEmail,
		ReplyTo: o.CustomerEmail,
		Subject: "New Order from " + o.CustomerName,
		Body:    b.String(),
	}
}

func CustomerMessage(shop Shop, o domain.Order) Message {
	var b strings.Builder
	fmt.Fprintf(&b, "Dear %s,\n\n", o.CustomerName)
	b.WriteString("Thank you for your order! We have received your order and will process it shortly.\n\n")
	b.WriteString("Order Summary:\n")
	b.WriteString(itemLines(shop.Currency, o.Items))
	fmt.Fprintf(&b, "\n\nTotal: %s %s\n\n", o.Total.StringFixed(2), shop.Currency)
	fmt.Fprintf(&b, "Order reference: %s\n\n", o.ID)
	b.WriteString("We will contact you soon regarding payment and delivery.\n\n")
	fmt.Fprintf(&b, "Best regards,\n%s", shop.Name)

	return Message{
		To:      o.CustomerEmail,
		Subject: "Order Confirmation - " + shop.Name,
		Body:    b.String(),
	}
}

func itemLines(currency string, items []domain.OrderItem) string {
	lines := make([]string, 0, len(items))
	for _, it := range items {
		lines = append(lines, fmt.Sprintf("  - %s x %d @ %s %s = %s %s",
			it.Name, it.Quantity, it.Price.StringFixed(2), currency, it.LineTotal().StringFixed(2), currency))
	}
	return strings.Join(lines, "\n")
}

func orDefault(s string) string {
	if s == "" {
		return notProvided
	}
	return s
}
