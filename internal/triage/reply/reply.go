// Package reply composes customer-facing replies from templates.
package reply

import (
	"strings"

	"github.com/ticket-triage/server/internal/triage/model"
)

// DefaultCustomerName substitutes for {{customer_name}} when no order was
// resolved.
const DefaultCustomerName = "Customer"

// Compose fills template with the resolved order context. Substitution is
// literal text replacement, not a templating engine: only {{customer_name}}
// and {{order_id}} are recognized, any other {{...}} token is left verbatim.
//
// The customer name comes from the order when one was resolved, else the
// generic default. The order id prefers the resolved order's id, then the
// supplied/extracted orderID, then empty.
func Compose(template string, order *model.Order, orderID string) string {
	name := DefaultCustomerName
	id := orderID
	if order != nil {
		name = order.CustomerName
		id = order.OrderID
	}
	out := strings.ReplaceAll(template, "{{customer_name}}", name)
	return strings.ReplaceAll(out, "{{order_id}}", id)
}
