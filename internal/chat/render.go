package chat

import (
	"fmt"
	"strings"

	"github.com/ticket-triage/server/internal/triage/model"
)

// FormatResult renders a triage result the way the chat surface presents it:
// classification, order summary, recommendation, and the draft reply. The
// no-id and not-found cases read differently on purpose, since the guidance
// to the customer differs.
func FormatResult(res *model.Result) string {
	var b strings.Builder

	fmt.Fprintf(&b, "Issue classified: %s\n", res.IssueType)
	fmt.Fprintf(&b, "Evidence: %s\n", res.Evidence)

	switch {
	case res.Order != nil:
		fmt.Fprintf(&b, "Order: %s - %s - %s\n", res.Order.OrderID, res.Order.CustomerName, res.Order.Status)
		if len(res.Order.Items) > 0 {
			items := make([]string, 0, len(res.Order.Items))
			for _, it := range res.Order.Items {
				items = append(items, fmt.Sprintf("%s (x%d)", it.Name, it.Quantity))
			}
			fmt.Fprintf(&b, "Items: %s\n", strings.Join(items, ", "))
		}
	case res.Error != "":
		fmt.Fprintf(&b, "Order: %s - %s. Please double-check the order ID (e.g. ORD1001).\n", res.OrderID, res.Error)
	default:
		b.WriteString("Order: N/A - no order ID found in message\n")
	}

	fmt.Fprintf(&b, "Recommendation: %s\n", res.Recommendation)
	fmt.Fprintf(&b, "\nDraft reply to customer:\n> %s", res.ReplyText)

	return b.String()
}
