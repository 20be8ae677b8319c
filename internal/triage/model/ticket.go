package model

// Order is an immutable order record owned by the lookup store, matched by
// exact order id.
type Order struct {
	OrderID      string      `json:"order_id"`
	CustomerName string      `json:"customer_name"`
	Status       string      `json:"status"`
	Items        []OrderItem `json:"items"`
}

// OrderItem is one line item on an order.
type OrderItem struct {
	Name     string `json:"name"`
	Quantity int    `json:"quantity"`
}

// IssueRule maps a lowercase keyword to an issue type. Rules form an ordered
// sequence; position determines match priority, first match wins.
type IssueRule struct {
	Keyword   string `json:"keyword"`
	IssueType string `json:"issue_type"`
}

// ReplyTemplate pairs an issue type with a customer-facing reply template.
// Templates may contain the {{customer_name}} and {{order_id}} placeholders.
type ReplyTemplate struct {
	IssueType string `json:"issue_type"`
	Template  string `json:"template"`
}
