// Package store holds the read-only lookup tables the triage pipeline runs
// against: orders, issue-classification rules, and reply templates.
package store

import (
	"fmt"
	"strings"

	"github.com/ticket-triage/server/internal/triage/classify"
	"github.com/ticket-triage/server/internal/triage/model"
	"github.com/ticket-triage/server/internal/triage/resolve"
)

// DefaultTemplate is the fallback reply template for issue types with no
// template of their own, including "unknown".
const DefaultTemplate = "Hi {{customer_name}}, we are reviewing order {{order_id}}."

// recommendations maps each issue type to the action support should take.
// The "unknown" entry doubles as the escalation default for unmapped types.
var recommendations = map[string]string{
	"refund_request":    "Process refund for the customer",
	"damaged_item":      "Send replacement item to customer",
	"late_delivery":     "Track package and provide updated ETA",
	"missing_item":      "Investigate and ship missing item",
	"duplicate_charge":  "Refund the duplicate charge",
	"wrong_item":        "Arrange return and send correct item",
	"defective_product": "Honor warranty and replace product",
	classify.IssueUnknown: "Escalate to human agent for review",
}

// Store is the in-memory lookup service. It is populated once at startup and
// never mutated afterwards, so concurrent readers need no locking.
type Store struct {
	orders    map[string]model.Order
	orderList []model.Order
	rules     []model.IssueRule
	templates map[string]string
}

// New builds a Store from already-decoded tables, validating them the way
// startup requires: malformed lookup data is the one condition that aborts
// the process, so every defect is reported here rather than at triage time.
func New(orders []model.Order, rules []model.IssueRule, templates []model.ReplyTemplate) (*Store, error) {
	s := &Store{
		orders:    make(map[string]model.Order, len(orders)),
		orderList: make([]model.Order, 0, len(orders)),
		rules:     make([]model.IssueRule, 0, len(rules)),
		templates: make(map[string]string, len(templates)),
	}

	for i, o := range orders {
		if !resolve.ValidOrderID(o.OrderID) {
			return nil, fmt.Errorf("order %d: invalid order id %q (want ORD followed by four digits)", i, o.OrderID)
		}
		if _, dup := s.orders[o.OrderID]; dup {
			return nil, fmt.Errorf("order %d: duplicate order id %q", i, o.OrderID)
		}
		if o.CustomerName == "" {
			return nil, fmt.Errorf("order %s: customer name is empty", o.OrderID)
		}
		for j, item := range o.Items {
			if item.Name == "" {
				return nil, fmt.Errorf("order %s: item %d has no name", o.OrderID, j)
			}
			if item.Quantity <= 0 {
				return nil, fmt.Errorf("order %s: item %q has non-positive quantity %d", o.OrderID, item.Name, item.Quantity)
			}
		}
		s.orders[o.OrderID] = o
		s.orderList = append(s.orderList, o)
	}

	for i, r := range rules {
		if r.Keyword == "" {
			return nil, fmt.Errorf("issue rule %d: keyword is empty", i)
		}
		if r.Keyword != strings.ToLower(r.Keyword) {
			return nil, fmt.Errorf("issue rule %d: keyword %q must be lowercase", i, r.Keyword)
		}
		if r.IssueType == "" {
			return nil, fmt.Errorf("issue rule %d (%q): issue type is empty", i, r.Keyword)
		}
		s.rules = append(s.rules, r)
	}

	for i, t := range templates {
		if t.IssueType == "" {
			return nil, fmt.Errorf("reply template %d: issue type is empty", i)
		}
		if t.Template == "" {
			return nil, fmt.Errorf("reply template %d (%s): template is empty", i, t.IssueType)
		}
		if _, dup := s.templates[t.IssueType]; dup {
			return nil, fmt.Errorf("reply template %d: duplicate issue type %q", i, t.IssueType)
		}
		s.templates[t.IssueType] = t.Template
	}

	return s, nil
}

// Order returns the order with the given id by exact match. A miss is an
// expected outcome the caller must handle, never an error.
func (s *Store) Order(id string) (model.Order, bool) {
	o, ok := s.orders[id]
	return o, ok
}

// Orders returns the orders in load order, for display surfaces.
func (s *Store) Orders() []model.Order {
	out := make([]model.Order, len(s.orderList))
	copy(out, s.orderList)
	return out
}

// MatchIssue classifies text against the ordered issue rules.
func (s *Store) MatchIssue(text string) model.Classification {
	return classify.Classify(s.rules, text)
}

// Template returns the reply template for issueType, falling back to
// DefaultTemplate for unmapped or unknown types.
func (s *Store) Template(issueType string) string {
	if t, ok := s.templates[issueType]; ok {
		return t
	}
	return DefaultTemplate
}

// Recommendation returns the recommended action for issueType, falling back
// to the escalation entry for unmapped types.
func (s *Store) Recommendation(issueType string) string {
	if r, ok := recommendations[issueType]; ok {
		return r
	}
	return recommendations[classify.IssueUnknown]
}
