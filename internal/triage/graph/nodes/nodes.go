// Package nodes defines the triage pipeline stages and their state handlers.
package nodes

import (
	"context"
	"fmt"

	"github.com/cloudwego/eino/compose"

	"github.com/ticket-triage/server/internal/triage/model"
	"github.com/ticket-triage/server/internal/triage/reply"
	"github.com/ticket-triage/server/internal/triage/resolve"
	"github.com/ticket-triage/server/internal/triage/store"
	logx "github.com/ticket-triage/server/pkg/logger"
)

// Node keys for the triage graph.
const (
	NodeIngest        = "ingest"
	NodeClassifyIssue = "classify_issue"
	NodeFetchOrder    = "fetch_order"
	NodeDraftReply    = "draft_reply"
)

// NewIngestPreHandler seeds the fresh TriageState from the incoming ticket.
// A caller-supplied order id takes precedence and is never re-derived.
func NewIngestPreHandler() func(context.Context, model.TicketInput, *model.TriageState) (model.TicketInput, error) {
	return func(ctx context.Context, in model.TicketInput, s *model.TriageState) (model.TicketInput, error) {
		s.TicketText = in.TicketText
		s.OrderID = in.OrderID
		return in, nil
	}
}

// NewIngestNode creates the Ingest stage: when no order id was supplied, scan
// the ticket text for the first ORD#### occurrence. No store lookup happens
// here; finding nothing is an expected outcome downstream stages tolerate.
func NewIngestNode() *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.TicketInput) (string, error) {
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TriageState) error {
			if s.OrderID != "" {
				logx.Debug().Str("order_id", s.OrderID).Msg("Using caller-supplied order id")
				return nil
			}
			if id, ok := resolve.ExtractOrderID(s.TicketText); ok {
				s.OrderID = id
				logx.Debug().Str("order_id", id).Msg("Extracted order id from ticket text")
			}
			return nil
		})
		if err != nil {
			return "", fmt.Errorf("ingest: %w", err)
		}
		return in.TicketText, nil
	})
}

// NewClassifyIssueNode creates the Classify stage running the ordered keyword
// rules over the ticket text.
func NewClassifyIssueNode(st *store.Store) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, ticketText string) (model.Classification, error) {
		return st.MatchIssue(ticketText), nil
	})
}

// NewClassifyIssuePostHandler records the classification in state.
func NewClassifyIssuePostHandler() func(context.Context, model.Classification, *model.TriageState) (model.Classification, error) {
	return func(ctx context.Context, out model.Classification, s *model.TriageState) (model.Classification, error) {
		s.IssueType = out.IssueType
		s.Evidence = out.Evidence
		logx.Debug().
			Str("issue_type", out.IssueType).
			Str("evidence", out.Evidence).
			Msg("Ticket classified")
		return out, nil
	}
}

// NewOrderLookupCondition creates the condition for the pipeline's single
// branch: route to the fetch stage when an order id is present, otherwise
// skip the lookup entirely and go straight to reply drafting.
func NewOrderLookupCondition() func(context.Context, model.Classification) (string, error) {
	return func(ctx context.Context, _ model.Classification) (string, error) {
		var orderID string
		if err := compose.ProcessState(ctx, func(_ context.Context, s *model.TriageState) error {
			orderID = s.OrderID
			return nil
		}); err != nil {
			return "", fmt.Errorf("order lookup branch: %w", err)
		}

		if orderID != "" {
			logx.Debug().Str("order_id", orderID).Msg("Routing to fetch_order")
			return NodeFetchOrder, nil
		}
		logx.Debug().Msg("No order id - routing directly to draft_reply")
		return NodeDraftReply, nil
	}
}

// NewFetchOrderNode creates the Fetch stage. The id's format is checked
// before the store is consulted; a miss records "Order <id> not found" in
// state and the pipeline continues, it never aborts the run.
func NewFetchOrderNode(st *store.Store) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.Classification) (model.Classification, error) {
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TriageState) error {
			if resolve.ValidOrderID(s.OrderID) {
				if order, ok := st.Order(s.OrderID); ok {
					s.Order = &order
					logx.Debug().
						Str("order_id", order.OrderID).
						Str("status", order.Status).
						Msg("Order resolved")
					return nil
				}
			}
			s.Err = fmt.Sprintf("Order %s not found", s.OrderID)
			logx.Warn().Str("order_id", s.OrderID).Msg("Order lookup failed")
			return nil
		})
		if err != nil {
			return model.Classification{}, fmt.Errorf("fetch order: %w", err)
		}
		return in, nil
	})
}

// NewDraftReplyNode creates the Compose stage. It always runs, even after a
// failed lookup, producing a best-effort reply and recommendation from
// whatever the earlier stages accumulated, and assembles the final Result.
func NewDraftReplyNode(st *store.Store) *compose.Lambda {
	return compose.InvokableLambda(func(ctx context.Context, in model.Classification) (*model.Result, error) {
		var result *model.Result
		err := compose.ProcessState(ctx, func(_ context.Context, s *model.TriageState) error {
			s.ReplyText = reply.Compose(st.Template(s.IssueType), s.Order, s.OrderID)
			s.Recommendation = st.Recommendation(s.IssueType)

			result = &model.Result{
				OrderID:        s.OrderID,
				IssueType:      s.IssueType,
				Evidence:       s.Evidence,
				Recommendation: s.Recommendation,
				Order:          s.Order,
				ReplyText:      s.ReplyText,
				Error:          s.Err,
			}
			return nil
		})
		if err != nil {
			return nil, fmt.Errorf("draft reply: %w", err)
		}
		logx.Debug().
			Str("issue_type", result.IssueType).
			Str("recommendation", result.Recommendation).
			Msg("Reply drafted")
		return result, nil
	})
}
