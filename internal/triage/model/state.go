package model

// TicketInput is the input for a single triage run.
type TicketInput struct {
	// TicketText is the raw customer message. Required.
	TicketText string `json:"ticket_text"`
	// OrderID optionally pre-supplies the order id. When set it takes
	// precedence and is never re-derived from the text.
	OrderID string `json:"order_id,omitempty"`
}

// Classification is the classifier stage output.
type Classification struct {
	IssueType string `json:"issue_type"`
	Evidence  string `json:"evidence"`
}

// TriageState stores per-invocation state for the triage graph.
// Concurrency model:
//   - This struct is registered as Graph Local State via compose.WithGenLocalState,
//     so every invocation gets a fresh instance and nothing is shared across runs.
//   - All reads/writes happen only inside Eino state handlers:
//     WithStatePreHandler, WithStatePostHandler, or compose.ProcessState.
//     Eino serializes access within these handlers, so no mutex is required.
//
// The state flows through each stage exactly once. TicketText is set once at
// ingest; OrderID, once set (by the caller or by extraction), is never
// overwritten; Err marks a terminal lookup failure and only the final reply
// composition runs after it.
type TriageState struct {
	TicketText     string
	OrderID        string // empty when neither supplied nor extractable
	IssueType      string
	Evidence       string
	Order          *Order // set only on a successful lookup
	Recommendation string
	ReplyText      string
	Err            string // "Order <id> not found" when a lookup failed
}

// Result is the structured outcome of one triage run. OrderID and Order stay
// empty/nil in the distinct cases spelled out by Error: a missing order id is
// not an error, a failed lookup is.
type Result struct {
	OrderID        string `json:"order_id,omitempty"`
	IssueType      string `json:"issue_type"`
	Evidence       string `json:"evidence"`
	Recommendation string `json:"recommendation"`
	Order          *Order `json:"order,omitempty"`
	ReplyText      string `json:"reply_text"`
	Error          string `json:"error,omitempty"`
}
