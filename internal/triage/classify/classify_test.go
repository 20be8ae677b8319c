package classify

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/ticket-triage/server/internal/triage/model"
)

var testRules = []model.IssueRule{
	{Keyword: "refund", IssueType: "refund_request"},
	{Keyword: "broken", IssueType: "damaged_item"},
	{Keyword: "broke", IssueType: "damaged_item"},
	{Keyword: "late", IssueType: "late_delivery"},
	{Keyword: "wrong item", IssueType: "wrong_item"},
}

func TestClassify(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		wantType     string
		wantEvidence string
	}{
		{
			"simple match",
			"My order arrived broken.",
			"damaged_item",
			"Matched keyword 'broken' in ticket text",
		},
		{
			"case folded",
			"BROKEN on arrival!",
			"damaged_item",
			"Matched keyword 'broken' in ticket text",
		},
		{
			"earliest rule wins across types",
			"I want a refund, the thing is broken and late.",
			"refund_request",
			"Matched keyword 'refund' in ticket text",
		},
		{
			"earliest rule wins when keywords are substrings of each other",
			"The handle broke and the box looks broken.",
			"damaged_item",
			"Matched keyword 'broken' in ticket text",
		},
		{
			"multi-word keyword",
			"You sent the wrong item.",
			"wrong_item",
			"Matched keyword 'wrong item' in ticket text",
		},
		{
			"no match",
			"Just checking in on my package.",
			IssueUnknown,
			"No matching keywords found in ticket text",
		},
		{
			// Substring matching is not word-boundary aware; this false
			// positive is part of the documented contract.
			"matches inside larger word",
			"The seal arrived unbroken, thanks!",
			"damaged_item",
			"Matched keyword 'broken' in ticket text",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Classify(testRules, tt.text)
			assert.Equal(t, tt.wantType, got.IssueType)
			assert.Equal(t, tt.wantEvidence, got.Evidence)
		})
	}
}

func TestClassifyNoRules(t *testing.T) {
	got := Classify(nil, "my order is broken")
	assert.Equal(t, IssueUnknown, got.IssueType)
	assert.Equal(t, "No matching keywords found in ticket text", got.Evidence)
}
