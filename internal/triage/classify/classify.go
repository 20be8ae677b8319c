// Package classify implements keyword-rule issue classification.
package classify

import (
	"fmt"
	"strings"

	"github.com/ticket-triage/server/internal/triage/model"
)

// IssueUnknown is the fallback issue type when no rule matches. It drives the
// escalation recommendation and the default reply template downstream.
const IssueUnknown = "unknown"

const (
	matchedEvidence = "Matched keyword '%s' in ticket text"
	noMatchEvidence = "No matching keywords found in ticket text"
)

// Classify runs the ordered rules against text and returns the issue type of
// the first rule whose keyword is a literal substring of the case-folded text.
// First match wins even when several keywords occur, or when one rule's
// keyword is a substring of another's; rule order is the single source of
// priority. Matching is not word-boundary aware, so "broken" also matches
// inside "unbroken" (known false-positive source, kept for compatibility).
func Classify(rules []model.IssueRule, text string) model.Classification {
	lower := strings.ToLower(text)
	for _, rule := range rules {
		if strings.Contains(lower, rule.Keyword) {
			return model.Classification{
				IssueType: rule.IssueType,
				Evidence:  fmt.Sprintf(matchedEvidence, rule.Keyword),
			}
		}
	}
	return model.Classification{
		IssueType: IssueUnknown,
		Evidence:  noMatchEvidence,
	}
}
