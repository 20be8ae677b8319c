package store

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/ticket-triage/server/internal/triage/model"
	logx "github.com/ticket-triage/server/pkg/logger"
)

// Data file names expected under the data directory.
const (
	ordersFile  = "orders.json"
	issuesFile  = "issues.json"
	repliesFile = "replies.json"
)

// Load reads the three lookup tables from dir and builds a validated Store.
// Issue rules keep file order, which defines match priority. Any read, parse,
// or validation failure is returned so the caller can abort startup.
func Load(dir string) (*Store, error) {
	var orders []model.Order
	if err := readJSON(filepath.Join(dir, ordersFile), &orders); err != nil {
		return nil, err
	}

	var rules []model.IssueRule
	if err := readJSON(filepath.Join(dir, issuesFile), &rules); err != nil {
		return nil, err
	}

	var templates []model.ReplyTemplate
	if err := readJSON(filepath.Join(dir, repliesFile), &templates); err != nil {
		return nil, err
	}

	s, err := New(orders, rules, templates)
	if err != nil {
		return nil, fmt.Errorf("invalid lookup data in %s: %w", dir, err)
	}

	logx.Debug().
		Str("dir", dir).
		Int("orders", len(orders)).
		Int("issue_rules", len(rules)).
		Int("reply_templates", len(templates)).
		Msg("Lookup store loaded")
	return s, nil
}

func readJSON(path string, v any) error {
	b, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read %s: %w", path, err)
	}
	if err := json.Unmarshal(b, v); err != nil {
		return fmt.Errorf("parse %s: %w", path, err)
	}
	return nil
}
