// Package feedback defines the append-only interaction record correlated
// against a prior search. The service only validates and stores; nothing
// on the ranking path ever reads it.
package feedback

import (
	"fmt"
	"time"
)

// Action enumerates user interactions with a search result.
type Action string

// Supported feedback actions.
const (
	ActionView      Action = "view"
	ActionClick     Action = "click"
	ActionAddToCart Action = "add_to_cart"
	ActionPurchase  Action = "purchase"
	ActionDismiss   Action = "dismiss"
)

// IsValid reports whether the action is a known value.
func (a Action) IsValid() bool {
	switch a {
	case ActionView, ActionClick, ActionAddToCart, ActionPurchase, ActionDismiss:
		return true
	}
	return false
}

// Record is a single feedback event.
type Record struct {
	ID         string
	UserID     string
	Action     Action
	ProductID  string
	Query      string
	Budget     *float64
	Timestamp  time.Time
	ReceivedAt time.Time
	Extra      map[string]string
}

// Validate checks the record is well-formed enough to correlate against
// a prior search.
func (r *Record) Validate() error {
	if r.UserID == "" {
		return fmt.Errorf("user_id is required")
	}
	if !r.Action.IsValid() {
		return fmt.Errorf("unknown action %q", r.Action)
	}
	if r.ProductID == "" {
		return fmt.Errorf("product_id is required")
	}
	if r.Query == "" {
		return fmt.Errorf("query is required")
	}
	if r.Budget != nil && *r.Budget <= 0 {
		return fmt.Errorf("budget must be positive")
	}
	if r.Timestamp.IsZero() {
		return fmt.Errorf("timestamp is required")
	}
	return nil
}
