// Package feedback persists interaction records as a capped append-only
// list of JSON documents.
package feedback

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/fincommerce/prodsearch/internal/domain"
	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
)

// DefaultMaxRecords caps the log length; oldest records are trimmed first.
const DefaultMaxRecords = 100_000

const logKey = domain.KeyPrefix + "feedback:log"

// store is the consumer interface for the feedback log (ISP).
type store interface {
	RPush(ctx context.Context, key string, values ...string) error
	LTrim(ctx context.Context, key string, start, stop int64) error
	LLen(ctx context.Context, key string) (int64, error)
}

// record is the stored JSON shape.
type record struct {
	ID         string            `json:"id"`
	UserID     string            `json:"user_id"`
	Action     string            `json:"action"`
	ProductID  string            `json:"product_id"`
	Query      string            `json:"query"`
	Budget     *float64          `json:"budget,omitempty"`
	Timestamp  time.Time         `json:"timestamp"`
	ReceivedAt time.Time         `json:"received_at"`
	Extra      map[string]string `json:"extra,omitempty"`
}

// Log implements usecase/feedback.Log on a capped list.
type Log struct {
	store      store
	maxRecords int64
}

// New creates a feedback log. maxRecords <= 0 uses DefaultMaxRecords.
func New(s store, maxRecords int64) *Log {
	if maxRecords <= 0 {
		maxRecords = DefaultMaxRecords
	}
	return &Log{store: s, maxRecords: maxRecords}
}

// Append serializes and appends a record, then trims the list to the cap.
func (l *Log) Append(ctx context.Context, rec *domfb.Record) error {
	data, err := json.Marshal(record{
		ID:         rec.ID,
		UserID:     rec.UserID,
		Action:     string(rec.Action),
		ProductID:  rec.ProductID,
		Query:      rec.Query,
		Budget:     rec.Budget,
		Timestamp:  rec.Timestamp,
		ReceivedAt: rec.ReceivedAt,
		Extra:      rec.Extra,
	})
	if err != nil {
		return fmt.Errorf("marshal feedback: %w", err)
	}

	if err := l.store.RPush(ctx, logKey, string(data)); err != nil {
		return fmt.Errorf("append feedback: %w", err)
	}
	if err := l.store.LTrim(ctx, logKey, -l.maxRecords, -1); err != nil {
		return fmt.Errorf("trim feedback log: %w", err)
	}
	return nil
}

// Len returns the current log length.
func (l *Log) Len(ctx context.Context) (int64, error) {
	n, err := l.store.LLen(ctx, logKey)
	if err != nil {
		return 0, fmt.Errorf("feedback log length: %w", err)
	}
	return n, nil
}
