// Package feedback records user interactions with search results for
// later offline analysis.
package feedback

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/fincommerce/prodsearch/internal/domain"
	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
)

// Service validates and persists feedback records.
type Service struct {
	log Log
	now func() time.Time
}

// New creates a feedback service.
func New(log Log) *Service {
	return &Service{log: log, now: time.Now}
}

// Submit validates the record, stamps it with an ID and receipt time,
// and appends it to the log. Returns the assigned ID.
func (s *Service) Submit(ctx context.Context, rec *domfb.Record) (string, error) {
	if err := rec.Validate(); err != nil {
		return "", fmt.Errorf("%w: %w", domain.ErrInvalidFeedback, err)
	}

	rec.ID = uuid.NewString()
	rec.ReceivedAt = s.now().UTC()

	if err := s.log.Append(ctx, rec); err != nil {
		return "", fmt.Errorf("append feedback: %w", err)
	}
	return rec.ID, nil
}

// Count returns the number of stored feedback records.
func (s *Service) Count(ctx context.Context) (int64, error) {
	n, err := s.log.Len(ctx)
	if err != nil {
		return 0, fmt.Errorf("count feedback: %w", err)
	}
	return n, nil
}
