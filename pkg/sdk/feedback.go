package prodsearch

import (
	"context"
	"fmt"
	"time"

	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
)

// SubmitFeedback validates and stores a user interaction record.
// Returns the assigned record ID.
func (c *Client) SubmitFeedback(ctx context.Context, fb Feedback) (id string, err error) {
	start := time.Now()
	defer func() { c.obs.observe("feedback", start, err) }()

	id, err = c.feedbackSvc.Submit(ctx, &domfb.Record{
		UserID:    fb.UserID,
		Action:    domfb.Action(fb.Action),
		ProductID: fb.ProductID,
		Query:     fb.Query,
		Budget:    fb.Budget,
		Timestamp: fb.Timestamp,
		Extra:     fb.Extra,
	})
	if err != nil {
		return "", fmt.Errorf("prodsearch: feedback: %w", err)
	}
	return id, nil
}

// FeedbackCount returns the number of stored feedback records.
func (c *Client) FeedbackCount(ctx context.Context) (n int64, err error) {
	start := time.Now()
	defer func() { c.obs.observe("feedback_count", start, err) }()

	n, err = c.feedbackSvc.Count(ctx)
	if err != nil {
		return 0, fmt.Errorf("prodsearch: feedback count: %w", err)
	}
	return n, nil
}
