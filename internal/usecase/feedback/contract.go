package feedback

import (
	"context"

	domfb "github.com/fincommerce/prodsearch/internal/domain/feedback"
)

// Log is the append-only feedback sink.
type Log interface {
	Append(ctx context.Context, rec *domfb.Record) error
	Len(ctx context.Context) (int64, error)
}
