package payment

import (
	"context"
	"fmt"
)

// Widget is a checkout widget that reports completion through one of two
// callbacks, the way hosted payment pages do. Open returns an error only when
// the widget itself cannot be brought up (script/network failure).
type Widget interface {
	Open(req Request, onSuccess func(reference string), onFailureOrCancel func(reason string)) error
}

// WidgetProvider bridges the widget's callbacks onto a channel so callers get
// a plain blocking Collect with context cancellation. A widget that never
// calls back is bounded by the caller's ctx deadline.
type WidgetProvider struct {
	widget Widget
}

func NewWidgetProvider(widget Widget) *WidgetProvider {
	return &WidgetProvider{widget: widget}
}

func (p *WidgetProvider) Collect(ctx context.Context, req Request) (*Result, error) {
	done := make(chan Result, 1)

	onSuccess := func(reference string) {
		select {
		case done <- Result{Approved: true, Reference: reference}:
		default: // only the first callback counts
		}
	}
	onFailure := func(reason string) {
		select {
		case done <- Result{Approved: false, Reason: reason}:
		default:
		}
	}

	if err := p.widget.Open(req, onSuccess, onFailure); err != nil {
		return nil, fmt.Errorf("failed to open payment widget: %w", err)
	}

	select {
	case result := <-done:
		return &result, nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}
