package payment

import "context"

// Request describes one charge. Amount is in the smallest currency unit.
type Request struct {
	Amount          int64
	Currency        string
	Description     string
	PaymentMethod   string // provider-specific payment method token, if any
	CustomerName    string
	CustomerEmail   string
	CustomerContact string
}

// Result reports the outcome of a charge attempt. Approved carries the
// external payment reference; a decline or user cancellation carries Reason.
type Result struct {
	Approved  bool
	Reference string
	Reason    string
}

// Provider collects a payment. Collect blocks until the provider reports an
// outcome or ctx expires; transport or initialization failures come back as an
// error, a declined or cancelled charge comes back as a non-approved Result.
type Provider interface {
	Collect(ctx context.Context, req Request) (*Result, error)
}
