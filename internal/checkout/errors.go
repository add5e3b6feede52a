package checkout

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

var (
	ErrUnauthenticated    = errors.New("checkout requires a signed-in user")
	ErrInvalidInput       = errors.New("shipping address is required")
	ErrEmptyCart          = errors.New("cart is empty, nothing to checkout")
	ErrPaymentUnavailable = errors.New("payment provider is unavailable")
	ErrPaymentDeclined    = errors.New("payment was declined or cancelled")
	ErrPersistenceFailed  = errors.New("order could not be saved")
	ErrCheckoutInProgress = errors.New("a checkout is already in progress for this session")

	IllegalTransitionError = errors.New("illegal transition of checkout status")
)

// PartialWriteError means the order header was written but its lines were not.
// OrderID identifies the orphaned header so a retry can insert lines against
// it instead of creating a duplicate order.
type PartialWriteError struct {
	OrderID uuid.UUID
	Err     error
}

func (e *PartialWriteError) Error() string {
	return fmt.Sprintf("order %s was created but its lines were not written: %v", e.OrderID, e.Err)
}

func (e *PartialWriteError) Unwrap() error {
	return e.Err
}
