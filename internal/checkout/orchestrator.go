package checkout

import (
	"context"
	"errors"
	"fmt"
	"log"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"

	"github.com/PRASHANT-tech870/Embroidery/internal/cart"
	"github.com/PRASHANT-tech870/Embroidery/internal/identity"
	"github.com/PRASHANT-tech870/Embroidery/internal/orders"
	"github.com/PRASHANT-tech870/Embroidery/internal/payment"
)

// DefaultPaymentTimeout bounds the wait for the payment callback. A widget
// that never calls back surfaces as ErrPaymentUnavailable instead of leaving
// the attempt stuck in AWAITING_PAYMENT.
const DefaultPaymentTimeout = 5 * time.Minute

// OrderWriter is the durable store for confirmed orders. The two inserts are
// separate remote calls and must not be assumed transactional.
type OrderWriter interface {
	InsertOrderHeader(ctx context.Context, header *orders.Header) (uuid.UUID, error)
	InsertOrderLines(ctx context.Context, lines []orders.Line) error
}

// Orchestrator turns a session's cart into a payment-confirmed order. Each
// session runs at most one attempt at a time; a second submission while an
// attempt is in flight is rejected with ErrCheckoutInProgress.
type Orchestrator struct {
	identity       identity.Provider
	payment        payment.Provider
	writer         OrderWriter
	events         orders.Publisher // optional, nil disables publishing
	currency       string
	paymentTimeout time.Duration

	mu       sync.Mutex
	attempts map[string]Status // session id -> current status
}

func NewOrchestrator(
	id identity.Provider,
	pay payment.Provider,
	writer OrderWriter,
	events orders.Publisher,
	currency string,
	paymentTimeout time.Duration,
) *Orchestrator {
	if paymentTimeout <= 0 {
		paymentTimeout = DefaultPaymentTimeout
	}
	return &Orchestrator{
		identity:       id,
		payment:        pay,
		writer:         writer,
		events:         events,
		currency:       currency,
		paymentTimeout: paymentTimeout,
		attempts:       make(map[string]Status),
	}
}

// Status reports the session's current checkout state.
func (o *Orchestrator) Status(sessionID string) Status {
	o.mu.Lock()
	defer o.mu.Unlock()
	if status, ok := o.attempts[sessionID]; ok {
		return status
	}
	return StatusIdle
}

func (o *Orchestrator) begin(sessionID string) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	current, ok := o.attempts[sessionID]
	if !ok {
		current = StatusIdle
	}
	if !CanTransitionTo(current, StatusValidatingInput) {
		return ErrCheckoutInProgress
	}
	o.attempts[sessionID] = StatusValidatingInput
	return nil
}

func (o *Orchestrator) transition(sessionID string, to Status) error {
	o.mu.Lock()
	defer o.mu.Unlock()

	if !CanTransitionTo(o.attempts[sessionID], to) {
		return IllegalTransitionError
	}
	o.attempts[sessionID] = to
	return nil
}

// fail marks the attempt FAILED and passes the cause through. The cart is
// never touched on failure so the user can retry without re-adding items.
func (o *Orchestrator) fail(sessionID string, err error) error {
	o.mu.Lock()
	o.attempts[sessionID] = StatusFailed
	o.mu.Unlock()
	return err
}

// Submit runs one checkout attempt end to end: validate, collect payment,
// persist header then lines, clear the cart. It returns the new order id on
// success. On a partial write the returned error is a *PartialWriteError
// carrying the id of the header that was already created.
func (o *Orchestrator) Submit(ctx context.Context, sessionID string, c *cart.Store, shippingAddress string) (uuid.UUID, error) {
	if err := o.begin(sessionID); err != nil {
		return uuid.Nil, err
	}

	user, ok := o.identity.CurrentUser(ctx)
	if !ok {
		return uuid.Nil, o.fail(sessionID, ErrUnauthenticated)
	}
	if strings.TrimSpace(shippingAddress) == "" {
		return uuid.Nil, o.fail(sessionID, ErrInvalidInput)
	}
	if c.Len() == 0 {
		return uuid.Nil, o.fail(sessionID, ErrEmptyCart)
	}

	// Freeze the cart now: the charge, the header total and the lines all
	// come from this snapshot, whatever happens to the cart meanwhile.
	snapshot := TakeSnapshot(c, o.currency)

	if err := o.transition(sessionID, StatusAwaitingPayment); err != nil {
		return uuid.Nil, o.fail(sessionID, err)
	}

	result, err := o.collectPayment(ctx, user, snapshot)
	if err != nil {
		return uuid.Nil, o.fail(sessionID, err)
	}

	if err := o.transition(sessionID, StatusPersisting); err != nil {
		return uuid.Nil, o.fail(sessionID, err)
	}

	orderID, err := o.persist(ctx, user, snapshot, shippingAddress, result.Reference)
	if err != nil {
		return uuid.Nil, o.fail(sessionID, err)
	}

	c.Clear()
	if err := o.transition(sessionID, StatusSucceeded); err != nil {
		// the order is durable at this point; report success regardless
		log.Printf("checkout session %v: %v", sessionID, err)
	}

	o.publishConfirmed(orderID, user.ID, snapshot)
	return orderID, nil
}

func (o *Orchestrator) collectPayment(ctx context.Context, user *identity.User, snapshot *Snapshot) (*payment.Result, error) {
	payCtx, cancel := context.WithTimeout(ctx, o.paymentTimeout)
	defer cancel()

	result, err := o.payment.Collect(payCtx, payment.Request{
		Amount:          snapshot.TotalAmount,
		Currency:        snapshot.Currency,
		Description:     "Payment for embroidery order",
		CustomerName:    user.Name,
		CustomerEmail:   user.Email,
		CustomerContact: user.Phone,
	})
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrPaymentUnavailable, err)
	}
	if !result.Approved {
		if result.Reason != "" {
			return nil, fmt.Errorf("%w: %s", ErrPaymentDeclined, result.Reason)
		}
		return nil, ErrPaymentDeclined
	}
	return result, nil
}

// persist performs the two sequential durable writes. The header is fully
// acknowledged before the line batch is attempted; a line failure after the
// header succeeded is reported as *PartialWriteError with the header id.
func (o *Orchestrator) persist(ctx context.Context, user *identity.User, snapshot *Snapshot, shippingAddress, paymentRef string) (uuid.UUID, error) {
	header := &orders.Header{
		UserID:          user.ID,
		TotalAmount:     snapshot.TotalAmount,
		ShippingAddress: shippingAddress,
		Status:          orders.OrderStatusConfirmed,
		PaymentStatus:   orders.PaymentStatusPaid,
		PaymentRef:      paymentRef,
	}

	orderID, err := o.writer.InsertOrderHeader(ctx, header)
	if err != nil {
		return uuid.Nil, fmt.Errorf("%w: %v", ErrPersistenceFailed, err)
	}

	lines := make([]orders.Line, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, orders.Line{
			ID:          uuid.New(),
			OrderID:     orderID,
			DesignID:    item.DesignID,
			Page:        item.Page,
			Quantity:    item.Quantity,
			PriceAtTime: item.UnitPrice, // copied verbatim, never re-derived
		})
	}

	if err := o.writer.InsertOrderLines(ctx, lines); err != nil {
		return uuid.Nil, &PartialWriteError{OrderID: orderID, Err: err}
	}

	return orderID, nil
}

func (o *Orchestrator) publishConfirmed(orderID uuid.UUID, userID string, snapshot *Snapshot) {
	if o.events == nil {
		return
	}

	lines := make([]orders.Line, 0, len(snapshot.Items))
	for _, item := range snapshot.Items {
		lines = append(lines, orders.Line{
			OrderID:     orderID,
			DesignID:    item.DesignID,
			Page:        item.Page,
			Quantity:    item.Quantity,
			PriceAtTime: item.UnitPrice,
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	err := o.events.PublishOrderConfirmed(ctx, orders.ConfirmedEvent{
		OrderID:     orderID.String(),
		UserID:      userID,
		TotalAmount: snapshot.TotalAmount,
		Currency:    snapshot.Currency,
		Lines:       lines,
		ConfirmedAt: time.Now(),
	})
	if err != nil && !errors.Is(err, context.Canceled) {
		log.Printf("failed to publish order confirmed event for %v: %v", orderID, err)
	}
}
