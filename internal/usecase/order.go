package usecase

import (
	"context"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/domain/repository"
)

// Notifier accepts milestone events for asynchronous delivery. Implementations
// must not block; delivery failures never surface to the transition caller.
type Notifier interface {
	Notify(event model.StatusEvent)
}

// TransitionOptions tunes a single status transition.
type TransitionOptions struct {
	// Override lets an admin move an order backward in the pipeline.
	Override bool
	// ExpectedVersion, when non-zero, rejects the transition if the stored
	// order version differs.
	ExpectedVersion int64
}

// NewOrderInput carries the data required to open an order.
type NewOrderInput struct {
	OwnerID          int64
	Vehicle          model.VehicleRef
	TotalAmount      float64
	DepositPaid      float64
	EstimatedArrival *time.Time
}

// OrderUseCase encapsulates the order lifecycle: creation, status transitions,
// progress projection and read-side queries.
type OrderUseCase struct {
	orders   repository.OrderRepository
	notifier Notifier
	now      func() time.Time
}

// NewOrderUseCase constructs OrderUseCase. notifier may be nil when milestone
// notifications are disabled.
func NewOrderUseCase(orders repository.OrderRepository, notifier Notifier) *OrderUseCase {
	return &OrderUseCase{orders: orders, notifier: notifier, now: time.Now}
}

// Create opens a new order in the initial stage on behalf of an admin.
func (u *OrderUseCase) Create(ctx context.Context, input NewOrderInput, actor model.Actor) (*model.Order, error) {
	order, err := model.NewOrder(input.OwnerID, input.Vehicle, input.TotalAmount, input.DepositPaid, actor.String())
	if err != nil {
		return nil, err
	}

	seq, err := u.orders.NextSequence(ctx)
	if err != nil {
		return nil, err
	}

	order.ID = uuid.NewString()
	order.OrderNumber = FormatOrderNumber(u.now(), seq)
	order.EstimatedArrival = input.EstimatedArrival

	if err := u.orders.Create(ctx, order); err != nil {
		return nil, err
	}
	return order, nil
}

// Get returns one order with full history, enforcing ownership for customers.
func (u *OrderUseCase) Get(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}
	if !actor.Admin() && !order.OwnedBy(actor.UserID) {
		return nil, domainErrors.ErrForbidden
	}
	return order, nil
}

// ListByOwner returns orders of one customer, newest first.
func (u *OrderUseCase) ListByOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return u.orders.ListByOwner(ctx, ownerID)
}

// List returns orders matching the stage filter and free-text query.
// rawStatus accepts a stage name or "all"/"" for no stage filter.
func (u *OrderUseCase) List(ctx context.Context, rawStatus, query string) ([]model.Order, error) {
	filter := model.OrderFilter{Query: query}
	if rawStatus != "" && rawStatus != "all" {
		stage, err := model.ParseStage(rawStatus)
		if err != nil {
			return nil, err
		}
		filter.Status = &stage
	}
	return u.orders.List(ctx, filter)
}

// Transition moves an order to the target stage and appends a history entry.
// The status write and the history append are atomic: on any failure the order
// is left untouched. Backward moves require an admin override.
func (u *OrderUseCase) Transition(ctx context.Context, orderID, target, note string, actor model.Actor, opts TransitionOptions) (*model.Order, error) {
	stage, err := model.ParseStage(target)
	if err != nil {
		return nil, err
	}

	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return nil, err
	}

	fromVersion := order.Version
	if opts.ExpectedVersion != 0 {
		if opts.ExpectedVersion != order.Version {
			return nil, domainErrors.ErrStaleWrite
		}
		fromVersion = opts.ExpectedVersion
	}

	if stage.Rank() < order.Status.Rank() && !(actor.Admin() && opts.Override) {
		return nil, domainErrors.ErrStageRegression
	}

	update := model.StatusUpdate{
		Stage:      stage,
		Note:       note,
		Actor:      actor.String(),
		OccurredAt: u.now(),
	}

	updated, err := u.orders.AppendTransition(ctx, order.ID, fromVersion, update)
	if err != nil {
		return nil, err
	}

	if stage.CustomerMilestone() && u.notifier != nil {
		u.notifier.Notify(model.StatusEvent{
			OrderID:     updated.ID,
			OrderNumber: updated.OrderNumber,
			OwnerID:     updated.OwnerID,
			Stage:       stage,
			Note:        note,
			OccurredAt:  update.OccurredAt,
		})
	}

	return updated, nil
}

// TransitionMany applies the same transition to several orders. Each order
// succeeds or fails independently; the outcome list preserves input order.
func (u *OrderUseCase) TransitionMany(ctx context.Context, orderIDs []string, target, note string, actor model.Actor, opts TransitionOptions) []model.TransitionOutcome {
	outcomes := make([]model.TransitionOutcome, 0, len(orderIDs))
	for _, id := range orderIDs {
		order, err := u.Transition(ctx, id, target, note, actor, opts)
		outcomes = append(outcomes, model.TransitionOutcome{OrderID: id, Order: order, Err: err})
	}
	return outcomes
}

// Delete removes one order permanently. Admin only.
func (u *OrderUseCase) Delete(ctx context.Context, orderID string, actor model.Actor) error {
	if !actor.Admin() {
		return domainErrors.ErrForbidden
	}
	return u.orders.Delete(ctx, orderID)
}

// DeleteMany removes several orders permanently, returning the deleted count.
func (u *OrderUseCase) DeleteMany(ctx context.Context, orderIDs []string, actor model.Actor) (int64, error) {
	if !actor.Admin() {
		return 0, domainErrors.ErrForbidden
	}
	return u.orders.DeleteMany(ctx, orderIDs)
}

// Stats returns per-stage order counts for the back-office dashboard.
func (u *OrderUseCase) Stats(ctx context.Context) (map[model.Stage]int64, error) {
	return u.orders.CountByStage(ctx)
}

// Progress projects the order status onto the pipeline for rendering.
func (u *OrderUseCase) Progress(ctx context.Context, orderID string, actor model.Actor) ([]model.StageProgress, error) {
	order, err := u.Get(ctx, orderID, actor)
	if err != nil {
		return nil, err
	}
	return ProjectProgress(order), nil
}
