package repository

import (
	"context"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// OrderRepository describes persistence operations with orders.
type OrderRepository interface {
	// Create stores a fully constructed order including its initial history entry.
	Create(ctx context.Context, order *model.Order) error
	// GetByID returns the order with its complete status history.
	GetByID(ctx context.Context, id string) (*model.Order, error)
	// ListByOwner returns orders of one customer, newest first, without history.
	ListByOwner(ctx context.Context, ownerID int64) ([]model.Order, error)
	// List returns orders matching the filter, newest first, without history.
	List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error)
	// AppendTransition atomically writes the new status, bumps the version and
	// appends the history entry. fromVersion guards against concurrent writers.
	AppendTransition(ctx context.Context, orderID string, fromVersion int64, update model.StatusUpdate) (*model.Order, error)
	// Delete removes an order and its owned sub-records.
	Delete(ctx context.Context, id string) error
	// DeleteMany removes several orders, returning the number actually deleted.
	DeleteMany(ctx context.Context, ids []string) (int64, error)
	// CountByStage returns per-stage order totals.
	CountByStage(ctx context.Context) (map[model.Stage]int64, error)
	// NextSequence reserves the next order number sequence value.
	NextSequence(ctx context.Context) (int64, error)
}
