package model

import (
	"time"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
)

// VehicleRef points to a catalog vehicle chosen for the order.
type VehicleRef struct {
	VehicleID string
	Name      string
	Color     string
}

// StatusUpdate is an immutable history entry describing one stage change.
type StatusUpdate struct {
	Stage      Stage
	Note       string
	Actor      string
	OccurredAt time.Time
}

// Order describes one vehicle purchase moving through the delivery pipeline.
type Order struct {
	ID               string
	OrderNumber      string
	OwnerID          int64
	Vehicle          VehicleRef
	Status           Stage
	StatusHistory    []StatusUpdate
	TotalAmount      float64
	DepositPaid      float64
	EstimatedArrival *time.Time
	Version          int64
	CreatedAt        time.Time
	UpdatedAt        time.Time
}

// NewOrder builds an order in the initial stage with a single history entry.
func NewOrder(ownerID int64, vehicle VehicleRef, totalAmount, depositPaid float64, actor string) (*Order, error) {
	if totalAmount < 0 || depositPaid < 0 || depositPaid > totalAmount {
		return nil, domainErrors.ErrInvalidAmount
	}

	now := time.Now()
	return &Order{
		OwnerID:     ownerID,
		Vehicle:     vehicle,
		Status:      StagePlaced,
		TotalAmount: totalAmount,
		DepositPaid: depositPaid,
		Version:     1,
		CreatedAt:   now,
		UpdatedAt:   now,
		StatusHistory: []StatusUpdate{
			{Stage: StagePlaced, Note: "Order confirmed", Actor: actor, OccurredAt: now},
		},
	}, nil
}

// LastUpdate returns the trailing history entry, or nil for an empty history.
func (o *Order) LastUpdate() *StatusUpdate {
	if len(o.StatusHistory) == 0 {
		return nil
	}
	return &o.StatusHistory[len(o.StatusHistory)-1]
}

// OwnedBy reports whether the order belongs to given user.
func (o *Order) OwnedBy(userID int64) bool {
	return o.OwnerID == userID
}
