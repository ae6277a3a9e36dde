package test

import (
	"context"
	"fmt"
	"sort"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// UserRepositoryStub stores users in-memory for tests.
type UserRepositoryStub struct {
	Users map[string]*model.User
	ByID  map[int64]*model.User
	Next  int64
	Err   error
}

// NewUserRepositoryStub constructs stub repository with initialized maps.
func NewUserRepositoryStub() *UserRepositoryStub {
	return &UserRepositoryStub{
		Users: make(map[string]*model.User),
		ByID:  make(map[int64]*model.User),
		Next:  1,
	}
}

// Create registers user unless already exists or stub has explicit error.
func (s *UserRepositoryStub) Create(ctx context.Context, login, passwordHash, fullName string, role model.Role) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if s.Users == nil {
		s.Users = make(map[string]*model.User)
	}
	if s.ByID == nil {
		s.ByID = make(map[int64]*model.User)
	}
	if _, exists := s.Users[login]; exists {
		return nil, domainErrors.ErrAlreadyExists
	}
	if s.Next == 0 {
		s.Next = 1
	}
	user := &model.User{ID: s.Next, Login: login, PasswordHash: passwordHash, FullName: fullName, Role: role}
	s.Next++
	s.Users[login] = user
	s.ByID[user.ID] = user
	return user, nil
}

// GetByLogin fetches user by login or returns not found.
func (s *UserRepositoryStub) GetByLogin(ctx context.Context, login string) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.Users[login]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// GetByID fetches user by identifier or returns not found.
func (s *UserRepositoryStub) GetByID(ctx context.Context, id int64) (*model.User, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	if user, ok := s.ByID[id]; ok {
		return user, nil
	}
	return nil, domainErrors.ErrNotFound
}

// OrderRepositoryStub keeps orders in-memory and mirrors the version guard
// of the real repository. Function fields override individual operations.
type OrderRepositoryStub struct {
	CreateFn           func(context.Context, *model.Order) error
	GetByIDFn          func(context.Context, string) (*model.Order, error)
	AppendTransitionFn func(context.Context, string, int64, model.StatusUpdate) (*model.Order, error)

	Orders   map[string]*model.Order
	Sequence int64
	Err      error
}

// NewOrderRepositoryStub constructs stub repository with initialized state.
func NewOrderRepositoryStub() *OrderRepositoryStub {
	return &OrderRepositoryStub{Orders: make(map[string]*model.Order)}
}

// Create stores the order keyed by identifier.
func (s *OrderRepositoryStub) Create(ctx context.Context, order *model.Order) error {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, order)
	}
	if s.Err != nil {
		return s.Err
	}
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	if _, exists := s.Orders[order.ID]; exists {
		return domainErrors.ErrAlreadyExists
	}
	stored := cloneOrder(order)
	s.Orders[order.ID] = stored
	return nil
}

// GetByID returns a copy of the stored order including history.
func (s *OrderRepositoryStub) GetByID(ctx context.Context, id string) (*model.Order, error) {
	if s.GetByIDFn != nil {
		return s.GetByIDFn(ctx, id)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[id]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	return cloneOrder(order), nil
}

// ListByOwner returns the owner's orders, newest first.
func (s *OrderRepositoryStub) ListByOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return s.List(ctx, model.OrderFilter{OwnerID: &ownerID})
}

// List returns orders matching the filter, newest first.
func (s *OrderRepositoryStub) List(ctx context.Context, filter model.OrderFilter) ([]model.Order, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	var result []model.Order
	for _, order := range s.Orders {
		if filter.Match(*order) {
			result = append(result, *cloneOrder(order))
		}
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].CreatedAt.After(result[j].CreatedAt)
	})
	return result, nil
}

// AppendTransition applies the update when the stored version matches.
func (s *OrderRepositoryStub) AppendTransition(ctx context.Context, orderID string, fromVersion int64, update model.StatusUpdate) (*model.Order, error) {
	if s.AppendTransitionFn != nil {
		return s.AppendTransitionFn(ctx, orderID, fromVersion, update)
	}
	if s.Err != nil {
		return nil, s.Err
	}
	order, ok := s.Orders[orderID]
	if !ok {
		return nil, domainErrors.ErrNotFound
	}
	if order.Version != fromVersion {
		return nil, domainErrors.ErrStaleWrite
	}
	order.Status = update.Stage
	order.Version++
	order.UpdatedAt = update.OccurredAt
	order.StatusHistory = append(order.StatusHistory, update)
	return cloneOrder(order), nil
}

// Delete removes the order if present.
func (s *OrderRepositoryStub) Delete(ctx context.Context, id string) error {
	if s.Err != nil {
		return s.Err
	}
	if _, ok := s.Orders[id]; !ok {
		return domainErrors.ErrNotFound
	}
	delete(s.Orders, id)
	return nil
}

// DeleteMany removes listed orders and reports the deleted count.
func (s *OrderRepositoryStub) DeleteMany(ctx context.Context, ids []string) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	var deleted int64
	for _, id := range ids {
		if _, ok := s.Orders[id]; ok {
			delete(s.Orders, id)
			deleted++
		}
	}
	return deleted, nil
}

// CountByStage returns per-stage totals of stored orders.
func (s *OrderRepositoryStub) CountByStage(ctx context.Context) (map[model.Stage]int64, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	counts := make(map[model.Stage]int64)
	for _, order := range s.Orders {
		counts[order.Status]++
	}
	return counts, nil
}

// NextSequence returns monotonically increasing sequence values.
func (s *OrderRepositoryStub) NextSequence(ctx context.Context) (int64, error) {
	if s.Err != nil {
		return 0, s.Err
	}
	s.Sequence++
	return s.Sequence, nil
}

func cloneOrder(order *model.Order) *model.Order {
	clone := *order
	clone.StatusHistory = append([]model.StatusUpdate(nil), order.StatusHistory...)
	return &clone
}

// DocumentRepositoryStub stores documents grouped by order.
type DocumentRepositoryStub struct {
	Items map[string][]model.Document
	Err   error
}

// Add appends document to the order's list.
func (s *DocumentRepositoryStub) Add(ctx context.Context, doc *model.Document) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string][]model.Document)
	}
	s.Items[doc.OrderID] = append(s.Items[doc.OrderID], *doc)
	return nil
}

// ListByOrder returns documents for the order.
func (s *DocumentRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Document, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items[orderID], nil
}

// ReceiptRepositoryStub stores receipts grouped by order.
type ReceiptRepositoryStub struct {
	Items map[string][]model.BankReceipt
	Err   error
}

// Add appends receipt to the order's list.
func (s *ReceiptRepositoryStub) Add(ctx context.Context, receipt *model.BankReceipt) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string][]model.BankReceipt)
	}
	s.Items[receipt.OrderID] = append(s.Items[receipt.OrderID], *receipt)
	return nil
}

// ListByOrder returns receipts for the order.
func (s *ReceiptRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.BankReceipt, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items[orderID], nil
}

// Verify marks the receipt verified and returns the updated copy.
func (s *ReceiptRepositoryStub) Verify(ctx context.Context, orderID, receiptID string) (*model.BankReceipt, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	receipts := s.Items[orderID]
	for i := range receipts {
		if receipts[i].ID == receiptID {
			receipts[i].Verified = true
			copy := receipts[i]
			return &copy, nil
		}
	}
	return nil, domainErrors.ErrNotFound
}

// MessageRepositoryStub stores messages grouped by order.
type MessageRepositoryStub struct {
	Items map[string][]model.Message
	Err   error
}

// Add appends message to the order's thread.
func (s *MessageRepositoryStub) Add(ctx context.Context, msg *model.Message) error {
	if s.Err != nil {
		return s.Err
	}
	if s.Items == nil {
		s.Items = make(map[string][]model.Message)
	}
	s.Items[msg.OrderID] = append(s.Items[msg.OrderID], *msg)
	return nil
}

// ListByOrder returns the thread for the order.
func (s *MessageRepositoryStub) ListByOrder(ctx context.Context, orderID string) ([]model.Message, error) {
	if s.Err != nil {
		return nil, s.Err
	}
	return s.Items[orderID], nil
}

// SeedOrder inserts an order with a deterministic identity for tests.
func (s *OrderRepositoryStub) SeedOrder(ownerID int64, stage model.Stage, vehicleName string) *model.Order {
	if s.Orders == nil {
		s.Orders = make(map[string]*model.Order)
	}
	s.Sequence++
	order := &model.Order{
		ID:          fmt.Sprintf("order-%d", s.Sequence),
		OrderNumber: fmt.Sprintf("KA-2026-%05d", s.Sequence),
		OwnerID:     ownerID,
		Vehicle:     model.VehicleRef{VehicleID: "veh-1", Name: vehicleName},
		Status:      stage,
		Version:     1,
		StatusHistory: []model.StatusUpdate{
			{Stage: stage, Note: "seeded"},
		},
	}
	s.Orders[order.ID] = order
	return order
}
