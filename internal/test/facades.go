package test

import (
	"context"
	"sync"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

// AuthFacadeStub simulates authentication facade interactions.
type AuthFacadeStub struct {
	RegisterFn     func(context.Context, string, string, string) (*model.User, string, error)
	AuthenticateFn func(context.Context, string, string) (*model.User, string, error)
	ParseFn        func(string) (int64, model.Role, error)
	UserByIDFn     func(context.Context, int64) (*model.User, error)
}

// Register returns a default user for successful registration scenarios.
func (s AuthFacadeStub) Register(ctx context.Context, login, password, fullName string) (*model.User, string, error) {
	if s.RegisterFn != nil {
		return s.RegisterFn(ctx, login, password, fullName)
	}
	return &model.User{ID: 1, Login: login, FullName: fullName, Role: model.RoleCustomer}, "token", nil
}

// Authenticate returns a default user for successful login scenarios.
func (s AuthFacadeStub) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	if s.AuthenticateFn != nil {
		return s.AuthenticateFn(ctx, login, password)
	}
	return &model.User{ID: 1, Login: login, Role: model.RoleCustomer}, "token", nil
}

// ParseToken returns stored identity for authenticated user.
func (s AuthFacadeStub) ParseToken(token string) (int64, model.Role, error) {
	if s.ParseFn != nil {
		return s.ParseFn(token)
	}
	return 1, model.RoleCustomer, nil
}

// UserByID returns a stub account.
func (s AuthFacadeStub) UserByID(ctx context.Context, id int64) (*model.User, error) {
	if s.UserByIDFn != nil {
		return s.UserByIDFn(ctx, id)
	}
	return &model.User{ID: id, Login: "user", Role: model.RoleCustomer}, nil
}

// OrderFacadeStub provides controllable behaviour for customer order endpoints.
type OrderFacadeStub struct {
	CreateFn   func(context.Context, usecase.NewOrderInput, model.Actor) (*model.Order, error)
	OrderFn    func(context.Context, string, model.Actor) (*model.Order, error)
	ByOwnerFn  func(context.Context, int64) ([]model.Order, error)
	ProgressFn func(context.Context, string, model.Actor) ([]model.StageProgress, error)
}

// CreateOrder delegates to provided function or returns a default order.
func (s OrderFacadeStub) CreateOrder(ctx context.Context, input usecase.NewOrderInput, actor model.Actor) (*model.Order, error) {
	if s.CreateFn != nil {
		return s.CreateFn(ctx, input, actor)
	}
	return &model.Order{ID: "order-1", OwnerID: input.OwnerID, Vehicle: input.Vehicle, Status: model.StagePlaced, Version: 1}, nil
}

// Order returns configured order detail.
func (s OrderFacadeStub) Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	if s.OrderFn != nil {
		return s.OrderFn(ctx, orderID, actor)
	}
	return &model.Order{ID: orderID, OwnerID: actor.UserID, Status: model.StagePlaced, Version: 1}, nil
}

// OrdersByOwner returns predefined orders for given owner.
func (s OrderFacadeStub) OrdersByOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	if s.ByOwnerFn != nil {
		return s.ByOwnerFn(ctx, ownerID)
	}
	return []model.Order{{ID: "order-1", OwnerID: ownerID, Status: model.StagePlaced}}, nil
}

// OrderProgress returns configured progress projection.
func (s OrderFacadeStub) OrderProgress(ctx context.Context, orderID string, actor model.Actor) ([]model.StageProgress, error) {
	if s.ProgressFn != nil {
		return s.ProgressFn(ctx, orderID, actor)
	}
	return []model.StageProgress{{Stage: model.StagePlaced, State: model.ProgressCurrent}}, nil
}

// AdminOrderFacadeStub provides controllable behaviour for back-office endpoints.
type AdminOrderFacadeStub struct {
	SearchFn         func(context.Context, string, string) ([]model.Order, error)
	TransitionFn     func(context.Context, string, string, string, model.Actor, usecase.TransitionOptions) (*model.Order, error)
	TransitionManyFn func(context.Context, []string, string, string, model.Actor, usecase.TransitionOptions) []model.TransitionOutcome
	DeleteFn         func(context.Context, string, model.Actor) error
	DeleteManyFn     func(context.Context, []string, model.Actor) (int64, error)
	StatsFn          func(context.Context) (map[model.Stage]int64, error)
}

// SearchOrders returns configured search results.
func (s AdminOrderFacadeStub) SearchOrders(ctx context.Context, status, query string) ([]model.Order, error) {
	if s.SearchFn != nil {
		return s.SearchFn(ctx, status, query)
	}
	return nil, nil
}

// Transition returns the configured transition outcome.
func (s AdminOrderFacadeStub) Transition(ctx context.Context, orderID, target, note string, actor model.Actor, opts usecase.TransitionOptions) (*model.Order, error) {
	if s.TransitionFn != nil {
		return s.TransitionFn(ctx, orderID, target, note, actor, opts)
	}
	return &model.Order{ID: orderID, Status: model.Stage(target), Version: 2}, nil
}

// TransitionMany returns the configured bulk outcome list.
func (s AdminOrderFacadeStub) TransitionMany(ctx context.Context, orderIDs []string, target, note string, actor model.Actor, opts usecase.TransitionOptions) []model.TransitionOutcome {
	if s.TransitionManyFn != nil {
		return s.TransitionManyFn(ctx, orderIDs, target, note, actor, opts)
	}
	outcomes := make([]model.TransitionOutcome, 0, len(orderIDs))
	for _, id := range orderIDs {
		outcomes = append(outcomes, model.TransitionOutcome{OrderID: id, Order: &model.Order{ID: id, Status: model.Stage(target)}})
	}
	return outcomes
}

// DeleteOrder executes the configured deletion handler.
func (s AdminOrderFacadeStub) DeleteOrder(ctx context.Context, orderID string, actor model.Actor) error {
	if s.DeleteFn != nil {
		return s.DeleteFn(ctx, orderID, actor)
	}
	return nil
}

// DeleteOrders executes the configured bulk deletion handler.
func (s AdminOrderFacadeStub) DeleteOrders(ctx context.Context, orderIDs []string, actor model.Actor) (int64, error) {
	if s.DeleteManyFn != nil {
		return s.DeleteManyFn(ctx, orderIDs, actor)
	}
	return int64(len(orderIDs)), nil
}

// OrderStats returns configured per-stage counts.
func (s AdminOrderFacadeStub) OrderStats(ctx context.Context) (map[model.Stage]int64, error) {
	if s.StatsFn != nil {
		return s.StatsFn(ctx)
	}
	return map[model.Stage]int64{model.StagePlaced: 1}, nil
}

// AttachmentFacadeStub simulates attachment operations.
type AttachmentFacadeStub struct {
	DocumentsFn     func(context.Context, string, model.Actor) ([]model.Document, error)
	AddDocumentFn   func(context.Context, string, string, string, string, model.Actor) (*model.Document, error)
	ReceiptsFn      func(context.Context, string, model.Actor) ([]model.BankReceipt, error)
	AddReceiptFn    func(context.Context, string, string, string, float64, model.Actor) (*model.BankReceipt, error)
	VerifyReceiptFn func(context.Context, string, string, model.Actor) (*model.BankReceipt, error)
	MessagesFn      func(context.Context, string, model.Actor) ([]model.Message, error)
	PostMessageFn   func(context.Context, string, string, model.Actor) (*model.Message, error)
}

// Documents returns configured document list.
func (s AttachmentFacadeStub) Documents(ctx context.Context, orderID string, actor model.Actor) ([]model.Document, error) {
	if s.DocumentsFn != nil {
		return s.DocumentsFn(ctx, orderID, actor)
	}
	return nil, nil
}

// AddDocument returns configured document.
func (s AttachmentFacadeStub) AddDocument(ctx context.Context, orderID, name, contentType, url string, actor model.Actor) (*model.Document, error) {
	if s.AddDocumentFn != nil {
		return s.AddDocumentFn(ctx, orderID, name, contentType, url, actor)
	}
	return &model.Document{ID: "doc-1", OrderID: orderID, Name: name, URL: url}, nil
}

// Receipts returns configured receipt list.
func (s AttachmentFacadeStub) Receipts(ctx context.Context, orderID string, actor model.Actor) ([]model.BankReceipt, error) {
	if s.ReceiptsFn != nil {
		return s.ReceiptsFn(ctx, orderID, actor)
	}
	return nil, nil
}

// AddReceipt returns configured receipt.
func (s AttachmentFacadeStub) AddReceipt(ctx context.Context, orderID, fileName, url string, amount float64, actor model.Actor) (*model.BankReceipt, error) {
	if s.AddReceiptFn != nil {
		return s.AddReceiptFn(ctx, orderID, fileName, url, amount, actor)
	}
	return &model.BankReceipt{ID: "rcpt-1", OrderID: orderID, FileName: fileName, Amount: amount}, nil
}

// VerifyReceipt returns configured verification result.
func (s AttachmentFacadeStub) VerifyReceipt(ctx context.Context, orderID, receiptID string, actor model.Actor) (*model.BankReceipt, error) {
	if s.VerifyReceiptFn != nil {
		return s.VerifyReceiptFn(ctx, orderID, receiptID, actor)
	}
	return &model.BankReceipt{ID: receiptID, OrderID: orderID, Verified: true}, nil
}

// Messages returns configured message thread.
func (s AttachmentFacadeStub) Messages(ctx context.Context, orderID string, actor model.Actor) ([]model.Message, error) {
	if s.MessagesFn != nil {
		return s.MessagesFn(ctx, orderID, actor)
	}
	return nil, nil
}

// PostMessage returns configured message.
func (s AttachmentFacadeStub) PostMessage(ctx context.Context, orderID, content string, actor model.Actor) (*model.Message, error) {
	if s.PostMessageFn != nil {
		return s.PostMessageFn(ctx, orderID, content, actor)
	}
	return &model.Message{ID: "msg-1", OrderID: orderID, SenderID: actor.UserID, SenderRole: actor.Role, Content: content}, nil
}

// DealershipFacadeStub aggregates facade dependencies for HTTP layer tests.
type DealershipFacadeStub struct {
	AuthFacadeStub
	OrderFacadeStub
	AdminOrderFacadeStub
	AttachmentFacadeStub
}

// NotifierStub records events submitted for delivery.
type NotifierStub struct {
	mu     sync.Mutex
	Events []model.StatusEvent
}

// Notify stores event for later inspection.
func (s *NotifierStub) Notify(event model.StatusEvent) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.Events = append(s.Events, event)
}

// Sent returns a copy of recorded events.
func (s *NotifierStub) Sent() []model.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusEvent(nil), s.Events...)
}

// SenderStub records delivered events and optionally fails.
type SenderStub struct {
	mu     sync.Mutex
	Events []model.StatusEvent
	Err    error
}

// Send records the event or returns the configured error.
func (s *SenderStub) Send(ctx context.Context, event model.StatusEvent) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.Err != nil {
		return s.Err
	}
	s.Events = append(s.Events, event)
	return nil
}

// Delivered returns a copy of recorded events.
func (s *SenderStub) Delivered() []model.StatusEvent {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]model.StatusEvent(nil), s.Events...)
}
