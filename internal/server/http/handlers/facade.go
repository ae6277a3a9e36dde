package handlers

import (
	"context"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

// AuthFacade describes authentication capabilities required by handlers.
type AuthFacade interface {
	Register(ctx context.Context, login, password, fullName string) (*model.User, string, error)
	Authenticate(ctx context.Context, login, password string) (*model.User, string, error)
	ParseToken(token string) (int64, model.Role, error)
	UserByID(ctx context.Context, id int64) (*model.User, error)
}

// OrderFacade encapsulates order operations exposed via HTTP.
type OrderFacade interface {
	CreateOrder(ctx context.Context, input usecase.NewOrderInput, actor model.Actor) (*model.Order, error)
	Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error)
	OrdersByOwner(ctx context.Context, ownerID int64) ([]model.Order, error)
	OrderProgress(ctx context.Context, orderID string, actor model.Actor) ([]model.StageProgress, error)
}

// AdminOrderFacade covers back-office order management.
type AdminOrderFacade interface {
	SearchOrders(ctx context.Context, status, query string) ([]model.Order, error)
	Transition(ctx context.Context, orderID, target, note string, actor model.Actor, opts usecase.TransitionOptions) (*model.Order, error)
	TransitionMany(ctx context.Context, orderIDs []string, target, note string, actor model.Actor, opts usecase.TransitionOptions) []model.TransitionOutcome
	DeleteOrder(ctx context.Context, orderID string, actor model.Actor) error
	DeleteOrders(ctx context.Context, orderIDs []string, actor model.Actor) (int64, error)
	OrderStats(ctx context.Context) (map[model.Stage]int64, error)
}

// AttachmentFacade covers documents, receipts, and message threads.
type AttachmentFacade interface {
	Documents(ctx context.Context, orderID string, actor model.Actor) ([]model.Document, error)
	AddDocument(ctx context.Context, orderID, name, contentType, url string, actor model.Actor) (*model.Document, error)
	Receipts(ctx context.Context, orderID string, actor model.Actor) ([]model.BankReceipt, error)
	AddReceipt(ctx context.Context, orderID, fileName, url string, amount float64, actor model.Actor) (*model.BankReceipt, error)
	VerifyReceipt(ctx context.Context, orderID, receiptID string, actor model.Actor) (*model.BankReceipt, error)
	Messages(ctx context.Context, orderID string, actor model.Actor) ([]model.Message, error)
	PostMessage(ctx context.Context, orderID, content string, actor model.Actor) (*model.Message, error)
}

// DealershipFacade aggregates the full set of operations used across handlers.
type DealershipFacade interface {
	AuthFacade
	OrderFacade
	AdminOrderFacade
	AttachmentFacade
}
