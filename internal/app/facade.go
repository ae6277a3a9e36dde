package app

import (
	"context"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

// DealershipFacade exposes the application services behind one surface
// consumed by the HTTP layer.
type DealershipFacade struct {
	auth        *usecase.AuthUseCase
	orders      *usecase.OrderUseCase
	attachments *usecase.AttachmentUseCase
}

func NewDealershipFacade(auth *usecase.AuthUseCase, orders *usecase.OrderUseCase, attachments *usecase.AttachmentUseCase) *DealershipFacade {
	return &DealershipFacade{auth: auth, orders: orders, attachments: attachments}
}

func (f *DealershipFacade) Register(ctx context.Context, login, password, fullName string) (*model.User, string, error) {
	return f.auth.Register(ctx, login, password, fullName)
}

func (f *DealershipFacade) Authenticate(ctx context.Context, login, password string) (*model.User, string, error) {
	return f.auth.Authenticate(ctx, login, password)
}

func (f *DealershipFacade) ParseToken(token string) (int64, model.Role, error) {
	return f.auth.ParseToken(token)
}

func (f *DealershipFacade) UserByID(ctx context.Context, id int64) (*model.User, error) {
	return f.auth.GetByID(ctx, id)
}

func (f *DealershipFacade) EnsureAdmin(ctx context.Context, login, password string) error {
	return f.auth.EnsureAdmin(ctx, login, password)
}

func (f *DealershipFacade) CreateOrder(ctx context.Context, input usecase.NewOrderInput, actor model.Actor) (*model.Order, error) {
	return f.orders.Create(ctx, input, actor)
}

func (f *DealershipFacade) Order(ctx context.Context, orderID string, actor model.Actor) (*model.Order, error) {
	return f.orders.Get(ctx, orderID, actor)
}

func (f *DealershipFacade) OrdersByOwner(ctx context.Context, ownerID int64) ([]model.Order, error) {
	return f.orders.ListByOwner(ctx, ownerID)
}

func (f *DealershipFacade) OrderProgress(ctx context.Context, orderID string, actor model.Actor) ([]model.StageProgress, error) {
	return f.orders.Progress(ctx, orderID, actor)
}

func (f *DealershipFacade) SearchOrders(ctx context.Context, status, query string) ([]model.Order, error) {
	return f.orders.List(ctx, status, query)
}

func (f *DealershipFacade) Transition(ctx context.Context, orderID, target, note string, actor model.Actor, opts usecase.TransitionOptions) (*model.Order, error) {
	return f.orders.Transition(ctx, orderID, target, note, actor, opts)
}

func (f *DealershipFacade) TransitionMany(ctx context.Context, orderIDs []string, target, note string, actor model.Actor, opts usecase.TransitionOptions) []model.TransitionOutcome {
	return f.orders.TransitionMany(ctx, orderIDs, target, note, actor, opts)
}

func (f *DealershipFacade) DeleteOrder(ctx context.Context, orderID string, actor model.Actor) error {
	return f.orders.Delete(ctx, orderID, actor)
}

func (f *DealershipFacade) DeleteOrders(ctx context.Context, orderIDs []string, actor model.Actor) (int64, error) {
	return f.orders.DeleteMany(ctx, orderIDs, actor)
}

func (f *DealershipFacade) OrderStats(ctx context.Context) (map[model.Stage]int64, error) {
	return f.orders.Stats(ctx)
}

func (f *DealershipFacade) Documents(ctx context.Context, orderID string, actor model.Actor) ([]model.Document, error) {
	return f.attachments.Documents(ctx, orderID, actor)
}

func (f *DealershipFacade) AddDocument(ctx context.Context, orderID, name, contentType, url string, actor model.Actor) (*model.Document, error) {
	return f.attachments.AddDocument(ctx, orderID, name, contentType, url, actor)
}

func (f *DealershipFacade) Receipts(ctx context.Context, orderID string, actor model.Actor) ([]model.BankReceipt, error) {
	return f.attachments.Receipts(ctx, orderID, actor)
}

func (f *DealershipFacade) AddReceipt(ctx context.Context, orderID, fileName, url string, amount float64, actor model.Actor) (*model.BankReceipt, error) {
	return f.attachments.AddReceipt(ctx, orderID, fileName, url, amount, actor)
}

func (f *DealershipFacade) VerifyReceipt(ctx context.Context, orderID, receiptID string, actor model.Actor) (*model.BankReceipt, error) {
	return f.attachments.VerifyReceipt(ctx, orderID, receiptID, actor)
}

func (f *DealershipFacade) Messages(ctx context.Context, orderID string, actor model.Actor) ([]model.Message, error) {
	return f.attachments.Messages(ctx, orderID, actor)
}

func (f *DealershipFacade) PostMessage(ctx context.Context, orderID, content string, actor model.Actor) (*model.Message, error) {
	return f.attachments.PostMessage(ctx, orderID, content, actor)
}
