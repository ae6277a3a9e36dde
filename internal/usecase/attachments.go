package usecase

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"

	domainErrors "github.com/kairos-ev/ordertrack/internal/domain/errors"
	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/domain/repository"
)

// AttachmentUseCase manages the sub-records owned by an order: documents,
// bank receipts and the message thread. Every operation verifies that the
// actor may touch the order first.
type AttachmentUseCase struct {
	orders    repository.OrderRepository
	documents repository.DocumentRepository
	receipts  repository.ReceiptRepository
	messages  repository.MessageRepository
	now       func() time.Time
}

// NewAttachmentUseCase constructs AttachmentUseCase.
func NewAttachmentUseCase(
	orders repository.OrderRepository,
	documents repository.DocumentRepository,
	receipts repository.ReceiptRepository,
	messages repository.MessageRepository,
) *AttachmentUseCase {
	return &AttachmentUseCase{
		orders:    orders,
		documents: documents,
		receipts:  receipts,
		messages:  messages,
		now:       time.Now,
	}
}

func (u *AttachmentUseCase) authorize(ctx context.Context, orderID string, actor model.Actor) error {
	order, err := u.orders.GetByID(ctx, orderID)
	if err != nil {
		return err
	}
	if !actor.Admin() && !order.OwnedBy(actor.UserID) {
		return domainErrors.ErrForbidden
	}
	return nil
}

// Documents lists document metadata attached to the order.
func (u *AttachmentUseCase) Documents(ctx context.Context, orderID string, actor model.Actor) ([]model.Document, error) {
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	return u.documents.ListByOrder(ctx, orderID)
}

// AddDocument attaches a document metadata record to the order.
func (u *AttachmentUseCase) AddDocument(ctx context.Context, orderID, name, contentType, url string, actor model.Actor) (*model.Document, error) {
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	doc := &model.Document{
		ID:          uuid.NewString(),
		OrderID:     orderID,
		Name:        name,
		ContentType: contentType,
		URL:         url,
		UploadedBy:  actor.Role,
		UploadedAt:  u.now(),
	}
	if err := u.documents.Add(ctx, doc); err != nil {
		return nil, err
	}
	return doc, nil
}

// Receipts lists bank receipts uploaded for the order.
func (u *AttachmentUseCase) Receipts(ctx context.Context, orderID string, actor model.Actor) ([]model.BankReceipt, error) {
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	return u.receipts.ListByOrder(ctx, orderID)
}

// AddReceipt records a payment proof for the order.
func (u *AttachmentUseCase) AddReceipt(ctx context.Context, orderID, fileName, url string, amount float64, actor model.Actor) (*model.BankReceipt, error) {
	if amount < 0 {
		return nil, domainErrors.ErrInvalidAmount
	}
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	receipt := &model.BankReceipt{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		FileName:   fileName,
		URL:        url,
		Amount:     amount,
		UploadedAt: u.now(),
	}
	if err := u.receipts.Add(ctx, receipt); err != nil {
		return nil, err
	}
	return receipt, nil
}

// VerifyReceipt marks a receipt as verified by staff. Admin only.
func (u *AttachmentUseCase) VerifyReceipt(ctx context.Context, orderID, receiptID string, actor model.Actor) (*model.BankReceipt, error) {
	if !actor.Admin() {
		return nil, domainErrors.ErrForbidden
	}
	return u.receipts.Verify(ctx, orderID, receiptID)
}

// Messages lists the conversation thread of the order.
func (u *AttachmentUseCase) Messages(ctx context.Context, orderID string, actor model.Actor) ([]model.Message, error) {
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	return u.messages.ListByOrder(ctx, orderID)
}

// PostMessage appends a message to the order thread on behalf of the actor.
func (u *AttachmentUseCase) PostMessage(ctx context.Context, orderID, content string, actor model.Actor) (*model.Message, error) {
	if strings.TrimSpace(content) == "" {
		return nil, domainErrors.ErrEmptyMessage
	}
	if err := u.authorize(ctx, orderID, actor); err != nil {
		return nil, err
	}
	msg := &model.Message{
		ID:         uuid.NewString(),
		OrderID:    orderID,
		SenderID:   actor.UserID,
		SenderRole: actor.Role,
		Content:    content,
		SentAt:     u.now(),
	}
	if err := u.messages.Add(ctx, msg); err != nil {
		return nil, err
	}
	return msg, nil
}
