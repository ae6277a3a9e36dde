package repository

import (
	"context"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// DocumentRepository stores document metadata attached to orders.
type DocumentRepository interface {
	Add(ctx context.Context, doc *model.Document) error
	ListByOrder(ctx context.Context, orderID string) ([]model.Document, error)
}

// ReceiptRepository stores bank receipts and their verification state.
type ReceiptRepository interface {
	Add(ctx context.Context, receipt *model.BankReceipt) error
	ListByOrder(ctx context.Context, orderID string) ([]model.BankReceipt, error)
	Verify(ctx context.Context, orderID, receiptID string) (*model.BankReceipt, error)
}

// MessageRepository stores per-order conversation threads.
type MessageRepository interface {
	Add(ctx context.Context, msg *model.Message) error
	ListByOrder(ctx context.Context, orderID string) ([]model.Message, error)
}
