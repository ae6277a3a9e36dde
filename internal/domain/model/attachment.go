package model

import "time"

// Document is a metadata record for a file attached to an order.
type Document struct {
	ID          string
	OrderID     string
	Name        string
	ContentType string
	URL         string
	UploadedBy  Role
	UploadedAt  time.Time
}

// BankReceipt is a payment proof uploaded by the customer and verified by staff.
type BankReceipt struct {
	ID         string
	OrderID    string
	FileName   string
	URL        string
	Amount     float64
	Verified   bool
	VerifiedAt *time.Time
	UploadedAt time.Time
}

// Message is one entry of the per-order conversation thread.
type Message struct {
	ID         string
	OrderID    string
	SenderID   int64
	SenderRole Role
	Content    string
	Read       bool
	SentAt     time.Time
}
