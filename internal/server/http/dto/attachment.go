package dto

import (
	"time"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// AddDocumentRequest describes a document attachment payload.
type AddDocumentRequest struct {
	Name        string `json:"name" binding:"required"`
	ContentType string `json:"content_type"`
	URL         string `json:"url" binding:"required"`
}

// DocumentResponse describes a stored document.
type DocumentResponse struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	ContentType string    `json:"content_type,omitempty"`
	URL         string    `json:"url"`
	UploadedBy  string    `json:"uploaded_by"`
	UploadedAt  time.Time `json:"uploaded_at"`
}

// AddReceiptRequest describes a payment receipt payload.
type AddReceiptRequest struct {
	FileName string  `json:"file_name" binding:"required"`
	URL      string  `json:"url" binding:"required"`
	Amount   float64 `json:"amount"`
}

// ReceiptResponse describes a stored bank receipt.
type ReceiptResponse struct {
	ID         string     `json:"id"`
	FileName   string     `json:"file_name"`
	URL        string     `json:"url"`
	Amount     float64    `json:"amount"`
	Verified   bool       `json:"verified"`
	VerifiedAt *time.Time `json:"verified_at,omitempty"`
	UploadedAt time.Time  `json:"uploaded_at"`
}

// PostMessageRequest describes a thread message payload.
type PostMessageRequest struct {
	Content string `json:"content" binding:"required"`
}

// MessageResponse describes one thread message.
type MessageResponse struct {
	ID         string    `json:"id"`
	SenderID   int64     `json:"sender_id"`
	SenderRole string    `json:"sender_role"`
	Content    string    `json:"content"`
	Read       bool      `json:"read"`
	SentAt     time.Time `json:"sent_at"`
}

// ToDocumentResponse maps a document to its transport form.
func ToDocumentResponse(doc model.Document) DocumentResponse {
	return DocumentResponse{
		ID:          doc.ID,
		Name:        doc.Name,
		ContentType: doc.ContentType,
		URL:         doc.URL,
		UploadedBy:  string(doc.UploadedBy),
		UploadedAt:  doc.UploadedAt,
	}
}

// ToReceiptResponse maps a receipt to its transport form.
func ToReceiptResponse(receipt model.BankReceipt) ReceiptResponse {
	return ReceiptResponse{
		ID:         receipt.ID,
		FileName:   receipt.FileName,
		URL:        receipt.URL,
		Amount:     receipt.Amount,
		Verified:   receipt.Verified,
		VerifiedAt: receipt.VerifiedAt,
		UploadedAt: receipt.UploadedAt,
	}
}

// ToMessageResponse maps a message to its transport form.
func ToMessageResponse(msg model.Message) MessageResponse {
	return MessageResponse{
		ID:         msg.ID,
		SenderID:   msg.SenderID,
		SenderRole: string(msg.SenderRole),
		Content:    msg.Content,
		Read:       msg.Read,
		SentAt:     msg.SentAt,
	}
}
