package dto

import (
	"time"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
)

// CreateOrderRequest describes payload for placing a new order.
type CreateOrderRequest struct {
	OwnerID          int64      `json:"owner_id"`
	VehicleID        string     `json:"vehicle_id" binding:"required"`
	VehicleName      string     `json:"vehicle_name" binding:"required"`
	VehicleColor     string     `json:"vehicle_color"`
	TotalAmount      float64    `json:"total_amount"`
	DepositPaid      float64    `json:"deposit_paid"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
}

// TransitionRequest describes a status change payload.
type TransitionRequest struct {
	Status   string `json:"status" binding:"required"`
	Note     string `json:"note"`
	Override bool   `json:"override"`
	Version  int64  `json:"version"`
}

// BulkTransitionRequest applies one status change to several orders.
type BulkTransitionRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
	Status   string   `json:"status" binding:"required"`
	Note     string   `json:"note"`
	Override bool     `json:"override"`
}

// BulkDeleteRequest removes several orders at once.
type BulkDeleteRequest struct {
	OrderIDs []string `json:"order_ids" binding:"required"`
}

// StatusUpdateResponse describes one history entry.
type StatusUpdateResponse struct {
	Status     string    `json:"status"`
	Note       string    `json:"note,omitempty"`
	Actor      string    `json:"actor,omitempty"`
	OccurredAt time.Time `json:"occurred_at"`
}

// StageProgressResponse describes one step of the pipeline projection.
type StageProgressResponse struct {
	Stage string `json:"stage"`
	Label string `json:"label"`
	State string `json:"state"`
}

// OrderResponse describes an order without history.
type OrderResponse struct {
	ID               string     `json:"id"`
	OrderNumber      string     `json:"order_number"`
	OwnerID          int64      `json:"owner_id"`
	VehicleID        string     `json:"vehicle_id"`
	VehicleName      string     `json:"vehicle_name"`
	VehicleColor     string     `json:"vehicle_color,omitempty"`
	Status           string     `json:"status"`
	TotalAmount      float64    `json:"total_amount"`
	DepositPaid      float64    `json:"deposit_paid"`
	EstimatedArrival *time.Time `json:"estimated_arrival,omitempty"`
	Version          int64      `json:"version"`
	CreatedAt        time.Time  `json:"created_at"`
	UpdatedAt        time.Time  `json:"updated_at"`
}

// OrderDetailResponse describes an order with history and progress.
type OrderDetailResponse struct {
	OrderResponse
	StatusHistory []StatusUpdateResponse  `json:"status_history"`
	Progress      []StageProgressResponse `json:"progress"`
}

// BulkTransitionResponse reports per-order outcomes.
type BulkTransitionResponse struct {
	Updated []OrderResponse   `json:"updated"`
	Failed  map[string]string `json:"failed,omitempty"`
}

// BulkDeleteResponse reports how many orders were removed.
type BulkDeleteResponse struct {
	Deleted int64 `json:"deleted"`
}

// StatsResponse reports order counts per stage.
type StatsResponse struct {
	Total  int64            `json:"total"`
	Stages map[string]int64 `json:"stages"`
}

// ToOrderResponse maps a domain order to its transport form.
func ToOrderResponse(order model.Order) OrderResponse {
	return OrderResponse{
		ID:               order.ID,
		OrderNumber:      order.OrderNumber,
		OwnerID:          order.OwnerID,
		VehicleID:        order.Vehicle.VehicleID,
		VehicleName:      order.Vehicle.Name,
		VehicleColor:     order.Vehicle.Color,
		Status:           string(order.Status),
		TotalAmount:      order.TotalAmount,
		DepositPaid:      order.DepositPaid,
		EstimatedArrival: order.EstimatedArrival,
		Version:          order.Version,
		CreatedAt:        order.CreatedAt,
		UpdatedAt:        order.UpdatedAt,
	}
}

// ToOrderDetailResponse maps an order together with history and progress.
func ToOrderDetailResponse(order model.Order, progress []model.StageProgress) OrderDetailResponse {
	history := make([]StatusUpdateResponse, 0, len(order.StatusHistory))
	for _, entry := range order.StatusHistory {
		history = append(history, StatusUpdateResponse{
			Status:     string(entry.Stage),
			Note:       entry.Note,
			Actor:      entry.Actor,
			OccurredAt: entry.OccurredAt,
		})
	}

	steps := make([]StageProgressResponse, 0, len(progress))
	for _, step := range progress {
		steps = append(steps, StageProgressResponse{
			Stage: string(step.Stage),
			Label: step.Stage.Label(),
			State: string(step.State),
		})
	}

	return OrderDetailResponse{
		OrderResponse: ToOrderResponse(order),
		StatusHistory: history,
		Progress:      steps,
	}
}
