package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kairos-ev/ordertrack/internal/domain/model"
	"github.com/kairos-ev/ordertrack/internal/server/http/dto"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

// OrderHandler manages customer-facing order endpoints.
type OrderHandler struct {
	facade OrderFacade
}

// NewOrderHandler constructs OrderHandler.
func NewOrderHandler(facade OrderFacade) *OrderHandler {
	return &OrderHandler{facade: facade}
}

// Create handles POST /api/user/orders.
func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	actor := CurrentActor(c)
	ownerID := actor.UserID
	if actor.Admin() && req.OwnerID != 0 {
		ownerID = req.OwnerID
	}

	input := usecase.NewOrderInput{
		OwnerID: ownerID,
		Vehicle: model.VehicleRef{
			VehicleID: req.VehicleID,
			Name:      req.VehicleName,
			Color:     req.VehicleColor,
		},
		TotalAmount:      req.TotalAmount,
		DepositPaid:      req.DepositPaid,
		EstimatedArrival: req.EstimatedArrival,
	}

	order, err := h.facade.CreateOrder(c.Request.Context(), input, actor)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusCreated, dto.ToOrderResponse(*order))
}

// List handles GET /api/user/orders.
func (h *OrderHandler) List(c *gin.Context) {
	orders, err := h.facade.OrdersByOwner(c.Request.Context(), CurrentUserID(c))
	if err != nil {
		c.Status(http.StatusInternalServerError)
		return
	}
	if len(orders) == 0 {
		c.Status(http.StatusNoContent)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Progress handles GET /api/user/orders/:id/progress.
func (h *OrderHandler) Progress(c *gin.Context) {
	progress, err := h.facade.OrderProgress(c.Request.Context(), c.Param("id"), CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.StageProgressResponse, 0, len(progress))
	for _, step := range progress {
		response = append(response, dto.StageProgressResponse{
			Stage: string(step.Stage),
			Label: step.Stage.Label(),
			State: string(step.State),
		})
	}
	c.JSON(http.StatusOK, response)
}

// Get handles GET /api/user/orders/:id.
func (h *OrderHandler) Get(c *gin.Context) {
	orderID := c.Param("id")
	actor := CurrentActor(c)

	order, err := h.facade.Order(c.Request.Context(), orderID, actor)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	progress, err := h.facade.OrderProgress(c.Request.Context(), orderID, actor)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDetailResponse(*order, progress))
}
