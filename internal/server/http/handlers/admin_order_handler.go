package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/kairos-ev/ordertrack/internal/server/http/dto"
	"github.com/kairos-ev/ordertrack/internal/usecase"
)

// AdminOrderHandler manages back-office order endpoints.
type AdminOrderHandler struct {
	facade AdminOrderFacade
}

// NewAdminOrderHandler constructs AdminOrderHandler.
func NewAdminOrderHandler(facade AdminOrderFacade) *AdminOrderHandler {
	return &AdminOrderHandler{facade: facade}
}

// List handles GET /api/admin/orders with optional status and q filters.
func (h *AdminOrderHandler) List(c *gin.Context) {
	orders, err := h.facade.SearchOrders(c.Request.Context(), c.Query("status"), c.Query("q"))
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := make([]dto.OrderResponse, 0, len(orders))
	for _, o := range orders {
		response = append(response, dto.ToOrderResponse(o))
	}
	c.JSON(http.StatusOK, response)
}

// Transition handles PATCH /api/admin/orders/:id/status.
func (h *AdminOrderHandler) Transition(c *gin.Context) {
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	opts := usecase.TransitionOptions{Override: req.Override, ExpectedVersion: req.Version}
	order, err := h.facade.Transition(c.Request.Context(), c.Param("id"), req.Status, req.Note, CurrentActor(c), opts)
	if err != nil {
		writeDomainError(c, err)
		return
	}

	c.JSON(http.StatusOK, dto.ToOrderDetailResponse(*order, usecase.ProjectProgress(order)))
}

// BulkTransition handles POST /api/admin/orders/status.
func (h *AdminOrderHandler) BulkTransition(c *gin.Context) {
	var req dto.BulkTransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	opts := usecase.TransitionOptions{Override: req.Override}
	outcomes := h.facade.TransitionMany(c.Request.Context(), req.OrderIDs, req.Status, req.Note, CurrentActor(c), opts)

	response := dto.BulkTransitionResponse{Updated: make([]dto.OrderResponse, 0, len(outcomes))}
	for _, outcome := range outcomes {
		if outcome.Failed() {
			if response.Failed == nil {
				response.Failed = make(map[string]string)
			}
			response.Failed[outcome.OrderID] = outcome.Err.Error()
			continue
		}
		response.Updated = append(response.Updated, dto.ToOrderResponse(*outcome.Order))
	}
	c.JSON(http.StatusOK, response)
}

// Delete handles DELETE /api/admin/orders/:id.
func (h *AdminOrderHandler) Delete(c *gin.Context) {
	if err := h.facade.DeleteOrder(c.Request.Context(), c.Param("id"), CurrentActor(c)); err != nil {
		writeDomainError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}

// BulkDelete handles POST /api/admin/orders/delete.
func (h *AdminOrderHandler) BulkDelete(c *gin.Context) {
	var req dto.BulkDeleteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Status(http.StatusBadRequest)
		return
	}

	deleted, err := h.facade.DeleteOrders(c.Request.Context(), req.OrderIDs, CurrentActor(c))
	if err != nil {
		writeDomainError(c, err)
		return
	}
	c.JSON(http.StatusOK, dto.BulkDeleteResponse{Deleted: deleted})
}

// Stats handles GET /api/admin/orders/stats.
func (h *AdminOrderHandler) Stats(c *gin.Context) {
	counts, err := h.facade.OrderStats(c.Request.Context())
	if err != nil {
		writeDomainError(c, err)
		return
	}

	response := dto.StatsResponse{Stages: make(map[string]int64, len(counts))}
	for stage, n := range counts {
		response.Stages[string(stage)] = n
		response.Total += n
	}
	c.JSON(http.StatusOK, response)
}
