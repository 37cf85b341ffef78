package order

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
	"comanda/internal/httpx"
	"comanda/internal/models"
	"comanda/internal/services/auth"
)

// Handler exposes the order routes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create handles POST /order. The placing account comes from the token.
func (h *Handler) Create(c *gin.Context) {
	var req models.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	resolved, err := h.service.Create(c.Request.Context(), auth.AccountID(c), &req)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, resolved)
}

// List handles GET /orders.
func (h *Handler) List(c *gin.Context) {
	orders, err := h.service.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListByTable handles GET /order/table/:id.
func (h *Handler) ListByTable(c *gin.Context) {
	orders, err := h.service.ListByTable(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListByAccount handles GET /order/account/:id.
func (h *Handler) ListByAccount(c *gin.Context) {
	orders, err := h.service.ListByAccount(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ListChecked handles GET /order/checked.
func (h *Handler) ListChecked(c *gin.Context) {
	orders, err := h.service.ListChecked(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, orders)
}

// ToggleStatus handles PATCH /order/:id.
func (h *Handler) ToggleStatus(c *gin.Context) {
	resolved, err := h.service.ToggleStatus(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, resolved)
}

// Delete handles DELETE /order/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
