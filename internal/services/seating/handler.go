package seating

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
	"comanda/internal/httpx"
	"comanda/internal/models"
)

// Handler exposes the table routes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /tables.
func (h *Handler) List(c *gin.Context) {
	tables, err := h.service.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, tables)
}

// Get handles GET /table/:id.
func (h *Handler) Get(c *gin.Context) {
	table, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// Create handles POST /table.
func (h *Handler) Create(c *gin.Context) {
	var req models.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	table, err := h.service.Create(c.Request.Context(), req.Number)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, table)
}

// Update handles PATCH /table/:id.
func (h *Handler) Update(c *gin.Context) {
	var req models.TableRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	table, err := h.service.Update(c.Request.Context(), c.Param("id"), req.Number)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, table)
}

// Delete handles DELETE /table/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
