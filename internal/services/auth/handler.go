package auth

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
	"comanda/internal/httpx"
	"comanda/internal/models"
)

// Handler exposes the identity routes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Register handles POST /user.
func (h *Handler) Register(c *gin.Context) {
	var req models.RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	acc, err := h.service.Register(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, acc)
}

// Login handles POST /login.
func (h *Handler) Login(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	tok, acc, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: tok, Account: acc})
}

// AdminLogin handles POST /admin.
func (h *Handler) AdminLogin(c *gin.Context) {
	var req models.LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "invalid JSON body"))
		return
	}

	tok, acc, err := h.service.AdminLogin(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, models.LoginResponse{Token: tok, Account: acc})
}

// List handles GET /user.
func (h *Handler) List(c *gin.Context) {
	accounts, err := h.service.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, accounts)
}

// Get handles GET /user/:id.
func (h *Handler) Get(c *gin.Context) {
	acc, err := h.service.Get(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// GetByEmail handles GET /user/email/:email.
func (h *Handler) GetByEmail(c *gin.Context) {
	acc, err := h.service.GetByEmail(c.Request.Context(), c.Param("email"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc)
}

// ToggleRole handles PATCH /user/:id.
func (h *Handler) ToggleRole(c *gin.Context) {
	acc, err := h.service.ToggleRole(c.Request.Context(), c.Param("id"))
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, acc.Public())
}
