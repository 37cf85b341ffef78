package catalog

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"comanda/internal/apperr"
	"comanda/internal/httpx"
)

// Handler exposes the product routes.
type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// List handles GET /products.
func (h *Handler) List(c *gin.Context) {
	products, err := h.service.List(c.Request.Context())
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusOK, products)
}

// Create handles POST /product (multipart form: image, name, price).
func (h *Handler) Create(c *gin.Context) {
	file, err := c.FormFile("image")
	if err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "Imagem é obrigatória"))
		return
	}

	price, err := strconv.ParseFloat(c.PostForm("price"), 64)
	if err != nil {
		httpx.Error(c, apperr.New(apperr.Validation, "price must be a number"))
		return
	}

	src, err := file.Open()
	if err != nil {
		httpx.Error(c, apperr.Wrap(apperr.Internal, "failed to read image upload", err))
		return
	}
	defer src.Close()

	product, err := h.service.Create(c.Request.Context(), c.PostForm("name"), price, file.Filename, src)
	if err != nil {
		httpx.Error(c, err)
		return
	}
	c.JSON(http.StatusCreated, product)
}

// Delete handles DELETE /product/:id.
func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), c.Param("id")); err != nil {
		httpx.Error(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
