package product

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"storefront/internal/pkg/response"
	"storefront/internal/pkg/validator"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// Create godoc
// @Summary Create a product with its uploaded images
// @Description Product row and image rows are written atomically; images that
// @Description never reached status done are dropped from persistence.
// @Tags Products
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body CreateProductRequest true "Product payload"
// @Success 201 {object} map[string]interface{}
// @Failure 400,401,422,500 {object} map[string]interface{}
// @Router /products [post]
func (h *Handler) Create(c *gin.Context) {
	var req CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(c, http.StatusUnprocessableEntity, fields)
		return
	}

	p, err := h.service.Create(c.Request.Context(), &req)
	if err != nil {
		switch err {
		case ErrNameRequired, ErrInvalidPrice, ErrCurrencyRequired, ErrNoUsableImages:
			response.Error(c, http.StatusUnprocessableEntity, "VALIDATION_ERROR", err.Error())
		default:
			response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Create product failed")
		}
		return
	}

	response.Success(c, http.StatusCreated, CreateProductResponse{ID: p.ID})
}

// List godoc
// @Summary List products newest first with their images
// @Tags Products
// @Produce json
// @Param limit query int false "Page size" default(20)
// @Param page query int false "Page number" default(1)
// @Success 200 {object} map[string]interface{}
// @Failure 500 {object} map[string]interface{}
// @Router /products [get]
func (h *Handler) List(c *gin.Context) {
	page := 1
	if v, err := strconv.Atoi(c.Query("page")); err == nil && v > 0 {
		page = v
	}
	limit := defaultListLimit
	if v, err := strconv.Atoi(c.Query("limit")); err == nil && v > 0 {
		limit = v
	}

	products, err := h.service.List(c.Request.Context(), page, limit)
	if err != nil {
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to list products")
		return
	}

	response.Success(c, http.StatusOK, ListResponse{Products: products, Page: page, Limit: limit})
}

// GetByID godoc
// @Summary Get one product by ID
// @Tags Products
// @Produce json
// @Param id path int true "Product ID"
// @Success 200 {object} map[string]interface{}
// @Failure 404 {object} map[string]interface{}
// @Router /products/{id} [get]
func (h *Handler) GetByID(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_ID", "Invalid product ID")
		return
	}

	p, err := h.service.GetByID(c.Request.Context(), id)
	if err != nil {
		if err == ErrProductNotFound {
			response.Error(c, http.StatusNotFound, "PRODUCT_NOT_FOUND", "Product not found")
			return
		}
		response.Error(c, http.StatusInternalServerError, "INTERNAL_ERROR", "Failed to load product")
		return
	}

	response.Success(c, http.StatusOK, p)
}
