package signing

import (
	"net/http"

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

// SignBatch godoc
// @Summary Issue presigned upload URLs for a batch of files
// @Description One short-lived PUT URL plus public read URL per file, in input order.
// @Tags Uploads
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body SignBatchRequest true "File descriptors"
// @Success 200 {object} map[string]interface{}
// @Failure 400,401,422,500 {object} map[string]interface{}
// @Router /upload-urls [post]
func (h *Handler) SignBatch(c *gin.Context) {
	var req SignBatchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		response.Error(c, http.StatusBadRequest, "INVALID_JSON", "Invalid JSON body")
		return
	}

	if fields := validator.Validate(&req); fields != nil {
		response.ValidationError(c, http.StatusUnprocessableEntity, fields)
		return
	}

	results, err := h.service.SignBatch(c.Request.Context(), req.Files)
	if err != nil {
		switch err {
		case ErrEmptyBatch:
			response.Error(c, http.StatusBadRequest, "EMPTY_BATCH", "No files provided")
		case ErrBatchTooLarge:
			response.Error(c, http.StatusBadRequest, "BATCH_TOO_LARGE", "Too many files in one batch")
		default:
			response.Error(c, http.StatusInternalServerError, "SIGNING_FAILED", "Error creating upload URLs")
		}
		return
	}

	response.Success(c, http.StatusOK, SignBatchResponse{Results: results})
}
