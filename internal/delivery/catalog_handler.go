package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/usecase"
)

type CatalogHandler struct {
	useCase usecase.CatalogUseCase
	log     *logrus.Logger
}

func NewCatalogHandler(uc usecase.CatalogUseCase, logger *logrus.Logger) *CatalogHandler {
	return &CatalogHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CatalogHandler) RegisterRoutes(router gin.IRouter) {
	api := router.Group("/api")
	{
		api.GET("/products", h.ListProducts)
		api.GET("/products/:id", h.GetProductByID)
		api.GET("/categories", h.ListCategories)
	}
}

func (h *CatalogHandler) ListProducts(c *gin.Context) {
	payload := gin.H{"products": h.useCase.Products()}
	if err := h.useCase.LastError(); err != nil {
		// Snapshot is stale or empty; surface the collaborator error
		// alongside whatever we still have.
		payload["catalog_error"] = err.Error()
	}
	SuccessResponse(c, http.StatusOK, "Products retrieved successfully", payload)
}

func (h *CatalogHandler) GetProductByID(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	product, err := h.useCase.GetProduct(c.Request.Context(), id)
	if err != nil {
		h.log.Warnf("Failed to get product by ID %d: %v", id, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve product: "+err.Error())
		return
	}

	SuccessResponse(c, http.StatusOK, "Product retrieved successfully", product)
}

func (h *CatalogHandler) ListCategories(c *gin.Context) {
	SuccessResponse(c, http.StatusOK, "Categories retrieved successfully", gin.H{
		"categories": h.useCase.Categories(),
	})
}
