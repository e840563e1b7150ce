package delivery

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"

	"storefront/internal/domain"
	"storefront/internal/usecase"
)

type CartHandler struct {
	useCase usecase.CartUseCase
	log     *logrus.Logger
}

func NewCartHandler(uc usecase.CartUseCase, logger *logrus.Logger) *CartHandler {
	return &CartHandler{
		useCase: uc,
		log:     logger,
	}
}

func (h *CartHandler) RegisterRoutes(router gin.IRouter) {
	cart := router.Group("/api/cart")
	{
		cart.GET("", h.GetCart)
		cart.GET("/summary", h.GetSummary)
		cart.POST("/items", h.AddItem)
		cart.DELETE("/items/:id", h.RemoveItem)
		cart.DELETE("", h.ClearCart)
	}
}

type cartPayload struct {
	Lines       []domain.CartLine `json:"lines"`
	TotalAmount float64           `json:"total_amount"`
	TotalCount  int               `json:"total_count"`
}

func toCartPayload(cart domain.Cart) cartPayload {
	return cartPayload{
		Lines:       cart.Lines,
		TotalAmount: cart.TotalAmount(),
		TotalCount:  cart.TotalCount(),
	}
}

type addItemRequest struct {
	ProductID int `json:"product_id" binding:"required"`
}

func (h *CartHandler) GetCart(c *gin.Context) {
	cart, err := h.useCase.GetCart(c.Request.Context(), sessionID(c))
	if err != nil {
		h.log.Errorf("Failed to get cart: %v", err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart retrieved successfully", toCartPayload(cart))
}

// GetSummary returns just the totals, enough for the navbar badge.
func (h *CartHandler) GetSummary(c *gin.Context) {
	cart, err := h.useCase.GetCart(c.Request.Context(), sessionID(c))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to retrieve cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart summary retrieved successfully", gin.H{
		"total_count":  cart.TotalCount(),
		"total_amount": cart.TotalAmount(),
	})
}

func (h *CartHandler) AddItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.log.Warnf("Failed to bind add item request: %v", err)
		ErrorResponse(c, http.StatusBadRequest, "Invalid request body: "+err.Error())
		return
	}

	cart, err := h.useCase.AddItem(c.Request.Context(), sessionID(c), req.ProductID)
	if err != nil {
		h.log.Warnf("Failed to add product %d to cart: %v", req.ProductID, err)
		ErrorResponse(c, mapErrorToStatus(err), "Failed to add item to cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Item added to cart", toCartPayload(cart))
}

func (h *CartHandler) RemoveItem(c *gin.Context) {
	idStr := c.Param("id")
	id, err := strconv.Atoi(idStr)
	if err != nil || id <= 0 {
		h.log.Warnf("Invalid product ID parameter for cart removal: %s", idStr)
		ErrorResponse(c, http.StatusBadRequest, "Invalid product ID format")
		return
	}

	cart, err := h.useCase.RemoveItem(c.Request.Context(), sessionID(c), id)
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to remove item from cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Item removed from cart", toCartPayload(cart))
}

func (h *CartHandler) ClearCart(c *gin.Context) {
	cart, err := h.useCase.ClearCart(c.Request.Context(), sessionID(c))
	if err != nil {
		ErrorResponse(c, mapErrorToStatus(err), "Failed to clear cart: "+err.Error())
		return
	}
	SuccessResponse(c, http.StatusOK, "Cart cleared", toCartPayload(cart))
}
