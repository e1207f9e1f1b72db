package httpserver

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"cart-sessions/internal/domain"
	cartsvc "cart-sessions/internal/service/cart"
)

type cartHandlers struct {
	svc *cartsvc.Service
}

type createCartRequest struct {
	Metadata map[string]string `json:"metadata"`
}

type productPayload struct {
	ID       string   `json:"id" binding:"required"`
	Name     string   `json:"name" binding:"required"`
	Price    *float64 `json:"price" binding:"required"`
	Category string   `json:"category" binding:"required"`
}

type addItemRequest struct {
	Product  productPayload `json:"product" binding:"required"`
	Quantity int            `json:"quantity" binding:"required"`
}

type updateQuantityRequest struct {
	Quantity int `json:"quantity" binding:"required"`
}

func (h *cartHandlers) createCart(c *gin.Context) {
	var req createCartRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			respondBindError(c, err)
			return
		}
	}
	cart, err := h.svc.CreateCart(c.Request.Context(), req.Metadata)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusCreated, cart)
}

func (h *cartHandlers) getCart(c *gin.Context) {
	cart, err := h.svc.GetCart(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *cartHandlers) addItem(c *gin.Context) {
	var req addItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	product := domain.Product{
		ID:       req.Product.ID,
		Name:     req.Product.Name,
		Price:    *req.Product.Price,
		Category: domain.Category(req.Product.Category),
	}
	cart, err := h.svc.AddItem(c.Request.Context(), c.Param("cartId"), product, req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *cartHandlers) updateItemQuantity(c *gin.Context) {
	var req updateQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}
	cart, err := h.svc.UpdateItemQuantity(c.Request.Context(), c.Param("cartId"), c.Param("itemId"), req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *cartHandlers) removeItem(c *gin.Context) {
	cart, err := h.svc.RemoveItem(c.Request.Context(), c.Param("cartId"), c.Param("itemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *cartHandlers) clearCart(c *gin.Context) {
	cart, err := h.svc.ClearCart(c.Request.Context(), c.Param("cartId"))
	if err != nil {
		respondError(c, err)
		return
	}
	respondData(c, http.StatusOK, cart)
}

func (h *cartHandlers) deleteCart(c *gin.Context) {
	if err := h.svc.DeleteCart(c.Request.Context(), c.Param("cartId")); err != nil {
		respondError(c, err)
		return
	}
	c.Status(http.StatusNoContent)
}
