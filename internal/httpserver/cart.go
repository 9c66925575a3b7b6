package httpserver

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"
	"storefront-bff/internal/commercetools"
)

type cartHandlers struct {
	svc    CartService
	logger *log.Logger
}

type addLineItemRequest struct {
	ProductID string `json:"productId"`
	VariantID int    `json:"variantId"`
	Quantity  *int   `json:"quantity"`
}

type changeQuantityRequest struct {
	Quantity *int `json:"quantity"`
}

type discountCodeRequest struct {
	Code string `json:"code"`
}

type addressRequest struct {
	Address *commercetools.Address `json:"address"`
}

type shippingMethodRequest struct {
	ShippingMethodID string `json:"shippingMethodId"`
}

type addressResponse struct {
	CartID          string                 `json:"cartId"`
	Version         int64                  `json:"version"`
	ShippingAddress *commercetools.Address `json:"shippingAddress"`
}

type shippingResponse struct {
	CartID       string                      `json:"cartId"`
	Version      int64                       `json:"version"`
	ShippingInfo *commercetools.ShippingInfo `json:"shippingInfo"`
	TaxedPrice   *commercetools.TaxedPrice   `json:"taxedPrice"`
	TotalPrice   commercetools.TypedMoney    `json:"totalPrice"`
}

func toShippingResponse(cart *commercetools.Cart) shippingResponse {
	return shippingResponse{
		CartID:       cart.ID,
		Version:      cart.Version,
		ShippingInfo: cart.ShippingInfo,
		TaxedPrice:   cart.TaxedPrice,
		TotalPrice:   cart.TotalPrice,
	}
}

func (h *cartHandlers) get(c *gin.Context) {
	cart, err := h.svc.Get(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) addLineItem(c *gin.Context) {
	var req addLineItemRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ProductID == "" || req.VariantID == 0 {
		badRequest(c, "productId and variantId are required")
		return
	}
	quantity := 1
	if req.Quantity != nil {
		quantity = *req.Quantity
	}
	cart, err := h.svc.AddLineItem(c.Request.Context(), cartID(c), req.ProductID, req.VariantID, quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) changeLineItemQuantity(c *gin.Context) {
	var req changeQuantityRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Quantity == nil {
		badRequest(c, "lineItemId and quantity are required")
		return
	}
	cart, err := h.svc.ChangeLineItemQuantity(c.Request.Context(), cartID(c), c.Param("lineItemId"), *req.Quantity)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) removeLineItem(c *gin.Context) {
	cart, err := h.svc.RemoveLineItem(c.Request.Context(), cartID(c), c.Param("lineItemId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) applyDiscountCode(c *gin.Context) {
	var req discountCodeRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Code == "" {
		badRequest(c, "code is required")
		return
	}
	cart, err := h.svc.ApplyDiscountCode(c.Request.Context(), cartID(c), req.Code)
	if err != nil {
		h.logger.Printf("cart: apply discount code failed cart=%s: %v", cartID(c), err)
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) removeDiscountCode(c *gin.Context) {
	cart, err := h.svc.RemoveDiscountCode(c.Request.Context(), cartID(c), c.Param("codeId"))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, cart)
}

func (h *cartHandlers) setAddress(c *gin.Context) {
	var req addressRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Address == nil {
		badRequest(c, "address is required")
		return
	}
	cart, err := h.svc.SetShippingAddress(c.Request.Context(), cartID(c), *req.Address)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addressResponse{CartID: cart.ID, Version: cart.Version, ShippingAddress: cart.ShippingAddress})
}

func (h *cartHandlers) unsetAddress(c *gin.Context) {
	cart, err := h.svc.UnsetShippingAddress(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, addressResponse{CartID: cart.ID, Version: cart.Version, ShippingAddress: cart.ShippingAddress})
}

func (h *cartHandlers) shippingMethods(c *gin.Context) {
	methods, err := h.svc.MatchingShippingMethods(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, methods)
}

func (h *cartHandlers) setShippingMethod(c *gin.Context) {
	var req shippingMethodRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.ShippingMethodID == "" {
		badRequest(c, "shippingMethodId is required")
		return
	}
	cart, err := h.svc.SetShippingMethod(c.Request.Context(), cartID(c), req.ShippingMethodID)
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShippingResponse(cart))
}

func (h *cartHandlers) unsetShippingMethod(c *gin.Context) {
	cart, err := h.svc.UnsetShippingMethod(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, toShippingResponse(cart))
}

func (h *cartHandlers) totals(c *gin.Context) {
	totals, err := h.svc.Totals(c.Request.Context(), cartID(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, totals)
}
