package httpserver

import (
	"context"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"storefront-bff/internal/commercetools"
	"storefront-bff/internal/domain"
	productsvc "storefront-bff/internal/service/product"
)

type catalogHandlers struct {
	svc CatalogService
}

func filtersFromQuery(c *gin.Context) productsvc.Filters {
	f := productsvc.Filters{
		Locale:          c.Query("locale"),
		Currency:        c.Query("currency"),
		Country:         c.Query("country"),
		CustomerGroupID: c.Query("customerGroupId"),
		ChannelID:       c.Query("channelId"),
		Staged:          c.Query("staged") == "true",
	}
	if n, err := strconv.Atoi(c.Query("limit")); err == nil {
		f.Limit = n
	}
	if n, err := strconv.Atoi(c.Query("offset")); err == nil {
		f.Offset = n
	}
	return f
}

func (h *catalogHandlers) list(c *gin.Context) {
	page, err := h.svc.List(c.Request.Context(), filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, page)
}

func (h *catalogHandlers) get(c *gin.Context) {
	product, err := h.svc.GetByIDOrSlug(c.Request.Context(), c.Param("idOrSlug"), filtersFromQuery(c))
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, product)
}

type adminHandlers struct {
	svc ProductAdmin
}

type updateProductRequest struct {
	Version int64                               `json:"version"`
	Actions []commercetools.ProductUpdateAction `json:"actions"`
}

type versionRequest struct {
	Version int64 `json:"version"`
}

func productResponse(c *gin.Context, p *commercetools.Product) {
	c.JSON(http.StatusOK, gin.H{"ok": true, "product": p})
}

func (h *adminHandlers) create(c *gin.Context) {
	var in domain.ProductInput
	if err := c.ShouldBindJSON(&in); err != nil || in.Name == "" || in.CurrencyCode == "" || in.CentAmount == nil {
		c.AbortWithStatusJSON(http.StatusBadRequest, gin.H{
			"ok":    false,
			"error": "Required fields: name (string), currencyCode (string), centAmount (number)",
		})
		return
	}
	product, err := h.svc.CreateProduct(c.Request.Context(), in)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	productResponse(c, product)
}

func (h *adminHandlers) update(c *gin.Context) {
	var req updateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondAdminError(c, domain.NewValidationError("body", err.Error()))
		return
	}
	product, err := h.svc.UpdateProduct(c.Request.Context(), c.Param("id"), req.Version, req.Actions)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	productResponse(c, product)
}

func (h *adminHandlers) delete(c *gin.Context) {
	version, err := strconv.ParseInt(c.Query("version"), 10, 64)
	if err != nil {
		respondAdminError(c, domain.NewValidationError("version", "query parameter must be a number"))
		return
	}
	product, err := h.svc.DeleteProduct(c.Request.Context(), c.Param("id"), version)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	productResponse(c, product)
}

func (h *adminHandlers) publish(c *gin.Context) {
	h.changePublication(c, h.svc.Publish)
}

func (h *adminHandlers) unpublish(c *gin.Context) {
	h.changePublication(c, h.svc.Unpublish)
}

func (h *adminHandlers) changePublication(c *gin.Context, apply func(ctx context.Context, id string, version int64) (*commercetools.Product, error)) {
	var req versionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondAdminError(c, domain.NewValidationError("version", "required"))
		return
	}
	product, err := apply(c.Request.Context(), c.Param("id"), req.Version)
	if err != nil {
		respondAdminError(c, err)
		return
	}
	productResponse(c, product)
}

type projectHandlers struct {
	svc ProjectService
}

func (h *projectHandlers) get(c *gin.Context) {
	project, err := h.svc.Get(c.Request.Context())
	if err != nil {
		respondError(c, err)
		return
	}
	c.JSON(http.StatusOK, project)
}
