package handlers

import (
	"net/http"
	"strconv"

	"pos-service/internal/dto"
	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/service"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type CatalogHandler struct {
	catalog service.CatalogService
	log     *zap.Logger
}

func NewCatalogHandler(catalog service.CatalogService, log *zap.Logger) *CatalogHandler {
	return &CatalogHandler{catalog: catalog, log: log}
}

func (h *CatalogHandler) Create(c *gin.Context) {
	var req dto.CreateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	p, err := h.catalog.CreateProduct(c.Request.Context(), service.CreateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Deductable:  req.Deductable,
		Stock:       req.Stock,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, p)
}

func (h *CatalogHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	p, err := h.catalog.GetProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) List(c *gin.Context) {
	var f repository.ProductListFilter
	f.Query = c.Query("q")
	if raw := c.Query("deductable"); raw != "" {
		v := raw == "true"
		f.Deductable = &v
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.catalog.ListProducts(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Product]{Items: items, Total: total})
}

func (h *CatalogHandler) Update(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateProductRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	p, err := h.catalog.UpdateProduct(c.Request.Context(), id, service.UpdateProductInput{
		Name:        req.Name,
		Price:       req.Price,
		Description: req.Description,
		Deductable:  req.Deductable,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.catalog.DeleteProduct(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("product not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *CatalogHandler) SetRecipe(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.SetRecipeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	lines := make([]service.RecipeLineInput, 0, len(req.Lines))
	for _, ln := range req.Lines {
		lines = append(lines, service.RecipeLineInput{
			IngredientID: ln.IngredientID,
			Quantity:     ln.Quantity,
			RequiredUnit: ln.RequiredUnit,
		})
	}

	p, err := h.catalog.SetRecipe(c.Request.Context(), id, lines)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}

func (h *CatalogHandler) AddStock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddProductStockRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	p, err := h.catalog.AddProductStock(c.Request.Context(), id, req.Amount)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, p)
}
