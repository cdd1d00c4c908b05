package handlers

import (
	"net/http"
	"strconv"

	"pos-service/internal/dto"
	"pos-service/internal/models"
	"pos-service/internal/repository"
	"pos-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type InventoryHandler struct {
	inventory service.InventoryService
	log       *zap.Logger
}

func NewInventoryHandler(inventory service.InventoryService, log *zap.Logger) *InventoryHandler {
	return &InventoryHandler{inventory: inventory, log: log}
}

func (h *InventoryHandler) CreateIngredient(c *gin.Context) {
	var req dto.CreateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	ing, err := h.inventory.CreateIngredient(c.Request.Context(), service.CreateIngredientInput{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		Stock:        req.Stock,
		Unit:         req.Unit,
		ReorderPoint: req.ReorderPoint,
		CostPerUnit:  req.CostPerUnit,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, ing)
}

func (h *InventoryHandler) GetIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	ing, err := h.inventory.GetIngredient(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) ListIngredients(c *gin.Context) {
	var f repository.IngredientListFilter
	f.Query = c.Query("q")
	if raw := c.Query("category_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid category_id"))
			return
		}
		f.CategoryID = &id
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "50"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	items, total, err := h.inventory.ListIngredients(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Ingredient]{Items: items, Total: total})
}

func (h *InventoryHandler) ListLowStock(c *gin.Context) {
	items, err := h.inventory.ListLowStock(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) UpdateIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.UpdateIngredientRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	ing, err := h.inventory.UpdateIngredient(c.Request.Context(), id, service.UpdateIngredientInput{
		Name:         req.Name,
		CategoryID:   req.CategoryID,
		ReorderPoint: req.ReorderPoint,
		CostPerUnit:  req.CostPerUnit,
		Notes:        req.Notes,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) DeleteIngredient(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.inventory.DeleteIngredient(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("ingredient not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *InventoryHandler) Restock(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.StockMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	ing, err := h.inventory.Restock(c.Request.Context(), id, req.Amount, req.Unit)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) WriteOff(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.StockMoveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	ing, err := h.inventory.WriteOff(c.Request.Context(), id, req.Amount, req.Unit)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, ing)
}

func (h *InventoryHandler) CreateCategory(c *gin.Context) {
	var req dto.CreateCategoryRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	cat, err := h.inventory.CreateCategory(c.Request.Context(), req.Name, req.Description)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, cat)
}

func (h *InventoryHandler) ListCategories(c *gin.Context) {
	items, err := h.inventory.ListCategories(c.Request.Context())
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"items": items})
}

func (h *InventoryHandler) DeleteCategory(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.inventory.DeleteCategory(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("category not found"))
		return
	}
	c.Status(http.StatusNoContent)
}
