package handlers

import (
	"net/http"
	"strconv"

	"pos-service/internal/dto"
	"pos-service/internal/models"
	"pos-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

type OrderHandler struct {
	orders service.OrderService
	log    *zap.Logger
}

func NewOrderHandler(orders service.OrderService, log *zap.Logger) *OrderHandler {
	return &OrderHandler{orders: orders, log: log}
}

func (h *OrderHandler) Create(c *gin.Context) {
	var req dto.CreateOrderRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	order, err := h.orders.CreateOrder(c.Request.Context(), service.CreateOrderInput{
		CustomerID:   req.CustomerID,
		CustomerName: req.CustomerName,
	})
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, order)
}

func (h *OrderHandler) Get(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	order, err := h.orders.GetOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) GetByCode(c *gin.Context) {
	order, err := h.orders.GetOrderByCode(c.Request.Context(), c.Param("code"))
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) List(c *gin.Context) {
	var f service.OrderListFilter

	if raw := c.Query("customer_id"); raw != "" {
		id, err := uuid.Parse(raw)
		if err != nil {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid customer_id"))
			return
		}
		f.CustomerID = &id
	}
	if raw := c.Query("status"); raw != "" {
		st := models.OrderStatus(raw)
		if !service.IsValidStatus(st) {
			c.JSON(http.StatusBadRequest, dto.NewValidationError("unknown status"))
			return
		}
		f.Status = &st
	}
	f.Limit, _ = strconv.Atoi(c.DefaultQuery("limit", "20"))
	f.Offset, _ = strconv.Atoi(c.DefaultQuery("offset", "0"))

	orders, total, err := h.orders.ListOrders(c.Request.Context(), f)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, dto.ListResponse[models.Order]{Items: orders, Total: total})
}

func (h *OrderHandler) Delete(c *gin.Context) {
	id, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	deleted, err := h.orders.DeleteOrder(c.Request.Context(), id)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	if !deleted {
		c.JSON(http.StatusNotFound, dto.NewNotFoundError("order not found"))
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *OrderHandler) AddItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.AddItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	item, err := h.orders.AddItem(c.Request.Context(), orderID, req.ProductID, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusCreated, item)
}

func (h *OrderHandler) UpdateItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}
	var req dto.UpdateItemRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}

	item, err := h.orders.UpdateItem(c.Request.Context(), orderID, itemID, req.Quantity)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, item)
}

func (h *OrderHandler) RemoveItem(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	itemID, ok := parseUUIDParam(c, "itemId")
	if !ok {
		return
	}

	order, err := h.orders.RemoveItem(c.Request.Context(), orderID, itemID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, order)
}

func (h *OrderHandler) Availability(c *gin.Context) {
	productID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}

	avail, err := h.orders.GetAvailableUnits(c.Request.Context(), productID)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}

	resp := dto.AvailabilityResponse{ProductID: productID, Units: avail.Units}
	for _, w := range avail.Warnings {
		resp.Warnings = append(resp.Warnings, dto.ConversionWarning{
			IngredientID:   w.IngredientID,
			IngredientName: w.IngredientName,
			FromUnit:       w.FromUnit,
			ToUnit:         w.ToUnit,
		})
	}
	c.JSON(http.StatusOK, resp)
}

func (h *OrderHandler) Transition(c *gin.Context) {
	orderID, ok := parseUUIDParam(c, "id")
	if !ok {
		return
	}
	var req dto.TransitionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid request body"))
		return
	}
	newStatus := models.OrderStatus(req.Status)
	if !service.IsValidStatus(newStatus) {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("unknown status"))
		return
	}

	ctx := c.Request.Context()
	if actor := c.GetHeader("X-Actor"); actor != "" {
		ctx = service.WithActor(ctx, actor)
	}

	res, err := h.orders.TransitionStatus(ctx, orderID, newStatus)
	if err != nil {
		writeServiceError(c, h.log, err)
		return
	}
	c.JSON(http.StatusOK, res)
}
