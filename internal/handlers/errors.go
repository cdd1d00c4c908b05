package handlers

import (
	"errors"
	"net/http"

	"pos-service/internal/dto"
	"pos-service/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// writeServiceError переводит ошибки сервисного слоя в HTTP-ответы.
// Доменные отказы (нехватка склада, недопустимый переход) идут как 422
// со структурированным payload, чтобы клиент мог показать детали.
func writeServiceError(c *gin.Context, log *zap.Logger, err error) {
	var insufStock *service.InsufficientStockError
	var insufAvail *service.InsufficientAvailabilityError
	var badTransition *service.InvalidTransitionError

	switch {
	case errors.Is(err, service.ErrOrderNotFound),
		errors.Is(err, service.ErrItemNotFound),
		errors.Is(err, service.ErrProductNotFound),
		errors.Is(err, service.ErrIngredientNotFound),
		errors.Is(err, service.ErrCategoryNotFound):
		c.JSON(http.StatusNotFound, dto.NewNotFoundError(err.Error()))

	case errors.Is(err, service.ErrInvalidQuantity),
		errors.Is(err, service.ErrRecipeLineInvalid):
		c.JSON(http.StatusBadRequest, dto.NewValidationError(err.Error()))

	case errors.Is(err, service.ErrOrderNotEditable):
		c.JSON(http.StatusConflict, dto.NewConflictError(err.Error()))

	case errors.Is(err, service.ErrIngredientShort):
		c.JSON(http.StatusUnprocessableEntity, dto.NewUnprocessableError("insufficient_stock", err.Error(), nil))

	case errors.As(err, &insufStock):
		c.JSON(http.StatusUnprocessableEntity, dto.NewUnprocessableError("insufficient_stock", insufStock.Error(), insufStock.Shortfalls))

	case errors.As(err, &insufAvail):
		c.JSON(http.StatusUnprocessableEntity, dto.NewUnprocessableError("insufficient_availability", insufAvail.Error(), insufAvail))

	case errors.As(err, &badTransition):
		c.JSON(http.StatusUnprocessableEntity, dto.NewUnprocessableError("invalid_transition", badTransition.Error(), badTransition))

	default:
		log.Error("Необработанная ошибка сервиса", zap.Error(err))
		c.JSON(http.StatusInternalServerError, dto.NewInternalError(""))
	}
}

func parseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		c.JSON(http.StatusBadRequest, dto.NewValidationError("invalid "+name))
		return uuid.Nil, false
	}
	return id, true
}
