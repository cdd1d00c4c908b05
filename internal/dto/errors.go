package dto

// BaseError универсальный корневой формат ошибки
// Code — машинно-ориентированный код (snake_case)
// Message — краткое человеко-читаемое описание
// Details — дополнительная строка (пояснение)
type BaseError struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"`
}

// ValidationErrorResponse 400
// Code: "validation_error"
type ValidationErrorResponse BaseError

// NotFoundErrorResponse 404
// Code: "not_found"
type NotFoundErrorResponse BaseError

// ConflictErrorResponse 409
// Пример: правка позиций после завершения заказа
// Code: "conflict"
type ConflictErrorResponse BaseError

// UnprocessableErrorResponse 422
// Пример: нехватка склада или недопустимый переход статуса.
// Payload содержит структурированные детали отказа.
type UnprocessableErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Payload any    `json:"payload,omitempty"`
}

// InternalErrorResponse 500
// Code: "internal_error"
type InternalErrorResponse BaseError

func NewValidationError(msg string) ValidationErrorResponse {
	return ValidationErrorResponse(BaseError{Code: "validation_error", Message: msg})
}
func NewNotFoundError(msg string) NotFoundErrorResponse {
	return NotFoundErrorResponse(BaseError{Code: "not_found", Message: msg})
}
func NewConflictError(msg string) ConflictErrorResponse {
	return ConflictErrorResponse(BaseError{Code: "conflict", Message: msg})
}
func NewUnprocessableError(code, msg string, payload any) UnprocessableErrorResponse {
	return UnprocessableErrorResponse{Code: code, Message: msg, Payload: payload}
}
func NewInternalError(details string) InternalErrorResponse {
	return InternalErrorResponse(BaseError{Code: "internal_error", Message: "internal server error", Details: details})
}
