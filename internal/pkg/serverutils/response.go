package serverutils

import "usecase-catalog-be/internal/dto"

type BaseResponse[T any] struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	Data    T      `json:"data"`
}

func SuccessResponse[T any](message string, data T) *BaseResponse[T] {
	return &BaseResponse[T]{
		Success: true,
		Message: message,
		Data:    data,
	}
}

// PaginatedResponse is the list envelope: rows in data, paging and applied
// filters alongside.
type PaginatedResponse[T any] struct {
	Success    bool                       `json:"success"`
	Message    string                     `json:"message"`
	Data       []T                        `json:"data"`
	Pagination dto.PaginationResponse     `json:"pagination"`
	Filters    dto.AppliedFiltersResponse `json:"filters"`
}

func SuccessPaginatedResponse[T any](message string, data []T, pagination dto.PaginationResponse, filters dto.AppliedFiltersResponse) *PaginatedResponse[T] {
	if data == nil {
		data = make([]T, 0)
	}
	return &PaginatedResponse[T]{
		Success:    true,
		Message:    message,
		Data:       data,
		Pagination: pagination,
		Filters:    filters,
	}
}

type ErrorResponse struct {
	Success bool              `json:"success"`
	Error   string            `json:"error"`
	Code    string            `json:"code"`
	Details map[string]string `json:"details,omitempty"`
}

func NewErrorResponse(message, code string, details map[string]string) *ErrorResponse {
	return &ErrorResponse{
		Success: false,
		Error:   message,
		Code:    code,
		Details: details,
	}
}
