package commons

import "github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"

// Response is the tagged outcome of every service call. A success carries Data;
// a failure carries the error kind in Code plus human readable reasons.
type Response[T any] struct {
	Success bool             `json:"success"`
	Message string           `json:"message"`
	Code    domain.ErrorKind `json:"code,omitempty"`
	Data    *T               `json:"data,omitempty"`
	Errors  []string         `json:"errors,omitempty"`
}

func SuccessResponse[T any](message string, data T) Response[T] {
	return Response[T]{
		Success: true,
		Message: message,
		Data:    &data,
	}
}

func ErrorResponse[T any](message string, errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: message,
		Code:    domain.KindInternal,
		Errors:  errors,
	}
}

func ValidationResponse[T any](errors ...string) Response[T] {
	return Response[T]{
		Success: false,
		Message: "validation failed",
		Code:    domain.KindValidation,
		Errors:  errors,
	}
}

// FailureResponse reports err under its domain kind. Infrastructure failures are
// reported with the generic message so driver details stay in the logs.
func FailureResponse[T any](err error, fallback string) Response[T] {
	kind := domain.KindOf(err)
	if kind == domain.KindInternal {
		return Response[T]{
			Success: false,
			Message: fallback,
			Code:    kind,
			Errors:  []string{"Unable to complete the request right now"},
		}
	}

	return Response[T]{
		Success: false,
		Message: err.Error(),
		Code:    kind,
	}
}
