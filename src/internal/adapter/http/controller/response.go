package controller

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
)

const maxBodyBytes = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

// decodeBody reads a JSON request body into dst. On failure it has already
// written the 400 response.
func decodeBody[T any](w http.ResponseWriter, r *http.Request, dst *T, start time.Time) bool {
	err := json.NewDecoder(io.LimitReader(r.Body, maxBodyBytes)).Decode(dst)
	if err == nil {
		logRequest(r, *dst)
		return true
	}
	if errors.Is(err, io.EOF) {
		err = errors.New("request body is required")
	}

	logError(r, err, nil)
	response := commons.ErrorResponse[T]("invalid request body", err.Error())
	response.Code = domain.KindValidation
	writeJSON(w, http.StatusBadRequest, response)
	logResponse(r, http.StatusBadRequest, response, start)
	return false
}

// respond writes a service outcome, choosing the status from the failure kind.
func respond[T any](w http.ResponseWriter, r *http.Request, start time.Time, okStatus int, response commons.Response[T], err error) {
	status := okStatus
	if err != nil || !response.Success {
		status = statusFor(response.Code)
		logError(r, err, logger.Fields{
			"message": response.Message,
			"code":    response.Code,
		})
	}
	writeJSON(w, status, response)
	logResponse(r, status, response, start)
}

func statusFor(kind domain.ErrorKind) int {
	switch kind {
	case domain.KindValidation, domain.KindInvalidAmount, domain.KindInvalidExpression, domain.KindSameAccount:
		return http.StatusBadRequest
	case domain.KindInvalidCredentials:
		return http.StatusUnauthorized
	case domain.KindNotFound, domain.KindBillNotFound:
		return http.StatusNotFound
	case domain.KindAccountClosed, domain.KindDuplicateAccount, domain.KindDuplicateUsername:
		return http.StatusConflict
	case domain.KindInsufficientFunds:
		return http.StatusUnprocessableEntity
	default:
		return http.StatusInternalServerError
	}
}
