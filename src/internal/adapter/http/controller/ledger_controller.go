package controller

import (
	"bytes"
	"net/http"
	"strconv"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/service_interfaces"
)

type LedgerController struct {
	service service_interfaces.LedgerService
	export  service_interfaces.ExportService
}

func NewLedgerController(service service_interfaces.LedgerService, export service_interfaces.ExportService) *LedgerController {
	return &LedgerController{service: service, export: export}
}

func (c *LedgerController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	routes := map[string]http.HandlerFunc{
		"POST /accounts":                  c.openAccount,
		"GET /accounts":                   c.listAccounts,
		"GET /accounts/export":            c.exportAccounts,
		"GET /accounts/{id}":              c.getAccount,
		"DELETE /accounts/{id}":           c.deleteAccount,
		"PATCH /accounts/{id}/status":     c.changeStatus,
		"POST /accounts/{id}/deposit":     c.deposit,
		"POST /accounts/{id}/withdraw":    c.withdraw,
		"GET /accounts/{id}/transactions": c.listTransactions,
		"POST /transfers":                 c.transfer,
	}
	for pattern, handler := range routes {
		mux.Handle(pattern, protect(handler, authMiddleware))
	}
}

func (c *LedgerController) openAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateAccountRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.OpenAccount(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *LedgerController) listAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListAccounts(r.Context())
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) getAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.GetAccount(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) deleteAccount(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.DeleteAccount(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) changeStatus(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.ChangeStatusRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.ChangeStatus(r.Context(), r.PathValue("id"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) deposit(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.MoneyOperationRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.Deposit(r.Context(), r.PathValue("id"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) withdraw(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.MoneyOperationRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.Withdraw(r.Context(), r.PathValue("id"), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) listTransactions(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.service.ListTransactions(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) transfer(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.TransferRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.service.Transfer(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *LedgerController) exportAccounts(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	var buf bytes.Buffer
	count, err := c.export.ExportAccounts(r.Context(), &buf)
	if err != nil {
		response := commons.FailureResponse[struct{}](err, "failed to export accounts")
		respond(w, r, start, http.StatusOK, response, err)
		return
	}

	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="accounts.csv"`)
	w.Header().Set("X-Row-Count", strconv.Itoa(count))
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	logResponse(r, http.StatusOK, map[string]int{"rows": count}, start)
}

func protect(handler http.Handler, authMiddleware func(http.Handler) http.Handler) http.Handler {
	if authMiddleware == nil {
		return handler
	}
	return authMiddleware(handler)
}
