package controller

import (
	"bytes"
	"net/http"
	"time"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/usecase/service_interfaces"
)

type BillingController struct {
	billing    service_interfaces.BillingService
	calculator service_interfaces.CalculatorService
}

func NewBillingController(billing service_interfaces.BillingService, calculator service_interfaces.CalculatorService) *BillingController {
	return &BillingController{billing: billing, calculator: calculator}
}

func (c *BillingController) RegisterRoutes(mux *http.ServeMux, authMiddleware func(http.Handler) http.Handler) {
	mux.Handle("POST /bills", protect(http.HandlerFunc(c.createBill), authMiddleware))
	mux.Handle("GET /bills/{id}", protect(http.HandlerFunc(c.openBill), authMiddleware))
	mux.Handle("POST /bills/{id}/save", protect(http.HandlerFunc(c.saveBill), authMiddleware))
	mux.Handle("GET /bills/{id}/pdf", protect(http.HandlerFunc(c.billPDF), authMiddleware))
	mux.Handle("POST /calculator/evaluate", protect(http.HandlerFunc(c.evaluate), authMiddleware))
}

func (c *BillingController) createBill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.CreateBillRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.billing.CreateBill(r.Context(), req)
	respond(w, r, start, http.StatusCreated, response, err)
}

func (c *BillingController) openBill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.billing.OpenBill(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BillingController) saveBill(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	response, err := c.billing.SaveBill(r.Context(), r.PathValue("id"))
	respond(w, r, start, http.StatusOK, response, err)
}

func (c *BillingController) billPDF(w http.ResponseWriter, r *http.Request) {
	start := time.Now()
	logRequest(r, nil)

	billID := r.PathValue("id")
	var buf bytes.Buffer
	if err := c.billing.RenderBillPDF(r.Context(), billID, &buf); err != nil {
		respond(w, r, start, http.StatusOK, commons.FailureResponse[struct{}](err, "failed to render bill"), err)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="bill-`+billID+`.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(buf.Bytes())
	logResponse(r, http.StatusOK, map[string]int{"bytes": buf.Len()}, start)
}

func (c *BillingController) evaluate(w http.ResponseWriter, r *http.Request) {
	start := time.Now()

	var req models.EvaluateRequest
	if !decodeBody(w, r, &req, start) {
		return
	}

	response, err := c.calculator.Evaluate(r.Context(), req)
	respond(w, r, start, http.StatusOK, response, err)
}
