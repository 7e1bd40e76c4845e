package service_interfaces

import (
	"context"
	"io"

	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
)

type BillingService interface {
	CreateBill(ctx context.Context, req models.CreateBillRequest) (commons.Response[models.BillResponse], error)
	SaveBill(ctx context.Context, billID string) (commons.Response[models.SavedBillResponse], error)
	OpenBill(ctx context.Context, billID string) (commons.Response[models.OpenBillResponse], error)
	RenderBillPDF(ctx context.Context, billID string, w io.Writer) error
}

type CalculatorService interface {
	Evaluate(ctx context.Context, req models.EvaluateRequest) (commons.Response[models.EvaluateResponse], error)
}
