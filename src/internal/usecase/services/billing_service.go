package services

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"github.com/phpdave11/gofpdf"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/http/models"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/adapter/repository/repo_interfaces"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/commons"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/domain"
	"github.com/riteshawadh4-oss/Sql-mini-project/src/internal/logger"
	"github.com/shopspring/decimal"
)

const (
	billIDLength  = 8
	billRuleWidth = 30
	rupee         = "₹"
)

var hundred = decimal.NewFromInt(100)

// BillingService computes GST bills and keeps the rendered text of every bill
// created by this process. Saved bills outlive the process in billRepo.
type BillingService struct {
	billRepo          repo_interfaces.BillRepository
	title             string
	defaultTaxPercent decimal.Decimal
	newID             func() string
	now               func() time.Time

	mu    sync.RWMutex
	bills map[string]domain.Bill
}

func NewBillingService(billRepo repo_interfaces.BillRepository, title string, defaultTaxPercent decimal.Decimal) *BillingService {
	return &BillingService{
		billRepo:          billRepo,
		title:             title,
		defaultTaxPercent: defaultTaxPercent,
		newID:             newBillID,
		now:               time.Now,
		bills:             make(map[string]domain.Bill),
	}
}

func (s *BillingService) CreateBill(ctx context.Context, req models.CreateBillRequest) (commons.Response[models.BillResponse], error) {
	logger.Info("billing service create bill request", logger.Fields{
		"gstId": req.GSTID,
		"items": len(req.Items),
	})

	if err := req.Validate(); err != nil {
		logger.Error("billing service create bill validation failed", err, nil)
		return commons.ValidationResponse[models.BillResponse](err.Error()), err
	}

	bill, err := s.buildBill(req)
	if err != nil {
		logger.Error("billing service create bill invalid input", err, nil)
		return commons.ValidationResponse[models.BillResponse](err.Error()), err
	}

	s.mu.Lock()
	s.bills[bill.ID] = bill
	s.mu.Unlock()

	logger.Info("billing service create bill success", logger.Fields{
		"billId":     bill.ID,
		"grandTotal": domain.FormatMoney(bill.GrandTotal),
	})
	return commons.SuccessResponse("bill created successfully", mapBillToResponse(bill)), nil
}

func (s *BillingService) SaveBill(ctx context.Context, billID string) (commons.Response[models.SavedBillResponse], error) {
	billID = strings.TrimSpace(billID)
	logger.Info("billing service save bill request", logger.Fields{
		"billId": billID,
	})

	s.mu.RLock()
	bill, ok := s.bills[billID]
	s.mu.RUnlock()
	if !ok {
		err := domain.ErrBillNotFound
		return commons.FailureResponse[models.SavedBillResponse](err, "failed to save bill"), err
	}

	path, err := s.billRepo.Save(ctx, billID, bill.Text)
	if err != nil {
		logger.Error("billing service save bill failed", err, logger.Fields{
			"billId": billID,
		})
		return commons.FailureResponse[models.SavedBillResponse](err, "failed to save bill"), err
	}

	return commons.SuccessResponse("bill saved successfully", models.SavedBillResponse{
		BillID: billID,
		Path:   path,
	}), nil
}

func (s *BillingService) OpenBill(ctx context.Context, billID string) (commons.Response[models.OpenBillResponse], error) {
	billID = strings.TrimSpace(billID)
	logger.Info("billing service open bill request", logger.Fields{
		"billId": billID,
	})

	text, err := s.billText(ctx, billID)
	if err != nil {
		logger.Error("billing service open bill failed", err, logger.Fields{
			"billId": billID,
		})
		return commons.FailureResponse[models.OpenBillResponse](err, "failed to open bill"), err
	}

	return commons.SuccessResponse("bill fetched successfully", models.OpenBillResponse{
		BillID: billID,
		Text:   text,
	}), nil
}

// RenderBillPDF writes the bill text onto an A4 page. The core PDF fonts have
// no rupee glyph, so amounts are printed with "Rs.".
func (s *BillingService) RenderBillPDF(ctx context.Context, billID string, w io.Writer) error {
	billID = strings.TrimSpace(billID)
	text, err := s.billText(ctx, billID)
	if err != nil {
		return err
	}

	pdf := gofpdf.New("P", "mm", "A4", "")
	pdf.SetMargins(14, 14, 14)
	pdf.SetTitle("Bill "+billID, true)
	pdf.AddPage()

	lines := strings.Split(strings.TrimRight(text, "\n"), "\n")
	for i, line := range lines {
		if i == 0 {
			pdf.SetFont("Courier", "B", 14)
		} else {
			pdf.SetFont("Courier", "", 11)
		}
		pdf.CellFormat(0, 6, strings.ReplaceAll(line, rupee, "Rs."), "", 1, "L", false, 0, "")
	}

	var buf bytes.Buffer
	if err := pdf.Output(&buf); err != nil {
		logger.Error("billing service render pdf failed", err, logger.Fields{
			"billId": billID,
		})
		return fmt.Errorf("render bill pdf: %w", err)
	}
	_, err = w.Write(buf.Bytes())
	return err
}

func (s *BillingService) billText(ctx context.Context, billID string) (string, error) {
	s.mu.RLock()
	bill, ok := s.bills[billID]
	s.mu.RUnlock()
	if ok {
		return bill.Text, nil
	}

	text, err := s.billRepo.Load(ctx, billID)
	if err != nil {
		return "", err
	}
	return text, nil
}

func (s *BillingService) buildBill(req models.CreateBillRequest) (domain.Bill, error) {
	taxPercent := s.defaultTaxPercent
	if raw := strings.TrimSpace(req.TaxPercent); raw != "" {
		parsed, err := decimal.NewFromString(raw)
		if err != nil {
			return domain.Bill{}, errors.New("taxPercent must be numeric")
		}
		taxPercent = parsed
	}
	if taxPercent.IsNegative() {
		return domain.Bill{}, errors.New("taxPercent cannot be negative")
	}

	items := make([]domain.BillItem, 0, len(req.Items))
	subtotal := decimal.Zero
	for i, raw := range req.Items {
		price, err := decimal.NewFromString(strings.TrimSpace(raw.Price))
		if err != nil || price.IsNegative() {
			return domain.Bill{}, fmt.Errorf("items[%d].price must be a non-negative number", i)
		}
		quantity, err := decimal.NewFromString(strings.TrimSpace(raw.Quantity))
		if err != nil || !quantity.IsPositive() {
			return domain.Bill{}, fmt.Errorf("items[%d].quantity must be a positive number", i)
		}

		total := price.Mul(quantity)
		subtotal = subtotal.Add(total)
		items = append(items, domain.BillItem{
			Name:     strings.TrimSpace(raw.Name),
			Price:    price,
			Quantity: quantity,
			Total:    total,
		})
	}

	taxAmount := subtotal.Mul(taxPercent).Div(hundred)
	bill := domain.Bill{
		ID:         s.newID(),
		GSTID:      strings.TrimSpace(req.GSTID),
		Items:      items,
		Subtotal:   subtotal.Round(domain.BalanceScale),
		TaxPercent: taxPercent,
		TaxAmount:  taxAmount.Round(domain.BalanceScale),
		GrandTotal: subtotal.Add(taxAmount).Round(domain.BalanceScale),
		CreatedAt:  s.now().UTC(),
	}
	bill.Text = renderBill(s.title, bill)
	return bill, nil
}

func renderBill(title string, bill domain.Bill) string {
	var b strings.Builder
	rule := strings.Repeat("-", billRuleWidth)

	fmt.Fprintf(&b, "%s\n", title)
	fmt.Fprintf(&b, "Bill ID: %s\n", bill.ID)
	fmt.Fprintf(&b, "GST ID: %s\n", bill.GSTID)
	fmt.Fprintf(&b, "%s\n", rule)
	for _, item := range bill.Items {
		fmt.Fprintf(&b, "%s - %s x %s%s = %s%s\n",
			item.Name,
			item.Quantity.String(),
			rupee, domain.FormatMoney(item.Price),
			rupee, domain.FormatMoney(item.Total),
		)
	}
	fmt.Fprintf(&b, "%s\n", rule)
	fmt.Fprintf(&b, "Subtotal: %s%s\n", rupee, domain.FormatMoney(bill.Subtotal))
	fmt.Fprintf(&b, "GST (%s%%): %s%s\n", bill.TaxPercent.String(), rupee, domain.FormatMoney(bill.TaxAmount))
	fmt.Fprintf(&b, "Grand Total: %s%s\n", rupee, domain.FormatMoney(bill.GrandTotal))
	fmt.Fprintf(&b, "%s\n", strings.Repeat("=", billRuleWidth))
	return b.String()
}

func mapBillToResponse(bill domain.Bill) models.BillResponse {
	items := make([]models.BillItemResponse, 0, len(bill.Items))
	for _, item := range bill.Items {
		items = append(items, models.BillItemResponse{
			Name:     item.Name,
			Price:    domain.FormatMoney(item.Price),
			Quantity: item.Quantity.String(),
			Total:    domain.FormatMoney(item.Total),
		})
	}

	return models.BillResponse{
		BillID:     bill.ID,
		GSTID:      bill.GSTID,
		Items:      items,
		Subtotal:   domain.FormatMoney(bill.Subtotal),
		TaxPercent: bill.TaxPercent.String(),
		TaxAmount:  domain.FormatMoney(bill.TaxAmount),
		GrandTotal: domain.FormatMoney(bill.GrandTotal),
		Text:       bill.Text,
	}
}

func newBillID() string {
	return strings.ReplaceAll(uuid.NewString(), "-", "")[:billIDLength]
}
