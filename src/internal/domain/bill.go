package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

type BillItem struct {
	Name     string
	Price    decimal.Decimal
	Quantity decimal.Decimal
	Total    decimal.Decimal
}

type Bill struct {
	ID         string
	GSTID      string
	Items      []BillItem
	Subtotal   decimal.Decimal
	TaxPercent decimal.Decimal
	TaxAmount  decimal.Decimal
	GrandTotal decimal.Decimal
	Text       string
	CreatedAt  time.Time
}
