package models

import "fmt"

type BillItemRequest struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
}

type CreateBillRequest struct {
	GSTID      string            `json:"gstId"`
	TaxPercent string            `json:"taxPercent,omitempty"`
	Items      []BillItemRequest `json:"items"`
}

func (r CreateBillRequest) Validate() error {
	var errs []string
	if len(r.Items) == 0 {
		errs = append(errs, "at least one item is required")
	}
	for i, item := range r.Items {
		if isBlank(item.Name) {
			errs = append(errs, fmt.Sprintf("items[%d].name is required", i))
		}
		if isBlank(item.Price) {
			errs = append(errs, fmt.Sprintf("items[%d].price is required", i))
		}
		if isBlank(item.Quantity) {
			errs = append(errs, fmt.Sprintf("items[%d].quantity is required", i))
		}
	}
	return joinErrors(errs)
}

type BillItemResponse struct {
	Name     string `json:"name"`
	Price    string `json:"price"`
	Quantity string `json:"quantity"`
	Total    string `json:"total"`
}

type BillResponse struct {
	BillID     string             `json:"billId"`
	GSTID      string             `json:"gstId"`
	Items      []BillItemResponse `json:"items"`
	Subtotal   string             `json:"subtotal"`
	TaxPercent string             `json:"taxPercent"`
	TaxAmount  string             `json:"taxAmount"`
	GrandTotal string             `json:"grandTotal"`
	Text       string             `json:"text"`
}

type SavedBillResponse struct {
	BillID string `json:"billId"`
	Path   string `json:"path"`
}

type OpenBillResponse struct {
	BillID string `json:"billId"`
	Text   string `json:"text"`
}

type EvaluateRequest struct {
	Expression string `json:"expression"`
}

type EvaluateResponse struct {
	Expression string `json:"expression"`
	Result     string `json:"result"`
}
