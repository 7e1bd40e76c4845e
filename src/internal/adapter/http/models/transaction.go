package models

type TransactionResponse struct {
	Sequence         int64  `json:"sequence"`
	AccountID        string `json:"accountId"`
	Action           string `json:"action"`
	Amount           string `json:"amount"`
	ResultingBalance string `json:"resultingBalance"`
	Remarks          string `json:"remarks"`
	CreatedAt        string `json:"createdAt"`
}

type TransferRequest struct {
	SourceAccountID      string `json:"sourceAccountId"`
	DestinationAccountID string `json:"destinationAccountId"`
	Amount               string `json:"amount"`
}

func (r TransferRequest) Validate() error {
	var errs []string
	if isBlank(r.SourceAccountID) {
		errs = append(errs, "sourceAccountId is required")
	}
	if isBlank(r.DestinationAccountID) {
		errs = append(errs, "destinationAccountId is required")
	}
	return joinErrors(errs)
}

type TransferResponse struct {
	SourceAccountID      string `json:"sourceAccountId"`
	DestinationAccountID string `json:"destinationAccountId"`
	Amount               string `json:"amount"`
	SourceBalance        string `json:"sourceBalance"`
	DestinationBalance   string `json:"destinationBalance"`
}
