package models

import "github.com/shopspring/decimal"

// TransferRequest moves Amount from the From account to the To account.
type TransferRequest struct {
	From   string          `json:"from"`
	To     string          `json:"to"`
	Amount decimal.Decimal `json:"amount"`
}

// TransferResult is returned for a committed transfer.
type TransferResult struct {
	Reference string `json:"reference"`
}
