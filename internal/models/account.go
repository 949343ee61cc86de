package models

import "github.com/shopspring/decimal"

// Account is a named holder of a decimal balance.
type Account struct {
	ID      string          `json:"accountId"`
	Balance decimal.Decimal `json:"balance"`
}

// CreateAccountRequest is the body of POST /v1/accounts.
type CreateAccountRequest struct {
	ID      string          `json:"accountId"`
	Balance decimal.Decimal `json:"balance"`
}
