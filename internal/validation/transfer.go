package validation

import "payments/internal/models"

// TransferRequest validates a transfer before it reaches the engine.
// Equal source and destination ids are allowed.
func TransferRequest(req *models.TransferRequest) error {
	v := New()
	v.NotBlank("from", req.From)
	v.NotBlank("to", req.To)
	v.Positive("amount", req.Amount)
	return v.Err()
}

// CreateAccountRequest validates a new account.
func CreateAccountRequest(req *models.CreateAccountRequest) error {
	v := New()
	v.NotBlank("accountId", req.ID)
	v.NonNegative("balance", req.Balance)
	return v.Err()
}
