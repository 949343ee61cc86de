package handlers

import (
	apperrors "payments/internal/errors"
	"payments/internal/models"
	"payments/internal/repositories"
	"payments/internal/utils/response"
	"payments/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// AccountHandler manages the in-memory accounts.
type AccountHandler struct {
	accounts repositories.AccountRepository
}

func NewAccountHandler(accounts repositories.AccountRepository) *AccountHandler {
	return &AccountHandler{accounts: accounts}
}

// Create handles POST /v1/accounts.
func (h *AccountHandler) Create(c *fiber.Ctx) error {
	var req models.CreateAccountRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := validation.CreateAccountRequest(&req); err != nil {
		return validationFailed(c, err)
	}

	account := &models.Account{ID: req.ID, Balance: req.Balance}
	if err := h.accounts.Create(account); err != nil {
		if apperrors.Is(err, repositories.ErrDuplicateAccount) {
			return response.ErrorWithCode(c, fiber.StatusBadRequest,
				apperrors.ErrDuplicateAccount.Code,
				"account id "+req.ID+" already exists")
		}
		return response.ServerError(c, "failed to create account")
	}

	return response.Created(c, "account created", account)
}

// Get handles GET /v1/accounts/:id.
func (h *AccountHandler) Get(c *fiber.Ctx) error {
	account, err := h.accounts.GetByID(c.Params("id"))
	if err != nil {
		return h.lookupFailed(c, err)
	}
	return response.Success(c, "account retrieved", account)
}

// List handles GET /v1/accounts.
func (h *AccountHandler) List(c *fiber.Ctx) error {
	return response.Success(c, "accounts retrieved", h.accounts.List())
}

// Delete handles DELETE /v1/accounts/:id.
func (h *AccountHandler) Delete(c *fiber.Ctx) error {
	if err := h.accounts.Delete(c.Params("id")); err != nil {
		return h.lookupFailed(c, err)
	}
	return c.SendStatus(fiber.StatusNoContent)
}

func (h *AccountHandler) lookupFailed(c *fiber.Ctx, err error) error {
	if apperrors.Is(err, repositories.ErrAccountNotFound) {
		return response.ErrorWithCode(c, fiber.StatusNotFound,
			apperrors.ErrAccountNotFound.Code,
			"account "+c.Params("id")+" not found")
	}
	return response.ServerError(c, "failed to access account")
}
