package handlers

import (
	apperrors "payments/internal/errors"
	"payments/internal/models"
	"payments/internal/services/transfer"
	"payments/internal/utils/response"
	"payments/internal/validation"

	"github.com/gofiber/fiber/v2"
)

// TransferHandler exposes the money transfer endpoint.
type TransferHandler struct {
	service transfer.Service
}

// NewTransferHandler creates a new TransferHandler.
func NewTransferHandler(s transfer.Service) *TransferHandler { return &TransferHandler{service: s} }

// Transfer handles POST /v1/payments requests.
func (h *TransferHandler) Transfer(c *fiber.Ctx) error {
	var req models.TransferRequest
	if err := c.BodyParser(&req); err != nil {
		return response.BadRequest(c, "invalid request")
	}

	if err := validation.TransferRequest(&req); err != nil {
		return validationFailed(c, err)
	}

	result, err := h.service.Transfer(c.UserContext(), req)
	if err != nil {
		return transferFailed(c, err)
	}
	return response.Success(c, "transfer completed", result)
}

func transferFailed(c *fiber.Ctx, err error) error {
	switch {
	case apperrors.Is(err, apperrors.ErrAccountNotFound),
		apperrors.Is(err, apperrors.ErrInsufficientFunds):
		return response.CodedError(c, fiber.StatusBadRequest, err)
	case apperrors.Is(err, apperrors.ErrValidation):
		return validationFailed(c, err)
	default:
		return response.ServerError(c, "transfer failed")
	}
}

func validationFailed(c *fiber.Ctx, err error) error {
	var verr *apperrors.ValidationError
	if apperrors.As(err, &verr) {
		return response.ValidationError(c, verr)
	}
	return response.BadRequest(c, err.Error())
}
