package handlers

import (
	"errors"
	"net/http"

	"transcribe_billing/internal/domain/pricing"
	"transcribe_billing/internal/usecase"
	"transcribe_billing/pkg"

	"github.com/gin-gonic/gin"
)

var errInvalidPayload = pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)

func mapOrderError(err error) *pkg.AppError {
	var (
		validation *pricing.ValidationError
		belowMin   *pricing.BelowMinimumChargeError
		mismatch   *usecase.AmountMismatchError
	)
	switch {
	case errors.As(err, &validation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest).
			WithDetails(map[string]any{"field": validation.Field, "reason": validation.Reason})
	case errors.Is(err, pricing.ErrValidation):
		return pkg.NewDomainErrorSimple("INVALID_REQUEST", "Invalid request", http.StatusBadRequest)
	case errors.As(err, &belowMin):
		return pkg.NewDomainErrorSimple("BELOW_MINIMUM_CHARGE", "Total is below the minimum charge", http.StatusUnprocessableEntity).
			WithDetails(map[string]any{
				"minimum":  pricing.FormatMinor(belowMin.MinimumMinor),
				"computed": pricing.FormatMinor(belowMin.ComputedMinor),
			})
	case errors.Is(err, usecase.ErrOrderNotFound):
		return pkg.NewDomainErrorSimple("ORDER_NOT_FOUND", "Order not found", http.StatusNotFound)
	case errors.Is(err, usecase.ErrAlreadyProcessed):
		return pkg.NewDomainErrorSimple("ORDER_ALREADY_PROCESSED", "Order already processed", http.StatusConflict)
	case errors.As(err, &mismatch):
		return pkg.NewDomainErrorSimple("AMOUNT_MISMATCH", "Payment does not match the order", http.StatusConflict).
			WithDetails(map[string]any{
				"reason":           mismatch.Reason,
				"expected":         pricing.FormatMinor(mismatch.ExpectedMinor),
				"paid":             pricing.FormatMinor(mismatch.PaidMinor),
				"expectedCurrency": mismatch.ExpectedCurrency,
				"paidCurrency":     mismatch.PaidCurrency,
			})
	case errors.Is(err, usecase.ErrPaymentDeclined):
		return pkg.NewDomainErrorSimple("PAYMENT_DECLINED", "Payment declined by provider", http.StatusPaymentRequired)
	case errors.Is(err, usecase.ErrProviderFailure):
		return pkg.NewDomainError("PAYMENT_PROVIDER_UNAVAILABLE", "Payment could not be verified, try again", err, http.StatusServiceUnavailable)
	case errors.Is(err, usecase.ErrForbidden):
		return pkg.NewDomainErrorSimple("FORBIDDEN", "Operation not allowed", http.StatusForbidden)
	case errors.Is(err, usecase.ErrInvalidTransition):
		return pkg.NewDomainErrorSimple("INVALID_STATUS_TRANSITION", "Status transition not allowed", http.StatusConflict)
	default:
		return pkg.NewDomainError("INTERNAL_ERROR", "An internal error occurred", err, http.StatusInternalServerError)
	}
}

func writeError(c *gin.Context, appErr *pkg.AppError) {
	if appErr.Err != nil {
		_ = c.Error(appErr)
	}
	c.JSON(appErr.HTTPStatus, appErr.ToHTTPError())
}
