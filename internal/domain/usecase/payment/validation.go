package payment

import (
	"fmt"
	"strings"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
)

// MaxAmount is the largest amount accepted, the upper bound of the banks' amount fields
const MaxAmount int64 = 1<<53 - 1

// RequestValidator provides validation for payment requests
type RequestValidator struct{}

// NewRequestValidator creates a new RequestValidator
func NewRequestValidator() *RequestValidator {
	return &RequestValidator{}
}

// ValidateInitiate validates all initiate request fields
func (v *RequestValidator) ValidateInitiate(req usecase.InitiateRequest) error {
	if strings.TrimSpace(req.Gateway) == "" {
		return fmt.Errorf("%w: gateway name is required", errs.ErrUnknownGateway)
	}

	if err := v.validateAmount(req.Amount); err != nil {
		return err
	}

	if req.CallbackURL != "" && !strings.HasPrefix(req.CallbackURL, "http://") && !strings.HasPrefix(req.CallbackURL, "https://") {
		return fmt.Errorf("%w: %s", errs.ErrInvalidCallbackURL, req.CallbackURL)
	}

	return nil
}

// validateAmount checks the amount is a positive integer within range
func (v *RequestValidator) validateAmount(amount int64) error {
	if amount <= 0 {
		return fmt.Errorf("%w: %d", errs.ErrInvalidAmount, amount)
	}
	if amount > MaxAmount {
		return fmt.Errorf("%w: %d exceeds %d", errs.ErrInvalidAmount, amount, MaxAmount)
	}
	return nil
}
