package handler

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/usecase"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/dto"
)

// PaymentHandler handles payment-related HTTP requests
type PaymentHandler struct {
	payments      usecase.PaymentUseCase
	logger        coreport.Logger
	defaultLocale entity.Locale
}

// NewPaymentHandler creates a new payment handler instance
func NewPaymentHandler(payments usecase.PaymentUseCase, logger coreport.Logger, defaultLocale entity.Locale) *PaymentHandler {
	return &PaymentHandler{
		payments:      payments,
		logger:        logger,
		defaultLocale: defaultLocale,
	}
}

// Initiate handles the POST /payments endpoint
func (h *PaymentHandler) Initiate(c *gin.Context) {
	var req dto.InitiatePaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.logger.Warn("Invalid initiate request format", map[string]any{
			"error": err.Error(),
		})
		h.writeError(c, fmt.Errorf("%w: %s", errs.ErrInvalidRequest, err.Error()), nil)
		return
	}

	result, err := h.payments.Initiate(c.Request.Context(), usecase.InitiateRequest{
		Gateway:     req.Gateway,
		Amount:      req.Amount,
		CallbackURL: req.CallbackURL,
	})
	if err != nil {
		var txn *entity.Transaction
		if result != nil {
			txn = result.Transaction
		}
		h.writeError(c, err, txn)
		return
	}

	c.JSON(http.StatusCreated, dto.NewInitiatePaymentResponse(result))
}

// Callback handles the browser return from the bank on GET and POST /payments/callback.
// Query and form parameters are merged; the bank decides which one it uses.
func (h *PaymentHandler) Callback(c *gin.Context) {
	if err := c.Request.ParseForm(); err != nil {
		h.writeError(c, fmt.Errorf("%w: %s", errs.ErrInvalidCallback, err.Error()), nil)
		return
	}
	params := entity.CallbackParamsFromValues(c.Request.Form)

	txn, err := h.payments.Complete(c.Request.Context(), params)
	if err != nil {
		h.writeError(c, err, txn)
		return
	}

	locale := h.locale(c)
	code := ""
	if last, ok := txn.LastEntry(); ok {
		code = last.Code
	}
	c.JSON(http.StatusOK, dto.CallbackResponse{
		Transaction: dto.NewTransactionResponse(txn),
		Outcome: dto.OutcomeResponse{
			Kind:       string(entity.OutcomeSuccess),
			Code:       code,
			Message:    successMessages[txn.Status].In(locale),
			Successful: txn.IsSuccessful(),
		},
	})
}

// Verify handles the POST /payments/:id/verify endpoint
func (h *PaymentHandler) Verify(c *gin.Context) {
	h.byID(c, h.payments.Verify)
}

// Settle handles the POST /payments/:id/settle endpoint
func (h *PaymentHandler) Settle(c *gin.Context) {
	h.byID(c, h.payments.Settle)
}

// Get handles the GET /payments/:id endpoint
func (h *PaymentHandler) Get(c *gin.Context) {
	h.byID(c, h.payments.Get)
}

func (h *PaymentHandler) byID(c *gin.Context, op func(ctx context.Context, transactionID uint64) (*entity.Transaction, error)) {
	id, err := strconv.ParseUint(c.Param("id"), 10, 64)
	if err != nil || id == 0 {
		h.writeError(c, fmt.Errorf("%w: %q", errs.ErrInvalidTransactionID, c.Param("id")), nil)
		return
	}

	txn, err := op(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err, txn)
		return
	}

	c.JSON(http.StatusOK, dto.NewTransactionResponse(txn))
}

// writeError renders err as an ErrorResponse. Gateway failures carry their own
// localized message; everything else is looked up by error code.
func (h *PaymentHandler) writeError(c *gin.Context, err error, txn *entity.Transaction) {
	locale := h.locale(c)
	code := errs.ErrorCode(err)
	status := errs.HTTPStatus(err)
	retryable := errs.IsRetryable(err)

	resp := dto.ErrorResponse{
		Code:      code,
		Message:   errorMessage(code).In(locale),
		Retryable: &retryable,
	}

	var failure *errs.GatewayFailure
	if errors.As(err, &failure) {
		resp.Message = failure.Message(string(locale))
		resp.Kind = failure.Kind
	} else if errs.IsTransportFault(err) {
		resp.Kind = string(entity.OutcomeBankUnavailable)
	}
	if txn != nil {
		view := dto.NewTransactionResponse(txn)
		resp.Transaction = &view
	}

	fields := errs.LogFieldsOf(err)
	fields["path"] = c.FullPath()
	fields["status"] = status
	if status >= http.StatusInternalServerError {
		h.logger.Error("Payment request failed", fields)
	} else {
		h.logger.Info("Payment request rejected", fields)
	}

	_ = c.Error(err)
	c.JSON(status, resp)
}

func (h *PaymentHandler) locale(c *gin.Context) entity.Locale {
	if lang := c.Query("lang"); lang != "" {
		return entity.ParseLocale(lang, h.defaultLocale)
	}
	return entity.ParseLocale(c.GetHeader("Accept-Language"), h.defaultLocale)
}
