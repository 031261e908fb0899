package callback

import (
	"fmt"
	"net/url"
	"strconv"

	"github.com/amirhossein-jamali/payment-gateway/internal/domain/entity"
	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
)

// TransactionIDParam is the query parameter that carries the transaction id back to us
const TransactionIDParam = "transaction_id"

// Build appends the transaction id to the merchant's base callback URL.
// Existing query parameters are kept and re-encoded in sorted order, so the
// same inputs always produce the same URL.
func Build(baseURL string, transactionID uint64) (string, error) {
	if transactionID == 0 {
		return "", errs.ErrInvalidTransactionID
	}

	u, err := url.Parse(baseURL)
	if err != nil {
		return "", fmt.Errorf("%w: %v", errs.ErrInvalidCallbackURL, err)
	}
	if u.Scheme == "" || u.Host == "" {
		return "", fmt.Errorf("%w: %q is not absolute", errs.ErrInvalidCallbackURL, baseURL)
	}

	query := u.Query()
	query.Set(TransactionIDParam, strconv.FormatUint(transactionID, 10))
	u.RawQuery = query.Encode()

	return u.String(), nil
}

// ExtractTransactionID reads the transaction id from callback parameters
func ExtractTransactionID(params entity.CallbackParams) (uint64, error) {
	raw := params.Get(TransactionIDParam)
	if raw == "" {
		return 0, fmt.Errorf("%w: %s is missing", errs.ErrInvalidCallback, TransactionIDParam)
	}

	id, err := strconv.ParseUint(raw, 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: %s=%q", errs.ErrInvalidCallback, TransactionIDParam, raw)
	}
	return id, nil
}

// ExtractFromURL reads the transaction id from a callback URL
func ExtractFromURL(rawURL string) (uint64, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return 0, fmt.Errorf("%w: %v", errs.ErrInvalidCallback, err)
	}
	return ExtractTransactionID(entity.CallbackParamsFromValues(u.Query()))
}
