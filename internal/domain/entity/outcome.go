package entity

import "strings"

// OutcomeKind is the bank-independent classification of a gateway result
type OutcomeKind string

// Outcome kinds shared by all gateways
const (
	OutcomeSuccess         OutcomeKind = "success"
	OutcomeCancelled       OutcomeKind = "cancelled"
	OutcomeDeclined        OutcomeKind = "declined"
	OutcomeInvalidRequest  OutcomeKind = "invalid_request"
	OutcomeMerchantError   OutcomeKind = "merchant_error"
	OutcomeDuplicate       OutcomeKind = "duplicate"
	OutcomeAlreadyVerified OutcomeKind = "already_verified"
	OutcomeAlreadySettled  OutcomeKind = "already_settled"
	OutcomeNotFound        OutcomeKind = "not_found"
	OutcomeReversed        OutcomeKind = "reversed"
	OutcomeSecurity        OutcomeKind = "security"
	OutcomeExpired         OutcomeKind = "expired"
	OutcomeBankUnavailable OutcomeKind = "bank_unavailable"
	OutcomeUnknown         OutcomeKind = "unknown"
)

// Locale selects the language of customer-facing messages
type Locale string

// Supported locales
const (
	LocaleFA Locale = "fa"
	LocaleEN Locale = "en"
)

// ParseLocale picks a supported locale from a tag such as "fa-IR" or an Accept-Language value
func ParseLocale(tag string, fallback Locale) Locale {
	tag = strings.ToLower(strings.TrimSpace(tag))
	switch {
	case strings.HasPrefix(tag, "fa"):
		return LocaleFA
	case strings.HasPrefix(tag, "en"):
		return LocaleEN
	default:
		return fallback
	}
}

// LocalizedMessage holds the Persian and English text of one message
type LocalizedMessage struct {
	FA string
	EN string
}

// In returns the message in the given locale, falling back to English
func (m LocalizedMessage) In(locale Locale) string {
	if locale == LocaleFA && m.FA != "" {
		return m.FA
	}
	return m.EN
}

// Map returns the message keyed by locale tag
func (m LocalizedMessage) Map() map[string]string {
	return map[string]string{
		string(LocaleFA): m.FA,
		string(LocaleEN): m.EN,
	}
}

// Generic messages used when a bank code has no table entry
var (
	UnknownMessage         = LocalizedMessage{FA: "خطای ناشناخته", EN: "Unknown Error"}
	BankUnavailableMessage = LocalizedMessage{FA: "ارتباط با بانک برقرار نشد، لطفا دوباره تلاش کنید", EN: "The bank could not be reached, please try again"}
	ExpiredMessage         = LocalizedMessage{FA: "مهلت پرداخت به پایان رسید", EN: "The payment session expired"}
)

// CodeEntry maps one bank status code onto the shared taxonomy
type CodeEntry struct {
	Kind      OutcomeKind
	Message   LocalizedMessage
	Retryable bool
}

// CodeTable is a gateway's complete mapping of raw status codes
type CodeTable map[string]CodeEntry

// Lookup returns the entry for a raw code, ignoring surrounding whitespace
func (t CodeTable) Lookup(code string) (CodeEntry, bool) {
	entry, ok := t[strings.TrimSpace(code)]
	return entry, ok
}

// Outcome is the normalized result of a gateway status code
type Outcome struct {
	Gateway    string
	Code       string
	Kind       OutcomeKind
	Message    LocalizedMessage
	Retryable  bool
	RawMessage string
}

// IsSuccess reports whether the outcome is a plain success
func (o Outcome) IsSuccess() bool {
	return o.Kind == OutcomeSuccess
}

// Text returns the customer-facing message in the requested locale
func (o Outcome) Text(locale Locale) string {
	return o.Message.In(locale)
}
