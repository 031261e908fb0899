package entity

import (
	"fmt"
	"net/url"
	"sort"
	"strings"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
)

// Gateway names
const (
	GatewayMellat = "mellat"
	GatewaySadad  = "sadad"
)

// RedirectMethod tells the hosting layer how to send the browser to the bank
type RedirectMethod string

// Redirect methods
const (
	RedirectGet  RedirectMethod = "GET"
	RedirectPost RedirectMethod = "POST"
)

// RedirectTarget describes where the customer goes after initiation.
// Either URL (with optional Fields for an auto-submitting form) or a bank-generated FormHTML is set.
type RedirectTarget struct {
	Method   RedirectMethod
	URL      string
	Fields   map[string]string
	FormHTML string
}

// NewURLRedirect creates a plain browser redirect
func NewURLRedirect(target string) RedirectTarget {
	return RedirectTarget{Method: RedirectGet, URL: target}
}

// NewFormRedirect creates an auto-submitting POST form redirect
func NewFormRedirect(action string, fields map[string]string) RedirectTarget {
	return RedirectTarget{Method: RedirectPost, URL: action, Fields: fields}
}

// NewRawFormRedirect wraps an opaque form body generated by the bank
func NewRawFormRedirect(formHTML string) RedirectTarget {
	return RedirectTarget{Method: RedirectPost, FormHTML: formHTML}
}

// IsForm reports whether the browser must submit a form rather than follow a URL
func (r RedirectTarget) IsForm() bool {
	return r.Method == RedirectPost
}

// FieldNames returns the form field names in a stable order
func (r RedirectTarget) FieldNames() []string {
	names := make([]string, 0, len(r.Fields))
	for name := range r.Fields {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// CallbackParams are the parameters the bank sent back through the browser
type CallbackParams map[string]string

// CallbackParamsFromValues flattens query or form values, keeping the first value of each key
func CallbackParamsFromValues(values url.Values) CallbackParams {
	params := make(CallbackParams, len(values))
	for key, vals := range values {
		if len(vals) > 0 {
			params[key] = vals[0]
		}
	}
	return params
}

// Get returns a parameter by exact name, then case-insensitively
func (p CallbackParams) Get(key string) string {
	if v, ok := p[key]; ok {
		return strings.TrimSpace(v)
	}
	for k, v := range p {
		if strings.EqualFold(k, key) {
			return strings.TrimSpace(v)
		}
	}
	return ""
}

// CallbackResult is what an adapter reads out of the callback without touching the network
type CallbackResult struct {
	Success      bool
	Code         string
	RefID        string
	TrackingCode string
	CardNumber   string
	// RefIDBound is set by adapters whose bank echoes the reference id on
	// every return. A missing RefID then counts as a mismatch.
	RefIDBound   bool
}

// Verification carries metadata returned by a successful verify call
type Verification struct {
	Code         string
	TrackingCode string
	CardNumber   string
}

// Credentials are the per-gateway secrets. Lookup ignores case and underscores
// so "terminalId", "terminal_id" and "TERMINALID" name the same key.
type Credentials map[string]string

// Get returns a credential value or an empty string
func (c Credentials) Get(key string) string {
	want := normalizeCredentialKey(key)
	for k, v := range c {
		if normalizeCredentialKey(k) == want {
			return v
		}
	}
	return ""
}

// Require fails with ErrGatewayMisconfigured when any key is missing
func (c Credentials) Require(keys ...string) error {
	var missing []string
	for _, key := range keys {
		if c.Get(key) == "" {
			missing = append(missing, key)
		}
	}
	if len(missing) > 0 {
		return fmt.Errorf("%w: missing credentials %s", errs.ErrGatewayMisconfigured, strings.Join(missing, ", "))
	}
	return nil
}

func normalizeCredentialKey(key string) string {
	return strings.ToLower(strings.ReplaceAll(key, "_", ""))
}

// GatewaySettings is the per-gateway configuration sourced once per transaction
type GatewaySettings struct {
	Name            string
	Enabled         bool
	Credentials     Credentials
	CallbackBaseURL string
}
