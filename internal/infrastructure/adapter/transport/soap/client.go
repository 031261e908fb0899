package soap

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
)

// Config holds transport settings
type Config struct {
	Timeout time.Duration
	// RetryCount is zero by default; a lifecycle step is never repeated silently
	RetryCount    int
	RetryWaitTime time.Duration
	UserAgent     string
}

// Client invokes SOAP 1.1 operations over resty
type Client struct {
	http    *resty.Client
	logger  core.Logger
	metrics core.Metrics
	tracer  trace.Tracer
}

// Ensure Client implements the RemoteCaller interface
var _ gateway.RemoteCaller = (*Client)(nil)

// NewClient creates a new SOAP client
func NewClient(cfg Config, logger core.Logger, metrics core.Metrics) *Client {
	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}
	if cfg.UserAgent == "" {
		cfg.UserAgent = "payment-gateway/1.0"
	}

	r := resty.New().
		SetTimeout(cfg.Timeout).
		SetRetryCount(cfg.RetryCount).
		SetHeader("User-Agent", cfg.UserAgent)
	if cfg.RetryWaitTime > 0 {
		r.SetRetryWaitTime(cfg.RetryWaitTime)
	}

	return &Client{
		http:    r,
		logger:  logger,
		metrics: metrics,
		tracer:  otel.Tracer("github.com/amirhossein-jamali/payment-gateway/transport/soap"),
	}
}

// Raw returns the underlying resty client
func (c *Client) Raw() *resty.Client {
	return c.http
}

// Call sends one operation and decodes its response element into response
func (c *Client) Call(ctx context.Context, call gateway.Call, response any) (err error) {
	ctx, span := c.tracer.Start(ctx, "soap."+call.Operation, trace.WithAttributes(
		attribute.String("soap.gateway", call.Gateway),
		attribute.String("soap.operation", call.Operation),
	))
	start := time.Now()
	defer func() {
		result := "ok"
		var fault *errs.TransportFault
		if errors.As(err, &fault) {
			result = strings.ToLower(fault.Code)
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
		}
		c.metrics.RemoteCallObserved(call.Gateway, call.Operation, result, time.Since(start))
		span.End()
	}()

	payload, err := encodeEnvelope(call.Operation, call.Namespace, call.NamespacePrefix, call.Request)
	if err != nil {
		return fmt.Errorf("encode %s request: %w", call.Operation, err)
	}

	endpoint := Endpoint(call.Endpoint)
	c.logger.Debug("Calling bank endpoint", map[string]any{
		"gateway":   call.Gateway,
		"operation": call.Operation,
		"endpoint":  endpoint,
	})

	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "text/xml; charset=utf-8").
		SetHeader("SOAPAction", `"`+call.SOAPAction+`"`).
		SetBody(payload).
		Post(endpoint)
	if err != nil {
		if isTimeout(ctx, err) {
			return errs.NewTransportFault(call.Gateway, call.Operation, errs.FaultTimeout, true, err)
		}
		return errs.NewTransportFault(call.Gateway, call.Operation, errs.FaultNetwork, false, err)
	}

	fault, decodeErr := decodeEnvelope(resp.Body(), response)
	switch {
	case fault != nil:
		c.logger.Warn("Bank returned a SOAP fault", map[string]any{
			"gateway":      call.Gateway,
			"operation":    call.Operation,
			"fault_code":   fault.Code,
			"fault_string": fault.String,
		})
		return errs.NewTransportFault(call.Gateway, call.Operation, errs.FaultSOAP, false, fault)
	case resp.IsError():
		return errs.NewTransportFault(call.Gateway, call.Operation, errs.FaultHTTP, false,
			fmt.Errorf("unexpected HTTP status %d", resp.StatusCode()))
	case decodeErr != nil:
		return errs.NewTransportFault(call.Gateway, call.Operation, errs.FaultMalformed, false, decodeErr)
	}

	return nil
}

// Endpoint strips a trailing "?wsdl" so WSDL URLs from bank documentation can be configured as is
func Endpoint(raw string) string {
	if i := strings.Index(strings.ToLower(raw), "?wsdl"); i >= 0 {
		return raw[:i]
	}
	return raw
}

func isTimeout(ctx context.Context, err error) bool {
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(ctx.Err(), context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
