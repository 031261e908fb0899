package middleware

import (
	"bytes"
	"fmt"
	"io"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/xeipuuv/gojsonschema"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	coreport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/api/dto"
)

// maxBodyBytes bounds the request bodies read for validation
const maxBodyBytes = 64 << 10

// InitiatePaymentSchema describes the POST /payments body
const InitiatePaymentSchema = `{
	"$schema": "http://json-schema.org/draft-07/schema#",
	"type": "object",
	"required": ["gateway", "amount"],
	"additionalProperties": false,
	"properties": {
		"gateway": {"type": "string", "minLength": 1, "maxLength": 32},
		"amount": {"type": "integer"},
		"callbackUrl": {"type": "string", "maxLength": 2048}
	}
}`

// SchemaValidator validates JSON request bodies against a compiled schema
type SchemaValidator struct {
	schema *gojsonschema.Schema
	logger coreport.Logger
}

// NewSchemaValidator compiles the schema document
func NewSchemaValidator(schema string, logger coreport.Logger) (*SchemaValidator, error) {
	compiled, err := gojsonschema.NewSchema(gojsonschema.NewStringLoader(schema))
	if err != nil {
		return nil, fmt.Errorf("error compiling schema: %w", err)
	}
	return &SchemaValidator{schema: compiled, logger: logger}, nil
}

// Validate checks a body and returns the violations, if any
func (v *SchemaValidator) Validate(body []byte) ([]string, error) {
	result, err := v.schema.Validate(gojsonschema.NewBytesLoader(body))
	if err != nil {
		return nil, fmt.Errorf("error during validation: %w", err)
	}
	if result.Valid() {
		return nil, nil
	}

	violations := make([]string, 0, len(result.Errors()))
	for _, desc := range result.Errors() {
		violations = append(violations, desc.String())
	}
	return violations, nil
}

// ValidateJSONSchema rejects bodies that do not match the schema with 400.
// The body is restored for the handler that follows.
func (v *SchemaValidator) ValidateJSONSchema() gin.HandlerFunc {
	return func(c *gin.Context) {
		body, err := io.ReadAll(io.LimitReader(c.Request.Body, maxBodyBytes+1))
		if err != nil || len(body) > maxBodyBytes {
			v.reject(c, "Request body could not be read", nil)
			return
		}
		c.Request.Body = io.NopCloser(bytes.NewReader(body))

		violations, err := v.Validate(body)
		if err != nil {
			v.reject(c, "Request body is not valid JSON", nil)
			return
		}
		if len(violations) > 0 {
			v.logger.Warn("Request body failed schema validation", map[string]any{
				"path":       c.Request.URL.Path,
				"request_id": RequestID(c),
				"violations": violations,
			})
			v.reject(c, "Request body does not match the expected schema", violations)
			return
		}

		c.Next()
	}
}

func (v *SchemaValidator) reject(c *gin.Context, message string, details []string) {
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.ErrorResponse{
		Code:    errs.ErrorCode(errs.ErrInvalidRequest),
		Message: message,
		Details: details,
	})
}
