package soap

import (
	"context"
	"encoding/xml"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	"github.com/amirhossein-jamali/payment-gateway/internal/domain/port/gateway"
	"github.com/amirhossein-jamali/payment-gateway/internal/infrastructure/adapter/logger"
	coremocks "github.com/amirhossein-jamali/payment-gateway/mocks/port/core"
)

type payRequest struct {
	TerminalID string `xml:"terminalId"`
	Amount     int64  `xml:"amount"`
}

type payResponse struct {
	XMLName xml.Name `xml:"bpPayRequestResponse"`
	Return  string   `xml:"return"`
}

const okEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <ns2:bpPayRequestResponse xmlns:ns2="http://interfaces.core.sw.bps.com/">
      <return>0,AF82041a2Bf6989c7fF9</return>
    </ns2:bpPayRequestResponse>
  </soap:Body>
</soap:Envelope>`

const faultEnvelope = `<?xml version="1.0" encoding="UTF-8"?>
<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/">
  <soap:Body>
    <soap:Fault>
      <faultcode>soap:Server</faultcode>
      <faultstring>Internal error</faultstring>
    </soap:Fault>
  </soap:Body>
</soap:Envelope>`

func newCall(endpoint string) gateway.Call {
	return gateway.Call{
		Gateway:         "mellat",
		Endpoint:        endpoint,
		Namespace:       "http://interfaces.core.sw.bps.com/",
		NamespacePrefix: "ns1",
		Operation:       "bpPayRequest",
		Request:         payRequest{TerminalID: "123", Amount: 1000},
	}
}

func TestCall(t *testing.T) {
	t.Run("Successful call", func(t *testing.T) {
		var body string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			raw, _ := io.ReadAll(r.Body)
			body = string(raw)
			assert.Equal(t, "text/xml; charset=utf-8", r.Header.Get("Content-Type"))
			assert.Equal(t, `""`, r.Header.Get("SOAPAction"))
			assert.Equal(t, "/pgw", r.URL.Path)
			assert.Empty(t, r.URL.RawQuery)
			_, _ = w.Write([]byte(okEnvelope))
		}))
		defer server.Close()

		metrics := coremocks.NewMockMetrics(t)
		metrics.On("RemoteCallObserved", "mellat", "bpPayRequest", "ok", mock.Anything).Once()

		client := NewClient(Config{Timeout: time.Second}, logger.NewNoopLogger(), metrics)

		var resp payResponse
		err := client.Call(context.Background(), newCall(server.URL+"/pgw?wsdl"), &resp)

		require.NoError(t, err)
		assert.Equal(t, "0,AF82041a2Bf6989c7fF9", resp.Return)
		assert.Contains(t, body, `<soap:Envelope xmlns:soap="http://schemas.xmlsoap.org/soap/envelope/"`)
		assert.Contains(t, body, `<ns1:bpPayRequest xmlns:ns1="http://interfaces.core.sw.bps.com/">`)
		assert.Contains(t, body, `<terminalId>123</terminalId><amount>1000</amount>`)
	})

	testCases := []struct {
		name          string
		status        int
		body          string
		delay         time.Duration
		expectedCode  string
		expectedTimer bool
	}{
		{"SOAP fault", http.StatusInternalServerError, faultEnvelope, 0, errs.FaultSOAP, false},
		{"HTTP error without envelope", http.StatusServiceUnavailable, "", 0, errs.FaultHTTP, false},
		{"Malformed body", http.StatusOK, "<html>maintenance</html>", 0, errs.FaultMalformed, false},
		{"Empty envelope body", http.StatusOK, `<Envelope><Body></Body></Envelope>`, 0, errs.FaultMalformed, false},
		{"Timeout", http.StatusOK, okEnvelope, 300 * time.Millisecond, errs.FaultTimeout, true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				if tc.delay > 0 {
					time.Sleep(tc.delay)
				}
				w.WriteHeader(tc.status)
				_, _ = w.Write([]byte(tc.body))
			}))
			defer server.Close()

			metrics := coremocks.NewMockMetrics(t)
			metrics.On("RemoteCallObserved", "mellat", "bpPayRequest", mock.Anything, mock.Anything).Once()

			client := NewClient(Config{Timeout: 50 * time.Millisecond}, logger.NewNoopLogger(), metrics)

			var resp payResponse
			err := client.Call(context.Background(), newCall(server.URL), &resp)

			require.Error(t, err)
			assert.ErrorIs(t, err, errs.ErrTransport)

			var fault *errs.TransportFault
			require.True(t, errors.As(err, &fault))
			assert.Equal(t, tc.expectedCode, fault.Code)
			assert.Equal(t, tc.expectedTimer, fault.Timeout)
			assert.Equal(t, "mellat", fault.Gateway)
		})
	}

	t.Run("Connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(http.ResponseWriter, *http.Request) {}))
		endpoint := server.URL
		server.Close()

		metrics := coremocks.NewMockMetrics(t)
		metrics.On("RemoteCallObserved", "mellat", "bpPayRequest", "network", mock.Anything).Once()

		client := NewClient(Config{Timeout: time.Second}, logger.NewNoopLogger(), metrics)

		err := client.Call(context.Background(), newCall(endpoint), nil)

		var fault *errs.TransportFault
		require.True(t, errors.As(err, &fault))
		assert.Equal(t, errs.FaultNetwork, fault.Code)
	})
}

func TestEncodeEnvelopeDefaultNamespace(t *testing.T) {
	payload, err := encodeEnvelope("PaymentUtility", "http://tempuri.org/", "", payRequest{TerminalID: "T1"})

	require.NoError(t, err)
	assert.Contains(t, string(payload), `<PaymentUtility xmlns="http://tempuri.org/"><terminalId>T1</terminalId>`)
}

func TestEndpoint(t *testing.T) {
	assert.Equal(t, "https://bank/pgw", Endpoint("https://bank/pgw?wsdl"))
	assert.Equal(t, "https://bank/pgw", Endpoint("https://bank/pgw?WSDL"))
	assert.Equal(t, "https://bank/pgw", Endpoint("https://bank/pgw"))
}
