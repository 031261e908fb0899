package soap

import (
	"bytes"
	"encoding/xml"
	"fmt"
	"strings"
)

const (
	envelopeNS = "http://schemas.xmlsoap.org/soap/envelope/"
	xsiNS      = "http://www.w3.org/2001/XMLSchema-instance"
	xsdNS      = "http://www.w3.org/2001/XMLSchema"
)

// Fault is a SOAP 1.1 fault element
type Fault struct {
	Code   string `xml:"faultcode"`
	String string `xml:"faultstring"`
	Actor  string `xml:"faultactor"`
	Detail string `xml:"detail"`
}

// Error implements the error interface for Fault
func (f *Fault) Error() string {
	return fmt.Sprintf("soap fault %s: %s", f.Code, strings.TrimSpace(f.String))
}

type responseEnvelope struct {
	XMLName xml.Name `xml:"Envelope"`
	Body    struct {
		Fault   *Fault `xml:"Fault"`
		Content []byte `xml:",innerxml"`
	} `xml:"Body"`
}

// encodeEnvelope wraps request in a SOAP 1.1 envelope. The request's fields
// become the children of an element named after the operation.
func encodeEnvelope(operation, namespace, prefix string, request any) ([]byte, error) {
	var buf bytes.Buffer
	buf.WriteString(xml.Header)

	enc := xml.NewEncoder(&buf)

	envelope := xml.StartElement{
		Name: xml.Name{Local: "soap:Envelope"},
		Attr: []xml.Attr{
			{Name: xml.Name{Local: "xmlns:soap"}, Value: envelopeNS},
			{Name: xml.Name{Local: "xmlns:xsi"}, Value: xsiNS},
			{Name: xml.Name{Local: "xmlns:xsd"}, Value: xsdNS},
		},
	}
	body := xml.StartElement{Name: xml.Name{Local: "soap:Body"}}

	op := xml.StartElement{Name: xml.Name{Local: operation}}
	switch {
	case namespace == "":
	case prefix != "":
		op.Name.Local = prefix + ":" + operation
		op.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns:" + prefix}, Value: namespace}}
	default:
		op.Attr = []xml.Attr{{Name: xml.Name{Local: "xmlns"}, Value: namespace}}
	}

	if err := enc.EncodeToken(envelope); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body); err != nil {
		return nil, err
	}
	if request == nil {
		if err := enc.EncodeToken(op); err != nil {
			return nil, err
		}
		if err := enc.EncodeToken(op.End()); err != nil {
			return nil, err
		}
	} else if err := enc.EncodeElement(request, op); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(body.End()); err != nil {
		return nil, err
	}
	if err := enc.EncodeToken(envelope.End()); err != nil {
		return nil, err
	}
	if err := enc.Flush(); err != nil {
		return nil, err
	}
	return buf.Bytes(), nil
}

// decodeEnvelope extracts the fault, if any, and decodes the body content into response
func decodeEnvelope(data []byte, response any) (*Fault, error) {
	var env responseEnvelope
	if err := xml.Unmarshal(data, &env); err != nil {
		return nil, fmt.Errorf("decode envelope: %w", err)
	}
	if env.Body.Fault != nil {
		return env.Body.Fault, nil
	}
	if response == nil {
		return nil, nil
	}
	if len(bytes.TrimSpace(env.Body.Content)) == 0 {
		return nil, fmt.Errorf("decode envelope: empty body")
	}
	if err := xml.Unmarshal(env.Body.Content, response); err != nil {
		return nil, fmt.Errorf("decode response: %w", err)
	}
	return nil, nil
}
