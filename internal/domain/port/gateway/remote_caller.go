package gateway

import "context"

// Call describes one remote operation against a bank endpoint
type Call struct {
	Gateway         string
	Endpoint        string
	Namespace       string
	// NamespacePrefix, when set, binds Namespace to a prefix on the operation
	// element only, leaving its children unqualified
	NamespacePrefix string
	Operation       string
	SOAPAction      string
	// Request is marshalled as the operation element of the envelope body
	Request any
}

// RemoteCaller invokes a named remote operation and decodes its response.
// Timeouts, network failures, remote faults and undecodable bodies are
// returned as *errs.TransportFault.
type RemoteCaller interface {
	Call(ctx context.Context, call Call, response any) error
}
