package core

import "time"

// Metrics records lifecycle and remote-call observations
type Metrics interface {
	// TransitionRecorded counts a status change for a gateway
	TransitionRecorded(gateway, from, to string)
	// FailureRecorded counts a normalized failure by outcome kind
	FailureRecorded(gateway, operation, kind string)
	// RemoteCallObserved records the latency and result of one bank call
	RemoteCallObserved(gateway, operation, result string, elapsed time.Duration)
}
