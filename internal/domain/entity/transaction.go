package entity

import (
	"fmt"
	"time"

	errs "github.com/amirhossein-jamali/payment-gateway/internal/domain/error"
	tport "github.com/amirhossein-jamali/payment-gateway/internal/domain/port/core"
)

// Status defines the lifecycle state of a payment attempt
type Status string

// Status constants
const (
	StatusPending          Status = "pending"
	StatusRefIDObtained    Status = "ref_id_obtained"
	StatusCallbackReceived Status = "callback_received"
	StatusVerified         Status = "verified"
	StatusSettled          Status = "settled"
	StatusFailed           Status = "failed"
)

// Log codes written for transitions that are not caused by a bank code
const (
	LogCodeCreated = "CREATED"
	LogCodeExpired = "EXPIRED"
)

// forward lists the single forward step allowed from each non-terminal state.
// failed is reachable from all of them and is handled separately.
var forward = map[Status]Status{
	StatusPending:          StatusRefIDObtained,
	StatusRefIDObtained:    StatusCallbackReceived,
	StatusCallbackReceived: StatusVerified,
	StatusVerified:         StatusSettled,
}

// IsValid reports whether s is a known status
func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusRefIDObtained, StatusCallbackReceived,
		StatusVerified, StatusSettled, StatusFailed:
		return true
	}
	return false
}

// IsTerminal reports whether no transition out of s is permitted
func (s Status) IsTerminal() bool {
	return s == StatusSettled || s == StatusFailed
}

// CanTransitionTo reports whether moving from s to next respects the lifecycle
func (s Status) CanTransitionTo(next Status) bool {
	if s.IsTerminal() {
		return false
	}
	if next == StatusFailed {
		return true
	}
	return forward[s] == next
}

// LogEntry is one append-only line of a transaction's history
type LogEntry struct {
	Code      string
	Message   string
	Status    Status // status after the entry was written
	Timestamp time.Time
}

// Transaction is the persisted state of one payment attempt
type Transaction struct {
	ID           uint64 // doubles as the bank-side order id
	GatewayName  string
	Amount       int64
	RefID        string
	TrackingCode string
	CardNumber   string
	Status       Status
	CallbackURL  string
	CreatedAt    time.Time
	UpdatedAt    time.Time
	Log          []LogEntry
}

// NewTransaction creates a pending transaction and writes its creation entry
func NewTransaction(
	id uint64,
	gatewayName string,
	amount int64,
	callbackURL string,
	timeProvider tport.TimeProvider,
) (*Transaction, error) {
	if id == 0 {
		return nil, errs.ErrInvalidTransactionID
	}
	if gatewayName == "" {
		return nil, errs.ErrUnknownGateway
	}
	if amount <= 0 {
		return nil, fmt.Errorf("%w: %d", errs.ErrInvalidAmount, amount)
	}
	if callbackURL == "" {
		return nil, errs.ErrInvalidCallbackURL
	}

	now := timeProvider.Now()
	return &Transaction{
		ID:          id,
		GatewayName: gatewayName,
		Amount:      amount,
		Status:      StatusPending,
		CallbackURL: callbackURL,
		CreatedAt:   now,
		UpdatedAt:   now,
		Log: []LogEntry{{
			Code:      LogCodeCreated,
			Message:   "transaction created",
			Status:    StatusPending,
			Timestamp: now,
		}},
	}, nil
}

// MarkRefIDObtained stores the bank reference returned by a successful initiation
func (t *Transaction) MarkRefIDObtained(refID string, timeProvider tport.TimeProvider) (LogEntry, error) {
	if refID == "" {
		return LogEntry{}, errs.ErrInvalidRefID
	}
	if t.RefID != "" {
		return LogEntry{}, fmt.Errorf("%w: reference already set for transaction %d", errs.ErrInvalidRefID, t.ID)
	}
	entry, err := t.transition(StatusRefIDObtained, "0", "bank reference obtained", timeProvider)
	if err != nil {
		return LogEntry{}, err
	}
	t.RefID = refID
	return entry, nil
}

// MarkCallbackReceived records a callback whose pass indicator was positive
func (t *Transaction) MarkCallbackReceived(trackingCode, cardNumber string, timeProvider tport.TimeProvider) (LogEntry, error) {
	entry, err := t.transition(StatusCallbackReceived, "0", "callback received", timeProvider)
	if err != nil {
		return LogEntry{}, err
	}
	t.captureMetadata(trackingCode, cardNumber)
	return entry, nil
}

// MarkVerified records a successful server-to-server verification
func (t *Transaction) MarkVerified(code, message, trackingCode, cardNumber string, timeProvider tport.TimeProvider) (LogEntry, error) {
	entry, err := t.transition(StatusVerified, code, message, timeProvider)
	if err != nil {
		return LogEntry{}, err
	}
	t.captureMetadata(trackingCode, cardNumber)
	return entry, nil
}

// MarkSettled records a successful settlement
func (t *Transaction) MarkSettled(code, message string, timeProvider tport.TimeProvider) (LogEntry, error) {
	return t.transition(StatusSettled, code, message, timeProvider)
}

// MarkAsFailed moves any non-terminal transaction to failed
func (t *Transaction) MarkAsFailed(code, message string, timeProvider tport.TimeProvider) (LogEntry, error) {
	return t.transition(StatusFailed, code, message, timeProvider)
}

// RecordError appends an adapter error without changing the status
func (t *Transaction) RecordError(code, message string, timeProvider tport.TimeProvider) LogEntry {
	entry := LogEntry{
		Code:      code,
		Message:   message,
		Status:    t.Status,
		Timestamp: timeProvider.Now(),
	}
	t.Log = append(t.Log, entry)
	return entry
}

// IsSuccessful reports whether the money is confirmed on the bank side
func (t *Transaction) IsSuccessful() bool {
	return t.Status == StatusVerified || t.Status == StatusSettled
}

// LastEntry returns the most recent log entry, if any
func (t *Transaction) LastEntry() (LogEntry, bool) {
	if len(t.Log) == 0 {
		return LogEntry{}, false
	}
	return t.Log[len(t.Log)-1], true
}

func (t *Transaction) transition(next Status, code, message string, timeProvider tport.TimeProvider) (LogEntry, error) {
	if !t.Status.CanTransitionTo(next) {
		return LogEntry{}, fmt.Errorf("%w: %s -> %s", errs.ErrInvalidTransition, t.Status, next)
	}

	now := timeProvider.Now()
	t.Status = next
	t.UpdatedAt = now

	entry := LogEntry{
		Code:      code,
		Message:   message,
		Status:    next,
		Timestamp: now,
	}
	t.Log = append(t.Log, entry)
	return entry, nil
}

// captureMetadata fills tracking data that has not been written yet
func (t *Transaction) captureMetadata(trackingCode, cardNumber string) {
	if t.TrackingCode == "" {
		t.TrackingCode = trackingCode
	}
	if t.CardNumber == "" {
		t.CardNumber = cardNumber
	}
}
