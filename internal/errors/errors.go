// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound = errors.New("trade not found")
	ErrTradeClosed   = errors.New("trade is closed")
)

// StoreError represents an error from the persistence layer.
type StoreError struct {
	Entity string
	ID     string
	Op     string
	Err    error
}

func (e *StoreError) Error() string {
	if e.ID != "" {
		return fmt.Sprintf("store error [%s] %s %s: %v", e.Entity, e.Op, e.ID, e.Err)
	}
	return fmt.Sprintf("store error [%s] %s: %v", e.Entity, e.Op, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(entity, op, id string, err error) *StoreError {
	return &StoreError{Entity: entity, Op: op, ID: id, Err: err}
}

// TransitionError represents an illegal lifecycle state change that a
// caller chose to escalate into a Go error. The state machine itself
// reports transitions as data; this type exists for the CLI and store
// boundaries where an error value is the natural shape.
type TransitionError struct {
	TradeID string
	From    string
	To      string
	Reason  string
}

func (e *TransitionError) Error() string {
	if e.TradeID != "" {
		return fmt.Sprintf("transition error [%s] %s -> %s: %s", e.TradeID, e.From, e.To, e.Reason)
	}
	return fmt.Sprintf("transition error %s -> %s: %s", e.From, e.To, e.Reason)
}

// NewTransitionError creates a new TransitionError.
func NewTransitionError(tradeID, from, to, reason string) *TransitionError {
	return &TransitionError{TradeID: tradeID, From: from, To: to, Reason: reason}
}

// ImportError represents a row-level failure while importing trades.
type ImportError struct {
	Row     int
	Field   string
	Message string
	Err     error
}

func (e *ImportError) Error() string {
	field := ""
	if e.Field != "" {
		field = fmt.Sprintf(" [%s]", e.Field)
	}
	if e.Err != nil {
		return fmt.Sprintf("import error row %d%s: %s: %v", e.Row, field, e.Message, e.Err)
	}
	return fmt.Sprintf("import error row %d%s: %s", e.Row, field, e.Message)
}

func (e *ImportError) Unwrap() error {
	return e.Err
}

// NewImportError creates a new ImportError.
func NewImportError(row int, message string) *ImportError {
	return &ImportError{Row: row, Message: message}
}
