// Package alerting decides which failures become user-visible alerts.
//
// Failures are classified where they are caught: transport failures are
// wrapped with Transport, everything else counts as an application failure.
package alerting

import (
	"context"
	"errors"

	"github.com/GoSim-25-26J-441/charforge-backend/internal/logging"
)

type Class string

const (
	ClassApplication Class = "application"
	ClassTransport   Class = "transport"
)

// TransportError marks a failure to reach an upstream service.
type TransportError struct {
	Err error
}

func (e *TransportError) Error() string {
	if e.Err == nil {
		return "transport error"
	}
	return e.Err.Error()
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// Transport wraps err as a transport failure. A nil err stays nil.
func Transport(err error) error {
	if err == nil {
		return nil
	}
	return &TransportError{Err: err}
}

// Classify reports the class of err.
func Classify(err error) Class {
	var te *TransportError
	if errors.As(err, &te) {
		return ClassTransport
	}
	return ClassApplication
}

// Alert is a failure the user should see.
type Alert struct {
	Class   Class  `json:"class"`
	Message string `json:"message"`
}

type Policy struct {
	SuppressTransport bool
}

func NewPolicy(suppressTransport bool) *Policy {
	return &Policy{SuppressTransport: suppressTransport}
}

// Notify logs err and returns the alert to show, or nil when the policy
// suppresses this class of failure.
func (p *Policy) Notify(ctx context.Context, operation string, err error) *Alert {
	if err == nil {
		return nil
	}
	logger := logging.NewLogger(ctx)
	class := Classify(err)

	if class == ClassTransport && p != nil && p.SuppressTransport {
		logger.LogInfof(operation, "suppressed alert class=%s error=%v", class, err)
		return nil
	}

	logger.LogError(operation, err)
	return &Alert{Class: class, Message: err.Error()}
}
