// SPDX-FileCopyrightText: The MARGSATHI Authors
//
// SPDX-License-Identifier: MIT

package route

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ErrorKind classifies provider failures. Every kind is transient for
// orchestration purposes: it advances the fallback walk to the next
// provider instead of aborting the request.
type ErrorKind int

const (
	// KindAuthFailure covers rejected or missing credentials (401/403).
	KindAuthFailure ErrorKind = iota
	// KindRateLimited covers quota and rate limit rejections (429).
	KindRateLimited
	// KindTimeout covers deadline expiry and unreachable backends.
	KindTimeout
	// KindMalformedResponse covers 2xx bodies that fail schema validation
	// and unexpected status codes.
	KindMalformedResponse
	// KindNotConfigured means the adapter has no credentials and was
	// skipped without a network call.
	KindNotConfigured
)

// String returns the wire name of the error kind.
func (k ErrorKind) String() string {
	switch k {
	case KindAuthFailure:
		return "authFailure"
	case KindRateLimited:
		return "rateLimited"
	case KindTimeout:
		return "timeout"
	case KindMalformedResponse:
		return "malformedResponse"
	case KindNotConfigured:
		return "notConfigured"
	}
	return "unknown"
}

// ProviderError is a classified failure of a single provider attempt.
type ProviderError struct {
	Kind     ErrorKind
	Provider ID
	Message  string
	Err      error
}

// Error satisfies the error interface.
func (e *ProviderError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %s: %s", e.Provider, e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s: %s", e.Provider, e.Kind, e.Message)
}

// Unwrap returns the wrapped cause, if any.
func (e *ProviderError) Unwrap() error {
	return e.Err
}

// NewProviderError returns a classified provider failure.
func NewProviderError(kind ErrorKind, provider ID, message string) *ProviderError {
	return &ProviderError{Kind: kind, Provider: provider, Message: message}
}

// WrapProviderError returns a classified provider failure wrapping a cause.
func WrapProviderError(kind ErrorKind, provider ID, message string, err error) *ProviderError {
	return &ProviderError{Kind: kind, Provider: provider, Message: message, Err: err}
}

// ClassifyStatus maps an HTTP response status onto a ProviderError, or nil
// for 2xx statuses. The mapping is shared by all adapters: 401/403 are auth
// failures, 429 is a rate limit, everything else non-2xx counts as a
// malformed response from the provider.
func ClassifyStatus(provider ID, status int) *ProviderError {
	switch {
	case status >= 200 && status <= 299:
		return nil
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return NewProviderError(KindAuthFailure, provider, fmt.Sprintf("authentication rejected with status %d", status))
	case status == http.StatusTooManyRequests:
		return NewProviderError(KindRateLimited, provider, "rate limit exceeded")
	default:
		return NewProviderError(KindMalformedResponse, provider, fmt.Sprintf("unexpected status %d", status))
	}
}

// ClassifyTransport maps a transport-level error onto a ProviderError.
// Context cancellation is returned unclassified so the orchestrator can
// abandon the whole request when the caller went away.
func ClassifyTransport(provider ID, err error) error {
	if errors.Is(err, context.Canceled) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return WrapProviderError(KindTimeout, provider, "request timed out", err)
	}
	return WrapProviderError(KindTimeout, provider, "provider unreachable", err)
}

// ExhaustedError is the aggregate failure returned when every provider in
// the fallback chain was attempted and failed. It carries one diagnostic
// entry per attempted provider.
type ExhaustedError struct {
	Attempts []*ProviderError
}

// Error satisfies the error interface.
func (e *ExhaustedError) Error() string {
	parts := make([]string, 0, len(e.Attempts))
	for _, attempt := range e.Attempts {
		parts = append(parts, attempt.Error())
	}
	return fmt.Sprintf("all %d routing providers failed: [%s]", len(e.Attempts), strings.Join(parts, "; "))
}

// IsExhausted reports whether err is an ExhaustedError and returns it.
func IsExhausted(err error) (*ExhaustedError, bool) {
	var exhausted *ExhaustedError
	if errors.As(err, &exhausted) {
		return exhausted, true
	}
	return nil, false
}
