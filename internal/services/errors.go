package services

import "fmt"

// ValidationError reports a malformed or incomplete request.
type ValidationError struct{ Message string }

func (e *ValidationError) Error() string { return e.Message }

// UnauthorizedError reports a password mismatch for an existing account.
type UnauthorizedError struct{ Message string }

func (e *UnauthorizedError) Error() string { return e.Message }

// NotConfiguredError reports that the chat capability is missing required
// external configuration, such as a model API key.
type NotConfiguredError struct{ Message string }

func (e *NotConfiguredError) Error() string { return e.Message }

// GatewayError reports a failed model call. Nothing is persisted for the
// request that hit it.
type GatewayError struct{ Err error }

func (e *GatewayError) Error() string { return fmt.Sprintf("model gateway error: %v", e.Err) }
func (e *GatewayError) Unwrap() error { return e.Err }

// StoreError reports a persistence failure.
type StoreError struct{ Err error }

func (e *StoreError) Error() string { return fmt.Sprintf("store error: %v", e.Err) }
func (e *StoreError) Unwrap() error { return e.Err }
