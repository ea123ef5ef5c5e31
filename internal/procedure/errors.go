// Copyright 2024 The vault-plugin-secrets-stronghold Authors
// SPDX-License-Identifier: Apache-2.0

package procedure

import "fmt"

// Kind classifies a ProcedureError as recoverable or fatal. The dispatcher
// and runner never invent new kinds outside this closed set.
type Kind int

const (
	// Recoverable kinds: the caller can retry or substitute inputs.
	KindSourceMissing Kind = iota
	KindSourceLocked
	KindInvalidParameter
	KindInputLengthMismatch
	KindBadChain
	KindTargetWriteFailed

	// Fatal kinds: the request cannot meaningfully be retried as-is.
	KindRngFailure
	KindCryptoPrimitiveFailure
	KindAuthenticationFailed
	KindLeaseCorruption
)

func (k Kind) fatal() bool {
	return k >= KindRngFailure
}

func (k Kind) String() string {
	switch k {
	case KindSourceMissing:
		return "source_missing"
	case KindSourceLocked:
		return "source_locked"
	case KindInvalidParameter:
		return "invalid_parameter"
	case KindInputLengthMismatch:
		return "input_length_mismatch"
	case KindBadChain:
		return "bad_chain"
	case KindTargetWriteFailed:
		return "target_write_failed"
	case KindRngFailure:
		return "rng_failure"
	case KindCryptoPrimitiveFailure:
		return "crypto_primitive_failure"
	case KindAuthenticationFailed:
		return "authentication_failed"
	case KindLeaseCorruption:
		return "lease_corruption"
	default:
		return "unknown"
	}
}

// ProcedureError is a recoverable failure: the caller can retry the same
// procedure with different inputs, or retry later.
type ProcedureError struct {
	Kind Kind
	Msg  string
}

func (e *ProcedureError) Error() string {
	return fmt.Sprintf("procedure: %s: %s", e.Kind, e.Msg)
}

func newProcErr(kind Kind, format string, args ...interface{}) *ProcedureError {
	return &ProcedureError{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// FatalProcedureError signals that the operation cannot complete and the
// caller cannot meaningfully retry the identical request (e.g. the
// ciphertext/key pair proved untrustworthy, or the cryptography provider
// faulted internally).
type FatalProcedureError struct {
	Kind Kind
	Msg  string
	// Cause is the underlying error from the cryptography provider or
	// entropy source, if any.
	Cause error
}

func (e *FatalProcedureError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("procedure: fatal: %s: %s: %v", e.Kind, e.Msg, e.Cause)
	}
	return fmt.Sprintf("procedure: fatal: %s: %s", e.Kind, e.Msg)
}

func (e *FatalProcedureError) Unwrap() error {
	return e.Cause
}

func newFatalErr(kind Kind, cause error, format string, args ...interface{}) *FatalProcedureError {
	return &FatalProcedureError{Kind: kind, Msg: fmt.Sprintf(format, args...), Cause: cause}
}

// IsFatal reports whether err itself is a *FatalProcedureError. It does not
// unwrap: a FatalProcedureError wrapped inside another error reports false.
// This helper covers the common case of a freshly returned error.
func IsFatal(err error) bool {
	_, ok := err.(*FatalProcedureError)
	return ok
}
