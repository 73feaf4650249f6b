// errors.go: structured error handling for rankedcache operations
//
// Uses go-errors-backed structured errors with codes, context, and
// retryability, instead of bare fmt.Errorf/sentinel values.
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira fragment
// SPDX-License-Identifier: MPL-2.0
package rankedcache

import (
	goerrors "errors"
	"fmt"

	"github.com/agilira/go-errors"
)

// Error codes for rankedcache operations, grouped by the lifecycle stage
// they can occur in: construction/argument validation, cache lifecycle,
// and memoized-function computation.
const (
	// Construction / argument errors
	ErrCodeInvalidMaxSize      errors.ErrorCode = "RANKEDCACHE_INVALID_MAX_SIZE"
	ErrCodeInvalidAgeThreshold errors.ErrorCode = "RANKEDCACHE_INVALID_AGE_THRESHOLD"
	ErrCodeNilRanker           errors.ErrorCode = "RANKEDCACHE_NIL_RANKER"
	ErrCodeNilCompute          errors.ErrorCode = "RANKEDCACHE_NIL_COMPUTE"
	ErrCodeNilSink             errors.ErrorCode = "RANKEDCACHE_NIL_SINK"

	// Lifecycle errors
	ErrCodeDisposed       errors.ErrorCode = "RANKEDCACHE_DISPOSED"
	ErrCodeLockContention errors.ErrorCode = "RANKEDCACHE_LOCK_CONTENTION"

	// Computation errors
	ErrCodeComputationFailed errors.ErrorCode = "RANKEDCACHE_COMPUTATION_FAILED"
	ErrCodePanicRecovered    errors.ErrorCode = "RANKEDCACHE_PANIC_RECOVERED"
)

const (
	msgInvalidMaxSize      = "max capacity must be greater than 0"
	msgInvalidAgeThreshold = "age threshold must be within [0, 1]"
	msgNilRanker           = "ranker function cannot be nil"
	msgNilCompute          = "compute function cannot be nil"
	msgNilSink             = "sink cannot be nil"
	msgDisposed            = "operation invoked on a disposed cache or subject"
	msgLockContention      = "cache is in use, dispose cannot proceed"
	msgComputationFailed   = "memoized function returned an error"
	msgPanicRecovered      = "panic recovered while invoking memoized function"
)

// NewErrInvalidMaxSize reports a non-positive MaxSize passed to NewFactory.
func NewErrInvalidMaxSize(size int) error {
	return errors.NewWithContext(ErrCodeInvalidMaxSize, msgInvalidMaxSize, map[string]interface{}{
		"provided_size":    size,
		"minimum_required": 1,
	})
}

// NewErrInvalidAgeThreshold reports an AgeThreshold outside [0, 1].
func NewErrInvalidAgeThreshold(threshold float64) error {
	return errors.NewWithContext(ErrCodeInvalidAgeThreshold, msgInvalidAgeThreshold, map[string]interface{}{
		"provided_threshold": threshold,
		"valid_range":        "0.0 <= threshold <= 1.0",
	})
}

// NewErrNilRanker reports a nil Ranker passed to NewFactory.
func NewErrNilRanker() error {
	return errors.New(ErrCodeNilRanker, msgNilRanker)
}

// NewErrNilCompute reports a nil compute function passed to CreateCache.
func NewErrNilCompute() error {
	return errors.New(ErrCodeNilCompute, msgNilCompute)
}

// NewErrNilSink reports a nil sink passed to Subscribe.
func NewErrNilSink() error {
	return errors.New(ErrCodeNilSink, msgNilSink)
}

// NewErrDisposed reports an operation invoked after successful disposal.
func NewErrDisposed(operation string) error {
	return errors.NewWithField(ErrCodeDisposed, msgDisposed, "operation", operation)
}

// NewErrLockContention reports that Dispose could not proceed because the
// cache is currently in use; the caller may retry.
func NewErrLockContention() error {
	return errors.New(ErrCodeLockContention, msgLockContention).AsRetryable()
}

// NewErrComputationFailed wraps the error returned by f when cache_error is
// enabled, so the cached outcome carries a code alongside the original cause.
func NewErrComputationFailed(cause error) error {
	return errors.Wrap(cause, ErrCodeComputationFailed, msgComputationFailed)
}

// NewErrPanicRecovered reports that the memoized function panicked; the
// panic value is preserved as context rather than re-panicking.
func NewErrPanicRecovered(panicValue interface{}) error {
	return errors.NewWithContext(ErrCodePanicRecovered, msgPanicRecovered, map[string]interface{}{
		"panic_value": fmt.Sprintf("%v", panicValue),
	}).WithSeverity("critical")
}

// IsDisposed reports whether err is (or wraps) a Disposed error.
func IsDisposed(err error) bool {
	return errors.HasCode(err, ErrCodeDisposed)
}

// IsLockContention reports whether err is (or wraps) a LockContention error.
func IsLockContention(err error) bool {
	return errors.HasCode(err, ErrCodeLockContention)
}

// IsComputationFailed reports whether err is (or wraps) a cached computation
// failure.
func IsComputationFailed(err error) bool {
	return errors.HasCode(err, ErrCodeComputationFailed)
}

// IsRetryable reports whether err declares itself retryable.
func IsRetryable(err error) bool {
	if err == nil {
		return false
	}
	var retryable errors.Retryable
	if goerrors.As(err, &retryable) {
		return retryable.IsRetryable()
	}
	return false
}

// GetErrorCode extracts the structured error code from err, if any.
func GetErrorCode(err error) errors.ErrorCode {
	if err == nil {
		return ""
	}
	var coder errors.ErrorCoder
	if goerrors.As(err, &coder) {
		return coder.ErrorCode()
	}
	return ""
}

// GetErrorContext extracts the structured context map attached to err, if
// any.
func GetErrorContext(err error) map[string]interface{} {
	if err == nil {
		return nil
	}
	var rcErr *errors.Error
	if goerrors.As(err, &rcErr) {
		return rcErr.Context
	}
	return nil
}
