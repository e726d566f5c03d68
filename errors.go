// errors.go: structured errors for membuf operations
//
// Copyright (c) 2025 AGILira - A. Giordano
// Series: an AGILira library
// SPDX-License-Identifier: MPL-2.0

package membuf

import (
	goerrors "errors"

	"github.com/agilira/go-errors"
)

// Error codes of the cache's error taxonomy. Misses, oversize
// rejections, and evictions are not errors and have no code here;
// only the six error kinds do. Digest failure is never surfaced to the
// caller; its code is used for logging only (see newErrDigestFailed).
const (
	ErrCodeUnsupported       errors.ErrorCode = "MEMBUF_UNSUPPORTED"
	ErrCodeSerializerFailed  errors.ErrorCode = "MEMBUF_SERIALIZER_FAILED"
	ErrCodeDeserializeFailed errors.ErrorCode = "MEMBUF_DESERIALIZER_FAILED"
	ErrCodeDigestFailed      errors.ErrorCode = "MEMBUF_DIGEST_FAILED"
	ErrCodeLockFailed        errors.ErrorCode = "MEMBUF_LOCK_FAILED"
	ErrCodeOutOfMemory       errors.ErrorCode = "MEMBUF_OUT_OF_MEMORY"
)

const (
	msgUnsupported       = "operation not supported by this cache"
	msgSerializerFailed  = "serializer failed"
	msgDeserializeFailed = "deserializer failed"
	msgDigestFailed      = "key digest failed"
	msgLockFailed        = "failed to acquire cache lock"
	msgOutOfMemory       = "cache allocation failed, running in degenerate mode"
)

// NewErrUnsupported reports an operation this cache deliberately does
// not implement, e.g. Iterate.
func NewErrUnsupported(operation string) error {
	return errors.NewWithField(ErrCodeUnsupported, msgUnsupported, "operation", operation)
}

// NewErrSerializerFailed wraps a serializer callback's error for a
// Set that never reached the lock: serialization failure aborts
// before the lock is acquired, so the cache is unchanged.
func NewErrSerializerFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeSerializerFailed, msgSerializerFailed).
		WithContext("key", key)
}

// NewErrDeserializeFailed wraps a deserializer callback's error for a
// Get that matched a slot. The cache itself is unchanged; the match
// still counted toward the slot's hit count.
func NewErrDeserializeFailed(key string, cause error) error {
	return errors.Wrap(cause, ErrCodeDeserializeFailed, msgDeserializeFailed).
		WithContext("key", key)
}

// newErrDigestFailed exists for logging only: digest failure never
// surfaces to the caller (Get misses, Set no-ops), so this is
// unexported and never returned from the facade.
func newErrDigestFailed(key string) error {
	return errors.NewWithField(ErrCodeDigestFailed, msgDigestFailed, "key", key)
}

// NewErrLockFailed reports a failure to acquire the core's mutex. The
// stdlib mutex used here cannot itself fail; this exists for
// alternate lock implementations that can.
func NewErrLockFailed(reason string) error {
	return errors.NewWithField(ErrCodeLockFailed, msgLockFailed, "reason", reason)
}

// NewErrOutOfMemory reports that a Core was constructed in its
// degenerate, always-miss fallback state.
func NewErrOutOfMemory(totalBytes uint64) error {
	return errors.NewWithContext(ErrCodeOutOfMemory, msgOutOfMemory, map[string]interface{}{
		"requested_total_bytes": totalBytes,
	})
}

// IsUnsupported reports whether err is an unsupported-operation error.
func IsUnsupported(err error) bool { return errors.HasCode(err, ErrCodeUnsupported) }

// IsSerializerFailed reports whether err came from a failed serializer.
func IsSerializerFailed(err error) bool { return errors.HasCode(err, ErrCodeSerializerFailed) }

// IsDeserializeFailed reports whether err came from a failed deserializer.
func IsDeserializeFailed(err error) bool { return errors.HasCode(err, ErrCodeDeserializeFailed) }

// GetErrorCode extracts the error code from err, or "" if it carries none.
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
