package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Streaming session errors. All four are terminal for the session that
// raised them: the connection is released without a reply.
const (
	// ErrCodeMalformedMessage indicates an inbound frame failed to parse or
	// was missing required fields.
	ErrCodeMalformedMessage ErrorCode = "MALFORMED_MESSAGE"
	// ErrCodeAudioDecode indicates an audio fragment could not be decoded.
	ErrCodeAudioDecode ErrorCode = "AUDIO_DECODE_FAILED"
	// ErrCodeEngineFailure indicates the transcription engine returned a failure.
	ErrCodeEngineFailure ErrorCode = "ENGINE_FAILURE"
	// ErrCodeTransport indicates the underlying connection dropped.
	ErrCodeTransport ErrorCode = "TRANSPORT_ERROR"
)

// Connection/Availability errors (retryable)
const (
	// ErrCodeServiceUnavailable indicates the service is temporarily unavailable.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeTimeout indicates the request timed out.
	ErrCodeTimeout ErrorCode = "TIMEOUT"
)

// Validation errors
const (
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeMissingField indicates a required field is missing.
	ErrCodeMissingField ErrorCode = "MISSING_FIELD"
	// ErrCodeInvalidFormat indicates a field has an invalid format.
	ErrCodeInvalidFormat ErrorCode = "INVALID_FORMAT"
)

// Resource and internal errors
const (
	// ErrCodeNotFound indicates the requested resource was not found.
	ErrCodeNotFound ErrorCode = "NOT_FOUND"
	// ErrCodeInternal indicates an internal server error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
	// ErrCodeExternalService indicates an error from an external service.
	ErrCodeExternalService ErrorCode = "EXTERNAL_SERVICE_ERROR"
)

var retryableCodes = map[ErrorCode]bool{
	ErrCodeServiceUnavailable: true,
	ErrCodeTimeout:            true,
	ErrCodeExternalService:    true,
	ErrCodeEngineFailure:      false,
	ErrCodeTransport:          false,
	ErrCodeInternal:           false,
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
