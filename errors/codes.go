package errors

// ErrorCode represents a machine-readable error code.
type ErrorCode string

// Invoke errors. These are the kinds a model provider may declare in its
// error mapping table.
const (
	// ErrCodeConnectionFailed indicates a network or transport failure reaching the server.
	ErrCodeConnectionFailed ErrorCode = "CONNECTION_FAILED"
	// ErrCodeServiceUnavailable indicates the server was reached but failed.
	ErrCodeServiceUnavailable ErrorCode = "SERVICE_UNAVAILABLE"
	// ErrCodeRateLimited indicates the server throttled the request.
	ErrCodeRateLimited ErrorCode = "RATE_LIMITED"
	// ErrCodeUnauthorized indicates the credentials were rejected.
	ErrCodeUnauthorized ErrorCode = "UNAUTHORIZED"
	// ErrCodeBadRequest indicates a malformed or unsupported request.
	ErrCodeBadRequest ErrorCode = "BAD_REQUEST"
)

// Credential errors
const (
	// ErrCodeCredentialsInvalid indicates the credentials failed local validation.
	ErrCodeCredentialsInvalid ErrorCode = "CREDENTIALS_VALIDATION_FAILED"
)

// Generic errors
const (
	// ErrCodeInvokeFailed indicates an invoke failure outside the declared taxonomy.
	ErrCodeInvokeFailed ErrorCode = "INVOKE_ERROR"
	// ErrCodeInvalidInput indicates the input is invalid.
	ErrCodeInvalidInput ErrorCode = "INVALID_INPUT"
	// ErrCodeInternal indicates an internal error.
	ErrCodeInternal ErrorCode = "INTERNAL_ERROR"
)

var invokeCodes = []ErrorCode{
	ErrCodeConnectionFailed,
	ErrCodeServiceUnavailable,
	ErrCodeRateLimited,
	ErrCodeUnauthorized,
	ErrCodeBadRequest,
}

var retryableCodes = map[ErrorCode]bool{
	ErrCodeConnectionFailed:   true,
	ErrCodeServiceUnavailable: true,
	ErrCodeRateLimited:        true,
}

// InvokeCodes returns the five invoke error kinds in a stable order.
func InvokeCodes() []ErrorCode {
	out := make([]ErrorCode, len(invokeCodes))
	copy(out, invokeCodes)
	return out
}

// IsInvokeCode reports whether code is one of the five invoke error kinds.
func IsInvokeCode(code ErrorCode) bool {
	for _, c := range invokeCodes {
		if c == code {
			return true
		}
	}
	return false
}

// IsRetryableCode returns true if the error code indicates a retryable error.
func IsRetryableCode(code ErrorCode) bool {
	return retryableCodes[code]
}
