// Package errors defines the error taxonomy shared by model adapters.
//
// Every failure an adapter reports is an *AppError carrying a
// machine-readable ErrorCode. Five codes form the invoke taxonomy that
// model providers declare in their error mapping tables:
//
//   - CONNECTION_FAILED: the server could not be reached
//   - SERVICE_UNAVAILABLE: the server answered with a server-side failure
//   - RATE_LIMITED: the server throttled the request
//   - UNAUTHORIZED: the credentials were rejected
//   - BAD_REQUEST: the request was malformed or unsupported
//
// CREDENTIALS_VALIDATION_FAILED is reserved for local credential checks.
//
// The JSON body produced by ToResponse follows RFC 7807.
package errors
