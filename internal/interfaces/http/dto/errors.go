package dto

import "net/http"

// Error code constants organized by category
// Format: ERR_<CATEGORY>_<DESCRIPTION>

// General error codes
const (
	// ErrCodeUnknown is used when the error type is unknown
	ErrCodeUnknown = "ERR_UNKNOWN"
	// ErrCodeInternal is used for internal server errors
	ErrCodeInternal = "ERR_INTERNAL"
)

// Authentication error codes
const (
	// ErrCodeUnauthorized is used when authentication is required but missing/invalid
	ErrCodeUnauthorized = "ERR_UNAUTHORIZED"
	// ErrCodeTokenExpired is used when the auth token has expired
	ErrCodeTokenExpired = "ERR_TOKEN_EXPIRED"
	// ErrCodeTokenInvalid is used when the auth token is invalid
	ErrCodeTokenInvalid = "ERR_TOKEN_INVALID"
)

// Resource error codes
const (
	// ErrCodeNotFound is used when a resource is not found
	ErrCodeNotFound = "ERR_NOT_FOUND"
	// ErrCodeAlreadyExists is used when trying to create a duplicate resource
	ErrCodeAlreadyExists = "ERR_ALREADY_EXISTS"
	// ErrCodeInvalidID is used when a path or body identifier is malformed
	ErrCodeInvalidID = "ERR_INVALID_ID"
)

// Business rule error codes
const (
	// ErrCodeInsufficientStock is used when stock is insufficient
	ErrCodeInsufficientStock = "ERR_INSUFFICIENT_STOCK"
	// ErrCodeEmptyCart is used when checkout is attempted on an empty cart
	ErrCodeEmptyCart = "ERR_EMPTY_CART"
	// ErrCodeUpdateFailed is used when a guarded write reports no effect
	ErrCodeUpdateFailed = "ERR_UPDATE_FAILED"
)

// Input error codes
const (
	// ErrCodeBadRequest is used for malformed requests
	ErrCodeBadRequest = "ERR_BAD_REQUEST"
	// ErrCodeInvalidInput is used for invalid input data
	ErrCodeInvalidInput = "ERR_INVALID_INPUT"
)

// Store error codes
const (
	// ErrCodeStore is used when a persistence operation fails
	ErrCodeStore = "ERR_STORE"
)

// ErrorCodeHTTPStatus maps error codes to HTTP status codes
var ErrorCodeHTTPStatus = map[string]int{
	// General errors
	ErrCodeUnknown:  http.StatusInternalServerError,
	ErrCodeInternal: http.StatusInternalServerError,

	// Auth errors
	ErrCodeUnauthorized: http.StatusUnauthorized,
	ErrCodeTokenExpired: http.StatusUnauthorized,
	ErrCodeTokenInvalid: http.StatusUnauthorized,

	// Resource errors
	ErrCodeNotFound:      http.StatusNotFound,
	ErrCodeAlreadyExists: http.StatusBadRequest,
	ErrCodeInvalidID:     http.StatusBadRequest,

	// Business rule errors
	ErrCodeInsufficientStock: http.StatusBadRequest,
	ErrCodeEmptyCart:         http.StatusBadRequest,
	ErrCodeUpdateFailed:      http.StatusInternalServerError,

	// Input errors -> 400 Bad Request
	ErrCodeBadRequest:   http.StatusBadRequest,
	ErrCodeInvalidInput: http.StatusBadRequest,

	// Store errors -> 500 Internal Server Error
	ErrCodeStore: http.StatusInternalServerError,
}

// GetHTTPStatus returns the HTTP status code for an error code
// Returns 500 Internal Server Error if the error code is not found
func GetHTTPStatus(code string) int {
	if status, ok := ErrorCodeHTTPStatus[code]; ok {
		return status
	}
	return http.StatusInternalServerError
}

// DomainErrorCodeMapping maps domain error codes to wire error codes
var DomainErrorCodeMapping = map[string]string{
	"NOT_FOUND":          ErrCodeNotFound,
	"INVALID_ID":         ErrCodeInvalidID,
	"ALREADY_EXISTS":     ErrCodeAlreadyExists,
	"INSUFFICIENT_STOCK": ErrCodeInsufficientStock,
	"EMPTY_CART":         ErrCodeEmptyCart,
	"UNAUTHORIZED":       ErrCodeUnauthorized,
	"UPDATE_FAILED":      ErrCodeUpdateFailed,
	"STORE_ERROR":        ErrCodeStore,
	"INVALID_INPUT":      ErrCodeInvalidInput,
}

// NormalizeErrorCode converts a domain error code to the wire format.
// A code already in the wire format or unknown is returned as-is.
func NormalizeErrorCode(code string) string {
	if wireCode, ok := DomainErrorCodeMapping[code]; ok {
		return wireCode
	}
	return code
}
