package apperrors

import (
	"net/http"
)

// Factories and predefined variables for domain errors.

// ErrNotFound converts a repository error (such as gorm.ErrRecordNotFound)
// into a 404 AppError.
func ErrNotFound(err error) *AppError {
	return Wrap(err, CodeNotFound, "resource", "Resource not found", http.StatusNotFound)
}

func ErrAlreadyExists(err error) *AppError {
	return Wrap(err, CodeAlreadyExists, "resource", "Resource already exists", http.StatusConflict)
}

func ErrConflict(err error, domain, message string) *AppError {
	return Wrap(err, CodeConflict, domain, message, http.StatusConflict)
}

func ErrInvalidOperation(domain, message string) *AppError {
	return New(CodeInvalidOperation, domain, message, http.StatusBadRequest)
}

// --- Matching & AI ---

// ErrCampaignNotFound is the single upstream lookup failure the matching
// endpoints surface to callers. Everything else degrades to fallback results.
var ErrCampaignNotFound = New(
	CodeNotFound,
	"campaign",
	"Campaign not found",
	http.StatusNotFound,
)

var ErrCreatorNotFound = New(
	CodeNotFound,
	"creator",
	"Creator not found",
	http.StatusNotFound,
)

// ErrEmbeddingFailed is returned by the administrative embedding endpoint
// when the backend cannot produce a vector for a creator profile.
var ErrEmbeddingFailed = New(
	CodeExternalServiceError,
	"ai",
	"Failed to generate embedding for creator",
	http.StatusBadRequest,
)

// --- Auth ---

var ErrInvalidCredentials = New(
	CodeInvalidCredentials,
	"auth",
	"Invalid email or password",
	http.StatusUnauthorized,
)

var ErrInvalidToken = New(
	CodeInvalidToken,
	"auth",
	"Invalid or expired token",
	http.StatusUnauthorized,
)

var ErrInsufficientPermissions = New(
	CodeForbidden,
	"auth",
	"Insufficient permissions",
	http.StatusForbidden,
)

// --- Creators & Campaigns ---

var ErrCreatorEmailExists = New(
	CodeAlreadyExists,
	"creator",
	"Creator with this email already exists",
	http.StatusConflict,
)

var ErrInvalidCampaignStatus = New(
	CodeInvalidStatus,
	"campaign",
	"Operation not allowed for the current campaign status",
	http.StatusConflict,
)
