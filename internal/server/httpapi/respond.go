package httpapi

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"

	"github.com/careerhub/jobportal/internal/common"
	"github.com/careerhub/jobportal/internal/logging"
	"github.com/careerhub/jobportal/internal/objstore"
)

// payload is the common response envelope. Every response carries success and
// message; the remaining fields appear only when set.
type payload struct {
	Success  bool   `json:"success"`
	Message  string `json:"message"`
	User     any    `json:"user,omitempty"`
	Verified bool   `json:"verified,omitempty"`
}

func writeJSON(w http.ResponseWriter, status int, p payload) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(p)
}

func fail(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, payload{Success: false, Message: message})
}

// Client-facing messages for the service sentinels.
const (
	msgMissingFields     = "Something is missing"
	msgLoginMissing      = "Email, password, and role are required."
	msgRecoveryMissing   = "Missing required fields!"
	msgBadCredentials    = "Incorrect email or password."
	msgRoleMismatch      = "Account doesn't exist with the specified role."
	msgBadRecovery       = "Recovery question or answer is incorrect!"
	msgDuplicateRegister = "User already exist with this email."
	msgDuplicateUpdate   = "Email already in use by another account."
	msgWeakPassword      = "New password must be at least 6 characters long."
	msgMissingFile       = "File is missing from the request"
	msgFileTooLarge      = "File size exceeds limit (max 10MB)"
	msgUploadFailed      = "File upload failed"
	msgUserNotFound      = "User not found."
	msgUnauthorized      = "User not authenticated"
	msgInternal          = "Internal server error"
)

// failMessages carries the mode-specific wording for errors whose message
// differs between endpoints.
type failMessages struct {
	validation string
	duplicate  string
}

var (
	registerMessages = failMessages{validation: msgMissingFields, duplicate: msgDuplicateRegister}
	loginMessages    = failMessages{validation: msgLoginMissing, duplicate: msgDuplicateRegister}
	recoveryMessages = failMessages{validation: msgRecoveryMissing, duplicate: msgDuplicateRegister}
	updateMessages   = failMessages{validation: msgMissingFields, duplicate: msgDuplicateUpdate}
)

// failFromError maps a service error to an HTTP status and message. Upload
// failures are business errors, not internal ones: the client is told the
// upload failed and may retry.
func failFromError(ctx context.Context, w http.ResponseWriter, logger logging.Logger, err error, msgs failMessages) {
	var uploadErr *objstore.UploadError
	switch {
	case errors.Is(err, common.ErrValidation):
		fail(w, http.StatusBadRequest, msgs.validation)
	case errors.Is(err, common.ErrMissingAsset):
		fail(w, http.StatusBadRequest, msgMissingFile)
	case errors.Is(err, common.ErrAssetTooLarge):
		fail(w, http.StatusBadRequest, msgFileTooLarge)
	case errors.As(err, &uploadErr):
		logger.Warn(ctx, "upload failed", "attempts", uploadErr.Attempts, "error", uploadErr.Err)
		fail(w, http.StatusBadRequest, msgUploadFailed)
	case errors.Is(err, common.ErrDuplicateAccount):
		fail(w, http.StatusBadRequest, msgs.duplicate)
	case errors.Is(err, common.ErrInvalidCredentials):
		fail(w, http.StatusBadRequest, msgBadCredentials)
	case errors.Is(err, common.ErrRoleMismatch):
		fail(w, http.StatusBadRequest, msgRoleMismatch)
	case errors.Is(err, common.ErrRecoveryVerification):
		fail(w, http.StatusBadRequest, msgBadRecovery)
	case errors.Is(err, common.ErrWeakPassword):
		fail(w, http.StatusBadRequest, msgWeakPassword)
	case errors.Is(err, common.ErrNotFound):
		fail(w, http.StatusNotFound, msgUserNotFound)
	case errors.Is(err, common.ErrInvalidToken), errors.Is(err, common.ErrTokenExpired):
		fail(w, http.StatusUnauthorized, msgUnauthorized)
	default:
		logger.Error(ctx, "request failed", "error", err)
		fail(w, http.StatusInternalServerError, msgInternal)
	}
}
