// Package httpapi exposes the account operations over HTTP. Requests carry
// JSON or multipart bodies; sessions travel in an HttpOnly cookie.
package httpapi

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/careerhub/jobportal/internal/logging"
	"github.com/careerhub/jobportal/internal/server/models"
	"github.com/careerhub/jobportal/internal/server/services"
	"github.com/julienschmidt/httprouter"
)

// Handler holds the HTTP-facing dependencies for the account routes.
type Handler struct {
	service    *services.AccountService
	logger     logging.Logger
	jwtSecret  []byte
	stagingDir string
}

func NewHandler(service *services.AccountService, logger logging.Logger, jwtSecret []byte, stagingDir string) *Handler {
	return &Handler{
		service:    service,
		logger:     logger.With("component", "httpapi"),
		jwtSecret:  jwtSecret,
		stagingDir: stagingDir,
	}
}

// Register handles multipart account creation. The profile photo arrives as
// the "file" part.
func (h *Handler) Register(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		fail(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	sf, err := h.stageUpload(r, "file")
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, registerMessages)
		return
	}
	defer h.discardStaged(r, sf)

	account, err := h.service.Register(r.Context(), services.RegisterParams{
		FullName:         r.FormValue("fullname"),
		Email:            r.FormValue("email"),
		PhoneNumber:      r.FormValue("phoneNumber"),
		Password:         r.FormValue("password"),
		Role:             models.Role(r.FormValue("role")),
		RecoveryQuestion: r.FormValue("recoveryQuestion"),
		RecoveryAnswer:   r.FormValue("recoveryAnswer"),
		File:             sf,
	})
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, registerMessages)
		return
	}

	writeJSON(w, http.StatusCreated, payload{
		Success: true,
		Message: "Account created successfully.",
		User:    account.View(),
	})
}

// loginRequest is the JSON body of the login endpoint. The endpoint serves
// three modes: a normal credential login, recovery verification
// (forgotPassword without newPassword), and recovery reset (forgotPassword
// with newPassword).
type loginRequest struct {
	Email            string `json:"email"`
	Password         string `json:"password"`
	Role             string `json:"role"`
	ForgotPassword   bool   `json:"forgotPassword"`
	RecoveryQuestion string `json:"recoveryQuestion"`
	RecoveryAnswer   string `json:"recoveryAnswer"`
	NewPassword      string `json:"newPassword"`
}

func (h *Handler) Login(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		fail(w, http.StatusBadRequest, msgLoginMissing)
		return
	}

	if req.ForgotPassword {
		h.recover(w, r, req)
		return
	}

	account, session, err := h.service.Login(r.Context(), services.LoginParams{
		Email:    req.Email,
		Password: req.Password,
		Role:     models.Role(req.Role),
	})
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, loginMessages)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresIn)
	writeJSON(w, http.StatusOK, payload{
		Success: true,
		Message: fmt.Sprintf("Welcome back, %s!", account.FullName),
		User:    account.View(),
	})
}

// recover drives both recovery steps. Verification issues no session; only a
// successful reset sets the cookie.
func (h *Handler) recover(w http.ResponseWriter, r *http.Request, req loginRequest) {
	params := services.RecoveryParams{
		Email:            req.Email,
		Role:             models.Role(req.Role),
		RecoveryQuestion: req.RecoveryQuestion,
		RecoveryAnswer:   req.RecoveryAnswer,
	}

	if req.NewPassword == "" {
		if _, err := h.service.RecoverVerify(r.Context(), params); err != nil {
			failFromError(r.Context(), w, h.logger, err, recoveryMessages)
			return
		}
		writeJSON(w, http.StatusOK, payload{
			Success:  true,
			Verified: true,
			Message:  "Recovery verification successful. Please set a new password.",
		})
		return
	}

	account, session, err := h.service.RecoverReset(r.Context(), params, req.NewPassword)
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, recoveryMessages)
		return
	}

	setSessionCookie(w, session.Token, session.ExpiresIn)
	writeJSON(w, http.StatusOK, payload{
		Success: true,
		Message: fmt.Sprintf("Welcome back, %s!", account.FullName),
		User:    account.View(),
	})
}

// Logout clears the session cookie. The token itself stays valid until it
// expires; the server keeps no session state.
func (h *Handler) Logout(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	clearSessionCookie(w)
	writeJSON(w, http.StatusOK, payload{
		Success: true,
		Message: "Logged out successfully.",
	})
}

// UpdateProfile applies a partial profile update for the authenticated
// account. The resume arrives as the optional "file" part.
func (h *Handler) UpdateProfile(w http.ResponseWriter, r *http.Request, _ httprouter.Params) {
	accountID, ok := accountIDFromContext(r.Context())
	if !ok {
		fail(w, http.StatusUnauthorized, msgUnauthorized)
		return
	}

	if err := r.ParseMultipartForm(maxMultipartMemory); err != nil {
		fail(w, http.StatusBadRequest, msgMissingFields)
		return
	}

	sf, err := h.stageUpload(r, "file")
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, updateMessages)
		return
	}
	defer h.discardStaged(r, sf)

	account, err := h.service.UpdateProfile(r.Context(), accountID, services.UpdateParams{
		FullName:    r.FormValue("fullname"),
		Email:       r.FormValue("email"),
		PhoneNumber: r.FormValue("phoneNumber"),
		Bio:         r.FormValue("bio"),
		Skills:      r.FormValue("skills"),
		File:        sf,
	})
	if err != nil {
		failFromError(r.Context(), w, h.logger, err, updateMessages)
		return
	}

	writeJSON(w, http.StatusOK, payload{
		Success: true,
		Message: "Profile updated successfully.",
		User:    account.View(),
	})
}
