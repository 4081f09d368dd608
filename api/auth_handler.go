package api

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/promptpilot/promptpilot-go/auth"
	"github.com/promptpilot/promptpilot-go/store"
)

// AuthHandler handles HTTP requests for account management.
type AuthHandler struct {
	service *auth.Service
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(svc *auth.Service) *AuthHandler {
	return &AuthHandler{service: svc}
}

// RegisterRequest is the payload for POST /api/auth/register.
type RegisterRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	FullName string `json:"fullname"`
	Phone    string `json:"phone"`
	DOB      string `json:"dob"`
}

// VerifyRequest is the payload for POST /api/auth/verify.
type VerifyRequest struct {
	Email      string `json:"email"`
	TwoFAToken string `json:"twoFAToken"`
}

// LoginRequest is the payload for POST /api/auth/login.
type LoginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// ForgotPasswordRequest is the payload for POST /api/auth/request-password-reset.
type ForgotPasswordRequest struct {
	Email string `json:"email"`
}

// VerifyResetOTPRequest is the payload for POST /api/auth/verify-reset-otp.
type VerifyResetOTPRequest struct {
	Email string `json:"email"`
	OTP   string `json:"otp"`
}

// ResetPasswordRequest is the payload for POST /api/auth/reset-password.
type ResetPasswordRequest struct {
	ResetToken         string `json:"resetToken"`
	NewPassword        string `json:"newPassword"`
	ConfirmNewPassword string `json:"confirmNewPassword"`
}

// HandleRegister handles POST /api/auth/register.
func (h *AuthHandler) HandleRegister(w http.ResponseWriter, r *http.Request) {
	var req RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	err := h.service.Register(r.Context(), auth.RegisterInput{
		Email:    req.Email,
		Password: req.Password,
		FullName: req.FullName,
		Phone:    req.Phone,
		DOB:      req.DOB,
	})
	if err != nil {
		var fieldErrs auth.ValidationErrors
		switch {
		case errors.As(err, &fieldErrs):
			writeFieldErrors(w, fieldErrs)
		case errors.Is(err, auth.ErrEmailInUse), errors.Is(err, auth.ErrRateLimited):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusCreated, messageResponse("User registered successfully"))
}

// HandleVerify handles POST /api/auth/verify.
func (h *AuthHandler) HandleVerify(w http.ResponseWriter, r *http.Request) {
	var req VerifyRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	err := h.service.VerifyRegistration(r.Context(), req.Email, req.TwoFAToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownEmail),
			errors.Is(err, auth.ErrChallengeExpired),
			errors.Is(err, auth.ErrInvalidChallenge):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Email verified successfully"))
}

// HandleLogin handles POST /api/auth/login.
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	token, err := h.service.Login(r.Context(), req.Email, req.Password)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials), errors.Is(err, auth.ErrNotVerified):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message": "Logged in successfully",
		"token":   token,
	})
}

// HandleLogout handles POST /api/auth/logout.
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authorization token is required"))
		return
	}

	if err := h.service.Logout(r.Context(), userID); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("failed to log out"))
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Logged out successfully"))
}

// HandleGetUser handles GET /api/auth/user. Sensitive fields are stripped by
// the model's JSON tags.
func (h *AuthHandler) HandleGetUser(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authorization token is required"))
		return
	}

	user, err := h.service.GetUser(r.Context(), userID)
	if err != nil {
		if errors.Is(err, store.ErrUserNotFound) {
			writeJSON(w, http.StatusNotFound, errorResponse("user not found"))
			return
		}
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, user)
}

// HandleListUserSessions handles GET /api/auth/sessions.
func (h *AuthHandler) HandleListUserSessions(w http.ResponseWriter, r *http.Request) {
	userID, ok := UserIDFromContext(r.Context())
	if !ok {
		writeJSON(w, http.StatusUnauthorized, errorResponse("Authorization token is required"))
		return
	}

	sessions, err := h.service.ListUserSessions(r.Context(), userID)
	if err != nil {
		writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		return
	}

	writeJSON(w, http.StatusOK, sessions)
}

// HandleRequestPasswordReset handles POST /api/auth/request-password-reset.
func (h *AuthHandler) HandleRequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	err := h.service.RequestPasswordReset(r.Context(), req.Email)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownEmail), errors.Is(err, auth.ErrRateLimited):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("OTP sent to your email"))
}

// HandleVerifyResetOTP handles POST /api/auth/verify-reset-otp.
func (h *AuthHandler) HandleVerifyResetOTP(w http.ResponseWriter, r *http.Request) {
	var req VerifyResetOTPRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	resetToken, err := h.service.VerifyResetChallenge(r.Context(), req.Email, req.OTP)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUnknownEmail),
			errors.Is(err, auth.ErrChallengeExpired),
			errors.Is(err, auth.ErrInvalidChallenge):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, map[string]string{
		"message":    "OTP verified successfully",
		"resetToken": resetToken,
	})
}

// HandleResetPassword handles POST /api/auth/reset-password.
func (h *AuthHandler) HandleResetPassword(w http.ResponseWriter, r *http.Request) {
	var req ResetPasswordRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, errorResponse("invalid request body"))
		return
	}

	err := h.service.CompletePasswordReset(r.Context(), req.ResetToken, req.NewPassword, req.ConfirmNewPassword)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrTokenExpired), errors.Is(err, auth.ErrTokenInvalid):
			writeJSON(w, http.StatusBadRequest, errorResponse("invalid or expired reset token"))
		case errors.Is(err, auth.ErrPasswordMismatch),
			errors.Is(err, auth.ErrWeakPassword),
			errors.Is(err, auth.ErrPasswordUnchanged):
			writeJSON(w, http.StatusBadRequest, errorResponse(err.Error()))
		default:
			writeJSON(w, http.StatusInternalServerError, errorResponse("internal server error"))
		}
		return
	}

	writeJSON(w, http.StatusOK, messageResponse("Password reset successfully"))
}
