package handlers

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/hollis/teamhub/internal/api/dto"
	"github.com/hollis/teamhub/internal/api/middleware"
	"github.com/hollis/teamhub/internal/auth"
)

type AuthHandler struct {
	authService    *auth.Service
	profileService *auth.ProfileService
}

func NewAuthHandler(authService *auth.Service, profileService *auth.ProfileService) *AuthHandler {
	return &AuthHandler{authService: authService, profileService: profileService}
}

func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req dto.RegisterRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	resp, err := h.authService.Register(r.Context(), auth.RegisterInput{
		Username:   req.Username,
		FullName:   req.FullName,
		Email:      req.Email,
		Password:   req.Password,
		Bio:        req.Bio,
		Department: req.Department,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrUserExists):
			writeError(w, http.StatusBadRequest, "User already exists")
		default:
			writeError(w, http.StatusInternalServerError, "Registration failed")
		}
		return
	}

	writeJSON(w, http.StatusCreated, toAuthResponse(resp))
}

func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req dto.LoginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}

	if errs := req.Validate(); len(errs) > 0 {
		writeValidationError(w, errs)
		return
	}

	resp, err := h.authService.Login(r.Context(), auth.LoginInput{
		Email:    req.Email,
		Password: req.Password,
	})

	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidCredentials):
			writeError(w, http.StatusUnauthorized, "Invalid email or password")
		case errors.Is(err, auth.ErrInactiveUser):
			writeError(w, http.StatusUnauthorized, "Account is inactive")
		default:
			writeError(w, http.StatusInternalServerError, "Login failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(resp))
}

func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	var req dto.RefreshRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, "Invalid request body")
		return
	}
	if req.RefreshToken == "" {
		writeError(w, http.StatusBadRequest, "Refresh token is required")
		return
	}

	resp, err := h.authService.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		switch {
		case errors.Is(err, auth.ErrInvalidRefresh):
			writeError(w, http.StatusUnauthorized, "Invalid or expired refresh token")
		default:
			writeError(w, http.StatusInternalServerError, "Token refresh failed")
		}
		return
	}

	writeJSON(w, http.StatusOK, toAuthResponse(resp))
}

// Me returns the profile of the authenticated caller.
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	username := middleware.GetUsername(r.Context())
	if username == "" {
		writeError(w, http.StatusUnauthorized, "Invalid token")
		return
	}

	user, err := h.profileService.GetProfile(r.Context(), username)
	if err != nil {
		if errors.Is(err, auth.ErrUserNotFound) {
			writeError(w, http.StatusNotFound, "User not found")
			return
		}
		writeError(w, http.StatusInternalServerError, "An internal server error occurred.")
		return
	}

	writeJSON(w, http.StatusOK, dto.ToUserDTO(user))
}

func toAuthResponse(resp *auth.AuthResponse) dto.AuthResponse {
	return dto.AuthResponse{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		ExpiresAt:    resp.ExpiresAt,
		User:         dto.ToUserDTO(resp.User),
	}
}
