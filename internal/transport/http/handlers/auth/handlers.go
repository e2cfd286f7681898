package authhandler

import (
	"errors"
	"net/http"
	"strings"
	"time"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"hrconnect/internal/auth"
	domainauth "hrconnect/internal/domain/auth"
	"hrconnect/internal/domain/session"
	"hrconnect/internal/transport/http/api"
	"hrconnect/internal/transport/http/middleware"
	"hrconnect/internal/transport/http/shared"
)

const totpIssuer = "HR Connect"

type Handler struct {
	Sessions *session.Manager
	Users    *domainauth.Directory
	Secret   string
	TokenTTL time.Duration
	Log      *zap.Logger
}

func NewHandler(sessions *session.Manager, users *domainauth.Directory, secret string, ttl time.Duration, log *zap.Logger) *Handler {
	if log == nil {
		log = zap.NewNop()
	}
	return &Handler{Sessions: sessions, Users: users, Secret: secret, TokenTTL: ttl, Log: log}
}

func (h *Handler) RegisterRoutes(r chi.Router) {
	r.Post("/auth/login", h.HandleLogin)
	r.With(middleware.RequireUser).Post("/auth/logout", h.HandleLogout)
	r.With(middleware.RequireUser).Get("/auth/session", h.HandleSession)
	r.With(middleware.RequireUser).Post("/auth/mfa/setup", h.HandleMFASetup)
	r.With(middleware.RequireUser).Post("/auth/mfa/enable", h.HandleMFAEnable)
	r.With(middleware.RequireUser).Post("/auth/mfa/disable", h.HandleMFADisable)
	r.With(middleware.RequireUser).Put("/settings/profile", h.HandleUpdateProfile)
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	MFACode  string `json:"mfaCode"`
}

type loginResponse struct {
	Token     string          `json:"token"`
	ExpiresAt time.Time       `json:"expiresAt"`
	User      domainauth.User `json:"user"`
}

type mfaEnableRequest struct {
	Secret string `json:"secret"`
	Code   string `json:"code"`
}

func (h *Handler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload loginRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("email", payload.Email, "is required")
	v.Required("password", payload.Password, "is required")
	if v.Reject(w, requestID) {
		return
	}

	user, sid, err := h.Sessions.Login(r.Context(), strings.TrimSpace(payload.Email), payload.Password, strings.TrimSpace(payload.MFACode))
	switch {
	case errors.Is(err, domainauth.ErrMFARequired):
		api.Fail(w, http.StatusUnauthorized, "mfa_required", "mfa code required", requestID)
		return
	case errors.Is(err, domainauth.ErrInvalidCredentials), errors.Is(err, domainauth.ErrMFAInvalid):
		api.Fail(w, http.StatusUnauthorized, "invalid_credentials", "invalid email or password", requestID)
		return
	case err != nil:
		h.Log.Error("login failed", zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, "login_failed", "failed to start session", requestID)
		return
	}

	expiresAt := time.Now().Add(h.TokenTTL)
	token, err := auth.GenerateToken(h.Secret, auth.Claims{
		UserID:    user.ID,
		Role:      user.Role,
		SessionID: sid,
	}, h.TokenTTL)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "token_failed", "failed to issue token", requestID)
		return
	}
	api.Success(w, loginResponse{Token: token, ExpiresAt: expiresAt, User: user}, requestID)
}

func (h *Handler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	if err := h.Sessions.Logout(r.Context()); err != nil {
		h.Log.Error("logout failed", zap.Error(err))
		api.Fail(w, http.StatusInternalServerError, "logout_failed", "failed to end session", requestID)
		return
	}
	api.Success(w, map[string]bool{"loggedOut": true}, requestID)
}

func (h *Handler) HandleSession(w http.ResponseWriter, r *http.Request) {
	user, _ := middleware.GetUser(r.Context())
	api.Success(w, user, middleware.GetRequestID(r.Context()))
}

func (h *Handler) HandleMFASetup(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	key, err := auth.GenerateTOTP(totpIssuer, user.Email)
	if err != nil {
		api.Fail(w, http.StatusInternalServerError, "mfa_setup_failed", "failed to generate mfa secret", requestID)
		return
	}
	api.Success(w, map[string]string{"secret": key.Secret(), "url": key.URL()}, requestID)
}

func (h *Handler) HandleMFAEnable(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	var payload mfaEnableRequest
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("secret", payload.Secret, "is required")
	v.Required("code", payload.Code, "is required")
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Users.EnableTOTP(user.ID, strings.TrimSpace(payload.Secret), strings.TrimSpace(payload.Code))
	if err != nil {
		shared.FailError(w, requestID, err, domainauth.ErrMFAInvalid)
		return
	}
	h.refresh(r, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) HandleMFADisable(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	user, _ := middleware.GetUser(r.Context())
	updated, err := h.Users.DisableTOTP(user.ID)
	if err != nil {
		shared.FailError(w, requestID, err)
		return
	}
	h.refresh(r, updated)
	api.Success(w, updated, requestID)
}

func (h *Handler) HandleUpdateProfile(w http.ResponseWriter, r *http.Request) {
	requestID := middleware.GetRequestID(r.Context())
	var payload domainauth.Profile
	if !shared.DecodeJSON(w, r, &payload) {
		return
	}
	v := shared.NewValidator()
	v.Required("name", payload.Name, "is required")
	v.Required("email", payload.Email, "is required")
	if v.Reject(w, requestID) {
		return
	}

	updated, err := h.Sessions.UpdateProfile(r.Context(), payload)
	switch {
	case errors.Is(err, domainauth.ErrEmailTaken):
		api.Fail(w, http.StatusConflict, "email_taken", err.Error(), requestID)
		return
	case errors.Is(err, session.ErrNoSession):
		api.Fail(w, http.StatusUnauthorized, "unauthorized", "authentication required", requestID)
		return
	case err != nil:
		shared.FailError(w, requestID, err, domainauth.ErrMissingFields, domainauth.ErrInvalidEmail)
		return
	}
	api.Success(w, updated, requestID)
}

func (h *Handler) refresh(r *http.Request, u domainauth.User) {
	if err := h.Sessions.Refresh(r.Context(), u); err != nil {
		h.Log.Warn("session refresh failed", zap.Int64("userId", u.ID), zap.Error(err))
	}
}
