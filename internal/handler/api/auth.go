// Package api contains the JSON handlers behind /api. Handlers decode the
// request, call one service, and translate the result through the shared
// response helpers in internal/handler. Authorization beyond role checks
// lives in the services.
package api

import (
	"log/slog"
	"net/http"

	"github.com/localplate/localplate/internal/domain"
	"github.com/localplate/localplate/internal/handler"
	"github.com/localplate/localplate/internal/middleware"
	"github.com/localplate/localplate/internal/repository"
	"github.com/localplate/localplate/internal/service"
)

// AuthHandler handles registration, login, and the token and email
// lifecycle around them.
type AuthHandler struct {
	users         service.UserService
	tokens        service.TokenService
	verification  service.EmailVerificationService
	passwordReset service.PasswordResetService
	logger        *slog.Logger
}

// NewAuthHandler creates a new auth handler.
func NewAuthHandler(
	users service.UserService,
	tokens service.TokenService,
	verification service.EmailVerificationService,
	passwordReset service.PasswordResetService,
	logger *slog.Logger,
) *AuthHandler {
	if logger == nil {
		logger = slog.Default()
	}
	return &AuthHandler{
		users:         users,
		tokens:        tokens,
		verification:  verification,
		passwordReset: passwordReset,
		logger:        logger,
	}
}

type registerRequest struct {
	Email     string `json:"email"`
	Password  string `json:"password"`
	FirstName string `json:"first_name"`
	LastName  string `json:"last_name"`
}

type authResponse struct {
	User   *repository.User   `json:"user"`
	Tokens *service.TokenPair `json:"tokens"`
}

// Register handles POST /api/auth/register - creates a customer account
// and signs the caller in.
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req registerRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Register(ctx, req.Email, req.Password, req.FirstName, req.LastName)
	if err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("registration failed", "email", req.Email, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	// The account works without a verified email; a failed send should
	// not undo the registration.
	if err := h.verification.RequestVerification(ctx, repository.ToUUID(user.ID), middleware.GetClientIP(r)); err != nil {
		logger.Error("failed to queue verification email", "user_id", user.ID, "error", err)
	}

	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		logger.Error("failed to issue tokens", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("user registered", "user_id", user.ID, "email", user.Email)
	handler.JSON(w, http.StatusCreated, authResponse{User: user, Tokens: pair})
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Login handles POST /api/auth/login - authenticates and returns a token
// pair.
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req loginRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	user, err := h.users.Authenticate(ctx, req.Email, req.Password)
	if err != nil {
		logger.Warn("login failed", "email", req.Email, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	pair, err := h.tokens.IssuePair(user)
	if err != nil {
		logger.Error("failed to issue tokens", "user_id", user.ID, "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	logger.Info("user logged in", "user_id", user.ID)
	handler.JSON(w, http.StatusOK, authResponse{User: user, Tokens: pair})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// Refresh handles POST /api/auth/refresh - exchanges a refresh token for
// a new pair.
func (h *AuthHandler) Refresh(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req refreshRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	pair, err := h.tokens.Refresh(ctx, req.RefreshToken)
	if err != nil {
		logger.Warn("token refresh failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]*service.TokenPair{"tokens": pair})
}

type verifyEmailRequest struct {
	Token string `json:"token"`
}

// VerifyEmail handles POST /api/auth/verify-email - completes email
// verification with an emailed token.
func (h *AuthHandler) VerifyEmail(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req verifyEmailRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.verification.VerifyEmail(ctx, req.Token); err != nil {
		logger.Warn("email verification failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"verified": true})
}

type requestPasswordResetRequest struct {
	Email string `json:"email"`
}

// RequestPasswordReset handles POST /api/auth/request-password-reset -
// queues a reset email. Responds 202 whether or not the email has an
// account so the endpoint cannot be used to probe for addresses.
func (h *AuthHandler) RequestPasswordReset(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req requestPasswordResetRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.passwordReset.RequestReset(ctx, req.Email, middleware.GetClientIP(r)); err != nil {
		logger.Warn("password reset request failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusAccepted, map[string]bool{"accepted": true})
}

type resetPasswordRequest struct {
	Token    string `json:"token"`
	Password string `json:"password"`
}

// ResetPassword handles POST /api/auth/reset-password - sets a new
// password using an emailed token.
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := middleware.GetLogger(ctx, h.logger)

	var req resetPasswordRequest
	if err := handler.Decode(r, &req); err != nil {
		handler.ErrorResponse(w, r, err)
		return
	}

	if err := h.passwordReset.ResetPassword(ctx, req.Token, req.Password); err != nil {
		if domain.IsValidationError(err) {
			handler.ValidationErrorResponse(w, r, err)
			return
		}
		logger.Warn("password reset failed", "error", err)
		handler.ErrorResponse(w, r, err)
		return
	}

	handler.JSON(w, http.StatusOK, map[string]bool{"reset": true})
}
