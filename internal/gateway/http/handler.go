// Package http provides the gateway's authentication handlers: login, OTP
// verification, and logout.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicgate/trustplane/internal/config"
	"github.com/civicgate/trustplane/internal/gateway/http/dto"
	gatewayUseCase "github.com/civicgate/trustplane/internal/gateway/usecase"
	"github.com/civicgate/trustplane/internal/httputil"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
	trustHTTP "github.com/civicgate/trustplane/internal/trust/http"
)

// AuthHandler handles the authentication endpoints.
type AuthHandler struct {
	config *config.Config
	auth   gatewayUseCase.AuthUseCase
	logger *slog.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(cfg *config.Config, auth gatewayUseCase.AuthUseCase, logger *slog.Logger) *AuthHandler {
	return &AuthHandler{
		config: cfg,
		auth:   auth,
		logger: logger,
	}
}

// Login handles POST /v1/auth/login.
//
// A successful password check dispatches a verification code to the account
// email. The response is identical for unknown email and wrong password.
func (h *AuthHandler) Login(c *gin.Context) {
	var request dto.LoginRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	if err := h.auth.Login(c.Request.Context(), request.Email, request.Password); err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusAccepted, dto.MessageResponse{
		Message: "verification code sent",
	})
}

// Verify handles POST /v1/auth/verify.
//
// Consumes the OTP challenge, mints the trust token, and sets the session
// cookie. Every verification failure renders the same generic 401 body.
func (h *AuthHandler) Verify(c *gin.Context) {
	var request dto.VerifyRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	token, claims, err := h.auth.VerifyLogin(c.Request.Context(), request.Email, request.Code)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	trustHTTP.SetTrustTokenCookie(c, h.config, token, h.config.TrustTokenExpiration)

	c.JSON(http.StatusOK, dto.SessionResponse{
		Token:     token,
		Role:      string(claims.Role),
		ExpiresAt: claims.ExpiresAt,
	})
}

// CreatePrincipal handles POST /admin/principals.
//
// Reachable only through the trust boundary with an ADMIN identity. PII
// fields are encrypted or digested before storage and never echoed back.
func (h *AuthHandler) CreatePrincipal(c *gin.Context) {
	var request dto.RegisterPrincipalRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	role, err := trustDomain.ParseRole(request.Role)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	principal, err := h.auth.Register(c.Request.Context(), gatewayUseCase.RegisterPrincipalInput{
		Email:    request.Email,
		FullName: request.FullName,
		Cedula:   request.Cedula,
		Password: request.Password,
		Role:     role,
	})
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusCreated, dto.PrincipalResponse{
		ID:   principal.ID.String(),
		Role: string(principal.Role),
	})
}

// Logout handles POST /v1/auth/logout by expiring the session cookie. Tokens
// stay valid until expiry; logout only clears the browser's copy.
func (h *AuthHandler) Logout(c *gin.Context) {
	trustHTTP.ClearTrustTokenCookie(c, h.config)

	c.JSON(http.StatusOK, dto.MessageResponse{
		Message: "logged out",
	})
}
