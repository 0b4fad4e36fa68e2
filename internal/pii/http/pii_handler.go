// Package http provides the PII protection handlers exposed to trusted
// internal callers behind the trust boundary.
package http

import (
	"log/slog"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/civicgate/trustplane/internal/httputil"
	"github.com/civicgate/trustplane/internal/pii/http/dto"
	piiUseCase "github.com/civicgate/trustplane/internal/pii/usecase"
)

// PIIHandler handles the encrypt, decrypt, and anonymize endpoints.
type PIIHandler struct {
	pii    piiUseCase.PIIUseCase
	logger *slog.Logger
}

// NewPIIHandler creates a new PIIHandler.
func NewPIIHandler(pii piiUseCase.PIIUseCase, logger *slog.Logger) *PIIHandler {
	return &PIIHandler{
		pii:    pii,
		logger: logger,
	}
}

// Encrypt handles POST /staff/pii/encrypt.
func (h *PIIHandler) Encrypt(c *gin.Context) {
	var request dto.EncryptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	content, err := h.pii.Encrypt(c.Request.Context(), request.Plaintext)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.EncryptResponse{Content: content})
}

// Decrypt handles POST /staff/pii/decrypt.
//
// A tampered blob or unknown key version is a typed failure surfaced as an
// error response; the handler never substitutes a placeholder plaintext.
func (h *PIIHandler) Decrypt(c *gin.Context) {
	var request dto.DecryptRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	plaintext, err := h.pii.Decrypt(c.Request.Context(), request.Content)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.DecryptResponse{Plaintext: plaintext})
}

// Anonymize handles POST /staff/pii/anonymize.
func (h *PIIHandler) Anonymize(c *gin.Context) {
	var request dto.AnonymizeRequest
	if err := c.ShouldBindJSON(&request); err != nil {
		httputil.HandleBadRequestGin(c, err, h.logger)
		return
	}
	if err := request.Validate(); err != nil {
		httputil.HandleValidationErrorGin(c, err, h.logger)
		return
	}

	digest, err := h.pii.Anonymize(c.Request.Context(), request.Value, request.AsEmail)
	if err != nil {
		httputil.HandleErrorGin(c, err, h.logger)
		return
	}

	c.JSON(http.StatusOK, dto.AnonymizeResponse{Digest: digest})
}
