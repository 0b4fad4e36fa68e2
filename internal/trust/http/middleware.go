package http

import (
	"log/slog"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/civicgate/trustplane/internal/audit"
	apperrors "github.com/civicgate/trustplane/internal/errors"
	"github.com/civicgate/trustplane/internal/httputil"
	"github.com/civicgate/trustplane/internal/metrics"
	trustDomain "github.com/civicgate/trustplane/internal/trust/domain"
	trustService "github.com/civicgate/trustplane/internal/trust/service"
)

// TrustMiddleware admits or denies every inbound request at the core's trust
// boundary.
//
// The middleware:
// 1. Admits public paths without any metadata check
// 2. Runs the validator chain over the gateway headers (presence, freshness,
//    signature, role authorization)
// 3. Stores the validated identity in the request context for handlers
// 4. Emits an audit event and a trust decision metric for every outcome
//
// Every denial renders the same generic 403 body. The precise reason reaches
// only the audit log, so a probing caller cannot distinguish a stale
// timestamp from a bad signature or an insufficient role.
func TrustMiddleware(
	validator trustService.RequestValidator,
	auditSink audit.Sink,
	businessMetrics metrics.BusinessMetrics,
	logger *slog.Logger,
) gin.HandlerFunc {
	return func(c *gin.Context) {
		path := c.Request.URL.Path
		if validator.IsPublicPath(path) {
			c.Next()
			return
		}

		identity, err := validator.Validate(c.Request.Header, c.Request.Method, path, time.Now().UTC())
		if err != nil {
			role := c.GetHeader(trustDomain.HeaderUserRole)
			auditSink.Emit(c.Request.Context(), audit.Event{
				Type:      audit.EventRequestDenied,
				Outcome:   audit.OutcomeDenied,
				Actor:     audit.MaskActor(c.GetHeader(trustDomain.HeaderUserID)),
				ActorRole: role,
				Method:    c.Request.Method,
				Path:      path,
				Reason:    err.Error(),
			})
			businessMetrics.RecordTrustDecision(c.Request.Context(), role, "deny")
			logger.Debug("request denied at trust boundary",
				slog.String("method", c.Request.Method),
				slog.String("path", path),
				slog.String("error", err.Error()))
			httputil.HandleErrorGin(c, apperrors.ErrForbidden, logger)
			c.Abort()
			return
		}

		auditSink.Emit(c.Request.Context(), audit.Event{
			Type:      audit.EventRequestAdmitted,
			Outcome:   audit.OutcomeSuccess,
			Actor:     audit.MaskActor(identity.Subject),
			ActorRole: string(identity.Role),
			Method:    c.Request.Method,
			Path:      path,
		})
		businessMetrics.RecordTrustDecision(c.Request.Context(), string(identity.Role), "admit")

		ctx := WithIdentity(c.Request.Context(), identity)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
