package service

import (
	"context"
	"log/slog"

	"github.com/civicgate/trustplane/internal/audit"
)

// logDelivery is a development delivery channel. It logs that a code was
// dispatched to a masked destination; the code itself is never logged.
type logDelivery struct {
	logger *slog.Logger
}

// NewLogDelivery creates a delivery service that only logs dispatch events.
// Intended for local development and tests; production wires a real channel.
func NewLogDelivery(logger *slog.Logger) DeliveryService {
	return &logDelivery{logger: logger}
}

// Deliver logs the dispatch and succeeds unless the context is done.
func (d *logDelivery) Deliver(ctx context.Context, destination, code string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	d.logger.InfoContext(ctx, "otp code dispatched",
		slog.String("destination", audit.MaskActor(destination)),
		slog.Int("code_length", len(code)),
	)
	return nil
}
