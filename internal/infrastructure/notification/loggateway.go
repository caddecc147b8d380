package notification

import (
	"context"

	"servit/internal/domain/repairticket"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/config"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils/logutil"
)

// LogGateway writes notifications to the log instead of delivering them.
// It is the fallback when email is disabled.
type LogGateway struct {
	logger logger.Interface
}

func NewLogGateway(log logger.Interface) *LogGateway {
	return &LogGateway{logger: log.Named("notification")}
}

func (g *LogGateway) Notify(ctx context.Context, audience services.Audience, ticketNumber string, message string) error {
	g.logger.Infow("notification",
		"audience", audience,
		"ticket_number", ticketNumber,
		"message", logutil.TruncateForLog(message, 256),
	)
	return nil
}

// NewGateway picks the delivery channel from configuration.
func NewGateway(cfg config.EmailConfig, ticketRepo repairticket.Repository, log logger.Interface) services.NotificationGateway {
	if cfg.Enabled {
		return NewEmailGateway(cfg, ticketRepo, log)
	}
	return NewLogGateway(log)
}
