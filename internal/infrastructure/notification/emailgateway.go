// Package notification delivers ticket messages to customers, technicians
// and admins. Delivery is best-effort; callers never roll back on a failed
// send.
package notification

import (
	"context"
	"fmt"

	"gopkg.in/gomail.v2"

	"servit/internal/domain/repairticket"
	"servit/internal/domain/shared/services"
	"servit/internal/shared/config"
	apperrors "servit/internal/shared/errors"
	"servit/internal/shared/logger"
	"servit/internal/shared/utils"
)

// EmailGateway sends notifications over SMTP. Customer messages are resolved
// to the ticket's customer email; technician and admin messages go to the
// configured shop address.
type EmailGateway struct {
	cfg        config.EmailConfig
	dialer     *gomail.Dialer
	ticketRepo repairticket.Repository
	logger     logger.Interface
}

func NewEmailGateway(cfg config.EmailConfig, ticketRepo repairticket.Repository, log logger.Interface) *EmailGateway {
	return &EmailGateway{
		cfg:        cfg,
		dialer:     gomail.NewDialer(cfg.SMTPHost, cfg.SMTPPort, cfg.SMTPUser, cfg.SMTPPassword),
		ticketRepo: ticketRepo,
		logger:     log,
	}
}

func (g *EmailGateway) Notify(ctx context.Context, audience services.Audience, ticketNumber string, message string) error {
	to, err := g.resolveAddress(ctx, audience, ticketNumber)
	if err != nil {
		return err
	}
	if to == "" {
		g.logger.Debugw("no address for notification, skipping",
			"audience", audience, "ticket_number", ticketNumber)
		return nil
	}

	subject := "Repair shop update"
	if ticketNumber != "" {
		subject = fmt.Sprintf("Repair ticket %s", ticketNumber)
	}

	m := gomail.NewMessage()
	m.SetHeader("From", m.FormatAddress(g.cfg.FromAddress, g.cfg.FromName))
	m.SetHeader("To", to)
	m.SetHeader("Subject", subject)
	m.SetBody("text/plain", message)

	if err := g.dialer.DialAndSend(m); err != nil {
		return fmt.Errorf("failed to send notification email: %w", err)
	}

	g.logger.Debugw("notification email sent",
		"audience", audience, "ticket_number", ticketNumber, "to", utils.MaskEmail(to))
	return nil
}

func (g *EmailGateway) resolveAddress(ctx context.Context, audience services.Audience, ticketNumber string) (string, error) {
	switch audience {
	case services.AudienceCustomer:
		if ticketNumber == "" {
			return "", nil
		}
		ticket, err := g.ticketRepo.FindByTicketNumber(ctx, ticketNumber)
		if err != nil {
			if apperrors.IsNotFoundError(err) {
				return "", nil
			}
			return "", err
		}
		return ticket.CustomerEmail(), nil
	default:
		return g.cfg.AdminAddress, nil
	}
}
