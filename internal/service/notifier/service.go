package notifier

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/mailer"
)

// NotifierService renders a stored template with a variable bag and hands the
// result to the mailer. Callers treat delivery as fire-and-forget.
type NotifierService struct {
	settings.EmailTemplateRepository
	settings.SenderConfigRepository
	mailer mailer.Mailer
}

func NewNotifierService(
	templateRepository settings.EmailTemplateRepository,
	senderRepository settings.SenderConfigRepository,
	m mailer.Mailer,
) notification.Notifier {
	return &NotifierService{
		EmailTemplateRepository: templateRepository,
		SenderConfigRepository:  senderRepository,
		mailer:                  m,
	}
}

// Send implements notification.Notifier.
func (s *NotifierService) Send(ctx context.Context, req notification.EmailRequest) error {
	tmpl, err := s.EmailTemplateRepository.GetActiveByName(ctx, req.TemplateName)
	if err != nil {
		return fmt.Errorf("failed to load email template %q: %w", req.TemplateName, err)
	}

	sender, err := s.SenderConfigRepository.GetEnabled(ctx)
	if err != nil {
		if errors.Is(err, settings.ErrSenderConfigNotFound) {
			slog.Warn("no enabled sender config, dropping email", "template", req.TemplateName, "to", req.To)
			return nil
		}
		return fmt.Errorf("failed to load sender config: %w", err)
	}

	subject := Substitute(tmpl.Subject, req.Data)
	body := Substitute(tmpl.Body, req.Data)

	if err := s.mailer.Send(req.To, sender.FromName, sender.FromEmail, subject, body); err != nil {
		return fmt.Errorf("failed to send email: %w", err)
	}
	return nil
}

// Substitute replaces every {{key}} occurrence with its value from the bag.
// Unknown placeholders are left untouched.
func Substitute(text string, data map[string]string) string {
	for key, value := range data {
		text = strings.ReplaceAll(text, "{{"+key+"}}", value)
	}
	return text
}
