package settings

import (
	"context"
	"fmt"

	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
)

type SettingsServiceImpl struct {
	settings.EmailTemplateRepository
	settings.SenderConfigRepository
	settings.AnnouncementRepository
}

func NewSettingsService(
	templateRepository settings.EmailTemplateRepository,
	senderRepository settings.SenderConfigRepository,
	announcementRepository settings.AnnouncementRepository,
) *SettingsServiceImpl {
	return &SettingsServiceImpl{
		EmailTemplateRepository: templateRepository,
		SenderConfigRepository:  senderRepository,
		AnnouncementRepository:  announcementRepository,
	}
}

// UpsertTemplate creates or patches a template row. Archiving replaces
// deletion so past notifications stay traceable.
func (s *SettingsServiceImpl) UpsertTemplate(ctx context.Context, req settings.UpsertTemplateRequest) (settings.EmailTemplate, error) {
	if err := req.Validate(); err != nil {
		return settings.EmailTemplate{}, err
	}

	status := settings.TemplateStatusActive
	if req.Status != nil {
		status = settings.TemplateStatus(*req.Status)
	}

	if req.ID == nil {
		return s.EmailTemplateRepository.Create(ctx, settings.EmailTemplate{
			Name:    req.Name,
			Subject: req.Subject,
			Body:    req.Body,
			Status:  status,
		})
	}

	tmpl := settings.EmailTemplate{
		ID:      *req.ID,
		Name:    req.Name,
		Subject: req.Subject,
		Body:    req.Body,
		Status:  status,
	}
	if err := s.EmailTemplateRepository.Update(ctx, tmpl); err != nil {
		return settings.EmailTemplate{}, err
	}
	return tmpl, nil
}

func (s *SettingsServiceImpl) ListTemplates(ctx context.Context) ([]settings.EmailTemplate, error) {
	return s.EmailTemplateRepository.List(ctx)
}

// UpsertSenderConfig replaces the outbound identity. Enabling one sender
// disables the rest.
func (s *SettingsServiceImpl) UpsertSenderConfig(ctx context.Context, req settings.UpsertSenderConfigRequest) (settings.SenderConfig, error) {
	if err := req.Validate(); err != nil {
		return settings.SenderConfig{}, err
	}

	return s.SenderConfigRepository.Upsert(ctx, settings.SenderConfig{
		FromName:  req.FromName,
		FromEmail: req.FromEmail,
		Enabled:   req.Enabled,
	})
}

func (s *SettingsServiceImpl) GetSenderConfig(ctx context.Context) (settings.SenderConfig, error) {
	return s.SenderConfigRepository.GetEnabled(ctx)
}

// UpsertAnnouncement creates or patches a banner.
func (s *SettingsServiceImpl) UpsertAnnouncement(ctx context.Context, actorUserID string, req settings.UpsertAnnouncementRequest) (settings.Announcement, error) {
	if err := req.Validate(); err != nil {
		return settings.Announcement{}, err
	}

	a := settings.Announcement{
		Title:    req.Title,
		Message:  req.Message,
		IsActive: req.IsActive,
	}
	if req.StartsAt != nil {
		t, _ := validator.IsValidDate(*req.StartsAt)
		a.StartsAt = &t
	}
	if req.EndsAt != nil {
		t, _ := validator.IsValidDate(*req.EndsAt)
		a.EndsAt = &t
	}

	if req.ID == nil {
		a.CreatedBy = &actorUserID
		created, err := s.AnnouncementRepository.Create(ctx, a)
		if err != nil {
			return settings.Announcement{}, fmt.Errorf("failed to create announcement: %w", err)
		}
		return created, nil
	}

	a.ID = *req.ID
	if err := s.AnnouncementRepository.Update(ctx, a); err != nil {
		return settings.Announcement{}, err
	}
	return a, nil
}

// ActiveAnnouncements is the banner feed every signed-in user sees.
func (s *SettingsServiceImpl) ActiveAnnouncements(ctx context.Context) ([]settings.Announcement, error) {
	return s.AnnouncementRepository.ListActive(ctx)
}

func (s *SettingsServiceImpl) ListAnnouncements(ctx context.Context) ([]settings.Announcement, error) {
	return s.AnnouncementRepository.List(ctx)
}

func (s *SettingsServiceImpl) DeleteAnnouncement(ctx context.Context, id string) error {
	return s.AnnouncementRepository.Delete(ctx, id)
}
