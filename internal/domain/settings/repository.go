package settings

import "context"

// EmailTemplateRepository - interface for email_templates table
type EmailTemplateRepository interface {
	Create(ctx context.Context, t EmailTemplate) (EmailTemplate, error)
	GetActiveByName(ctx context.Context, name string) (EmailTemplate, error)
	List(ctx context.Context) ([]EmailTemplate, error)
	Update(ctx context.Context, t EmailTemplate) error
}

// SenderConfigRepository - interface for sender_configs table
type SenderConfigRepository interface {
	GetEnabled(ctx context.Context) (SenderConfig, error)
	Upsert(ctx context.Context, c SenderConfig) (SenderConfig, error)
}

// AnnouncementRepository - interface for announcements table
type AnnouncementRepository interface {
	Create(ctx context.Context, a Announcement) (Announcement, error)
	ListActive(ctx context.Context) ([]Announcement, error)
	List(ctx context.Context) ([]Announcement, error)
	Update(ctx context.Context, a Announcement) error
	Delete(ctx context.Context, id string) error
}
