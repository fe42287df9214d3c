package settings

import "errors"

var (
	ErrTemplateNotFound     = errors.New("email template not found")
	ErrTemplateNameExists   = errors.New("email template name already exists")
	ErrSenderConfigNotFound = errors.New("no enabled sender config")
	ErrAnnouncementNotFound = errors.New("announcement not found")
)
