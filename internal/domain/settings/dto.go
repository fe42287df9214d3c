package settings

import (
	"github.com/thinkforge/hrms-backend-go/internal/pkg/validator"
)

type UpsertTemplateRequest struct {
	ID      *string `json:"id"`
	Name    string  `json:"name"`
	Subject string  `json:"subject"`
	Body    string  `json:"body"`
	Status  *string `json:"status"`
}

func (r *UpsertTemplateRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name is required",
		})
	} else if !validator.IsValidTemplateName(r.Name) {
		errs = append(errs, validator.ValidationError{
			Field:   "name",
			Message: "name may only contain letters, numbers, spaces, underscores and hyphens",
		})
	}
	if validator.IsEmpty(r.Subject) {
		errs = append(errs, validator.ValidationError{
			Field:   "subject",
			Message: "subject is required",
		})
	}
	if validator.IsEmpty(r.Body) {
		errs = append(errs, validator.ValidationError{
			Field:   "body",
			Message: "body is required",
		})
	}
	if r.Status != nil && !validator.IsInSlice(*r.Status, []string{
		string(TemplateStatusActive), string(TemplateStatusArchived),
	}) {
		errs = append(errs, validator.ValidationError{
			Field:   "status",
			Message: "status must be active or archived",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertSenderConfigRequest struct {
	FromName  string `json:"from_name"`
	FromEmail string `json:"from_email"`
	Enabled   bool   `json:"enabled"`
}

func (r *UpsertSenderConfigRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.FromName) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_name",
			Message: "from_name is required",
		})
	}
	if validator.IsEmpty(r.FromEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_email",
			Message: "from_email is required",
		})
	} else if !validator.IsValidEmail(r.FromEmail) {
		errs = append(errs, validator.ValidationError{
			Field:   "from_email",
			Message: "from_email must be a valid email address",
		})
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}

type UpsertAnnouncementRequest struct {
	ID       *string `json:"id"`
	Title    string  `json:"title"`
	Message  string  `json:"message"`
	IsActive bool    `json:"is_active"`
	StartsAt *string `json:"starts_at"`
	EndsAt   *string `json:"ends_at"`
}

func (r *UpsertAnnouncementRequest) Validate() error {
	var errs validator.ValidationErrors

	if validator.IsEmpty(r.Title) {
		errs = append(errs, validator.ValidationError{
			Field:   "title",
			Message: "title is required",
		})
	}
	if validator.IsEmpty(r.Message) {
		errs = append(errs, validator.ValidationError{
			Field:   "message",
			Message: "message is required",
		})
	}
	if r.StartsAt != nil {
		if _, ok := validator.IsValidDate(*r.StartsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "starts_at",
				Message: "starts_at must be in YYYY-MM-DD format",
			})
		}
	}
	if r.EndsAt != nil {
		if _, ok := validator.IsValidDate(*r.EndsAt); !ok {
			errs = append(errs, validator.ValidationError{
				Field:   "ends_at",
				Message: "ends_at must be in YYYY-MM-DD format",
			})
		}
	}

	if len(errs) > 0 {
		return errs
	}
	return nil
}
