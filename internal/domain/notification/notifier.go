package notification

import "context"

// Template names the approval router and provisioning flow rely on. Each must
// exist as an active row in email_templates.
const (
	TemplateLeaveApproval  = "Leave Approval"
	TemplateLeaveRejection = "Leave Rejection"
	TemplateWelcome        = "Welcome Employee"
)

// EmailRequest is the contract with the notifier: a recipient, a template
// name and a variable bag substituted into the template.
type EmailRequest struct {
	To           string
	TemplateName string
	Data         map[string]string
}

// Notifier delivers one email, at most once. Callers treat delivery as
// fire-and-forget: a returned error is logged, never acted on.
type Notifier interface {
	Send(ctx context.Context, req EmailRequest) error
}
