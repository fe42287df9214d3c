package notifier

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/thinkforge/hrms-backend-go/internal/domain/notification"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
)

type fakeTemplateRepo struct {
	templates map[string]settings.EmailTemplate
}

func (r *fakeTemplateRepo) Create(_ context.Context, t settings.EmailTemplate) (settings.EmailTemplate, error) {
	r.templates[t.Name] = t
	return t, nil
}

func (r *fakeTemplateRepo) GetActiveByName(_ context.Context, name string) (settings.EmailTemplate, error) {
	t, ok := r.templates[name]
	if !ok || t.Status != settings.TemplateStatusActive {
		return settings.EmailTemplate{}, settings.ErrTemplateNotFound
	}
	return t, nil
}

func (r *fakeTemplateRepo) List(_ context.Context) ([]settings.EmailTemplate, error) {
	return nil, nil
}

func (r *fakeTemplateRepo) Update(_ context.Context, t settings.EmailTemplate) error {
	r.templates[t.Name] = t
	return nil
}

type fakeSenderRepo struct {
	config *settings.SenderConfig
}

func (r *fakeSenderRepo) GetEnabled(_ context.Context) (settings.SenderConfig, error) {
	if r.config == nil {
		return settings.SenderConfig{}, settings.ErrSenderConfigNotFound
	}
	return *r.config, nil
}

func (r *fakeSenderRepo) Upsert(_ context.Context, c settings.SenderConfig) (settings.SenderConfig, error) {
	r.config = &c
	return c, nil
}

type sentMail struct {
	to, fromName, fromEmail, subject, body string
}

type fakeMailer struct {
	sent []sentMail
}

func (m *fakeMailer) Send(to, fromName, fromEmail, subject, htmlBody string) error {
	m.sent = append(m.sent, sentMail{to, fromName, fromEmail, subject, htmlBody})
	return nil
}

func TestSubstitute(t *testing.T) {
	data := map[string]string{"employee_name": "Asha Rao", "days_count": "3"}

	out := Substitute("Hi {{employee_name}}, {{days_count}} days requested.", data)
	assert.Equal(t, "Hi Asha Rao, 3 days requested.", out)

	// Unknown placeholders stay verbatim, repeated ones are all replaced.
	out = Substitute("{{employee_name}} / {{employee_name}} / {{unknown}}", data)
	assert.Equal(t, "Asha Rao / Asha Rao / {{unknown}}", out)

	assert.Equal(t, "plain text", Substitute("plain text", data))
	assert.Equal(t, "", Substitute("", nil))
}

func TestNotifierService_Send(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[string]settings.EmailTemplate{
		notification.TemplateLeaveApproval: {
			Name:    notification.TemplateLeaveApproval,
			Subject: "Leave {{status}}",
			Body:    "<p>Hello {{employee_name}}, your {{leave_type}} request was {{status}}.</p>",
			Status:  settings.TemplateStatusActive,
		},
	}}
	sender := &fakeSenderRepo{config: &settings.SenderConfig{
		FromName: "HR Desk", FromEmail: "hr@thinkforge.example", Enabled: true,
	}}
	mail := &fakeMailer{}
	svc := NewNotifierService(templates, sender, mail)

	err := svc.Send(context.Background(), notification.EmailRequest{
		To:           "asha@example.com",
		TemplateName: notification.TemplateLeaveApproval,
		Data: map[string]string{
			"employee_name": "Asha Rao",
			"leave_type":    "Annual Leave",
			"status":        "approved",
		},
	})

	require.NoError(t, err)
	require.Len(t, mail.sent, 1)
	assert.Equal(t, "asha@example.com", mail.sent[0].to)
	assert.Equal(t, "HR Desk", mail.sent[0].fromName)
	assert.Equal(t, "Leave approved", mail.sent[0].subject)
	assert.Contains(t, mail.sent[0].body, "Hello Asha Rao")
	assert.Contains(t, mail.sent[0].body, "Annual Leave")
}

func TestNotifierService_Send_MissingTemplate(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[string]settings.EmailTemplate{}}
	svc := NewNotifierService(templates, &fakeSenderRepo{}, &fakeMailer{})

	err := svc.Send(context.Background(), notification.EmailRequest{
		To:           "asha@example.com",
		TemplateName: "Nonexistent",
	})
	assert.ErrorIs(t, err, settings.ErrTemplateNotFound)
}

func TestNotifierService_Send_NoSenderConfigDrops(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[string]settings.EmailTemplate{
		notification.TemplateWelcome: {
			Name:    notification.TemplateWelcome,
			Subject: "Welcome",
			Body:    "Welcome {{employee_name}}",
			Status:  settings.TemplateStatusActive,
		},
	}}
	mail := &fakeMailer{}
	svc := NewNotifierService(templates, &fakeSenderRepo{}, mail)

	// Without an enabled sender the email is silently dropped, not an error.
	err := svc.Send(context.Background(), notification.EmailRequest{
		To:           "asha@example.com",
		TemplateName: notification.TemplateWelcome,
	})
	assert.NoError(t, err)
	assert.Empty(t, mail.sent)
}

func TestNotifierService_Send_ArchivedTemplate(t *testing.T) {
	templates := &fakeTemplateRepo{templates: map[string]settings.EmailTemplate{
		notification.TemplateLeaveRejection: {
			Name:   notification.TemplateLeaveRejection,
			Status: settings.TemplateStatusArchived,
		},
	}}
	svc := NewNotifierService(templates, &fakeSenderRepo{}, &fakeMailer{})

	err := svc.Send(context.Background(), notification.EmailRequest{
		To:           "asha@example.com",
		TemplateName: notification.TemplateLeaveRejection,
	})
	assert.ErrorIs(t, err, settings.ErrTemplateNotFound)
}
