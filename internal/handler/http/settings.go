package http

import (
	"encoding/json"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/settings"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/middleware"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/response"
	settingsservice "github.com/thinkforge/hrms-backend-go/internal/service/settings"
)

type SettingsHandler interface {
	UpsertTemplate(w http.ResponseWriter, r *http.Request)
	ListTemplates(w http.ResponseWriter, r *http.Request)
	UpsertSenderConfig(w http.ResponseWriter, r *http.Request)
	GetSenderConfig(w http.ResponseWriter, r *http.Request)
	UpsertAnnouncement(w http.ResponseWriter, r *http.Request)
	ListAnnouncements(w http.ResponseWriter, r *http.Request)
	ActiveAnnouncements(w http.ResponseWriter, r *http.Request)
	DeleteAnnouncement(w http.ResponseWriter, r *http.Request)
}

type SettingsHandlerImpl struct {
	settingsService *settingsservice.SettingsServiceImpl
}

func NewSettingsHandler(settingsService *settingsservice.SettingsServiceImpl) SettingsHandler {
	return &SettingsHandlerImpl{settingsService: settingsService}
}

// UpsertTemplate implements SettingsHandler.
func (h *SettingsHandlerImpl) UpsertTemplate(w http.ResponseWriter, r *http.Request) {
	var req settings.UpsertTemplateRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	tmpl, err := h.settingsService.UpsertTemplate(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Template saved", tmpl)
}

// ListTemplates implements SettingsHandler.
func (h *SettingsHandlerImpl) ListTemplates(w http.ResponseWriter, r *http.Request) {
	templates, err := h.settingsService.ListTemplates(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, templates)
}

// UpsertSenderConfig implements SettingsHandler.
func (h *SettingsHandlerImpl) UpsertSenderConfig(w http.ResponseWriter, r *http.Request) {
	var req settings.UpsertSenderConfigRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	config, err := h.settingsService.UpsertSenderConfig(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Sender config saved", config)
}

// GetSenderConfig implements SettingsHandler.
func (h *SettingsHandlerImpl) GetSenderConfig(w http.ResponseWriter, r *http.Request) {
	config, err := h.settingsService.GetSenderConfig(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, config)
}

// UpsertAnnouncement implements SettingsHandler.
func (h *SettingsHandlerImpl) UpsertAnnouncement(w http.ResponseWriter, r *http.Request) {
	var req settings.UpsertAnnouncementRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	actorUserID := middleware.UserIDFromContext(r.Context())
	announcement, err := h.settingsService.UpsertAnnouncement(r.Context(), actorUserID, req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Announcement saved", announcement)
}

// ListAnnouncements implements SettingsHandler.
func (h *SettingsHandlerImpl) ListAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.settingsService.ListAnnouncements(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, announcements)
}

// ActiveAnnouncements implements SettingsHandler.
func (h *SettingsHandlerImpl) ActiveAnnouncements(w http.ResponseWriter, r *http.Request) {
	announcements, err := h.settingsService.ActiveAnnouncements(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, announcements)
}

// DeleteAnnouncement implements SettingsHandler.
func (h *SettingsHandlerImpl) DeleteAnnouncement(w http.ResponseWriter, r *http.Request) {
	if err := h.settingsService.DeleteAnnouncement(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Announcement deleted", nil)
}
