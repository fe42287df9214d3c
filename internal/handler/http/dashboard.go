package http

import (
	"net/http"

	"github.com/thinkforge/hrms-backend-go/internal/handler/http/middleware"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/response"
	dashboardservice "github.com/thinkforge/hrms-backend-go/internal/service/dashboard"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
)

type DashboardHandler interface {
	SelfStats(w http.ResponseWriter, r *http.Request)
	RecentRequests(w http.ResponseWriter, r *http.Request)
	PendingApprovals(w http.ResponseWriter, r *http.Request)
	OrgSnapshot(w http.ResponseWriter, r *http.Request)
}

type DashboardHandlerImpl struct {
	resolver         *identity.ResolverService
	dashboardService *dashboardservice.DashboardServiceImpl
}

func NewDashboardHandler(resolver *identity.ResolverService, dashboardService *dashboardservice.DashboardServiceImpl) DashboardHandler {
	return &DashboardHandlerImpl{resolver: resolver, dashboardService: dashboardService}
}

func (h *DashboardHandlerImpl) principal(w http.ResponseWriter, r *http.Request) (identity.Principal, bool) {
	userID := middleware.UserIDFromContext(r.Context())
	if userID == "" {
		response.Unauthorized(w, "Missing authenticated user")
		return identity.Principal{}, false
	}
	p, err := h.resolver.Resolve(r.Context(), userID)
	if err != nil {
		response.HandleError(w, err)
		return identity.Principal{}, false
	}
	return p, true
}

// SelfStats implements DashboardHandler.
func (h *DashboardHandlerImpl) SelfStats(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	stats, err := h.dashboardService.SelfStats(r.Context(), p)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, stats)
}

// RecentRequests implements DashboardHandler.
func (h *DashboardHandlerImpl) RecentRequests(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	items, err := h.dashboardService.RecentRequests(r.Context(), p, queryInt(r, "limit", 5))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// PendingApprovals implements DashboardHandler.
func (h *DashboardHandlerImpl) PendingApprovals(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	items, err := h.dashboardService.PendingApprovals(r.Context(), p, queryInt(r, "limit", 5))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, items)
}

// OrgSnapshot implements DashboardHandler.
func (h *DashboardHandlerImpl) OrgSnapshot(w http.ResponseWriter, r *http.Request) {
	snapshot, err := h.dashboardService.OrgSnapshot(r.Context())
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, snapshot)
}
