package http

import (
	"encoding/json"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/thinkforge/hrms-backend-go/internal/domain/leave"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/middleware"
	"github.com/thinkforge/hrms-backend-go/internal/handler/http/response"
	"github.com/thinkforge/hrms-backend-go/internal/service/identity"
	leaveservice "github.com/thinkforge/hrms-backend-go/internal/service/leave"
)

type LeaveHandler interface {
	Apply(w http.ResponseWriter, r *http.Request)
	Approve(w http.ResponseWriter, r *http.Request)
	Reject(w http.ResponseWriter, r *http.Request)
	Cancel(w http.ResponseWriter, r *http.Request)
	ListMine(w http.ResponseWriter, r *http.Request)
	ListPending(w http.ResponseWriter, r *http.Request)
	ListHistory(w http.ResponseWriter, r *http.Request)
	GetApplication(w http.ResponseWriter, r *http.Request)
	GetBalances(w http.ResponseWriter, r *http.Request)
	AdjustBalance(w http.ResponseWriter, r *http.Request)
	ListTypes(w http.ResponseWriter, r *http.Request)
	CreateType(w http.ResponseWriter, r *http.Request)
	UpdateType(w http.ResponseWriter, r *http.Request)
	DisableType(w http.ResponseWriter, r *http.Request)
}

type LeaveHandlerImpl struct {
	resolver       *identity.ResolverService
	routerService  *leaveservice.RouterService
	leaveService   *leaveservice.Service
	balanceService *leaveservice.BalanceService
}

func NewLeaveHandler(
	resolver *identity.ResolverService,
	routerService *leaveservice.RouterService,
	leaveService *leaveservice.Service,
	balanceService *leaveservice.BalanceService,
) LeaveHandler {
	return &LeaveHandlerImpl{
		resolver:       resolver,
		routerService:  routerService,
		leaveService:   leaveService,
		balanceService: balanceService,
	}
}

func (h *LeaveHandlerImpl) principal(w http.ResponseWriter, r *http.Request) (identity.Principal, bool) {
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

// Apply implements LeaveHandler.
func (h *LeaveHandlerImpl) Apply(w http.ResponseWriter, r *http.Request) {
	var req leave.ApplyLeaveRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.routerService.Submit(r.Context(), p, req)
	if err != nil {
		slog.Error("Apply leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave application submitted", leave.NewApplicationResponse(app))
}

func (h *LeaveHandlerImpl) decideRequest(r *http.Request) leave.DecideRequest {
	var req leave.DecideRequest
	_ = json.NewDecoder(r.Body).Decode(&req)
	req.ApplicationID = chi.URLParam(r, "id")
	return req
}

// Approve implements LeaveHandler.
func (h *LeaveHandlerImpl) Approve(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.routerService.Approve(r.Context(), p, h.decideRequest(r))
	if err != nil {
		slog.Error("Approve leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave application approved", leave.NewApplicationResponse(app))
}

// Reject implements LeaveHandler.
func (h *LeaveHandlerImpl) Reject(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.routerService.Reject(r.Context(), p, h.decideRequest(r))
	if err != nil {
		slog.Error("Reject leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave application rejected", leave.NewApplicationResponse(app))
}

// Cancel implements LeaveHandler.
func (h *LeaveHandlerImpl) Cancel(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.routerService.Cancel(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		slog.Error("Cancel leave service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave application cancelled", leave.NewApplicationResponse(app))
}

// ListMine implements LeaveHandler.
func (h *LeaveHandlerImpl) ListMine(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 0)
	apps, err := h.leaveService.ListMine(r.Context(), p, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewApplicationResponses(apps))
}

// ListPending implements LeaveHandler.
func (h *LeaveHandlerImpl) ListPending(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	limit := queryInt(r, "limit", 0)
	apps, err := h.leaveService.ListPending(r.Context(), p, limit)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewApplicationResponses(apps))
}

// ListHistory implements LeaveHandler.
func (h *LeaveHandlerImpl) ListHistory(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	filter := leave.HistoryFilter{
		Page:     queryInt(r, "page", 1),
		PageSize: queryInt(r, "limit", 20),
	}
	if yearParam := r.URL.Query().Get("year"); yearParam != "" {
		if year, err := strconv.Atoi(yearParam); err == nil {
			filter.Year = &year
		}
	}
	if statusParam := r.URL.Query().Get("status"); statusParam != "" {
		status := leave.ApplicationStatus(statusParam)
		filter.Status = &status
	}

	apps, total, err := h.leaveService.ListHistory(r.Context(), p, filter)
	if err != nil {
		response.HandleError(w, err)
		return
	}

	totalPages := 0
	if filter.PageSize > 0 {
		totalPages = int((total + int64(filter.PageSize) - 1) / int64(filter.PageSize))
	}
	response.SuccessWithMeta(w, leave.NewApplicationResponses(apps), &response.Meta{
		Page:       filter.Page,
		Limit:      filter.PageSize,
		TotalItems: total,
		TotalPages: totalPages,
	})
}

// GetApplication implements LeaveHandler.
func (h *LeaveHandlerImpl) GetApplication(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}

	app, err := h.leaveService.GetApplication(r.Context(), p, chi.URLParam(r, "id"))
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewApplicationResponse(app))
}

// GetBalances implements LeaveHandler.
func (h *LeaveHandlerImpl) GetBalances(w http.ResponseWriter, r *http.Request) {
	p, ok := h.principal(w, r)
	if !ok {
		return
	}
	if p.Employee == nil {
		response.Success(w, []leave.BalanceResponse{})
		return
	}

	year := queryInt(r, "year", time.Now().Year())
	balances, err := h.balanceService.GetBalances(r.Context(), p.Employee.ID, year)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, balances)
}

// AdjustBalance implements LeaveHandler.
func (h *LeaveHandlerImpl) AdjustBalance(w http.ResponseWriter, r *http.Request) {
	var req leave.AdjustBalanceRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	if err := req.Validate(); err != nil {
		response.HandleError(w, err)
		return
	}

	balance, err := h.balanceService.Adjust(r.Context(), req)
	if err != nil {
		slog.Error("Adjust balance service error", "error", err)
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Balance adjusted", leave.NewLedgerRowResponse(balance))
}

// ListTypes implements LeaveHandler.
func (h *LeaveHandlerImpl) ListTypes(w http.ResponseWriter, r *http.Request) {
	enabledOnly := r.URL.Query().Get("all") == ""
	types, err := h.leaveService.ListTypes(r.Context(), enabledOnly)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Success(w, leave.NewLeaveTypeResponses(types))
}

// CreateType implements LeaveHandler.
func (h *LeaveHandlerImpl) CreateType(w http.ResponseWriter, r *http.Request) {
	var req leave.CreateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}

	lt, err := h.leaveService.CreateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.Created(w, "Leave type created", leave.NewLeaveTypeResponse(lt))
}

// UpdateType implements LeaveHandler.
func (h *LeaveHandlerImpl) UpdateType(w http.ResponseWriter, r *http.Request) {
	var req leave.UpdateLeaveTypeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		response.BadRequest(w, "Invalid request format", nil)
		return
	}
	req.ID = chi.URLParam(r, "id")

	lt, err := h.leaveService.UpdateType(r.Context(), req)
	if err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type updated", leave.NewLeaveTypeResponse(lt))
}

// DisableType implements LeaveHandler.
func (h *LeaveHandlerImpl) DisableType(w http.ResponseWriter, r *http.Request) {
	if err := h.leaveService.DisableType(r.Context(), chi.URLParam(r, "id")); err != nil {
		response.HandleError(w, err)
		return
	}
	response.SuccessWithMessage(w, "Leave type disabled", nil)
}

func queryInt(r *http.Request, key string, fallback int) int {
	value := r.URL.Query().Get(key)
	if value == "" {
		return fallback
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return n
}
