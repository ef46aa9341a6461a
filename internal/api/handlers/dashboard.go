package handlers

import (
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/pratik-mahalle/numera/internal/api/dto"
	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
)

// DashboardHandler serves the caller's stats, history and profile
type DashboardHandler struct {
	userService   user.Service
	reportService report.Service
	logger        *logger.Logger
	validator     *validator.Validator
}

// NewDashboardHandler creates a new dashboard handler
func NewDashboardHandler(
	userService user.Service,
	reportService report.Service,
	log *logger.Logger,
	val *validator.Validator,
) *DashboardHandler {
	return &DashboardHandler{
		userService:   userService,
		reportService: reportService,
		logger:        log,
		validator:     val,
	}
}

// Stats returns the usage summary
// @Summary Dashboard stats
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} user.Stats
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /dashboard/stats [get]
func (h *DashboardHandler) Stats(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	stats, err := h.userService.Stats(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch dashboard stats")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, stats)
}

// History lists the caller's reports newest first
// @Summary Report history
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param page query int false "Page number" default(1)
// @Param limit query int false "Items per page" default(10)
// @Success 200 {object} dto.HistoryResponse
// @Failure 401 {object} utils.ErrorResponse
// @Router /dashboard/history [get]
func (h *DashboardHandler) History(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	params := utils.ParsePaginationParams(r)
	reports, total, err := h.reportService.List(r.Context(), userID, params.Limit, params.Offset)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch history")
		return
	}
	if reports == nil {
		reports = []*report.Report{}
	}

	utils.WritePaginated(w, reports, utils.NewPagination(params.Page, params.Limit, total))
}

// DeleteReport removes one of the caller's reports
// @Summary Delete a report
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Param id path string true "Report ID"
// @Success 200 {object} utils.SuccessResponse
// @Failure 401 {object} utils.ErrorResponse
// @Failure 403 {object} utils.ErrorResponse "Not the owner"
// @Failure 404 {object} utils.ErrorResponse "Report not found"
// @Router /dashboard/history/{id} [delete]
func (h *DashboardHandler) DeleteReport(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	if err := h.reportService.Delete(r.Context(), userID, chi.URLParam(r, "id")); err != nil {
		writeServiceError(w, h.logger, err, "Failed to delete report")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Report deleted successfully", nil)
}

// Profile returns the caller's account
// @Summary Get profile
// @Tags Dashboard
// @Produce json
// @Security BearerAuth
// @Success 200 {object} dto.ProfileDTO
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /dashboard/profile [get]
func (h *DashboardHandler) Profile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	u, err := h.userService.GetProfile(r.Context(), userID)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to fetch profile")
		return
	}

	utils.WriteSuccess(w, http.StatusOK, dto.NewProfileDTO(u))
}

// UpdateProfile changes the caller's display name
// @Summary Update profile
// @Tags Dashboard
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.UpdateProfileRequest true "New name"
// @Success 200 {object} dto.ProfileDTO
// @Failure 400 {object} utils.ErrorResponse "Invalid name"
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Router /dashboard/profile [put]
func (h *DashboardHandler) UpdateProfile(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	u, err := h.userService.UpdateName(r.Context(), userID, req.Name)
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to update profile")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusOK, "Profile updated successfully", dto.NewProfileDTO(u))
}
