package handlers

import (
	"net/http"

	"github.com/pratik-mahalle/numera/internal/api/dto"
	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
	"github.com/pratik-mahalle/numera/internal/pkg/validator"
)

// ToolHandler generates reports
type ToolHandler struct {
	reportService report.Service
	logger        *logger.Logger
	validator     *validator.Validator
}

// NewToolHandler creates a new tool handler
func NewToolHandler(reportService report.Service, log *logger.Logger, val *validator.Validator) *ToolHandler {
	return &ToolHandler{
		reportService: reportService,
		logger:        log,
		validator:     val,
	}
}

// Generate produces a report and consumes one query
// @Summary Generate a report
// @Description Computes a numerology reading for the subject and stores it in the caller's history
// @Tags Tool
// @Accept json
// @Produce json
// @Security BearerAuth
// @Param request body dto.GenerateRequest true "Subject and report type"
// @Success 201 {object} report.Report
// @Failure 400 {object} utils.ErrorResponse "Missing fields"
// @Failure 401 {object} utils.ErrorResponse
// @Failure 404 {object} utils.ErrorResponse "User not found"
// @Failure 429 {object} utils.ErrorResponse "Query limit reached"
// @Router /tool/generate [post]
func (h *ToolHandler) Generate(w http.ResponseWriter, r *http.Request) {
	userID, ok := requireUserID(w, r)
	if !ok {
		return
	}

	var req dto.GenerateRequest
	if !decodeAndValidate(w, r, h.validator, &req) {
		return
	}

	rep, err := h.reportService.Generate(r.Context(), userID, report.GenerateInput{
		InputData: *req.InputData,
		Type:      req.Type,
	})
	if err != nil {
		writeServiceError(w, h.logger, err, "Failed to generate report")
		return
	}

	utils.WriteSuccessWithMessage(w, http.StatusCreated, "Report generated successfully", rep)
}
