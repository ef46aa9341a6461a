package dto

import (
	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/pkg/utils"
)

// GenerateRequest asks for a new report. inputData must carry fullName and dateOfBirth;
// any other keys are stored as given.
type GenerateRequest struct {
	InputData *report.InputData `json:"inputData" validate:"required"`
	Type      string            `json:"type,omitempty" validate:"omitempty,oneof=numerology astrology tarot custom"`
}

// HistoryResponse documents the paginated history envelope
type HistoryResponse struct {
	Success    bool             `json:"success"`
	Data       []*report.Report `json:"data"`
	Pagination utils.Pagination `json:"pagination"`
}
