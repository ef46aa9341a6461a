package services

import (
	"context"
	stderrors "errors"
	"time"

	"github.com/pratik-mahalle/numera/internal/domain/report"
	"github.com/pratik-mahalle/numera/internal/domain/user"
	"github.com/pratik-mahalle/numera/internal/pkg/errors"
	"github.com/pratik-mahalle/numera/internal/pkg/logger"
	"github.com/pratik-mahalle/numera/internal/pkg/metrics"
)

const quotaMessage = "Query limit reached. Upgrade your plan for more queries."

var _ report.Service = (*ReportService)(nil)

// ReportService implements report.Service
type ReportService struct {
	users   user.Repository
	reports report.Repository
	calc    *Calculator
	now     func() time.Time
	logger  *logger.Logger
}

// NewReportService creates a new report service. now may be nil.
func NewReportService(users user.Repository, reports report.Repository, calc *Calculator, now func() time.Time, log *logger.Logger) *ReportService {
	if calc == nil {
		calc = NewCalculator(nil)
	}
	if now == nil {
		now = time.Now
	}
	return &ReportService{
		users:   users,
		reports: reports,
		calc:    calc,
		now:     now,
		logger:  log,
	}
}

// Generate consumes one query and stores a new report. The quota is checked
// against the stored user, then claimed with an atomic reservation so that
// concurrent calls cannot push usage past the limit.
func (s *ReportService) Generate(ctx context.Context, userID string, in report.GenerateInput) (*report.Report, error) {
	reportType := in.Type
	if reportType == "" {
		reportType = report.TypeNumerology
	}
	if !report.ValidType(reportType) {
		return nil, errors.ValidationError("Invalid report type", map[string]interface{}{
			"type":    reportType,
			"allowed": report.Types,
		})
	}
	if problems := in.InputData.Validate(); problems != nil {
		return nil, errors.ValidationError("Full name and date of birth are required", problems)
	}

	log := s.logger.WithFields(map[string]interface{}{
		"user_id": userID,
		"type":    reportType,
	})

	u, err := s.users.GetByID(ctx, userID)
	if err != nil {
		return nil, errors.As(err, "Failed to generate report")
	}
	if !u.HasQuota() {
		return nil, s.quotaExceeded(log, reportType)
	}

	result := s.calc.Calculate(in.InputData)

	if err := s.users.ReserveQuery(ctx, userID); err != nil {
		if stderrors.Is(err, errors.ErrQuotaExceeded) {
			return nil, s.quotaExceeded(log, reportType)
		}
		metrics.RecordGeneration(reportType, metrics.OutcomeFailure)
		log.ErrorWithErr(err, "Failed to reserve query")
		return nil, errors.As(err, "Failed to generate report")
	}

	rep := &report.Report{
		UserID:    userID,
		Type:      reportType,
		InputData: in.InputData,
		Result:    result,
		CreatedAt: s.now(),
	}
	if err := s.reports.Create(ctx, rep); err != nil {
		metrics.RecordGeneration(reportType, metrics.OutcomeFailure)
		log.ErrorWithErr(err, "Failed to save report")
		if relErr := s.users.ReleaseQuery(ctx, userID); relErr != nil {
			log.ErrorWithErr(relErr, "Failed to release reserved query")
		}
		return nil, errors.Internal("Failed to generate report", err)
	}

	metrics.RecordGeneration(reportType, metrics.OutcomeSuccess)
	log.With("report_id", rep.ID).Info("Report generated")

	return rep, nil
}

func (s *ReportService) quotaExceeded(log *logger.Logger, reportType string) error {
	metrics.RecordGeneration(reportType, metrics.OutcomeQuota)
	log.Warn("Query limit reached")
	return errors.QuotaExceeded(quotaMessage)
}

// List returns the caller's reports newest first
func (s *ReportService) List(ctx context.Context, userID string, limit, offset int) ([]*report.Report, int64, error) {
	reports, total, err := s.reports.ListByOwner(ctx, userID, limit, offset)
	if err != nil {
		s.logger.ErrorWithErr(err, "Failed to list reports")
		return nil, 0, errors.As(err, "Failed to fetch history")
	}
	return reports, total, nil
}

// Delete removes one of the caller's reports. Used queries stay consumed.
func (s *ReportService) Delete(ctx context.Context, userID, reportID string) error {
	rep, err := s.reports.GetByID(ctx, reportID)
	if err != nil {
		return errors.As(err, "Failed to delete report")
	}
	if rep.UserID != userID {
		s.logger.WithFields(map[string]interface{}{
			"user_id":   userID,
			"report_id": reportID,
		}).Warn("Attempt to delete another user's report")
		return errors.Forbidden("Forbidden")
	}

	if err := s.reports.Delete(ctx, reportID); err != nil {
		if !stderrors.Is(err, errors.ErrNotFound) {
			s.logger.ErrorWithErr(err, "Failed to delete report")
		}
		return errors.As(err, "Failed to delete report")
	}

	metrics.RecordReportDeleted()
	s.logger.WithFields(map[string]interface{}{
		"user_id":   userID,
		"report_id": reportID,
	}).Info("Report deleted")

	return nil
}
