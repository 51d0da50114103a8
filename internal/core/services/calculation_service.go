package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/google/uuid"

	"github.com/HPG21/czp-releases/internal/apperrors"
	"github.com/HPG21/czp-releases/internal/core/analytics"
	"github.com/HPG21/czp-releases/internal/core/domain"
	"github.com/HPG21/czp-releases/internal/core/payroll"
	portsrepo "github.com/HPG21/czp-releases/internal/core/ports/repositories"
	portssvc "github.com/HPG21/czp-releases/internal/core/ports/services"
	"github.com/HPG21/czp-releases/internal/dto"
	"github.com/HPG21/czp-releases/internal/utils"
	"github.com/HPG21/czp-releases/internal/utils/pagination"
)

const (
	defaultPageSize = 20
	maxPageSize     = 100
)

// calculationService implements the CalculationSvcFacade interface
type calculationService struct {
	BaseService
	calcRepo    portsrepo.CalculationRepositoryFacade
	settingsSvc portssvc.SettingsReaderSvc
	newID       func() string
}

// CalculationServiceOption is a functional option for configuring the calculation service
type CalculationServiceOption func(*calculationService)

// WithSettingsReader sets where defaults for omitted inputs come from.
func WithSettingsReader(settingsSvc portssvc.SettingsReaderSvc) CalculationServiceOption {
	return func(s *calculationService) {
		s.settingsSvc = settingsSvc
	}
}

// WithCalculationClock overrides the clock used for audit timestamps.
func WithCalculationClock(clock func() time.Time) CalculationServiceOption {
	return func(s *calculationService) {
		s.Clock = clock
	}
}

// WithIDGenerator overrides how new record IDs are produced.
func WithIDGenerator(newID func() string) CalculationServiceOption {
	return func(s *calculationService) {
		s.newID = newID
	}
}

// NewCalculationService creates a new calculation service with the provided options
func NewCalculationService(repo portsrepo.CalculationRepositoryFacade, options ...CalculationServiceOption) portssvc.CalculationSvcFacade {
	svc := &calculationService{
		calcRepo: repo,
		newID:    uuid.NewString,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

// Ensure calculationService implements the CalculationSvcFacade interface
var _ portssvc.CalculationSvcFacade = (*calculationService)(nil)

func (s *calculationService) settingsFor(ctx context.Context, userID string) (domain.Settings, error) {
	if s.settingsSvc == nil {
		return domain.DefaultSettings(userID), nil
	}
	settings, err := s.settingsSvc.GetSettings(ctx, userID)
	if err != nil {
		return domain.Settings{}, err
	}
	return *settings, nil
}

// resolveInputs fills omitted inputs from the user's settings.
func (s *calculationService) resolveInputs(ctx context.Context, userID string, req dto.CalculationInputsRequest) (domain.Inputs, error) {
	settings, err := s.settingsFor(ctx, userID)
	if err != nil {
		return domain.Inputs{}, err
	}

	in := domain.Inputs{
		QuarterlyNormHours: req.QuarterlyNormHours,
		RegularHours:       req.RegularHours,
		NightHours:         req.NightHours,
		HolidayHours:       req.HolidayHours,
		TaxRatePercent:     settings.TaxRatePercent,
	}
	if req.TaxRatePercent != nil {
		in.TaxRatePercent = *req.TaxRatePercent
	}
	switch baseSalary, ok := settings.DefaultBaseSalary(); {
	case req.BaseSalaryAmount != nil:
		in.BaseSalaryAmount = *req.BaseSalaryAmount
	case ok:
		in.BaseSalaryAmount = baseSalary
	default:
		return domain.Inputs{}, apperrors.Validationf("baseSalaryAmount is required")
	}
	return in, nil
}

// PreviewCalculation runs the calculator on the resolved inputs without saving.
func (s *calculationService) PreviewCalculation(ctx context.Context, userID string, req dto.PreviewCalculationRequest) (domain.Inputs, domain.Breakdown, error) {
	in, err := s.resolveInputs(ctx, userID, req.CalculationInputsRequest)
	if err != nil {
		return domain.Inputs{}, domain.Breakdown{}, err
	}
	breakdown, err := payroll.Compute(in)
	if err != nil {
		return domain.Inputs{}, domain.Breakdown{}, err
	}
	return in, breakdown, nil
}

// CreateCalculation computes and stores the record for the requested month.
func (s *calculationService) CreateCalculation(ctx context.Context, userID string, req dto.CreateCalculationRequest) (*domain.CalculationRecord, error) {
	in, err := s.resolveInputs(ctx, userID, req.CalculationInputsRequest)
	if err != nil {
		return nil, err
	}

	month := time.Month(req.Month)
	_, err = s.calcRepo.FindCalculationByMonth(ctx, userID, req.Year, month)
	switch {
	case err == nil:
		s.LogWarn(ctx, "Calculation for month already exists",
			slog.String("user_id", userID),
			slog.Int("year", req.Year),
			slog.Int("month", req.Month))
		return nil, fmt.Errorf("%w: a calculation for %04d-%02d already exists", apperrors.ErrDuplicate, req.Year, req.Month)
	case !errors.Is(err, apperrors.ErrNotFound):
		s.LogError(ctx, err, "Failed to check for an existing calculation", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to check for an existing calculation: %w", err)
	}

	now := s.Now()
	date := time.Date(req.Year, month, 1, 0, 0, 0, 0, time.UTC)
	rec, err := payroll.NewRecord(s.newID(), userID, date, in, now)
	if err != nil {
		return nil, err
	}

	if err := s.calcRepo.SaveCalculation(ctx, rec); err != nil {
		s.LogError(ctx, err, "Failed to save calculation",
			slog.String("user_id", userID),
			slog.String("calculation_id", rec.ID))
		return nil, fmt.Errorf("failed to save calculation: %w", err)
	}

	s.LogInfo(ctx, "Calculation created",
		slog.String("user_id", userID),
		slog.String("calculation_id", rec.ID),
		slog.String("month", rec.Date.Format("2006-01")),
		slog.String("total_pay_net", utils.FormatMoney(rec.TotalPayNet)))
	return &rec, nil
}

// GetCalculation retrieves one record of the user.
func (s *calculationService) GetCalculation(ctx context.Context, userID, calculationID string) (*domain.CalculationRecord, error) {
	rec, err := s.calcRepo.FindCalculationByID(ctx, userID, calculationID)
	if err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to find calculation", slog.String("calculation_id", calculationID))
		}
		return nil, fmt.Errorf("failed to find calculation %s: %w", calculationID, err)
	}
	return rec, nil
}

// ListCalculations returns one page of the history, newest month first.
func (s *calculationService) ListCalculations(ctx context.Context, userID string, params dto.ListCalculationsParams) (*dto.ListCalculationsResponse, error) {
	limit := params.Limit
	if limit <= 0 {
		limit = defaultPageSize
	}
	if limit > maxPageSize {
		limit = maxPageSize
	}

	var before *time.Time
	if params.NextToken != nil && *params.NextToken != "" {
		date, err := pagination.DecodeDateBasedToken(*params.NextToken)
		if err != nil {
			return nil, apperrors.Validationf("invalid nextToken: %v", err)
		}
		before = &date
	}

	// Fetch one extra row to know whether another page exists.
	recs, err := s.calcRepo.ListCalculationsPage(ctx, userID, limit+1, before)
	if err != nil {
		s.LogError(ctx, err, "Failed to list calculations", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to list calculations: %w", err)
	}

	var nextToken *string
	if len(recs) > limit {
		recs = recs[:limit]
		token := pagination.EncodeDateBasedToken(recs[limit-1].Date)
		nextToken = &token
	}

	s.LogDebug(ctx, "Calculations listed", slog.String("user_id", userID), slog.Int("count", len(recs)))
	return &dto.ListCalculationsResponse{
		Calculations: dto.ToCalculationResponses(recs),
		NextToken:    nextToken,
	}, nil
}

// UpdateCalculation overlays the requested inputs and recomputes the record.
func (s *calculationService) UpdateCalculation(ctx context.Context, userID, calculationID string, req dto.UpdateCalculationRequest) (*domain.CalculationRecord, error) {
	existing, err := s.GetCalculation(ctx, userID, calculationID)
	if err != nil {
		return nil, err
	}

	updated, err := payroll.Recompute(*existing, req.Apply(existing.Inputs()), s.Now())
	if err != nil {
		return nil, err
	}

	if err := s.calcRepo.UpdateCalculation(ctx, updated); err != nil {
		s.LogError(ctx, err, "Failed to update calculation", slog.String("calculation_id", calculationID))
		return nil, fmt.Errorf("failed to update calculation: %w", err)
	}

	s.LogInfo(ctx, "Calculation updated",
		slog.String("user_id", userID),
		slog.String("calculation_id", calculationID),
		slog.String("total_pay_net", utils.FormatMoney(updated.TotalPayNet)))
	return &updated, nil
}

// DeleteCalculation removes one record of the user.
func (s *calculationService) DeleteCalculation(ctx context.Context, userID, calculationID string) error {
	if err := s.calcRepo.DeleteCalculation(ctx, userID, calculationID); err != nil {
		if !errors.Is(err, apperrors.ErrNotFound) {
			s.LogError(ctx, err, "Failed to delete calculation", slog.String("calculation_id", calculationID))
		}
		return fmt.Errorf("failed to delete calculation %s: %w", calculationID, err)
	}
	s.LogInfo(ctx, "Calculation deleted", slog.String("user_id", userID), slog.String("calculation_id", calculationID))
	return nil
}

// ClearHistory removes every record of the user.
func (s *calculationService) ClearHistory(ctx context.Context, userID string) (int64, error) {
	deleted, err := s.calcRepo.DeleteAllCalculations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to clear history", slog.String("user_id", userID))
		return 0, fmt.Errorf("failed to clear history: %w", err)
	}
	s.LogInfo(ctx, "History cleared", slog.String("user_id", userID), slog.Int64("deleted", deleted))
	return deleted, nil
}

// GroupedHistory groups the history by year and quarter.
func (s *calculationService) GroupedHistory(ctx context.Context, userID string, year *int) ([]domain.HistoryYear, error) {
	recs, err := s.calcRepo.ListCalculations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}
	if year != nil {
		recs = analytics.Filter(recs, domain.FilterOptions{Year: year}, s.Now())
	}
	return analytics.GroupByYearQuarter(recs), nil
}

// ExportHistory returns the full history in its transfer form.
func (s *calculationService) ExportHistory(ctx context.Context, userID string) (*dto.HistoryExport, error) {
	recs, err := s.calcRepo.ListCalculations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history for export", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	export := &dto.HistoryExport{
		Version:      dto.HistoryExportVersion,
		ExportedAt:   s.Now(),
		Calculations: make([]dto.CalculationTransfer, len(recs)),
	}
	for i := range recs {
		export.Calculations[i] = dto.ToCalculationTransfer(&recs[i])
	}

	s.LogInfo(ctx, "History exported", slog.String("user_id", userID), slog.Int("count", len(recs)))
	return export, nil
}

// ImportHistory recomputes every imported row and stores the months not already present.
func (s *calculationService) ImportHistory(ctx context.Context, userID string, req dto.ImportHistoryRequest) (*dto.ImportHistoryResponse, error) {
	existing, err := s.calcRepo.ListCalculations(ctx, userID)
	if err != nil {
		s.LogError(ctx, err, "Failed to load history for import", slog.String("user_id", userID))
		return nil, fmt.Errorf("failed to load history: %w", err)
	}

	taken := make(map[time.Time]bool, len(existing)+len(req.Calculations))
	for _, rec := range existing {
		taken[domain.MonthStart(rec.Date)] = true
	}

	now := s.Now()
	resp := &dto.ImportHistoryResponse{SkippedMonths: []string{}}
	toSave := make([]domain.CalculationRecord, 0, len(req.Calculations))
	for i, row := range req.Calculations {
		date, err := time.Parse(dto.DateLayout, row.Date)
		if err != nil {
			return nil, apperrors.Validationf("calculations[%d]: invalid date %q", i, row.Date)
		}
		month := domain.MonthStart(date)
		if taken[month] {
			resp.Skipped++
			resp.SkippedMonths = append(resp.SkippedMonths, month.Format("2006-01"))
			continue
		}

		createdAt := row.CreatedAt
		if createdAt.IsZero() {
			createdAt = now
		}
		rec, err := payroll.NewRecord(s.newID(), userID, month, row.Inputs(), createdAt)
		if err != nil {
			return nil, fmt.Errorf("calculations[%d]: %w", i, err)
		}
		rec.LastUpdatedAt = now
		taken[month] = true
		toSave = append(toSave, rec)
	}

	if len(toSave) > 0 {
		if err := s.calcRepo.SaveCalculations(ctx, toSave); err != nil {
			s.LogError(ctx, err, "Failed to save imported calculations", slog.String("user_id", userID))
			return nil, fmt.Errorf("failed to save imported calculations: %w", err)
		}
	}
	resp.Imported = len(toSave)

	s.LogInfo(ctx, "History imported",
		slog.String("user_id", userID),
		slog.Int("imported", resp.Imported),
		slog.Int("skipped", resp.Skipped))
	return resp, nil
}
